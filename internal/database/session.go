// Package database owns the single live connection to PostgreSQL and the
// statement execution primitives built on top of it. Every query in the
// application flows through a Session; results are handed back either as a
// row count, a fully buffered table of strings, or a printed table.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Session wraps one pinned database connection. Pinning a *sql.Conn out of
// the pool matters for sequence resolution: currval() is scoped to the
// backend session, so every statement must run on the same connection.
//
// The connection is a single shared resource: concurrent request handlers
// all funnel into it. The mutex serializes access so one request's
// statement can never interleave inside another's open transaction or
// between an insert and its sequence readback.
type Session struct {
	mu   sync.Mutex
	db   *sql.DB
	conn *sql.Conn
}

// Open connects to PostgreSQL, pins a single connection and verifies it
// with a ping. A failure here is fatal to the caller; there is no retry.
func Open(host, port, name, user, pass string) (*Session, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	dsn := fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", auth, host, port, name)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s, err := NewFromDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewFromDB pins a connection out of an already opened handle. It is used
// by Open and by tests that substitute a mock driver.
func NewFromDB(db *sql.DB) (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Session{db: db, conn: conn}, nil
}

// Close releases the pinned connection and the underlying handle. It is
// idempotent and safe on a never-opened or already-closed session.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}

// BeginSerializable starts a serializable transaction on the pinned
// connection. The booking flow relies on this isolation level so that two
// clients racing for the same slot fail deterministically instead of both
// passing the availability check.
//
// The session is held exclusively from here until Commit or Rollback;
// statements issued through the session by other goroutines block instead
// of executing inside the open transaction.
func (s *Session) BeginSerializable(ctx context.Context) (*Tx, error) {
	s.mu.Lock()
	tx, err := s.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return &Tx{tx: tx, sess: s}, nil
}

// Tx is a transaction on the session's pinned connection. It owns the
// session's lock for its lifetime; exactly one of Commit or Rollback
// releases it. Both are safe to call after the transaction is done, so a
// deferred Rollback after a successful Commit is a no-op.
type Tx struct {
	tx   *sql.Tx
	sess *Session
	done bool
}

// Commit commits the transaction and releases the session.
func (t *Tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	err := t.tx.Commit()
	t.sess.mu.Unlock()
	return err
}

// Rollback aborts the transaction and releases the session.
func (t *Tx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	err := t.tx.Rollback()
	t.sess.mu.Unlock()
	return err
}

// querier is satisfied by both *sql.Conn and *sql.Tx so the execution
// helpers can run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Result is a fully materialized query result. Rows are ordered as the
// engine returned them; every value is carried as text so callers can
// branch on column positions without schema knowledge.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the result holds no rows.
func (r *Result) Empty() bool { return len(r.Rows) == 0 }

// ExecuteUpdate runs a mutating statement (INSERT, UPDATE, DELETE, DDL).
func (s *Session) ExecuteUpdate(ctx context.Context, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.ExecContext(ctx, query, args...)
	return err
}

// ExecuteUpdateTx is ExecuteUpdate within an existing transaction. The
// transaction already owns the session lock.
func (s *Session) ExecuteUpdateTx(ctx context.Context, tx *Tx, query string, args ...any) error {
	_, err := tx.tx.ExecContext(ctx, query, args...)
	return err
}

// ExecuteCount runs a query, discards row content and returns the number
// of rows produced. Workflows use it for existence checks so nothing is
// materialized.
func (s *Session) ExecuteCount(ctx context.Context, query string, args ...any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return executeCount(ctx, s.conn, query, args...)
}

// ExecuteCountTx is ExecuteCount within an existing transaction.
func (s *Session) ExecuteCountTx(ctx context.Context, tx *Tx, query string, args ...any) (int, error) {
	return executeCount(ctx, tx.tx, query, args...)
}

func executeCount(ctx context.Context, q querier, query string, args ...any) (int, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

// ExecuteMaterialize runs a query and buffers the complete result before
// closing the cursor, so the returned Result stays valid after the call.
func (s *Session) ExecuteMaterialize(ctx context.Context, query string, args ...any) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return executeMaterialize(ctx, s.conn, query, args...)
}

// ExecuteMaterializeTx is ExecuteMaterialize within an existing transaction.
func (s *Session) ExecuteMaterializeTx(ctx context.Context, tx *Tx, query string, args ...any) (*Result, error) {
	return executeMaterialize(ctx, tx.tx, query, args...)
}

func executeMaterialize(ctx context.Context, q querier, query string, args ...any) (*Result, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	res := &Result{Columns: cols}
	raw := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		record := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				record[i] = v.String
			}
		}
		res.Rows = append(res.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ExecuteAndPrint materializes a query and writes it to w as a
// tab-separated table: a header of column names before the first data row,
// then one line per row. It returns the row count. This path exists for
// human-facing display only; workflows that branch on data use
// ExecuteMaterialize instead.
func (s *Session) ExecuteAndPrint(ctx context.Context, w io.Writer, query string, args ...any) (int, error) {
	res, err := s.ExecuteMaterialize(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	for i, row := range res.Rows {
		if i == 0 {
			fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return len(res.Rows), nil
}

// ExecuteInsertReturningID runs a mutating statement and then resolves
// the named sequence's current value, both inside one critical section.
// No other statement on the session can slip in between the insert and
// the readback, so the returned identifier always belongs to the row this
// call inserted.
func (s *Session) ExecuteInsertReturningID(ctx context.Context, sequence, query string, args ...any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	return s.currentSequenceValue(ctx, sequence)
}

// CurrentSequenceValue returns the value most recently generated from the
// named sequence in this session, or -1 when the sequence has produced no
// value here yet. Inserts that need their generated identifier go through
// ExecuteInsertReturningID so the readback cannot race another request's
// insert on the same sequence.
func (s *Session) CurrentSequenceValue(ctx context.Context, sequence string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSequenceValue(ctx, sequence)
}

func (s *Session) currentSequenceValue(ctx context.Context, sequence string) (int64, error) {
	var v int64
	err := s.conn.QueryRowContext(ctx, `SELECT currval($1::regclass)`, sequence).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return v, nil
}
