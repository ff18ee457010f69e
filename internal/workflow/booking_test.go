package workflow

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// newSession pins a session over a mock driver for workflow tests.
func newSession(t *testing.T) (*database.Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sess, err := database.NewFromDB(db)
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess, mock
}

func newBookingWorkflow(sess *database.Session) *BookingWorkflow {
	return NewBookingWorkflow(sess, repository.NewRoomRepo(sess), repository.NewBookingRepo(sess))
}

func TestBookFreeSlot(t *testing.T) {
	sess, mock := newSession(t)
	w := newBookingWorkflow(sess)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bookingid FROM roombookings").
		WithArgs("2024-01-01", int64(1), 101).
		WillReturnRows(sqlmock.NewRows([]string{"bookingid"})) // no conflict
	mock.ExpectQuery("SELECT price FROM rooms").
		WithArgs(int64(1), 101).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("250"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO roombookings (bookingdate, hotelid, roomnumber, customerid)`)).
		WithArgs("2024-01-01", int64(1), 101, int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	price, err := w.Book(context.Background(), 1, 101, "2024-01-01", 42)
	require.NoError(t, err)
	assert.Equal(t, "250", price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookConflictingSlot(t *testing.T) {
	sess, mock := newSession(t)
	w := newBookingWorkflow(sess)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bookingid FROM roombookings").
		WithArgs("2024-01-01", int64(1), 101).
		WillReturnRows(sqlmock.NewRows([]string{"bookingid"}).AddRow("9"))
	mock.ExpectRollback()

	_, err := w.Book(context.Background(), 1, 101, "2024-01-01", 43)
	assert.ErrorIs(t, err, repository.ErrRoomNotAvailable)
	// No insert was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookUnknownRoom(t *testing.T) {
	sess, mock := newSession(t)
	w := newBookingWorkflow(sess)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bookingid FROM roombookings").
		WillReturnRows(sqlmock.NewRows([]string{"bookingid"}))
	mock.ExpectQuery("SELECT price FROM rooms").
		WillReturnRows(sqlmock.NewRows([]string{"price"}))
	mock.ExpectRollback()

	_, err := w.Book(context.Background(), 1, 999, "2024-01-01", 42)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)
}

func TestBookConcurrentDuplicate(t *testing.T) {
	sess, mock := newSession(t)
	w := newBookingWorkflow(sess)

	// A concurrent session inserted between our check and our insert;
	// the uniqueness constraint turns the race into a rejection.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bookingid FROM roombookings").
		WillReturnRows(sqlmock.NewRows([]string{"bookingid"}))
	mock.ExpectQuery("SELECT price FROM rooms").
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("250"))
	mock.ExpectExec("INSERT INTO roombookings").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := w.Book(context.Background(), 1, 101, "2024-01-01", 42)
	assert.ErrorIs(t, err, repository.ErrRoomNotAvailable)
}
