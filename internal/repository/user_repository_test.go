package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreate(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUserRepo(sess)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, password, usertype)`)).
		WithArgs("alice", sqlmock.AnyArg(), RoleCustomer).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT currval($1::regclass)`)).
		WithArgs("users_userid_seq").
		WillReturnRows(sqlmock.NewRows([]string{"currval"}).AddRow(11))

	id, err := repo.Create(context.Background(), " alice ", "s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateSequenceMiss(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUserRepo(sess)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT currval").
		WillReturnRows(sqlmock.NewRows([]string{"currval"}))

	_, err := repo.Create(context.Background(), "bob", "pw", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrSequenceMiss)
}

func TestAuthenticate(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUserRepo(sess)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"userid", "name", "password", "usertype"}).
		AddRow("11", "alice", string(hash), RoleCustomer)
	mock.ExpectQuery("SELECT userid, name, password, usertype FROM users").
		WithArgs(int64(11)).
		WillReturnRows(rows)

	u, err := repo.Authenticate(context.Background(), 11, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(11), u.ID)
	assert.Equal(t, "alice", u.Name)
	assert.Equal(t, RoleCustomer, u.Role)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUserRepo(sess)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"userid", "name", "password", "usertype"}).
		AddRow("11", "alice", string(hash), RoleCustomer)
	mock.ExpectQuery("SELECT userid, name, password, usertype FROM users").
		WithArgs(int64(11)).
		WillReturnRows(rows)

	_, err = repo.Authenticate(context.Background(), 11, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUserRepo(sess)

	mock.ExpectQuery("SELECT userid, name, password, usertype FROM users").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"userid", "name", "password", "usertype"}))

	_, err := repo.Authenticate(context.Background(), 404, "pw")
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
