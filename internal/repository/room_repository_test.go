package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomGet(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewRoomRepo(sess)

	mock.ExpectQuery("SELECT price, imageurl FROM rooms").
		WithArgs(int64(1), 101).
		WillReturnRows(sqlmock.NewRows([]string{"price", "imageurl"}).AddRow("200", "room.png"))

	price, img, err := repo.Get(context.Background(), 1, 101)
	require.NoError(t, err)
	assert.Equal(t, "200", price)
	assert.Equal(t, "room.png", img)
}

func TestRoomGetNotFound(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewRoomRepo(sess)

	mock.ExpectQuery("SELECT price, imageurl FROM rooms").
		WithArgs(int64(1), 999).
		WillReturnRows(sqlmock.NewRows([]string{"price", "imageurl"}))

	_, _, err := repo.Get(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestAvailableOn(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewRoomRepo(sess)

	rows := sqlmock.NewRows([]string{"roomnumber", "price"}).
		AddRow("101", "200").
		AddRow("103", "300")
	mock.ExpectQuery("SELECT roomnumber, price FROM rooms").
		WithArgs(int64(1), "2024-01-01").
		WillReturnRows(rows)

	res, err := repo.AvailableOn(context.Background(), 1, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"roomnumber", "price"}, res.Columns)
	assert.Len(t, res.Rows, 2)
}

func TestUpdateLogTouch(t *testing.T) {
	sess, mock := newSession(t)
	repo := NewUpdateLogRepo(sess)

	mock.ExpectExec("INSERT INTO roomupdateslog").
		WithArgs(int64(7), int64(1), 101).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Touch(context.Background(), 7, 1, 101)
	assert.NoError(t, err)
}
