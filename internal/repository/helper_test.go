package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// newSession pins a session over a mock driver for repository tests.
func newSession(t *testing.T) (*database.Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sess, err := database.NewFromDB(db)
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess, mock
}
