package workflow

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

func newRepairWorkflow(sess *database.Session) *RepairWorkflow {
	return NewRepairWorkflow(repository.NewHotelRepo(sess), repository.NewRepairRepo(sess))
}

func TestPlaceRepairRequest(t *testing.T) {
	sess, mock := newSession(t)
	w := newRepairWorkflow(sess)

	mock.ExpectQuery("SELECT hotelid FROM hotel").
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"hotelid"}).AddRow("1"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO roomrepairs (companyid, hotelid, roomnumber, repairdate)`)).
		WithArgs(int64(3), int64(1), 101).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// The sequence is read back between the two inserts, on the same session.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT currval($1::regclass)`)).
		WithArgs("roomrepairs_repairid_seq").
		WillReturnRows(sqlmock.NewRows([]string{"currval"}).AddRow(55))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO roomrepairrequests (managerid, repairid)`)).
		WithArgs(int64(7), int64(55)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := w.Place(context.Background(), 7, 1, 101, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepairRequestForbidden(t *testing.T) {
	sess, mock := newSession(t)
	w := newRepairWorkflow(sess)

	mock.ExpectQuery("SELECT hotelid FROM hotel").
		WithArgs(int64(8), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"hotelid"}))

	_, err := w.Place(context.Background(), 8, 1, 101, 3)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRepairRequestSequenceMiss(t *testing.T) {
	sess, mock := newSession(t)
	w := newRepairWorkflow(sess)

	mock.ExpectQuery("SELECT hotelid FROM hotel").
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"hotelid"}).AddRow("1"))
	mock.ExpectExec("INSERT INTO roomrepairs").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT currval").
		WillReturnRows(sqlmock.NewRows([]string{"currval"}))

	_, err := w.Place(context.Background(), 7, 1, 101, 3)
	assert.ErrorIs(t, err, repository.ErrSequenceMiss)
	// The linking insert was never attempted with an invalid reference.
	assert.NoError(t, mock.ExpectationsWereMet())
}
