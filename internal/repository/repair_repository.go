package repository

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// RepairRepo creates repair tickets and the requests that link a manager
// to a ticket, and reads the repair history of managed hotels.
type RepairRepo struct{ Sess *database.Session }

func NewRepairRepo(s *database.Session) *RepairRepo { return &RepairRepo{Sess: s} }

// InsertTicket creates a repair ticket dated today and returns its
// generated identifier. The sequence must be read back before any other
// statement runs on the session, so insert and readback go through the
// session's combined critical section.
func (r *RepairRepo) InsertTicket(ctx context.Context, companyID, hotelID int64, roomNumber int) (int64, error) {
	id, err := r.Sess.ExecuteInsertReturningID(ctx, "roomrepairs_repairid_seq",
		`INSERT INTO roomrepairs (companyid, hotelid, roomnumber, repairdate)
		 VALUES ($1, $2, $3, CURRENT_DATE)`,
		companyID, hotelID, roomNumber)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, ErrSequenceMiss
	}
	return id, nil
}

// InsertRequest records that the manager filed the given repair ticket.
func (r *RepairRepo) InsertRequest(ctx context.Context, managerID, repairID int64) error {
	return r.Sess.ExecuteUpdate(ctx,
		`INSERT INTO roomrepairrequests (managerid, repairid) VALUES ($1, $2)`,
		managerID, repairID)
}

// HistoryForManager materializes all repair tickets across the hotels the
// manager runs, newest first.
func (r *RepairRepo) HistoryForManager(ctx context.Context, managerID int64) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT repairid, companyid, hotelid, roomnumber, repairdate
		 FROM roomrepairs
		 WHERE hotelid IN (SELECT hotelid FROM hotel WHERE manageruserid = $1)
		 ORDER BY repairdate DESC`,
		managerID)
}
