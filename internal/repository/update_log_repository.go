package repository

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// UpdateLogRepo maintains one RoomUpdatesLog row per (manager, hotel,
// room) recording when that manager last edited the room.
type UpdateLogRepo struct{ Sess *database.Session }

func NewUpdateLogRepo(s *database.Session) *UpdateLogRepo { return &UpdateLogRepo{Sess: s} }

// Touch stamps the log row for (manager, hotel, room) with the current
// server time, inserting the row if this pair has never been logged. A
// plain UPDATE would silently do nothing on the first edit.
func (r *UpdateLogRepo) Touch(ctx context.Context, managerID, hotelID int64, roomNumber int) error {
	return r.Sess.ExecuteUpdate(ctx,
		`INSERT INTO roomupdateslog (managerid, hotelid, roomnumber, updatedon)
		 VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		 ON CONFLICT (managerid, hotelid, roomnumber)
		 DO UPDATE SET updatedon = CURRENT_TIMESTAMP`,
		managerID, hotelID, roomNumber)
}

// RecentByManager materializes the manager's five most recent room
// updates, newest first.
func (r *UpdateLogRepo) RecentByManager(ctx context.Context, managerID int64) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT hotelid, roomnumber, updatedon
		 FROM roomupdateslog WHERE managerid = $1
		 ORDER BY updatedon DESC LIMIT 5`,
		managerID)
}
