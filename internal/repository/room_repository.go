package repository

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// RoomRepo reads and mutates rooms. A room is addressed by the composite
// (hotel, room number) key; only the hotel's manager may change it.
type RoomRepo struct{ Sess *database.Session }

func NewRoomRepo(s *database.Session) *RoomRepo { return &RoomRepo{Sess: s} }

// Get returns the room's price and image URL as text, or ErrRoomNotFound.
func (r *RoomRepo) Get(ctx context.Context, hotelID int64, roomNumber int) (price, imageURL string, err error) {
	res, err := r.Sess.ExecuteMaterialize(ctx,
		`SELECT price, imageurl FROM rooms WHERE hotelid = $1 AND roomnumber = $2`,
		hotelID, roomNumber)
	if err != nil {
		return "", "", err
	}
	if res.Empty() {
		return "", "", ErrRoomNotFound
	}
	return res.Rows[0][0], res.Rows[0][1], nil
}

// PriceTx reads the room's price within a transaction. The booking flow
// uses it so availability check, price lookup and insert share one
// serializable transaction.
func (r *RoomRepo) PriceTx(ctx context.Context, tx *database.Tx, hotelID int64, roomNumber int) (string, error) {
	res, err := r.Sess.ExecuteMaterializeTx(ctx, tx,
		`SELECT price FROM rooms WHERE hotelid = $1 AND roomnumber = $2`,
		hotelID, roomNumber)
	if err != nil {
		return "", err
	}
	if res.Empty() {
		return "", ErrRoomNotFound
	}
	return res.Rows[0][0], nil
}

// Update sets a room's price and image URL.
func (r *RoomRepo) Update(ctx context.Context, hotelID int64, roomNumber int, price int, imageURL string) error {
	return r.Sess.ExecuteUpdate(ctx,
		`UPDATE rooms SET price = $1, imageurl = $2 WHERE hotelid = $3 AND roomnumber = $4`,
		price, imageURL, hotelID, roomNumber)
}

// AvailableOn materializes the rooms of a hotel that have no booking on
// the given date, with their prices, for display.
func (r *RoomRepo) AvailableOn(ctx context.Context, hotelID int64, date string) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT roomnumber, price FROM rooms
		 WHERE hotelid = $1
		   AND roomnumber NOT IN (
		       SELECT roomnumber FROM roombookings
		       WHERE hotelid = $1 AND bookingdate = $2)
		 ORDER BY roomnumber`,
		hotelID, date)
}
