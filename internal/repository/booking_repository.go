package repository

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/database"
)

// BookingRepo provides the statements behind the booking workflow and the
// booking history views. Bookings are append-only: this service never
// updates or deletes one.
type BookingRepo struct{ Sess *database.Session }

func NewBookingRepo(s *database.Session) *BookingRepo { return &BookingRepo{Sess: s} }

// CountConflictsTx counts existing bookings for the (hotel, room, date)
// slot inside the caller's transaction. Zero means the slot is free.
func (r *BookingRepo) CountConflictsTx(ctx context.Context, tx *database.Tx, hotelID int64, roomNumber int, date string) (int, error) {
	return r.Sess.ExecuteCountTx(ctx, tx,
		`SELECT bookingid FROM roombookings
		 WHERE bookingdate = $1 AND hotelid = $2 AND roomnumber = $3`,
		date, hotelID, roomNumber)
}

// InsertTx creates the booking row inside the caller's transaction. The
// schema's uniqueness constraint on (hotelid, roomnumber, bookingdate)
// backstops the availability check under concurrent sessions.
func (r *BookingRepo) InsertTx(ctx context.Context, tx *database.Tx, hotelID int64, roomNumber int, date string, customerID int64) error {
	return r.Sess.ExecuteUpdateTx(ctx, tx,
		`INSERT INTO roombookings (bookingdate, hotelid, roomnumber, customerid)
		 VALUES ($1, $2, $3, $4)`,
		date, hotelID, roomNumber, customerID)
}

// RecentByCustomer materializes the customer's five most recent bookings.
func (r *BookingRepo) RecentByCustomer(ctx context.Context, customerID int64) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT bookingid, hotelid, roomnumber, bookingdate
		 FROM roombookings WHERE customerid = $1
		 ORDER BY bookingdate DESC LIMIT 5`,
		customerID)
}

// HistoryForHotel materializes a hotel's bookings within the date range,
// joined with the booking customer's name. Authorization is the
// workflow's job; this is the raw read.
func (r *BookingRepo) HistoryForHotel(ctx context.Context, hotelID int64, from, to string) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT DISTINCT b.bookingid, b.hotelid, b.roomnumber, b.bookingdate, u.name
		 FROM roombookings b JOIN users u ON u.userid = b.customerid
		 WHERE b.hotelid = $1 AND b.bookingdate BETWEEN $2 AND $3
		 ORDER BY b.bookingdate`,
		hotelID, from, to)
}

// TopCustomers materializes the five customers with the most bookings at
// the hotel, busiest first.
func (r *BookingRepo) TopCustomers(ctx context.Context, hotelID int64) (*database.Result, error) {
	return r.Sess.ExecuteMaterialize(ctx,
		`SELECT customerid FROM roombookings
		 WHERE hotelid = $1
		 GROUP BY customerid ORDER BY COUNT(bookingid) DESC LIMIT 5`,
		hotelID)
}
