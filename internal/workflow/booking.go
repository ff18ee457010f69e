// Package workflow holds the business operations composed from the
// repositories: booking a room, editing a room and filing repair
// requests. Each operation enforces its own authorization and
// availability rules and returns sentinel errors from the repository
// package for every rejection.
package workflow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// pgUniqueViolation is the SQLSTATE raised when the (hotel, room, date)
// uniqueness constraint rejects a concurrent duplicate booking.
const pgUniqueViolation = "23505"

// BookingWorkflow books a room for a customer on a date, refusing the
// slot if any conflicting booking exists.
type BookingWorkflow struct {
	Sess     *database.Session
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

func NewBookingWorkflow(s *database.Session, rooms *repository.RoomRepo, bookings *repository.BookingRepo) *BookingWorkflow {
	return &BookingWorkflow{Sess: s, Rooms: rooms, Bookings: bookings}
}

// Book checks availability and creates the booking, returning the room's
// price as text. Check and insert run in one serializable transaction on
// the session's pinned connection, and the insert is additionally covered
// by the slot uniqueness constraint; a concurrent booking for the same
// slot therefore fails with ErrRoomNotAvailable instead of racing.
func (w *BookingWorkflow) Book(ctx context.Context, hotelID int64, roomNumber int, date string, customerID int64) (string, error) {
	tx, err := w.Sess.BeginSerializable(ctx)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	n, err := w.Bookings.CountConflictsTx(ctx, tx, hotelID, roomNumber, date)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", repository.ErrRoomNotAvailable
	}

	price, err := w.Rooms.PriceTx(ctx, tx, hotelID, roomNumber)
	if err != nil {
		return "", err
	}

	if err := w.Bookings.InsertTx(ctx, tx, hotelID, roomNumber, date, customerID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", repository.ErrRoomNotAvailable
		}
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return price, nil
}
