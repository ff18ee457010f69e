package workflow

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RoomUpdateWorkflow lets a hotel's manager change a room's price and
// image, stamping the per-(manager, hotel, room) update log on success.
type RoomUpdateWorkflow struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
	Logs   *repository.UpdateLogRepo
}

func NewRoomUpdateWorkflow(hotels *repository.HotelRepo, rooms *repository.RoomRepo, logs *repository.UpdateLogRepo) *RoomUpdateWorkflow {
	return &RoomUpdateWorkflow{Hotels: hotels, Rooms: rooms, Logs: logs}
}

// Update applies the edit for the given manager. It fails closed: the
// (manager, hotel) pair is verified before anything is read, and the room
// must exist before anything is written. On rejection neither the room
// row nor the update log changes.
func (w *RoomUpdateWorkflow) Update(ctx context.Context, managerID, hotelID int64, roomNumber, price int, imageURL string) error {
	ok, err := w.Hotels.ManagesHotel(ctx, managerID, hotelID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrForbidden
	}
	if _, _, err := w.Rooms.Get(ctx, hotelID, roomNumber); err != nil {
		return err
	}
	if err := w.Rooms.Update(ctx, hotelID, roomNumber, price, imageURL); err != nil {
		return err
	}
	return w.Logs.Touch(ctx, managerID, hotelID, roomNumber)
}
