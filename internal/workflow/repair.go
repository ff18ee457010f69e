package workflow

import (
	"context"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RepairWorkflow files a room repair ticket with a company on behalf of a
// hotel's manager. Two inserts are chained: the ticket, then the request
// that ties the manager to the ticket's freshly generated identifier.
type RepairWorkflow struct {
	Hotels  *repository.HotelRepo
	Repairs *repository.RepairRepo
}

func NewRepairWorkflow(hotels *repository.HotelRepo, repairs *repository.RepairRepo) *RepairWorkflow {
	return &RepairWorkflow{Hotels: hotels, Repairs: repairs}
}

// Place creates the ticket and the linking request, returning the ticket
// ID. The ticket identifier comes off the sequence between the two
// inserts; if it cannot be resolved the request insert is not attempted.
func (w *RepairWorkflow) Place(ctx context.Context, managerID, hotelID int64, roomNumber int, companyID int64) (int64, error) {
	ok, err := w.Hotels.ManagesHotel(ctx, managerID, hotelID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, repository.ErrForbidden
	}
	repairID, err := w.Repairs.InsertTicket(ctx, companyID, hotelID, roomNumber)
	if err != nil {
		return 0, err
	}
	if err := w.Repairs.InsertRequest(ctx, managerID, repairID); err != nil {
		return 0, err
	}
	return repairID, nil
}
