package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/workflow"
)

// ManagerHandler groups the manager-only endpoints: room edits, update
// and booking history of managed hotels, regular customers and repair
// requests. Route-level role checks only gate the front door; every
// operation re-verifies that the caller manages the addressed hotel.
type ManagerHandler struct {
	Hotels     *repository.HotelRepo
	Bookings   *repository.BookingRepo
	Repairs    *repository.RepairRepo
	Logs       *repository.UpdateLogRepo
	RoomUpdate *workflow.RoomUpdateWorkflow
	Repair     *workflow.RepairWorkflow
}

func NewManagerHandler(hotels *repository.HotelRepo, bookings *repository.BookingRepo, repairs *repository.RepairRepo, logs *repository.UpdateLogRepo, roomUpdate *workflow.RoomUpdateWorkflow, repair *workflow.RepairWorkflow) *ManagerHandler {
	if hotels == nil || bookings == nil || repairs == nil || logs == nil || roomUpdate == nil || repair == nil {
		panic("nil dependency passed to NewManagerHandler")
	}
	return &ManagerHandler{Hotels: hotels, Bookings: bookings, Repairs: repairs, Logs: logs, RoomUpdate: roomUpdate, Repair: repair}
}

type roomUpdateReq struct {
	Price    int    `json:"price"`
	ImageURL string `json:"image_url"`
}

// UpdateRoom handles PUT /v1/manager/hotels/:id/rooms/:room.
func (h *ManagerHandler) UpdateRoom(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	roomNumber, err := strconv.Atoi(c.Param("room"))
	if err != nil || roomNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	var req roomUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	err = h.RoomUpdate.Update(c.Request().Context(), managerID, hotelID, roomNumber, req.Price, req.ImageURL)
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not manage this hotel"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// RecentUpdates handles GET /v1/manager/updates/recent and returns the
// caller's five most recent room edits.
func (h *ManagerHandler) RecentUpdates(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ok, err := h.Hotels.IsManager(c.Request().Context(), managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a manager"})
	}
	res, err := h.Logs.RecentByManager(c.Request().Context(), managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}

// BookingHistory handles GET /v1/manager/hotels/:id/bookings?from=..&to=..
// and lists the hotel's bookings in the range with customer names.
func (h *ManagerHandler) BookingHistory(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from/to required"})
	}
	ok, err := h.Hotels.ManagesHotel(c.Request().Context(), managerID, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not manage this hotel"})
	}
	res, err := h.Bookings.HistoryForHotel(c.Request().Context(), hotelID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}

// RegularCustomers handles GET /v1/manager/hotels/:id/regulars and lists
// the hotel's five most frequent customers.
func (h *ManagerHandler) RegularCustomers(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ok, err := h.Hotels.ManagesHotel(c.Request().Context(), managerID, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not manage this hotel"})
	}
	res, err := h.Bookings.TopCustomers(c.Request().Context(), hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}

type repairReq struct {
	HotelID    int64 `json:"hotel_id"`
	RoomNumber int   `json:"room_number"`
	CompanyID  int64 `json:"company_id"`
}

// PlaceRepairRequest handles POST /v1/manager/repairs.
func (h *ManagerHandler) PlaceRepairRequest(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req repairReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HotelID == 0 || req.RoomNumber == 0 || req.CompanyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id/room_number/company_id required"})
	}

	repairID, err := h.Repair.Place(c.Request().Context(), managerID, req.HotelID, req.RoomNumber, req.CompanyID)
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not manage this hotel"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "repair request failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"repair_id": repairID})
}

// RepairHistory handles GET /v1/manager/repairs and lists repair tickets
// across all hotels the caller manages, newest first.
func (h *ManagerHandler) RepairHistory(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ok, err := h.Hotels.IsManager(c.Request().Context(), managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a manager"})
	}
	res, err := h.Repairs.HistoryForManager(c.Request().Context(), managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}
