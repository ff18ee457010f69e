package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-room-booking/internal/service"
	"github.com/iliyamo/hotel-room-booking/internal/workflow"
)

// nearbyRadius bounds the hotel search; distances are planar units over
// the stored coordinates.
const nearbyRadius = 30.0

// CustomerHandler groups the repositories and workflows behind the
// endpoints every authenticated user may call: browsing hotels and
// rooms, booking, and viewing their own booking history.
type CustomerHandler struct {
	Hotels   *repository.HotelRepo
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Booking  *workflow.BookingWorkflow
}

func NewCustomerHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo, bookings *repository.BookingRepo, booking *workflow.BookingWorkflow) *CustomerHandler {
	if hotels == nil || rooms == nil || bookings == nil || booking == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Hotels: hotels, Rooms: rooms, Bookings: bookings, Booking: booking}
}

// NearbyHotels handles GET /v1/hotels/nearby?lat=..&lon=.. and returns
// the hotels within 30 units of the given point.
func (h *CustomerHandler) NearbyHotels(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat/lon required"})
	}
	hotels, err := h.Hotels.Nearby(c.Request().Context(), lat, lon, nearbyRadius)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": hotels})
}

// AvailableRooms handles GET /v1/hotels/:id/rooms/available?date=YYYY-MM-DD
// and lists the hotel's rooms with no booking on that date.
func (h *CustomerHandler) AvailableRooms(c echo.Context) error {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required"})
	}
	res, err := h.Rooms.AvailableOn(c.Request().Context(), hotelID, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}

type bookReq struct {
	HotelID    int64  `json:"hotel_id"`
	RoomNumber int    `json:"room_number"`
	Date       string `json:"date"`
}

// BookRoom handles POST /v1/bookings. The booking workflow rejects the
// request with 409 when the slot is taken; a successful booking answers
// with the room's price and fires a booking.created event.
func (h *CustomerHandler) BookRoom(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HotelID == 0 || req.RoomNumber == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel_id/room_number/date required"})
	}

	price, err := h.Booking.Book(c.Request().Context(), req.HotelID, req.RoomNumber, req.Date, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotAvailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room not available"})
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	// Best effort: a broker outage must not fail the booking.
	ev := queue.BookingCreatedEvent{
		CustomerID:  userID,
		HotelID:     req.HotelID,
		RoomNumber:  req.RoomNumber,
		BookingDate: req.Date,
		Price:       price,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishBookingCreated(c.Request().Context(), ev); err != nil {
		log.Printf("booking event publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"price": price})
}

// RecentBookings handles GET /v1/bookings/recent and returns the
// caller's five most recent bookings.
func (h *CustomerHandler) RecentBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	res, err := h.Bookings.RecentByCustomer(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, tableResponse{Columns: res.Columns, Rows: res.Rows, Count: len(res.Rows)})
}
