// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	CustomerID  int64  `json:"customer_id"`
	HotelID     int64  `json:"hotel_id"`
	RoomNumber  int    `json:"room_number"`
	BookingDate string `json:"booking_date"`
	Price       string `json:"price"`
	CreatedAt   string `json:"created_at"`
}
