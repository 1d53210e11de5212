package model

import "time"

// Booking statuses.  A booking is never deleted; future cancellation and
// refund flows only transition this field.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingRefunded  = "refunded"
)

// Booking records a user's reservation of tickets for an event.
// TotalAmount is captured at booking time (quantity x unit price as read in
// the same reservation sequence) and never recomputed afterwards.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – user who made the booking.
//	EventID     – event being booked.
//	Quantity    – number of tickets (>= 1).
//	TotalAmount – amount charged at booking time.
//	BookingDate – when the booking was made, UTC.
//	Status      – confirmed, cancelled or refunded.
type Booking struct {
	ID          uint64    `json:"id"`           // bookings.id
	UserID      uint64    `json:"user_id"`      // bookings.user_id
	EventID     uint64    `json:"event_id"`     // bookings.event_id
	Quantity    int       `json:"quantity"`     // bookings.quantity
	TotalAmount float64   `json:"total_amount"` // bookings.total_amount
	BookingDate time.Time `json:"booking_date"` // bookings.booking_date
	Status      string    `json:"status"`       // bookings.status
}
