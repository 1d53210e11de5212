// Package repository implements data access for users, events and bookings
// on top of the query translation layer.  This file defines the error
// values shared across repositories.  Handlers dispatch on them with
// errors.Is / errors.As to pick HTTP status codes; anything not listed here
// is a storage failure that must be logged and surfaced as an opaque
// internal error, never echoed to the client.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEventNotFound is returned when a referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when a booking does not exist or belongs
// to a different user.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPastEvent is returned when the event's scheduled time is not strictly
// in the future at the moment of booking.
var ErrPastEvent = errors.New("cannot book tickets for past events")

// ErrUsernameExists is returned when registration hits the storage layer's
// username uniqueness constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidQuantity rejects booking attempts with a non-positive ticket
// quantity before any storage access happens.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// ErrInvalidEvent rejects booking attempts without an event identifier
// before any storage access happens.
var ErrInvalidEvent = errors.New("valid event id is required")

// errTicketRace signals that the guarded decrement lost to a competing
// writer after the availability check had passed.  It never escapes the
// repository; BookingRepo.Create converts it into a NotEnoughTicketsError
// carrying the committed count.
var errTicketRace = errors.New("ticket decrement lost to a competing writer")

// NotEnoughTicketsError is returned when the requested quantity exceeds the
// event's remaining availability.  It carries the current count so the
// caller can present it.
type NotEnoughTicketsError struct {
	Available int
}

func (e *NotEnoughTicketsError) Error() string {
	return fmt.Sprintf("not enough tickets available: %d left", e.Available)
}

// isDuplicate reports whether a driver error is a unique-constraint
// violation.  MySQL reports error 1062; SQLite mentions the UNIQUE
// constraint in the message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}
