// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingCreatedEvent is published when a reservation commits.  It carries
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type BookingCreatedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	UserID      uint64  `json:"user_id"`
	EventID     uint64  `json:"event_id"`
	EventTitle  string  `json:"event_title"`
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	BookedAt    string  `json:"booked_at"`
}
