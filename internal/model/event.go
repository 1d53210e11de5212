package model

import "time"

// Event categories.  The category column only ever holds one of these two
// values; List rejects any other filter value before it reaches the store.
const (
	CategoryPerformance = "performance"
	CategoryWorkshop    = "workshop"
)

// Event represents a bookable event.  AvailableTickets is the remaining
// inventory and satisfies 0 <= available <= total at all times; the booking
// core is the only code path that decrements it.
//
// Fields:
//
//	ID               – primary key identifier.
//	Title            – display title.
//	Description      – free-form description.
//	Category         – "performance" or "workshop".
//	Venue            – where the event takes place.
//	EventDate        – scheduled start, UTC.
//	Price            – unit ticket price.
//	AvailableTickets – remaining bookable tickets.
//	TotalTickets     – inventory at creation time.
//	ImageURL         – optional illustration link.
//	CreatedAt        – creation timestamp.
type Event struct {
	ID               uint64    `json:"id"`                  // events.id
	Title            string    `json:"title"`               // events.title
	Description      string    `json:"description"`         // events.description
	Category         string    `json:"category"`            // events.category
	Venue            string    `json:"venue"`               // events.venue
	EventDate        time.Time `json:"event_date"`          // events.event_date
	Price            float64   `json:"price"`               // events.price
	AvailableTickets int       `json:"available_tickets"`   // events.available_tickets
	TotalTickets     int       `json:"total_tickets"`       // events.total_tickets
	ImageURL         *string   `json:"image_url,omitempty"` // events.image_url (nullable)
	CreatedAt        time.Time `json:"created_at"`          // events.created_at
}
