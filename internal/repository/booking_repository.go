package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/tickettango/api/internal/model"
	"github.com/tickettango/api/internal/query"
	"github.com/tickettango/api/internal/store"
)

// BookingRepo owns the reservation sequence: verify availability, insert the
// booking row and decrement the event's ticket count together.  How those
// steps are isolated depends on the backend:
//
//   - MySQL: the whole sequence runs inside one explicit transaction.  Any
//     failure from the event fetch onward rolls the transaction back, so a
//     failed attempt leaves both tables untouched.
//   - SQLite: the engine only gives us statement-level atomicity, so the
//     sequence is serialized behind a process-wide mutex instead.  The
//     decrement additionally re-checks availability in its WHERE clause as a
//     backstop, which keeps the inventory invariant intact even if a second
//     writer ever slips between the read and the write.
//
// Both paths return identical success and error shapes; callers never need
// to know which backend is active.
type BookingRepo struct {
	st *store.Store
	q  *query.Runner
	mu sync.Mutex // serializes check-then-reserve on the embedded backend

	// beforeDecrement, when set, runs between the availability read and
	// the guarded decrement.  Tests use it to interleave a competing
	// writer into the otherwise-unreachable window.
	beforeDecrement func(ctx context.Context, run *query.Runner)
}

// NewBookingRepo returns a BookingRepo bound to the given store.
func NewBookingRepo(st *store.Store) *BookingRepo {
	return &BookingRepo{st: st, q: query.New(st)}
}

// BookingConfirmation is what a successful reservation returns: the created
// row's identity joined with the event title for display.
type BookingConfirmation struct {
	BookingID   uint64    `json:"id"`
	EventID     uint64    `json:"eventId"`
	EventTitle  string    `json:"eventTitle"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"totalAmount"`
	BookingDate time.Time `json:"bookingDate"`
	Status      string    `json:"status"`
}

// Create runs one booking attempt for the given user, event and quantity.
// Validation failures (ErrInvalidQuantity, ErrInvalidEvent) are returned
// before any storage access.  Expected outcomes are ErrEventNotFound,
// *NotEnoughTicketsError, ErrPastEvent or a confirmation; anything else is
// a storage failure.
func (r *BookingRepo) Create(ctx context.Context, userID, eventID uint64, quantity int) (*BookingConfirmation, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if eventID == 0 {
		return nil, ErrInvalidEvent
	}

	if !r.st.SupportsTx() {
		// Embedded backend: one writer at a time through the whole
		// check-then-reserve sequence.
		r.mu.Lock()
		defer r.mu.Unlock()
		conf, err := r.reserve(ctx, r.q, userID, eventID, quantity)
		if errors.Is(err, errTicketRace) {
			return nil, r.insufficientNow(ctx, eventID)
		}
		return conf, err
	}

	tx, err := r.st.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	conf, err := r.reserve(ctx, r.q.WithTx(tx), userID, eventID, quantity)
	if err != nil {
		if errors.Is(err, errTicketRace) {
			// The transaction's snapshot predates the competing write,
			// so the count it would report is stale.  Roll back first,
			// then read the committed state.
			_ = tx.Rollback()
			return nil, r.insufficientNow(ctx, eventID)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return conf, nil
}

// insufficientNow reads the current committed availability and wraps it in
// the error callers present to the user.
func (r *BookingRepo) insufficientNow(ctx context.Context, eventID uint64) error {
	left := 0
	if row, err := r.q.QueryRow(ctx,
		"SELECT available_tickets FROM events WHERE id = @event_id",
		query.Params{"event_id": eventID}); err == nil {
		_ = row.Scan(&left)
	}
	return &NotEnoughTicketsError{Available: left}
}

// reserve is the backend-independent reservation sequence.  The caller is
// responsible for isolation: either a transaction runner or the embedded
// backend's mutex.
func (r *BookingRepo) reserve(ctx context.Context, run *query.Runner, userID, eventID uint64, quantity int) (*BookingConfirmation, error) {
	// Fetch price, availability and schedule in one read.  The price read
	// here is the one the total is computed from; it is never re-read.
	row, err := run.QueryRow(ctx,
		"SELECT title, price, available_tickets, event_date FROM events WHERE id = @event_id",
		query.Params{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	var (
		title     string
		price     float64
		available int
		date      dbTime
	)
	if err := row.Scan(&title, &price, &available, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if available < quantity {
		return nil, &NotEnoughTicketsError{Available: available}
	}

	now := time.Now().UTC()
	// Strictly future only: an event starting exactly now is already past.
	if !date.Time().After(now) {
		return nil, ErrPastEvent
	}

	totalAmount := price * float64(quantity)

	res, err := run.Exec(ctx,
		`INSERT INTO bookings (user_id, event_id, quantity, total_amount, booking_date, status)
		 VALUES (@user_id, @event_id, @quantity, @total_amount, @booking_date, @status)`,
		query.Params{
			"user_id":      userID,
			"event_id":     eventID,
			"quantity":     quantity,
			"total_amount": totalAmount,
			"booking_date": formatDBTime(now),
			"status":       model.BookingConfirmed,
		})
	if err != nil {
		return nil, err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if r.beforeDecrement != nil {
		r.beforeDecrement(ctx, run)
	}

	// Guarded decrement: refuses to take the count below zero no matter
	// what happened between the read above and this write.
	upd, err := run.Exec(ctx,
		`UPDATE events SET available_tickets = available_tickets - @quantity
		 WHERE id = @event_id AND available_tickets >= @quantity`,
		query.Params{"quantity": quantity, "event_id": eventID})
	if err != nil {
		return nil, err
	}
	affected, err := upd.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone else took the tickets first.  On the transactional
		// path the insert above is rolled back by the caller; on the
		// embedded path the compensation below undoes it.  The caller
		// re-reads the committed count, because reading it here would
		// see this transaction's stale snapshot.
		if err := r.removeBooking(ctx, run, uint64(bookingID)); err != nil {
			return nil, err
		}
		return nil, errTicketRace
	}

	return &BookingConfirmation{
		BookingID:   uint64(bookingID),
		EventID:     eventID,
		EventTitle:  title,
		Quantity:    quantity,
		TotalAmount: totalAmount,
		BookingDate: now,
		Status:      model.BookingConfirmed,
	}, nil
}

// removeBooking undoes the booking insert when the guarded decrement loses
// the race.  On the transactional path the rollback covers this anyway;
// on the embedded path it is the compensation for the missing transaction.
func (r *BookingRepo) removeBooking(ctx context.Context, run *query.Runner, bookingID uint64) error {
	_, err := run.Exec(ctx, "DELETE FROM bookings WHERE id = @id", query.Params{"id": bookingID})
	return err
}

// BookingDetail is a booking joined with its event for display in listings.
type BookingDetail struct {
	ID          uint64    `json:"id"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	BookingDate time.Time `json:"booking_date"`
	Status      string    `json:"status"`
	EventTitle  string    `json:"event_title"`
	Venue       string    `json:"venue"`
	EventDate   time.Time `json:"event_date"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Description *string   `json:"event_description,omitempty"`
	UnitPrice   *float64  `json:"unit_price,omitempty"`
}

// ListByUser returns the caller's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT b.id, b.quantity, b.total_amount, b.booking_date, b.status,
		        e.title, e.venue, e.event_date, e.category, e.image_url
		 FROM bookings b
		 INNER JOIN events e ON b.event_id = e.id
		 WHERE b.user_id = @user_id
		 ORDER BY b.booking_date DESC`,
		query.Params{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	for rows.Next() {
		var (
			d        BookingDetail
			booked   dbTime
			date     dbTime
			imageURL sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Quantity, &d.TotalAmount, &booked, &d.Status,
			&d.EventTitle, &d.Venue, &date, &d.Category, &imageURL); err != nil {
			return nil, err
		}
		d.BookingDate = booked.Time()
		d.EventDate = date.Time()
		if imageURL.Valid {
			u := imageURL.String
			d.ImageURL = &u
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// GetByIDForUser returns one booking with full event details, restricted to
// the owning user.  ErrBookingNotFound covers both a missing booking and a
// booking owned by someone else.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	row, err := r.q.QueryRow(ctx,
		`SELECT b.id, b.quantity, b.total_amount, b.booking_date, b.status,
		        e.title, e.description, e.venue, e.event_date, e.category, e.image_url, e.price
		 FROM bookings b
		 INNER JOIN events e ON b.event_id = e.id
		 WHERE b.id = @id AND b.user_id = @user_id`,
		query.Params{"id": bookingID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	var (
		d         BookingDetail
		booked    dbTime
		date      dbTime
		desc      sql.NullString
		imageURL  sql.NullString
		unitPrice float64
	)
	if err := row.Scan(&d.ID, &d.Quantity, &d.TotalAmount, &booked, &d.Status,
		&d.EventTitle, &desc, &d.Venue, &date, &d.Category, &imageURL, &unitPrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	d.BookingDate = booked.Time()
	d.EventDate = date.Time()
	if desc.Valid {
		s := desc.String
		d.Description = &s
	}
	if imageURL.Valid {
		u := imageURL.String
		d.ImageURL = &u
	}
	d.UnitPrice = &unitPrice
	return &d, nil
}
