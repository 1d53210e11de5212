package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tickettango/api/internal/model"
	"github.com/tickettango/api/internal/query"
	"github.com/tickettango/api/internal/store"
)

// EventRepo provides read access to the event catalogue.  All mutation of
// event inventory happens in BookingRepo; this repository never writes.
type EventRepo struct {
	q *query.Runner
}

// NewEventRepo returns an EventRepo bound to the given store.
func NewEventRepo(st *store.Store) *EventRepo {
	return &EventRepo{q: query.New(st)}
}

// ListOptions narrows and pages the event list.  Search matches title,
// description and venue; Category must be one of the model category
// constants when set.
type ListOptions struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

const eventColumns = "id, title, description, category, venue, event_date, price, available_tickets, total_tickets, image_url, created_at"

// List returns a page of events ordered by date, plus the total number of
// rows matching the filters so the caller can paginate.
func (r *EventRepo) List(ctx context.Context, opts ListOptions) ([]model.Event, int, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	where := " WHERE 1=1"
	params := query.Params{"limit": opts.Limit, "offset": opts.Offset}
	if opts.Search != "" {
		where += " AND (title LIKE @search OR description LIKE @search OR venue LIKE @search)"
		params["search"] = "%" + opts.Search + "%"
	}
	if opts.Category != "" {
		if opts.Category != model.CategoryPerformance && opts.Category != model.CategoryWorkshop {
			return nil, 0, fmt.Errorf("unknown category %q", opts.Category)
		}
		where += " AND category = @category"
		params["category"] = opts.Category
	}

	q := "SELECT " + eventColumns + " FROM events" + where +
		" ORDER BY event_date ASC LIMIT @limit OFFSET @offset"
	rows, err := r.q.Query(ctx, q, params)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countRow, err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM events"+where, params)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	row, err := r.q.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = @id",
		query.Params{"id": id})
	if err != nil {
		return model.Event{}, err
	}
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return ev, err
}

// FeaturedUpcoming returns the next six future events that still have
// tickets.  The "now" expression is the one genuinely dialect-specific
// query in the read path, so it goes through the Adapt table.
func (r *EventRepo) FeaturedUpcoming(ctx context.Context) ([]model.Event, error) {
	q := r.q.Adapt(
		"SELECT "+eventColumns+" FROM events WHERE event_date > datetime('now') AND available_tickets > 0 ORDER BY event_date ASC LIMIT 6",
		"SELECT "+eventColumns+" FROM events WHERE event_date > UTC_TIMESTAMP() AND available_tickets > 0 ORDER BY event_date ASC LIMIT 6",
	)
	rows, err := r.q.Query(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0, 6)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// rowScanner lets scanEvent work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (model.Event, error) {
	var (
		ev       model.Event
		date     dbTime
		imageURL sql.NullString
		created  dbTime
	)
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Category, &ev.Venue,
		&date, &ev.Price, &ev.AvailableTickets, &ev.TotalTickets, &imageURL, &created)
	if err != nil {
		return model.Event{}, err
	}
	ev.EventDate = date.Time()
	if imageURL.Valid {
		u := imageURL.String
		ev.ImageURL = &u
	}
	ev.CreatedAt = created.Time()
	return ev, nil
}
