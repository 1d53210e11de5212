package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tickettango/api/internal/model"
	"github.com/tickettango/api/internal/store"
)

func TestEventList(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	base := futureDate()
	insertEvent(t, st, "Rock Concert", model.CategoryPerformance, base, 80.00, 100, 100)
	insertEvent(t, st, "Jazz Evening", model.CategoryPerformance, base.Add(24*time.Hour), 60.00, 50, 50)
	insertEvent(t, st, "Go Workshop", model.CategoryWorkshop, base.Add(48*time.Hour), 200.00, 30, 30)
	repo := NewEventRepo(st)
	ctx := context.Background()

	events, total, err := repo.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(events) != 3 {
		t.Fatalf("total = %d, len = %d, want 3 and 3", total, len(events))
	}
	// Ordered by date, earliest first.
	if events[0].Title != "Rock Concert" || events[2].Title != "Go Workshop" {
		t.Errorf("order = [%s, %s, %s]", events[0].Title, events[1].Title, events[2].Title)
	}
}

func TestEventListFilters(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	base := futureDate()
	insertEvent(t, st, "Rock Concert", model.CategoryPerformance, base, 80.00, 100, 100)
	insertEvent(t, st, "Jazz Evening", model.CategoryPerformance, base.Add(24*time.Hour), 60.00, 50, 50)
	insertEvent(t, st, "Go Workshop", model.CategoryWorkshop, base.Add(48*time.Hour), 200.00, 30, 30)
	repo := NewEventRepo(st)
	ctx := context.Background()

	events, total, err := repo.List(ctx, ListOptions{Category: model.CategoryWorkshop})
	if err != nil {
		t.Fatalf("category filter: %v", err)
	}
	if total != 1 || len(events) != 1 || events[0].Title != "Go Workshop" {
		t.Errorf("workshop filter: total = %d, events = %v", total, events)
	}

	events, total, err = repo.List(ctx, ListOptions{Search: "jazz"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(events) != 1 || events[0].Title != "Jazz Evening" {
		t.Errorf("search: total = %d, events = %v", total, events)
	}

	if _, _, err := repo.List(ctx, ListOptions{Category: "concert"}); err == nil {
		t.Error("unknown category accepted")
	}
}

func TestEventListPagination(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	base := futureDate()
	for i := 0; i < 5; i++ {
		insertEvent(t, st, "Show", model.CategoryPerformance, base.Add(time.Duration(i)*time.Hour), 10.00, 10, 10)
	}
	repo := NewEventRepo(st)
	ctx := context.Background()

	page, total, err := repo.List(ctx, ListOptions{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if total != 5 || len(page) != 2 {
		t.Errorf("first page: total = %d, len = %d, want 5 and 2", total, len(page))
	}

	// The total reflects all matching rows even when the page runs past
	// the end.
	page, total, err = repo.List(ctx, ListOptions{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("last page: %v", err)
	}
	if total != 5 || len(page) != 1 {
		t.Errorf("last page: total = %d, len = %d, want 5 and 1", total, len(page))
	}
}

func TestEventGetByID(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	id := insertEvent(t, st, "Solo Show", model.CategoryPerformance, futureDate(), 45.50, 80, 100)
	repo := NewEventRepo(st)
	ctx := context.Background()

	ev, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ev.Title != "Solo Show" || ev.Price != 45.50 {
		t.Errorf("event = %+v", ev)
	}
	if ev.AvailableTickets != 80 || ev.TotalTickets != 100 {
		t.Errorf("inventory = %d/%d", ev.AvailableTickets, ev.TotalTickets)
	}

	if _, err := repo.GetByID(ctx, 99999); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("missing event: err = %v, want ErrEventNotFound", err)
	}
}

func TestEventFeaturedUpcoming(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	insertEvent(t, st, "Already Over", model.CategoryPerformance, time.Now().UTC().Add(-24*time.Hour), 10.00, 50, 50)
	insertEvent(t, st, "Sold Out", model.CategoryPerformance, futureDate(), 10.00, 0, 50)
	insertEvent(t, st, "Bookable", model.CategoryWorkshop, futureDate(), 10.00, 5, 50)
	repo := NewEventRepo(st)

	events, err := repo.FeaturedUpcoming(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Bookable" {
		t.Errorf("featured = %v, want only the future event with tickets", events)
	}
}

// TestEventDateRoundTrip pins down DATETIME handling on the embedded
// backend, whose driver converts DATETIME columns to time.Time on read
// instead of returning the stored text.
func TestEventDateRoundTrip(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	date := time.Date(2027, 6, 15, 19, 30, 0, 0, time.UTC)
	id := insertEvent(t, st, "Round Trip", model.CategoryPerformance, date, 10.00, 10, 10)
	repo := NewEventRepo(st)

	ev, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ev.EventDate.Equal(date) {
		t.Errorf("event date = %v, want %v", ev.EventDate, date)
	}
	// created_at comes from the column default and must scan too.
	if ev.CreatedAt.IsZero() {
		t.Error("created_at did not scan")
	}
}

func TestEventFeaturedCap(t *testing.T) {
	st := newTestStore(t, store.SQLite)
	base := futureDate()
	for i := 0; i < 8; i++ {
		insertEvent(t, st, "Upcoming", model.CategoryPerformance, base.Add(time.Duration(i)*time.Hour), 10.00, 10, 10)
	}
	repo := NewEventRepo(st)

	events, err := repo.FeaturedUpcoming(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(events) != 6 {
		t.Errorf("featured returned %d events, want the cap of 6", len(events))
	}
}
