package handler

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/tickettango/api/internal/repository"
)

func TestBookingCreateStatusCodes(t *testing.T) {
	st := newHandlerStore(t)
	userID := seedUserRow(t, st, "booker")
	eventID := seedEventRow(t, st, "Jazz Night", time.Now().Add(48*time.Hour), 50.00, 3)
	pastID := seedEventRow(t, st, "Old Show", time.Now().Add(-time.Hour), 20.00, 10)
	h := NewBookingHandler(repository.NewBookingRepo(st))

	run := func(body string) (int, map[string]any) {
		t.Helper()
		c, rec := doJSON(http.MethodPost, "/v1/bookings", body)
		c.Set("user_id", float64(userID))
		if err := h.Create(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code, decodeBody(t, rec)
	}

	// Happy path.
	code, body := run(`{"eventId":` + itoa(eventID) + `,"quantity":2}`)
	if code != http.StatusCreated {
		t.Errorf("success status = %d, want 201", code)
	}
	booking, ok := body["booking"].(map[string]any)
	if !ok {
		t.Fatalf("response missing booking: %v", body)
	}
	if booking["totalAmount"] != 100.00 {
		t.Errorf("totalAmount = %v, want 100", booking["totalAmount"])
	}

	// Insufficient tickets reports the remaining count.
	code, body = run(`{"eventId":` + itoa(eventID) + `,"quantity":5}`)
	if code != http.StatusBadRequest {
		t.Errorf("insufficiency status = %d, want 400", code)
	}
	if body["available"] != 1.0 {
		t.Errorf("available = %v, want 1", body["available"])
	}

	// Unknown event.
	if code, _ = run(`{"eventId":99999,"quantity":1}`); code != http.StatusNotFound {
		t.Errorf("unknown event status = %d, want 404", code)
	}

	// Past event.
	if code, _ = run(`{"eventId":` + itoa(pastID) + `,"quantity":1}`); code != http.StatusBadRequest {
		t.Errorf("past event status = %d, want 400", code)
	}

	// Validation failures.
	if code, _ = run(`{"eventId":` + itoa(eventID) + `,"quantity":0}`); code != http.StatusBadRequest {
		t.Errorf("zero quantity status = %d, want 400", code)
	}
	if code, _ = run(`{"quantity":1}`); code != http.StatusBadRequest {
		t.Errorf("missing event status = %d, want 400", code)
	}
}

func TestBookingCreateRequiresAuth(t *testing.T) {
	st := newHandlerStore(t)
	h := NewBookingHandler(repository.NewBookingRepo(st))

	// No user_id in the context means the JWT middleware never ran.
	c, rec := doJSON(http.MethodPost, "/v1/bookings", `{"eventId":1,"quantity":1}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestBookingGetOwnerScoped(t *testing.T) {
	st := newHandlerStore(t)
	owner := seedUserRow(t, st, "owner")
	stranger := seedUserRow(t, st, "stranger")
	eventID := seedEventRow(t, st, "Show", time.Now().Add(48*time.Hour), 10.00, 10)
	repo := repository.NewBookingRepo(st)
	h := NewBookingHandler(repo)

	conf, err := repo.Create(t.Context(), owner, eventID, 1)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	get := func(userID uint64, bookingID string) int {
		t.Helper()
		c, rec := doJSON(http.MethodGet, "/v1/bookings/"+bookingID, "")
		c.SetParamNames("id")
		c.SetParamValues(bookingID)
		c.Set("user_id", float64(userID))
		if err := h.Get(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec.Code
	}

	if code := get(owner, itoa(conf.BookingID)); code != http.StatusOK {
		t.Errorf("owner status = %d, want 200", code)
	}
	if code := get(stranger, itoa(conf.BookingID)); code != http.StatusNotFound {
		t.Errorf("stranger status = %d, want 404", code)
	}
	if code := get(owner, "not-a-number"); code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", code)
	}
}

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }
