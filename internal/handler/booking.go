package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tickettango/api/internal/queue"
	"github.com/tickettango/api/internal/repository"
	"github.com/tickettango/api/internal/service"
)

// BookingHandler exposes the booking endpoints.  All routes assume JWT
// authentication already ran; the user ID is trusted from the token's
// subject claim and never re-verified here.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(b *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

type createBookingReq struct {
	EventID  uint64 `json:"eventId"`
	Quantity int    `json:"quantity"`
}

// Create handles POST /v1/bookings: the availability-check-then-reserve
// sequence.  Expected failures map to client errors with enough detail to
// render a message; anything else is logged and reported opaquely.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conf, err := h.Bookings.Create(ctx, userID, req.EventID, req.Quantity)
	if err != nil {
		var tickets *repository.NotEnoughTicketsError
		switch {
		case errors.Is(err, repository.ErrInvalidQuantity), errors.Is(err, repository.ErrInvalidEvent):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid event id and quantity are required"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.As(err, &tickets):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":     "not enough tickets available",
				"available": tickets.Available,
			})
		case errors.Is(err, repository.ErrPastEvent):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book tickets for past events"})
		default:
			log.Printf("bookings: create failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}

	// Best effort: a broker outage must not fail a reservation that is
	// already committed.
	go func(ev queue.BookingCreatedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = service.PublishBookingCreated(pubCtx, ev)
	}(queue.BookingCreatedEvent{
		BookingID:   conf.BookingID,
		UserID:      userID,
		EventID:     conf.EventID,
		EventTitle:  conf.EventTitle,
		Quantity:    conf.Quantity,
		TotalAmount: conf.TotalAmount,
		Status:      conf.Status,
		BookedAt:    conf.BookingDate.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking created successfully",
		"booking": conf,
	})
}

// ListMine handles GET /v1/bookings: the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("bookings: list for user %d failed: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, details)
}

// Get handles GET /v1/bookings/:id, restricted to the booking's owner.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Bookings.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		log.Printf("bookings: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, detail)
}
