package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tickettango/api/internal/model"
	"github.com/tickettango/api/internal/repository"
)

// EventHandler serves the public event catalogue.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

// List handles GET /v1/events with optional search, category filter and
// pagination.
func (h *EventHandler) List(c echo.Context) error {
	opts := repository.ListOptions{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    20,
		Offset:   0,
	}
	if opts.Category != "" && opts.Category != model.CategoryPerformance && opts.Category != model.CategoryWorkshop {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		opts.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid offset"})
		}
		opts.Offset = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, total, err := h.Events.List(ctx, opts)
	if err != nil {
		log.Printf("events: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch events"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"events": events,
		"pagination": echo.Map{
			"total":   total,
			"limit":   opts.Limit,
			"offset":  opts.Offset,
			"hasMore": opts.Offset+opts.Limit < total,
		},
	})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		log.Printf("events: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch event"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Featured handles GET /v1/events/featured/upcoming: the next six future
// events that still have tickets.
func (h *EventHandler) Featured(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.FeaturedUpcoming(ctx)
	if err != nil {
		log.Printf("events: featured failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch featured events"})
	}
	return c.JSON(http.StatusOK, events)
}
