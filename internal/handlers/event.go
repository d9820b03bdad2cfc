package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/schedule-api/internal/dto"
	"github.com/yukikurage/schedule-api/internal/services"
	"github.com/yukikurage/schedule-api/internal/validation"
)

// EventHandler serves the event endpoints.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func eventInput(req dto.EventRequest) services.EventInput {
	return services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Responsible: req.Responsible,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
}

// ListEvents returns events, optionally restricted by start_date and end_date
func (h *EventHandler) ListEvents(c *gin.Context) {
	page := pagination(c)

	events, total, err := h.eventService.List(c.Request.Context(), services.EventQuery{
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Pagination: page,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respondList(c, dto.ToEventDTOs(events), page, total)
}

// CreateEvent stores a new event.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.EventRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), eventInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

// UpcomingEvents returns the events of the next 24 hours, soonest first.
func (h *EventHandler) UpcomingEvents(c *gin.Context) {
	events, err := h.eventService.UpcomingWithin24h(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTOs(events))
}

// GetEvent returns a single event.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrEventNotFound)
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// UpdateEvent replaces an event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrEventNotFound)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, eventInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// DeleteEvent removes an event.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrEventNotFound)
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	deleted(c, "event deleted", id)
}
