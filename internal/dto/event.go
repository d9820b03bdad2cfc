package dto

import (
	"time"

	"github.com/yukikurage/schedule-api/internal/models"
)

// EventRequest is the body of POST /api/events and PUT /api/events/:id
type EventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Responsible string   `json:"responsible" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventSummaryDTO is the pick-list shape of an event
type EventSummaryDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		Responsible: event.Responsible,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	items := make([]EventDTO, len(events))
	for i, event := range events {
		items[i] = ToEventDTO(event)
	}
	return items
}
