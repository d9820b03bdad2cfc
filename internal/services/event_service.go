package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/schedule-api/internal/constants"
	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/repository"
	"github.com/yukikurage/schedule-api/internal/utils"
	"gorm.io/gorm"
)

// EventService handles event business logic.
type EventService struct {
	repo repository.EventRepository
	now  func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock replaces the clock used for the upcoming feed.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

// EventInput carries the writable fields of an event. Date is parsed here.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	Responsible string
	Latitude    *float64
	Longitude   *float64
}

// EventQuery filters the event listing. Empty dates leave the range open.
type EventQuery struct {
	StartDate  string
	EndDate    string
	Pagination *utils.PaginationParams
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	event := &models.Event{}
	if err := applyEventInput(event, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// Update replaces every writable field of an existing event.
func (s *EventService) Update(ctx context.Context, id uint64, input EventInput) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyEventInput(event, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func applyEventInput(event *models.Event, input EventInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	location := strings.TrimSpace(input.Location)
	responsible := strings.TrimSpace(input.Responsible)
	if title == "" || description == "" || strings.TrimSpace(input.Date) == "" || location == "" || responsible == "" {
		return ErrEventFieldsRequired
	}

	date, err := utils.ParseInstant(input.Date)
	if err != nil {
		return ErrInvalidDate
	}

	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		return ErrInvalidLatitude
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		return ErrInvalidLongitude
	}

	event.Title = title
	event.Description = description
	event.Location = location
	event.Responsible = responsible
	event.Date = date.UTC()
	event.Latitude = input.Latitude
	event.Longitude = input.Longitude
	return nil
}

// List returns events in the requested range, most recent first. A bare
// date as the upper bound covers that whole day.
func (s *EventService) List(ctx context.Context, query EventQuery) ([]models.Event, int64, error) {
	filter := repository.EventFilter{Pagination: query.Pagination}

	if query.StartDate != "" {
		from, err := utils.ParseInstant(query.StartDate)
		if err != nil {
			return nil, 0, ErrInvalidStartDate
		}
		from = from.UTC()
		filter.From = &from
	}

	if query.EndDate != "" {
		to, err := utils.ParseInstant(query.EndDate)
		if err != nil {
			return nil, 0, ErrInvalidEndDate
		}
		if utils.IsDateOnly(strings.TrimSpace(query.EndDate)) {
			to = utils.EndOfDay(to)
		}
		to = to.UTC()
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, ErrInvalidDateRange
	}

	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// UpcomingWithin24h returns events dated between now and 24 hours from now,
// soonest first.
func (s *EventService) UpcomingWithin24h(ctx context.Context) ([]models.Event, error) {
	now := s.now().UTC()

	events, err := s.repo.ListBetween(ctx, now, now.Add(constants.UpcomingWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// GetByID returns a single event.
func (s *EventService) GetByID(ctx context.Context, id uint64) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	return event, nil
}

// Delete removes an event that no task references.
func (s *EventService) Delete(ctx context.Context, id uint64) error {
	count, err := s.repo.CountAssociatedTasks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count associated tasks: %w", err)
	}
	if count > 0 {
		return ErrResourceInUse
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !existed {
		return ErrEventNotFound
	}
	return nil
}
