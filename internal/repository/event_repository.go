package repository

import (
	"context"
	"time"

	"github.com/yukikurage/schedule-api/internal/database"
	"github.com/yukikurage/schedule-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create inserts a new event
func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events with an optional date range and pagination
func (r *GormEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	var events []models.Event
	var total int64

	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Event{}).
			Scopes(database.Between("events.date", filter.From, filter.To))
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := filtered().Order("events.date DESC").Order("events.id DESC")
	if filter.Pagination != nil {
		query = query.Scopes(database.Paginate(*filter.Pagination))
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListBetween returns events in [from, to] ordered by date ascending
func (r *GormEventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Scopes(database.Between("events.date", &from, &to)).
		Order("events.date ASC").
		Find(&events).Error
	return events, err
}

// Update replaces every column of an existing event
func (r *GormEventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event and reports whether a row existed
func (r *GormEventRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountAssociatedTasks counts tasks referencing the event
func (r *GormEventRepository) CountAssociatedTasks(ctx context.Context, id uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("associated_event_id = ?", id).
		Count(&count).Error
	return count, err
}
