package repository

import (
	"context"

	"github.com/yukikurage/schedule-api/internal/database"
	"github.com/yukikurage/schedule-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func withReferences(db *gorm.DB) *gorm.DB {
	return db.Preload("AssignedAccount").Preload("AssociatedEvent")
}

// Create inserts a new task without touching the referenced rows
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with its references loaded
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Scopes(withReferences).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Task{})
		if filter.Status != nil {
			query = query.Where("tasks.status = ?", *filter.Status)
		}
		if filter.AccountID != nil {
			query = query.Where("tasks.assigned_account_id = ?", *filter.AccountID)
		}
		if filter.EventID != nil {
			query = query.Where("tasks.associated_event_id = ?", *filter.EventID)
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := filtered().Order("tasks.date ASC").Order("tasks.id ASC")
	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	if err := listQuery.Scopes(withReferences).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update replaces every column of a task; nil references are stored as NULL
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete removes a task and reports whether a row existed
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
