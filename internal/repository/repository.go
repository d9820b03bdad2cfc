package repository

import (
	"context"
	"time"

	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/utils"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create inserts a new account
	Create(ctx context.Context, account *models.Account) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uint64) (*models.Account, error)

	// FindByEmail finds an account by exact email
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// List returns accounts ordered by name; pagination is optional
	List(ctx context.Context, page *utils.PaginationParams) ([]models.Account, int64, error)

	// Update replaces every column of an existing account
	Update(ctx context.Context, account *models.Account) error

	// Delete removes an account and reports whether a row existed
	Delete(ctx context.Context, id uint64) (bool, error)

	// CountAssignedTasks counts tasks referencing the account
	CountAssignedTasks(ctx context.Context, id uint64) (int64, error)
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	From       *time.Time
	To         *time.Time
	Pagination *utils.PaginationParams
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint64) (*models.Event, error)

	// List returns events ordered by date, most recent first
	List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)

	// ListBetween returns events in [from, to] ordered by date ascending
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)

	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint64) (bool, error)

	// CountAssociatedTasks counts tasks referencing the event
	CountAssociatedTasks(ctx context.Context, id uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	AccountID  *uint64
	EventID    *uint64
	Pagination *utils.PaginationParams
}

// TaskRepository defines the interface for task data access. Returned tasks
// carry their assigned account and associated event when those exist.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List returns tasks ordered by date ascending
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uint64) (bool, error)
}
