package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/repository"
	"github.com/yukikurage/schedule-api/internal/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AccountReader resolves account references.
type AccountReader interface {
	GetByID(ctx context.Context, id uint64) (*models.Account, error)
	List(ctx context.Context, page *utils.PaginationParams) ([]models.Account, int64, error)
}

// EventReader resolves event references.
type EventReader interface {
	GetByID(ctx context.Context, id uint64) (*models.Event, error)
	List(ctx context.Context, query EventQuery) ([]models.Event, int64, error)
}

// TaskService handles task business logic.
type TaskService struct {
	repo     repository.TaskRepository
	accounts AccountReader
	events   EventReader
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo repository.TaskRepository, accounts AccountReader, events EventReader) *TaskService {
	return &TaskService{
		repo:     repo,
		accounts: accounts,
		events:   events,
	}
}

// TaskInput carries the writable fields of a task. Nil ids mean no reference.
type TaskInput struct {
	Title             string
	Description       string
	Status            string
	Date              string
	AssignedAccountID *uint64
	AssociatedEventID *uint64
}

// TaskQuery filters the task listing.
type TaskQuery struct {
	Status     *models.TaskStatus
	AccountID  *uint64
	Pagination *utils.PaginationParams
}

// SelectorData holds the pick lists used when editing a task.
type SelectorData struct {
	Accounts []models.Account
	Events   []models.Event
}

// Create validates the input, resolves references and stores a new task.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*models.Task, error) {
	task := &models.Task{}
	if err := s.applyInput(ctx, task, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetByID(ctx, task.ID)
}

// Update replaces every writable field of an existing task. Omitted
// references are cleared and an omitted status resets to pending.
func (s *TaskService) Update(ctx context.Context, id uint64, input TaskInput) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(ctx, task, input); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetByID(ctx, id)
}

// applyInput checks references before anything is written. The check and the
// write are separate statements; the foreign keys catch a reference removed
// in between.
func (s *TaskService) applyInput(ctx context.Context, task *models.Task, input TaskInput) error {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || strings.TrimSpace(input.Date) == "" {
		return ErrTaskFieldsRequired
	}

	status := models.TaskStatus(strings.TrimSpace(input.Status))
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	date, err := utils.ParseInstant(input.Date)
	if err != nil {
		return ErrInvalidDate
	}

	if input.AssignedAccountID != nil {
		if _, err := s.accounts.GetByID(ctx, *input.AssignedAccountID); err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return ErrInvalidAccount
			}
			return err
		}
	}

	if input.AssociatedEventID != nil {
		if _, err := s.events.GetByID(ctx, *input.AssociatedEventID); err != nil {
			if errors.Is(err, ErrEventNotFound) {
				return ErrInvalidEvent
			}
			return err
		}
	}

	task.Title = title
	task.Description = description
	task.Status = status
	task.Date = date.UTC()
	task.AssignedAccountID = input.AssignedAccountID
	task.AssociatedEventID = input.AssociatedEventID
	task.AssignedAccount = nil
	task.AssociatedEvent = nil
	return nil
}

// List returns tasks matching the query, soonest first. A status outside the
// enum is rejected.
func (s *TaskService) List(ctx context.Context, query TaskQuery) ([]models.Task, int64, error) {
	if query.Status != nil && !query.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}

	tasks, total, err := s.repo.List(ctx, repository.TaskFilter{
		Status:     query.Status,
		AccountID:  query.AccountID,
		Pagination: query.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListByEvent returns the tasks associated with an event. Unknown events
// yield an empty list.
func (s *TaskService) ListByEvent(ctx context.Context, eventID uint64) ([]models.Task, error) {
	tasks, _, err := s.repo.List(ctx, repository.TaskFilter{EventID: &eventID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by event: %w", err)
	}
	return tasks, nil
}

// ListByAccount returns the tasks assigned to an account. Unknown accounts
// yield an empty list.
func (s *TaskService) ListByAccount(ctx context.Context, accountID uint64) ([]models.Task, error) {
	tasks, _, err := s.repo.List(ctx, repository.TaskFilter{AccountID: &accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by account: %w", err)
	}
	return tasks, nil
}

// GetByID returns a single task with its references loaded.
func (s *TaskService) GetByID(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id uint64) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !existed {
		return ErrTaskNotFound
	}
	return nil
}

// SelectorData loads the account and event pick lists concurrently.
func (s *TaskService) SelectorData(ctx context.Context) (*SelectorData, error) {
	var data SelectorData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, _, err := s.accounts.List(gctx, nil)
		if err != nil {
			return err
		}
		data.Accounts = accounts
		return nil
	})

	g.Go(func() error {
		events, _, err := s.events.List(gctx, EventQuery{})
		if err != nil {
			return err
		}
		data.Events = events
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load selector data: %w", err)
	}
	return &data, nil
}
