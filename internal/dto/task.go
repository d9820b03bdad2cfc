package dto

import (
	"time"

	"github.com/yukikurage/schedule-api/internal/models"
)

// TaskRequest is the body of POST /api/tasks and PUT /api/tasks/:id
type TaskRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description" binding:"required"`
	Status            string     `json:"status"`
	Date              string     `json:"date" binding:"required"`
	AssignedAccountID OptionalID `json:"assigned_account_id"`
	AssociatedEventID OptionalID `json:"associated_event_id"`
}

// TaskDTO represents a task in API responses, with the names of the rows it
// references
type TaskDTO struct {
	ID                   uint64            `json:"id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	Status               models.TaskStatus `json:"status"`
	Date                 time.Time         `json:"date"`
	AssignedAccountID    *uint64           `json:"assigned_account_id"`
	AssignedAccountName  *string           `json:"assigned_account_name"`
	AssociatedEventID    *uint64           `json:"associated_event_id"`
	AssociatedEventTitle *string           `json:"associated_event_title"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// SelectorDataDTO holds the pick lists used when editing a task
type SelectorDataDTO struct {
	Accounts []AccountSummaryDTO `json:"accounts"`
	Events   []EventSummaryDTO   `json:"events"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            task.Status,
		Date:              task.Date,
		AssignedAccountID: task.AssignedAccountID,
		AssociatedEventID: task.AssociatedEventID,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}

	// Include names if preloaded
	if task.AssignedAccount != nil {
		name := task.AssignedAccount.Name
		dto.AssignedAccountName = &name
	}
	if task.AssociatedEvent != nil {
		title := task.AssociatedEvent.Title
		dto.AssociatedEventTitle = &title
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

// ToSelectorDataDTO builds the pick lists from accounts and events
func ToSelectorDataDTO(accounts []models.Account, events []models.Event) SelectorDataDTO {
	data := SelectorDataDTO{
		Accounts: make([]AccountSummaryDTO, len(accounts)),
		Events:   make([]EventSummaryDTO, len(events)),
	}
	for i, account := range accounts {
		data.Accounts[i] = AccountSummaryDTO{ID: account.ID, Name: account.Name}
	}
	for i, event := range events {
		data.Events[i] = EventSummaryDTO{ID: event.ID, Title: event.Title}
	}
	return data
}
