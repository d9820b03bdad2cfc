package models

import (
	"slices"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the accepted statuses in display order
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// IsValid reports whether s is one of the accepted statuses. Case matters.
func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses(), s)
}

// TaskStatusList joins the accepted statuses for messages
func TaskStatusList() string {
	names := make([]string, 0, len(TaskStatuses()))
	for _, status := range TaskStatuses() {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

type Task struct {
	ID                uint64     `gorm:"primarykey" json:"id"`
	Title             string     `gorm:"type:varchar(255);not null" json:"title"`
	Description       string     `gorm:"type:text;not null" json:"description"`
	Status            TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Date              time.Time  `gorm:"not null;index" json:"date"`
	AssignedAccountID *uint64    `gorm:"index" json:"assigned_account_id"`
	AssociatedEventID *uint64    `gorm:"index" json:"associated_event_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relations
	AssignedAccount *Account `gorm:"foreignKey:AssignedAccountID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	AssociatedEvent *Event   `gorm:"foreignKey:AssociatedEventID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
