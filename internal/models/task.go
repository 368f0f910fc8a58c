package model

import (
	"time"

	"taskdeck.com/taskdeck/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10);not null;index" json:"priority"`
	DueDate     *time.Time             `json:"due_date,omitempty"`
	Category    string                 `json:"category"`
	UserID      string                 `gorm:"size:36;not null;index" json:"user_id"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}
