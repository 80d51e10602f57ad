package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TrackerStatusCurrent = "current"
	TrackerStatusPast    = "past"
)

// TaskTracker is the per-day assignment record of a Task. Rows with status
// "current" form today's bucket; the day-rollover job flips them to "past".
type TaskTracker struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"column:date;not null;index" json:"date"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	Task      *Task     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskID;references:ID" json:"task,omitempty"`
	Status    string    `gorm:"column:status;not null;index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TaskTracker) TableName() string { return "task_tracker" }
