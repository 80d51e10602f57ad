package types

import (
	"time"

	"github.com/google/uuid"
)

// TaskCategory is a label grouping daily tasks (e.g. "physics", "chores").
type TaskCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category  string    `gorm:"column:category;not null" json:"category"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TaskCategory) TableName() string { return "task_category" }
