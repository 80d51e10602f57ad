package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task is one daily to-do item. Repeat holds lowercase weekday names
// ("monday".."sunday"); the day-rollover job re-seeds a fresh copy of the
// task on each listed weekday.
type Task struct {
	ID           uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	Task         string                     `gorm:"column:task;not null" json:"task"`
	CategoryID   uuid.UUID                  `gorm:"type:uuid;not null;index" json:"category_id"`
	Category     *TaskCategory              `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Done         bool                       `gorm:"column:done;not null;default:false" json:"done"`
	AssignedDate time.Time                  `gorm:"column:assigned_date;not null" json:"assigned_date"`
	CompletedAt  *time.Time                 `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Repeat       datatypes.JSONSlice[string] `gorm:"column:repeat;type:jsonb" json:"repeat,omitempty"`
	CreatedAt    time.Time                  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time                  `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string { return "task" }

// RepeatsOn reports whether the task recurs on the given lowercase
// weekday name.
func (t *Task) RepeatsOn(weekday string) bool {
	for _, d := range t.Repeat {
		if d == weekday {
			return true
		}
	}
	return false
}
