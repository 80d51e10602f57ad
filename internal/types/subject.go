package types

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the root of the study catalog: a course at a given
// class/grade ("standard"). Children are Chapters.
type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Standard  string    `gorm:"column:standard;not null;index" json:"standard"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Subject) TableName() string { return "subject" }
