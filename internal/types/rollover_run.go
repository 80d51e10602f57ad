package types

import (
	"time"

	"github.com/google/uuid"
)

// RolloverRun marks that the day-rollover job already ran for a calendar
// day ("2006-01-02", UTC). The unique day column is what makes the job
// idempotent: a second run on the same day hits the constraint and becomes
// a no-op.
type RolloverRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Day       string    `gorm:"column:day;not null;uniqueIndex" json:"day"`
	Carried   int       `gorm:"column:carried;not null;default:0" json:"carried"`
	Seeded    int       `gorm:"column:seeded;not null;default:0" json:"seeded"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RolloverRun) TableName() string { return "rollover_run" }
