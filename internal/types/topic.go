package types

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a sub-unit of a Chapter, tracked for completion and for which
// exam tier (boards / mains / advanced) it is relevant to.
type Topic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	ChapterID uuid.UUID `gorm:"type:uuid;not null;index" json:"chapter_id"`
	Chapter   *Chapter  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChapterID;references:ID" json:"chapter,omitempty"`
	SeqNumber int       `gorm:"column:seq_number;not null;default:0" json:"seq_number"`
	Done      bool      `gorm:"column:done;not null;default:false" json:"done"`
	Boards    bool      `gorm:"column:boards;not null;default:false" json:"boards"`
	Mains     bool      `gorm:"column:mains;not null;default:false" json:"mains"`
	Advanced  bool      `gorm:"column:advanced;not null;default:false" json:"advanced"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }
