package types

import (
	"time"

	"github.com/google/uuid"
)

// Chapter is one unit inside a Subject. The boolean flags track which
// study resources exist or have been worked through for the chapter.
type Chapter struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	SubjectID      uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject        *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	SeqNumber      int       `gorm:"column:seq_number;not null;default:0" json:"seq_number"`
	Done           bool      `gorm:"column:done;not null;default:false" json:"done"`
	SelectionDiary bool      `gorm:"column:selection_diary;not null;default:false" json:"selection_diary"`
	OnePager       bool      `gorm:"column:one_pager;not null;default:false" json:"one_pager"`
	DPP            bool      `gorm:"column:dpp;not null;default:false" json:"dpp"`
	Module         bool      `gorm:"column:module;not null;default:false" json:"module"`
	PYQ            bool      `gorm:"column:pyq;not null;default:false" json:"pyq"`
	ExtraMaterial  bool      `gorm:"column:extra_material;not null;default:false" json:"extra_material"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Chapter) TableName() string { return "chapter" }
