package types

import (
	"time"

	"github.com/google/uuid"
)

// Read models produced by the aggregation services. These are the exact
// response shapes; they carry no gorm tags and are never persisted.

// SubjectRef is the subject fragment embedded in chapter-level views.
type SubjectRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Standard string    `json:"standard"`
}

// ChapterWithSubject is one chapter flattened with its owning subject.
type ChapterWithSubject struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Subject        SubjectRef `json:"subject"`
	SeqNumber      int        `json:"seq_number"`
	Done           bool       `json:"done"`
	SelectionDiary bool       `json:"selection_diary"`
	OnePager       bool       `json:"one_pager"`
	DPP            bool       `json:"dpp"`
	Module         bool       `json:"module"`
	PYQ            bool       `json:"pyq"`
	ExtraMaterial  bool       `json:"extra_material"`
}

// ChapterSummary is the chapter fragment nested under a subject.
type ChapterSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	SeqNumber      int       `json:"seq_number"`
	Done           bool      `json:"done"`
	SelectionDiary bool      `json:"selection_diary"`
	OnePager       bool      `json:"one_pager"`
	DPP            bool      `json:"dpp"`
	Module         bool      `json:"module"`
	PYQ            bool      `json:"pyq"`
	ExtraMaterial  bool      `json:"extra_material"`
}

// SubjectWithChapters is one subject with its chapters, seq_number ascending.
type SubjectWithChapters struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Standard    string           `json:"standard"`
	ChapterList []ChapterSummary `json:"chapter_list"`
}

// CatalogTopic / CatalogChapter / CatalogSubject form the full
// subject → chapter → topic nesting served by GET /api/data.
type CatalogTopic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SeqNumber int       `json:"seq_number"`
	Done      bool      `json:"done"`
	Boards    bool      `json:"boards"`
	Mains     bool      `json:"mains"`
	Advanced  bool      `json:"advanced"`
}

type CatalogChapter struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	SeqNumber      int            `json:"seq_number"`
	Done           bool           `json:"done"`
	SelectionDiary bool           `json:"selection_diary"`
	OnePager       bool           `json:"one_pager"`
	DPP            bool           `json:"dpp"`
	Module         bool           `json:"module"`
	PYQ            bool           `json:"pyq"`
	ExtraMaterial  bool           `json:"extra_material"`
	Topics         []CatalogTopic `json:"topics"`
}

type CatalogSubject struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Standard string           `json:"standard"`
	Chapters []CatalogChapter `json:"chapters"`
}

// ChapterProgress is the completion rollup of one chapter's topics.
// PercentCompleted is defined as 0 when the chapter has no topics.
type ChapterProgress struct {
	ChapterID            uuid.UUID `json:"chapter_id"`
	TotalTopics          int       `json:"total_topics"`
	TotalCompletedTopics int       `json:"total_completed_topics"`
	PercentCompleted     float64   `json:"percent_completed"`
}

// TrackerEntry is one tracker row joined with its task, listed inside the
// current-day summary.
type TrackerEntry struct {
	TrackerID uuid.UUID `json:"tracker_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Task      *Task     `json:"task,omitempty"`
}

// CurrentTrackerSummary is the single summary of today's bucket.
// Points is defined as 0 when no tasks are assigned.
type CurrentTrackerSummary struct {
	Status            string         `json:"status"`
	TotalTaskAssigned int            `json:"total_task_assigned"`
	TotalTaskDone     int            `json:"total_task_done"`
	Points            float64        `json:"points"`
	Streak            int            `json:"streak"`
	Tasks             []TrackerEntry `json:"tasks"`
}

// DayTrackerSummary is one calendar day's rollup for past/all scopes.
// Day is "2006-01-02" in UTC.
type DayTrackerSummary struct {
	Day               string  `json:"day"`
	TotalTaskAssigned int     `json:"total_task_assigned"`
	TotalTaskDone     int     `json:"total_task_done"`
	Points            float64 `json:"points"`
}

// RolloverResult reports what one day-rollover run did.
type RolloverResult struct {
	Day           string      `json:"day"`
	Carried       int         `json:"carried"`
	Seeded        int         `json:"seeded"`
	SeededTaskIDs []uuid.UUID `json:"seeded_task_ids"`
}
