package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/types"
)

func TestPercentOf_ZeroTotalYieldsZero(t *testing.T) {
	if got := percentOf(0, 0); got != 0 {
		t.Fatalf("unexpected percent: got=%v want=0", got)
	}
	if got := percentOf(3, 0); got != 0 {
		t.Fatalf("unexpected percent for empty denominator: got=%v want=0", got)
	}
}

func TestPercentOf_HalfDone(t *testing.T) {
	if got := percentOf(2, 4); got != 50 {
		t.Fatalf("unexpected percent: got=%v want=50", got)
	}
	if got := percentOf(4, 4); got != 100 {
		t.Fatalf("unexpected percent: got=%v want=100", got)
	}
}

func TestDayKey_UsesUTCDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2026, 3, 13, 23, 30, 0, 0, loc)
	if got := dayKey(instant); got != "2026-03-14" {
		t.Fatalf("unexpected day key: got=%q want=%q", got, "2026-03-14")
	}
}

func TestWeekdayName_Lowercase(t *testing.T) {
	monday := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	if got := weekdayName(monday); got != "monday" {
		t.Fatalf("unexpected weekday name: got=%q want=%q", got, "monday")
	}
}

func TestComputeStreak_CountsBackFromToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	doneByDay := map[string]int{
		"2026-03-14": 2,
		"2026-03-13": 1,
		"2026-03-12": 1,
		// 2026-03-11 empty: streak stops here.
		"2026-03-10": 3,
	}
	if got := computeStreak(doneByDay, now); got != 3 {
		t.Fatalf("unexpected streak: got=%d want=3", got)
	}
}

func TestComputeStreak_EmptyTodayDoesNotBreakStreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	doneByDay := map[string]int{
		"2026-03-13": 1,
		"2026-03-12": 2,
	}
	if got := computeStreak(doneByDay, now); got != 2 {
		t.Fatalf("unexpected streak: got=%d want=2", got)
	}
}

func TestComputeStreak_NothingDoneIsZero(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := computeStreak(map[string]int{}, now); got != 0 {
		t.Fatalf("unexpected streak: got=%d want=0", got)
	}
}

func TestProjectSubjectsWithChapters_PreservesRowOrder(t *testing.T) {
	mathID := uuid.New()
	physicsID := uuid.New()
	subjects := []*types.Subject{
		{ID: mathID, Name: "Maths", Standard: "XI"},
		{ID: physicsID, Name: "Physics", Standard: "XII"},
	}
	// Rows arrive pre-sorted by seq_number; grouping must not reorder them.
	chapters := []*types.Chapter{
		{ID: uuid.New(), Name: "Sets", SubjectID: mathID, SeqNumber: 1},
		{ID: uuid.New(), Name: "Relations", SubjectID: mathID, SeqNumber: 2},
	}

	got := projectSubjectsWithChapters(subjects, chapters)
	if len(got) != 2 {
		t.Fatalf("unexpected subject count: got=%d want=2", len(got))
	}
	if got[0].Name != "Maths" || len(got[0].ChapterList) != 2 {
		t.Fatalf("unexpected first subject: %#v", got[0])
	}
	if got[0].ChapterList[0].Name != "Sets" || got[0].ChapterList[1].Name != "Relations" {
		t.Fatalf("unexpected chapter order: %#v", got[0].ChapterList)
	}
	if got[1].ChapterList == nil || len(got[1].ChapterList) != 0 {
		t.Fatalf("expected empty chapter list for subject without chapters, got %#v", got[1].ChapterList)
	}
}

func TestProjectChaptersWithSubject_EmbedsSubjectRef(t *testing.T) {
	subjectID := uuid.New()
	subjects := []*types.Subject{{ID: subjectID, Name: "Physics", Standard: "XII"}}
	chapters := []*types.Chapter{{ID: uuid.New(), Name: "Optics", SubjectID: subjectID, SeqNumber: 7, PYQ: true}}

	got := projectChaptersWithSubject(chapters, subjects)
	if len(got) != 1 {
		t.Fatalf("unexpected chapter count: got=%d want=1", len(got))
	}
	if got[0].Subject.ID != subjectID || got[0].Subject.Standard != "XII" {
		t.Fatalf("unexpected subject ref: %#v", got[0].Subject)
	}
	if !got[0].PYQ || got[0].SeqNumber != 7 {
		t.Fatalf("unexpected chapter fields: %#v", got[0])
	}
}

func TestProjectNestedCatalog_EmptyLevelsStayEmptySlices(t *testing.T) {
	subjectID := uuid.New()
	chapterID := uuid.New()
	subjects := []*types.Subject{
		{ID: subjectID, Name: "Chemistry", Standard: "XI"},
		{ID: uuid.New(), Name: "Biology", Standard: "XI"},
	}
	chapters := []*types.Chapter{{ID: chapterID, Name: "Mole Concept", SubjectID: subjectID, SeqNumber: 1}}

	got := projectNestedCatalog(subjects, chapters, nil)
	if len(got) != 2 {
		t.Fatalf("unexpected subject count: got=%d want=2", len(got))
	}
	if got[0].Chapters == nil || len(got[0].Chapters) != 1 {
		t.Fatalf("unexpected chapters: %#v", got[0].Chapters)
	}
	if got[0].Chapters[0].Topics == nil || len(got[0].Chapters[0].Topics) != 0 {
		t.Fatalf("expected empty topic slice, got %#v", got[0].Chapters[0].Topics)
	}
	if got[1].Chapters == nil || len(got[1].Chapters) != 0 {
		t.Fatalf("expected empty chapter slice, got %#v", got[1].Chapters)
	}
}

func TestProjectNestedCatalog_KeepsTopicOrder(t *testing.T) {
	subjectID := uuid.New()
	chapterID := uuid.New()
	subjects := []*types.Subject{{ID: subjectID, Name: "Maths", Standard: "XI"}}
	chapters := []*types.Chapter{{ID: chapterID, Name: "Sets", SubjectID: subjectID, SeqNumber: 1}}
	topics := []*types.Topic{
		{ID: uuid.New(), Name: "Venn Diagrams", ChapterID: chapterID, SeqNumber: 1},
		{ID: uuid.New(), Name: "Power Sets", ChapterID: chapterID, SeqNumber: 2, Done: true},
	}

	got := projectNestedCatalog(subjects, chapters, topics)
	topicList := got[0].Chapters[0].Topics
	if len(topicList) != 2 {
		t.Fatalf("unexpected topic count: got=%d want=2", len(topicList))
	}
	if topicList[0].Name != "Venn Diagrams" || topicList[1].Name != "Power Sets" {
		t.Fatalf("unexpected topic order: %#v", topicList)
	}
	if !topicList[1].Done {
		t.Fatalf("expected done flag carried over: %#v", topicList[1])
	}
}

func TestProjectCurrentSummary_MissingTaskRowCountsAssignedOnly(t *testing.T) {
	doneID := uuid.New()
	missingID := uuid.New()
	trackers := []*types.TaskTracker{
		{ID: uuid.New(), TaskID: doneID, Status: types.TrackerStatusCurrent},
		{ID: uuid.New(), TaskID: missingID, Status: types.TrackerStatusCurrent},
	}
	tasksByID := map[uuid.UUID]*types.Task{
		doneID: {ID: doneID, Task: "revise optics", Done: true},
	}

	got := projectCurrentSummary(trackers, tasksByID, 4)
	if got.TotalTaskAssigned != 2 || got.TotalTaskDone != 1 {
		t.Fatalf("unexpected counts: %#v", got)
	}
	if got.Points != 50 {
		t.Fatalf("unexpected points: got=%v want=50", got.Points)
	}
	if got.Streak != 4 {
		t.Fatalf("unexpected streak: got=%d want=4", got.Streak)
	}
	if len(got.Tasks) != 2 || got.Tasks[1].Task != nil {
		t.Fatalf("expected nil task for missing row: %#v", got.Tasks)
	}
}

func TestProjectDaySummaries_BucketsByUTCDay(t *testing.T) {
	doneID := uuid.New()
	openID := uuid.New()
	tasksByID := map[uuid.UUID]*types.Task{
		doneID: {ID: doneID, Done: true},
		openID: {ID: openID, Done: false},
	}
	day1 := time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	trackers := []*types.TaskTracker{
		{ID: uuid.New(), TaskID: doneID, Date: day2, Status: types.TrackerStatusCurrent},
		{ID: uuid.New(), TaskID: openID, Date: day2, Status: types.TrackerStatusCurrent},
		{ID: uuid.New(), TaskID: doneID, Date: day1, Status: types.TrackerStatusPast},
	}

	got := projectDaySummaries(trackers, tasksByID)
	if len(got) != 2 {
		t.Fatalf("unexpected day count: got=%d want=2", len(got))
	}
	if got[0].Day != "2026-03-13" || got[1].Day != "2026-03-14" {
		t.Fatalf("unexpected day order: %#v", got)
	}
	if got[0].TotalTaskAssigned != 1 || got[0].Points != 100 {
		t.Fatalf("unexpected first day rollup: %#v", got[0])
	}
	if got[1].TotalTaskAssigned != 2 || got[1].TotalTaskDone != 1 || got[1].Points != 50 {
		t.Fatalf("unexpected second day rollup: %#v", got[1])
	}
}
