package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

func newTrackerFixture(t *testing.T) (TrackerService, *gorm.DB, *logger.Logger) {
	t.Helper()
	gdb, log := newTestDB(t)
	svc := NewTrackerService(gdb, log,
		repos.NewTaskRepo(gdb, log),
		repos.NewTaskTrackerRepo(gdb, log),
	)
	return svc, gdb, log
}

func TestTrackerCreate_RequiresExistingTask(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)

	_, err := svc.Create(context.Background(), nil, &types.TaskTracker{TaskID: uuid.New()})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected typed api error, got %v", err)
	}
	if ae.Status != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", ae.Status, http.StatusNotFound)
	}
}

func TestTrackerCreate_DefaultsDateAndStatus(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)
	ctx := context.Background()

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	task := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "solve dpp", CategoryID: category.ID, AssignedDate: time.Now()})

	got, err := svc.Create(ctx, nil, &types.TaskTracker{TaskID: task.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if got.Status != types.TrackerStatusCurrent {
		t.Fatalf("unexpected status: got=%q want=%q", got.Status, types.TrackerStatusCurrent)
	}
	if got.Date.IsZero() {
		t.Fatalf("expected defaulted date")
	}

	stored, err := repos.NewTaskTrackerRepo(gdb, log).GetByIDs(ctx, nil, []uuid.UUID{got.ID})
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected persisted tracker, got n=%d err=%v", len(stored), err)
	}
}

func TestTrackerCreate_RejectsUnknownStatus(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	task := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "solve dpp", CategoryID: category.ID, AssignedDate: time.Now()})

	_, err := svc.Create(context.Background(), nil, &types.TaskTracker{TaskID: task.ID, Status: "someday"})
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected typed api error, got %v", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "invalid_tracker" {
		t.Fatalf("unexpected error: status=%d code=%q", ae.Status, ae.Code)
	}
}

func TestTrackerUpdate_ChangesStatusKeepsDate(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)
	ctx := context.Background()

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	task := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "solve dpp", CategoryID: category.ID, AssignedDate: time.Now()})
	date := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tracker := mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: task.ID, Date: date})

	past := types.TrackerStatusPast
	got, err := svc.Update(ctx, nil, tracker.ID, TrackerUpdate{Status: &past})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != types.TrackerStatusPast {
		t.Fatalf("unexpected status: got=%q want=%q", got.Status, types.TrackerStatusPast)
	}
	if got.Date.Unix() != date.Unix() {
		t.Fatalf("date changed: got=%v want=%v", got.Date, date)
	}
}

func TestTrackerUpdate_EmptyUpdateIsNoOp(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	task := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "solve dpp", CategoryID: category.ID, AssignedDate: time.Now()})
	tracker := mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: task.ID, Date: time.Now()})

	got, err := svc.Update(context.Background(), nil, tracker.ID, TrackerUpdate{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != tracker.ID || got.Status != types.TrackerStatusCurrent {
		t.Fatalf("unexpected row: %#v", got)
	}
}

func TestTrackerUpdate_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)

	past := types.TrackerStatusPast
	_, err := svc.Update(context.Background(), nil, uuid.New(), TrackerUpdate{Status: &past})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCurrentSummary_RollsUpCurrentBucket(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	for _, done := range []bool{true, true, false, false} {
		task := mustSeedTaskRow(t, gdb, log, &types.Task{
			Task:         "task",
			CategoryID:   category.ID,
			Done:         done,
			AssignedDate: now,
		})
		mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: task.ID, Date: now})
	}

	got, err := svc.CurrentSummary(ctx, nil, now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.TotalTaskAssigned != 4 || got.TotalTaskDone != 2 {
		t.Fatalf("unexpected counts: %#v", got)
	}
	if got.Points != 50 {
		t.Fatalf("unexpected points: got=%v want=50", got.Points)
	}
	if got.Streak != 1 {
		t.Fatalf("unexpected streak: got=%d want=1", got.Streak)
	}
	if len(got.Tasks) != 4 {
		t.Fatalf("unexpected entry count: got=%d want=4", len(got.Tasks))
	}
	for _, entry := range got.Tasks {
		if entry.Task == nil {
			t.Fatalf("expected joined task on entry %s", entry.TrackerID)
		}
	}
}

func TestCurrentSummary_EmptyStoreIsAllZero(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)

	got, err := svc.CurrentSummary(context.Background(), nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.TotalTaskAssigned != 0 || got.TotalTaskDone != 0 || got.Points != 0 || got.Streak != 0 {
		t.Fatalf("unexpected empty summary: %#v", got)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty task list, got %#v", got.Tasks)
	}
}

func TestCurrentSummary_StreakSpansPastDays(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	seedDone := func(date time.Time, status string) {
		task := mustSeedTaskRow(t, gdb, log, &types.Task{
			Task:         "task",
			CategoryID:   category.ID,
			Done:         true,
			AssignedDate: date,
		})
		mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: task.ID, Date: date, Status: status})
	}
	seedDone(now, types.TrackerStatusCurrent)
	seedDone(now.AddDate(0, 0, -1), types.TrackerStatusPast)
	// Gap two days back, so the chain stops at length 2.
	seedDone(now.AddDate(0, 0, -3), types.TrackerStatusPast)

	got, err := svc.CurrentSummary(ctx, nil, now)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Streak != 2 {
		t.Fatalf("unexpected streak: got=%d want=2", got.Streak)
	}
}

func TestDaySummaries_ScopesAndSorts(t *testing.T) {
	svc, gdb, log := newTrackerFixture(t)
	ctx := context.Background()
	today := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	category := mustSeedTaskCategory(t, gdb, log, "physics")
	doneTask := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "done", CategoryID: category.ID, Done: true, AssignedDate: yesterday})
	openTask := mustSeedTaskRow(t, gdb, log, &types.Task{Task: "open", CategoryID: category.ID, AssignedDate: today})
	mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: doneTask.ID, Date: yesterday, Status: types.TrackerStatusPast})
	mustSeedTrackerRow(t, gdb, log, &types.TaskTracker{TaskID: openTask.ID, Date: today, Status: types.TrackerStatusCurrent})

	past, err := svc.DaySummaries(ctx, nil, types.TrackerStatusPast)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(past) != 1 || past[0].Day != "2026-03-13" || past[0].Points != 100 {
		t.Fatalf("unexpected past summaries: %#v", past)
	}

	all, err := svc.DaySummaries(ctx, nil, TrackerScopeAll)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 2 || all[0].Day != "2026-03-13" || all[1].Day != "2026-03-14" {
		t.Fatalf("unexpected all summaries: %#v", all)
	}
	if all[1].TotalTaskAssigned != 1 || all[1].TotalTaskDone != 0 || all[1].Points != 0 {
		t.Fatalf("unexpected today rollup: %#v", all[1])
	}
}

func TestDaySummaries_RejectsUnknownScope(t *testing.T) {
	svc, _, _ := newTrackerFixture(t)

	_, err := svc.DaySummaries(context.Background(), nil, "someday")
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected typed api error, got %v", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Code != "invalid_status" {
		t.Fatalf("unexpected error: status=%d code=%q", ae.Status, ae.Code)
	}
}
