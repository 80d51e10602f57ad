package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/config"
	"github.com/yungbote/studytrack-backend/internal/db"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// newTestDB opens a fresh file-backed sqlite store under t.TempDir and runs
// the full migration set against it.
func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	svc, err := db.NewSQLiteService(config.Config{
		SQLitePath: filepath.Join(t.TempDir(), "studytrack_test.db"),
	}, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return svc.DB(), log
}

func mustSeedTaskCategory(t *testing.T, gdb *gorm.DB, log *logger.Logger, label string) *types.TaskCategory {
	t.Helper()
	c := &types.TaskCategory{ID: uuid.New(), Category: label}
	if _, err := repos.NewTaskCategoryRepo(gdb, log).Create(context.Background(), nil, []*types.TaskCategory{c}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func mustSeedTaskRow(t *testing.T, gdb *gorm.DB, log *logger.Logger, task *types.Task) *types.Task {
	t.Helper()
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if _, err := repos.NewTaskRepo(gdb, log).Create(context.Background(), nil, []*types.Task{task}); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func mustSeedTrackerRow(t *testing.T, gdb *gorm.DB, log *logger.Logger, tracker *types.TaskTracker) *types.TaskTracker {
	t.Helper()
	if tracker.ID == uuid.Nil {
		tracker.ID = uuid.New()
	}
	if tracker.Status == "" {
		tracker.Status = types.TrackerStatusCurrent
	}
	if _, err := repos.NewTaskTrackerRepo(gdb, log).Create(context.Background(), nil, []*types.TaskTracker{tracker}); err != nil {
		t.Fatalf("seed tracker: %v", err)
	}
	return tracker
}
