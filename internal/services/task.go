package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

var weekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// normalizeRepeat lowercases, trims and dedupes the weekday set. Unknown
// day names are rejected.
func normalizeRepeat(days []string) ([]string, error) {
	out := make([]string, 0, len(days))
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if !weekdays[d] {
			return nil, fmt.Errorf("unknown weekday %q", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}

// TaskUpdate carries the fields a partial task update may change.
type TaskUpdate struct {
	Task         *string
	CategoryID   *uuid.UUID
	Done         *bool
	AssignedDate *time.Time
	Repeat       *[]string
}

type TaskService interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Task, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TaskUpdate) (*types.Task, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type taskService struct {
	db           *gorm.DB
	log          *logger.Logger
	taskRepo     repos.TaskRepo
	categoryRepo repos.TaskCategoryRepo
	trackerRepo  repos.TaskTrackerRepo
}

func NewTaskService(
	db *gorm.DB,
	baseLog *logger.Logger,
	taskRepo repos.TaskRepo,
	categoryRepo repos.TaskCategoryRepo,
	trackerRepo repos.TaskTrackerRepo,
) TaskService {
	return &taskService{
		db:           db,
		log:          baseLog.With("service", "TaskService"),
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		trackerRepo:  trackerRepo,
	}
}

func (s *taskService) Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
	if task == nil {
		return nil, apierr.BadRequest("invalid_task", fmt.Errorf("missing task payload"))
	}
	task.Task = strings.TrimSpace(task.Task)
	if task.Task == "" {
		return nil, apierr.BadRequest("invalid_task", fmt.Errorf("missing task text"))
	}
	if task.CategoryID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_task", fmt.Errorf("missing category id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, transaction, []uuid.UUID{task.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if len(categories) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("category %s not found", task.CategoryID))
	}

	if len(task.Repeat) > 0 {
		days, err := normalizeRepeat(task.Repeat)
		if err != nil {
			return nil, apierr.BadRequest("invalid_task", err)
		}
		task.Repeat = datatypes.NewJSONSlice(days)
	}

	task.ID = uuid.New()
	task.Category = nil
	if task.AssignedDate.IsZero() {
		task.AssignedDate = time.Now()
	}
	if _, err := s.taskRepo.Create(ctx, transaction, []*types.Task{task}); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing task id"))
	}
	tasks, err := s.taskRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if len(tasks) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("task %s not found", id))
	}
	return tasks[0], nil
}

func (s *taskService) List(ctx context.Context, tx *gorm.DB) ([]*types.Task, error) {
	tasks, err := s.taskRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TaskUpdate) (*types.Task, error) {
	existing, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Task != nil {
		text := strings.TrimSpace(*upd.Task)
		if text == "" {
			return nil, apierr.BadRequest("invalid_task", fmt.Errorf("task text cannot be empty"))
		}
		updates["task"] = text
	}
	if upd.CategoryID != nil {
		if *upd.CategoryID == uuid.Nil {
			return nil, apierr.BadRequest("invalid_task", fmt.Errorf("category id cannot be empty"))
		}
		categories, err := s.categoryRepo.GetByIDs(ctx, tx, []uuid.UUID{*upd.CategoryID})
		if err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
		if len(categories) == 0 {
			return nil, apierr.NotFound("not_found", fmt.Errorf("category %s not found", *upd.CategoryID))
		}
		updates["category_id"] = *upd.CategoryID
	}
	if upd.Done != nil {
		updates["done"] = *upd.Done
		if *upd.Done {
			updates["completed_at"] = time.Now()
		} else {
			updates["completed_at"] = nil
		}
	}
	if upd.AssignedDate != nil {
		updates["assigned_date"] = *upd.AssignedDate
	}
	if upd.Repeat != nil {
		days, err := normalizeRepeat(*upd.Repeat)
		if err != nil {
			return nil, apierr.BadRequest("invalid_task", err)
		}
		if len(days) == 0 {
			updates["repeat"] = nil
		} else {
			updates["repeat"] = datatypes.NewJSONSlice(days)
		}
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.taskRepo.UpdateFields(ctx, tx, id, updates); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.Get(ctx, tx, id)
}

// Delete removes the task together with its tracker rows.
func (s *taskService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if id == uuid.Nil {
		return apierr.BadRequest("missing_id", fmt.Errorf("missing task id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		tasks, err := s.taskRepo.GetByIDs(ctx, txx, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}
		if len(tasks) == 0 {
			return apierr.NotFound("not_found", fmt.Errorf("task %s not found", id))
		}
		if _, err := s.trackerRepo.DeleteByTaskIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete trackers: %w", err)
		}
		if _, err := s.taskRepo.DeleteByIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
