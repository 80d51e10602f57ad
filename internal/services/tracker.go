package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// TrackerScopeAll widens a summary request to every tracker row, past and
// current, grouped by day.
const TrackerScopeAll = "all"

// TrackerUpdate carries the fields a partial tracker update may change.
// Nil means "leave unchanged".
type TrackerUpdate struct {
	Date   *time.Time
	Status *string
}

type TrackerService interface {
	Create(ctx context.Context, tx *gorm.DB, tracker *types.TaskTracker) (*types.TaskTracker, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TrackerUpdate) (*types.TaskTracker, error)
	CurrentSummary(ctx context.Context, tx *gorm.DB, now time.Time) (*types.CurrentTrackerSummary, error)
	DaySummaries(ctx context.Context, tx *gorm.DB, scope string) ([]types.DayTrackerSummary, error)
}

type trackerService struct {
	db          *gorm.DB
	log         *logger.Logger
	taskRepo    repos.TaskRepo
	trackerRepo repos.TaskTrackerRepo
}

func NewTrackerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	taskRepo repos.TaskRepo,
	trackerRepo repos.TaskTrackerRepo,
) TrackerService {
	return &trackerService{
		db:          db,
		log:         baseLog.With("service", "TrackerService"),
		taskRepo:    taskRepo,
		trackerRepo: trackerRepo,
	}
}

func (s *trackerService) Create(ctx context.Context, tx *gorm.DB, tracker *types.TaskTracker) (*types.TaskTracker, error) {
	if tracker == nil {
		return nil, apierr.BadRequest("invalid_tracker", fmt.Errorf("missing tracker payload"))
	}
	if tracker.TaskID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_tracker", fmt.Errorf("missing task id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	tasks, err := s.taskRepo.GetByIDs(ctx, transaction, []uuid.UUID{tracker.TaskID})
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if len(tasks) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("task %s not found", tracker.TaskID))
	}

	tracker.ID = uuid.New()
	if tracker.Date.IsZero() {
		tracker.Date = time.Now()
	}
	if tracker.Status == "" {
		tracker.Status = types.TrackerStatusCurrent
	}
	if tracker.Status != types.TrackerStatusCurrent && tracker.Status != types.TrackerStatusPast {
		return nil, apierr.BadRequest("invalid_tracker", fmt.Errorf("status must be %q or %q", types.TrackerStatusCurrent, types.TrackerStatusPast))
	}
	if _, err := s.trackerRepo.Create(ctx, transaction, []*types.TaskTracker{tracker}); err != nil {
		return nil, fmt.Errorf("create tracker: %w", err)
	}
	return tracker, nil
}

func (s *trackerService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TrackerUpdate) (*types.TaskTracker, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing tracker id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	existing, err := s.trackerRepo.GetByIDs(ctx, transaction, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load tracker: %w", err)
	}
	if len(existing) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("tracker %s not found", id))
	}

	updates := map[string]interface{}{}
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}
	if upd.Status != nil {
		if *upd.Status != types.TrackerStatusCurrent && *upd.Status != types.TrackerStatusPast {
			return nil, apierr.BadRequest("invalid_tracker", fmt.Errorf("status must be %q or %q", types.TrackerStatusCurrent, types.TrackerStatusPast))
		}
		updates["status"] = *upd.Status
	}
	if len(updates) == 0 {
		return existing[0], nil
	}
	if err := s.trackerRepo.UpdateFields(ctx, transaction, id, updates); err != nil {
		return nil, fmt.Errorf("update tracker: %w", err)
	}
	updated, err := s.trackerRepo.GetByIDs(ctx, transaction, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("reload tracker: %w", err)
	}
	if len(updated) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("tracker %s not found", id))
	}
	return updated[0], nil
}

// CurrentSummary rolls up today's bucket and the streak of consecutive
// days with at least one completed task.
func (s *trackerService) CurrentSummary(ctx context.Context, tx *gorm.DB, now time.Time) (*types.CurrentTrackerSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	current, err := s.trackerRepo.ListByStatus(ctx, transaction, types.TrackerStatusCurrent)
	if err != nil {
		return nil, fmt.Errorf("load current trackers: %w", err)
	}
	all, err := s.trackerRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load trackers: %w", err)
	}
	tasksByID, err := s.joinTasks(ctx, transaction, all)
	if err != nil {
		return nil, err
	}

	streak := computeStreak(doneCountByDay(all, tasksByID), now)
	summary := projectCurrentSummary(current, tasksByID, streak)
	return &summary, nil
}

// DaySummaries returns one rollup per UTC calendar day for scope "past"
// (retired buckets only) or "all" (every tracker row), sorted day ascending.
func (s *trackerService) DaySummaries(ctx context.Context, tx *gorm.DB, scope string) ([]types.DayTrackerSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	var trackers []*types.TaskTracker
	var err error
	switch scope {
	case types.TrackerStatusPast:
		trackers, err = s.trackerRepo.ListByStatus(ctx, transaction, types.TrackerStatusPast)
	case TrackerScopeAll:
		trackers, err = s.trackerRepo.ListAll(ctx, transaction)
	default:
		return nil, apierr.BadRequest("invalid_status", fmt.Errorf("status must be %q, %q or %q", types.TrackerStatusCurrent, types.TrackerStatusPast, TrackerScopeAll))
	}
	if err != nil {
		return nil, fmt.Errorf("load trackers: %w", err)
	}

	tasksByID, err := s.joinTasks(ctx, transaction, trackers)
	if err != nil {
		return nil, err
	}
	return projectDaySummaries(trackers, tasksByID), nil
}

func (s *trackerService) joinTasks(ctx context.Context, tx *gorm.DB, trackers []*types.TaskTracker) (map[uuid.UUID]*types.Task, error) {
	ids := make([]uuid.UUID, 0, len(trackers))
	seen := make(map[uuid.UUID]bool, len(trackers))
	for _, tr := range trackers {
		if tr == nil || seen[tr.TaskID] {
			continue
		}
		seen[tr.TaskID] = true
		ids = append(ids, tr.TaskID)
	}
	tasks, err := s.taskRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tracker tasks: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID, nil
}
