package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/clients/redis"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// RolloverService runs the day packup: retire the current tracker bucket
// and seed a fresh one from the task templates that recur on today's
// weekday. The whole job runs in one transaction, and a unique per-day
// marker row makes a repeat invocation a conflict instead of a double
// seed.
type RolloverService interface {
	Run(ctx context.Context, now time.Time) (*types.RolloverResult, error)
}

type rolloverService struct {
	db          *gorm.DB
	log         *logger.Logger
	taskRepo    repos.TaskRepo
	trackerRepo repos.TaskTrackerRepo
	runRepo     repos.RolloverRunRepo
	lock        *redis.DayLock
}

// NewRolloverService wires the job. lock may be nil; the marker row is the
// durable guard either way.
func NewRolloverService(
	db *gorm.DB,
	baseLog *logger.Logger,
	taskRepo repos.TaskRepo,
	trackerRepo repos.TaskTrackerRepo,
	runRepo repos.RolloverRunRepo,
	lock *redis.DayLock,
) RolloverService {
	return &rolloverService{
		db:          db,
		log:         baseLog.With("service", "RolloverService"),
		taskRepo:    taskRepo,
		trackerRepo: trackerRepo,
		runRepo:     runRepo,
		lock:        lock,
	}
}

func (s *rolloverService) Run(ctx context.Context, now time.Time) (*types.RolloverResult, error) {
	day := dayKey(now)
	weekday := weekdayName(now)

	acquired, err := s.lock.Acquire(ctx, day)
	if err != nil {
		// Lock is best effort; the marker row below still guards the day.
		s.log.Warn("Rollover day lock unavailable", "error", err, "day", day)
	} else if !acquired {
		return nil, apierr.Conflict("rollover_already_ran", fmt.Errorf("rollover for %s is already in progress", day))
	} else {
		defer s.lock.Release(ctx, day)
	}

	var result types.RolloverResult
	txErr := s.db.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		existing, err := s.runRepo.GetByDay(ctx, txx, day)
		if err != nil {
			return fmt.Errorf("check rollover marker: %w", err)
		}
		if existing != nil {
			return apierr.Conflict("rollover_already_ran", fmt.Errorf("rollover already ran for %s", day))
		}
		run := &types.RolloverRun{ID: uuid.New(), Day: day}
		if _, err := s.runRepo.Create(ctx, txx, []*types.RolloverRun{run}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("rollover_already_ran", fmt.Errorf("rollover already ran for %s", day))
			}
			return fmt.Errorf("create rollover marker: %w", err)
		}

		carried, err := s.trackerRepo.MarkStatus(ctx, txx, types.TrackerStatusCurrent, types.TrackerStatusPast)
		if err != nil {
			return fmt.Errorf("retire current trackers: %w", err)
		}

		templates, err := s.taskRepo.ListRecurring(ctx, txx)
		if err != nil {
			return fmt.Errorf("load recurring tasks: %w", err)
		}
		newTasks := make([]*types.Task, 0, len(templates))
		for _, tpl := range templates {
			if tpl == nil || !tpl.RepeatsOn(weekday) {
				continue
			}
			// Fresh instance, not a template: Repeat stays empty so the
			// copy is not re-seeded on the next rollover.
			newTasks = append(newTasks, &types.Task{
				ID:           uuid.New(),
				Task:         tpl.Task,
				CategoryID:   tpl.CategoryID,
				Done:         false,
				AssignedDate: now,
			})
		}
		seededIDs := make([]uuid.UUID, 0, len(newTasks))
		if len(newTasks) > 0 {
			if _, err := s.taskRepo.Create(ctx, txx, newTasks); err != nil {
				return fmt.Errorf("seed tasks: %w", err)
			}
			newTrackers := make([]*types.TaskTracker, 0, len(newTasks))
			for _, t := range newTasks {
				seededIDs = append(seededIDs, t.ID)
				newTrackers = append(newTrackers, &types.TaskTracker{
					ID:     uuid.New(),
					Date:   now,
					TaskID: t.ID,
					Status: types.TrackerStatusCurrent,
				})
			}
			if _, err := s.trackerRepo.Create(ctx, txx, newTrackers); err != nil {
				return fmt.Errorf("seed trackers: %w", err)
			}
		}

		if err := s.runRepo.UpdateFields(ctx, txx, run.ID, map[string]interface{}{
			"carried": int(carried),
			"seeded":  len(newTasks),
		}); err != nil {
			return fmt.Errorf("update rollover marker: %w", err)
		}

		result = types.RolloverResult{
			Day:           day,
			Carried:       int(carried),
			Seeded:        len(newTasks),
			SeededTaskIDs: seededIDs,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("Day rollover complete", "day", day, "carried", result.Carried, "seeded", result.Seeded)
	return &result, nil
}
