package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskTrackerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, trackers []*types.TaskTracker) ([]*types.TaskTracker, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.TaskTracker, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TaskTracker, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.TaskTracker, error)
	ListByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.TaskTracker, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	MarkStatus(ctx context.Context, tx *gorm.DB, from string, to string) (int64, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
	DeleteByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) (int64, error)
}

type taskTrackerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskTrackerRepo(db *gorm.DB, baseLog *logger.Logger) TaskTrackerRepo {
	return &taskTrackerRepo{db: db, log: baseLog.With("repo", "TaskTrackerRepo")}
}

func (ttr *taskTrackerRepo) Create(ctx context.Context, tx *gorm.DB, trackers []*types.TaskTracker) ([]*types.TaskTracker, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	if len(trackers) == 0 {
		return []*types.TaskTracker{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&trackers).Error; err != nil {
		return nil, err
	}
	return trackers, nil
}

func (ttr *taskTrackerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.TaskTracker, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	var results []*types.TaskTracker
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ttr *taskTrackerRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TaskTracker, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	var results []*types.TaskTracker
	if err := transaction.WithContext(ctx).
		Order("date ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ttr *taskTrackerRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.TaskTracker, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	var results []*types.TaskTracker
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("date ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ttr *taskTrackerRepo) ListByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) ([]*types.TaskTracker, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	var results []*types.TaskTracker
	if len(taskIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Order("date ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ttr *taskTrackerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&types.TaskTracker{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// MarkStatus flips every tracker in status `from` to status `to` in one
// statement. The rollover uses it to retire the current day.
func (ttr *taskTrackerRepo) MarkStatus(ctx context.Context, tx *gorm.DB, from string, to string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.TaskTracker{}).
		Where("status = ?", from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (ttr *taskTrackerRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.TaskTracker{})
	return res.RowsAffected, res.Error
}

func (ttr *taskTrackerRepo) DeleteByTaskIDs(ctx context.Context, tx *gorm.DB, taskIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ttr.db
	}
	if len(taskIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Delete(&types.TaskTracker{})
	return res.RowsAffected, res.Error
}
