package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Task, error)
	ListRecurring(ctx context.Context, tx *gorm.DB) ([]*types.Task, error)
	CountByCategoryID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (tr *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Task
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

func (tr *taskRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Order("assigned_date DESC, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRecurring returns tasks that carry a repeat set at all. Matching a
// concrete weekday against the JSON payload is done by the caller so the
// query stays portable across postgres and sqlite.
func (tr *taskRepo) ListRecurring(ctx context.Context, tx *gorm.DB) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("repeat IS NOT NULL").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) CountByCategoryID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if categoryID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (tr *taskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
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
		Model(&types.Task{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (tr *taskRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Task{})
	return res.RowsAffected, res.Error
}
