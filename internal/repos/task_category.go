package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskCategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.TaskCategory) ([]*types.TaskCategory, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.TaskCategory, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TaskCategory, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
}

type taskCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskCategoryRepo(db *gorm.DB, baseLog *logger.Logger) TaskCategoryRepo {
	return &taskCategoryRepo{db: db, log: baseLog.With("repo", "TaskCategoryRepo")}
}

func (cr *taskCategoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.TaskCategory) ([]*types.TaskCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(categories) == 0 {
		return []*types.TaskCategory{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (cr *taskCategoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.TaskCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.TaskCategory
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

func (cr *taskCategoryRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TaskCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.TaskCategory
	if err := transaction.WithContext(ctx).
		Order("category ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *taskCategoryRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.TaskCategory{})
	return res.RowsAffected, res.Error
}
