package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Subject, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

func (sr *subjectRepo) Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(subjects) == 0 {
		return []*types.Subject{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (sr *subjectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Subject
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

func (sr *subjectRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Subject
	if err := transaction.WithContext(ctx).
		Order("standard ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subjectRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
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
		Model(&types.Subject{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (sr *subjectRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Subject{})
	return res.RowsAffected, res.Error
}
