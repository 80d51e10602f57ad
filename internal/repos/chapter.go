package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type ChapterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, chapters []*types.Chapter) ([]*types.Chapter, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Chapter, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error)
	GetBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.Chapter, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
	DeleteBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) (int64, error)
}

type chapterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) ChapterRepo {
	return &chapterRepo{db: db, log: baseLog.With("repo", "ChapterRepo")}
}

func (cr *chapterRepo) Create(ctx context.Context, tx *gorm.DB, chapters []*types.Chapter) ([]*types.Chapter, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(chapters) == 0 {
		return []*types.Chapter{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (cr *chapterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Chapter, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Chapter
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

// ListAll returns every chapter ordered by owning subject then sequence
// number, the order the chapter-with-subject view is served in.
func (cr *chapterRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Chapter
	if err := transaction.WithContext(ctx).
		Order("subject_id ASC, seq_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chapterRepo) GetBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.Chapter, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Chapter
	if len(subjectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Order("seq_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *chapterRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
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
		Model(&types.Chapter{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (cr *chapterRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Chapter{})
	return res.RowsAffected, res.Error
}

func (cr *chapterRepo) DeleteBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(subjectIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Delete(&types.Chapter{})
	return res.RowsAffected, res.Error
}
