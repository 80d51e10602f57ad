package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Topic, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	GetByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) ([]*types.Topic, error)
	CountByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) (total int64, done int64, err error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error)
	DeleteByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) (int64, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (tr *topicRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
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

func (tr *topicRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Order("chapter_id ASC, seq_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) GetByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Topic
	if len(chapterIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("chapter_id IN ?", chapterIDs).
		Order("seq_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CountByChapterID aggregates the chapter's topic totals in the store.
// The CASE form works on both postgres and sqlite.
func (tr *topicRepo) CountByChapterID(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if chapterID == uuid.Nil {
		return 0, 0, nil
	}
	var row struct {
		Total int64
		Done  int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Topic{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN done THEN 1 ELSE 0 END), 0) AS done").
		Where("chapter_id = ?", chapterID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Total, row.Done, nil
}

func (tr *topicRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Topic{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (tr *topicRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Topic{})
	return res.RowsAffected, res.Error
}

func (tr *topicRepo) DeleteByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(chapterIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("chapter_id IN ?", chapterIDs).
		Delete(&types.Topic{})
	return res.RowsAffected, res.Error
}
