package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type RolloverRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*types.RolloverRun) ([]*types.RolloverRun, error)
	GetByDay(ctx context.Context, tx *gorm.DB, day string) (*types.RolloverRun, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RolloverRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type rolloverRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRolloverRunRepo(db *gorm.DB, baseLog *logger.Logger) RolloverRunRepo {
	return &rolloverRunRepo{db: db, log: baseLog.With("repo", "RolloverRunRepo")}
}

func (rrr *rolloverRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*types.RolloverRun) ([]*types.RolloverRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = rrr.db
	}
	if len(runs) == 0 {
		return []*types.RolloverRun{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetByDay returns nil without error when no run is recorded for the day.
func (rrr *rolloverRunRepo) GetByDay(ctx context.Context, tx *gorm.DB, day string) (*types.RolloverRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = rrr.db
	}
	var run types.RolloverRun
	err := transaction.WithContext(ctx).
		Where("day = ?", day).
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (rrr *rolloverRunRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RolloverRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = rrr.db
	}
	var results []*types.RolloverRun
	if err := transaction.WithContext(ctx).
		Order("day ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rrr *rolloverRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = rrr.db
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
		Model(&types.RolloverRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}
