package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskCategoryService interface {
	Create(ctx context.Context, tx *gorm.DB, category *types.TaskCategory) (*types.TaskCategory, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.TaskCategory, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type taskCategoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.TaskCategoryRepo
	taskRepo     repos.TaskRepo
}

func NewTaskCategoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	categoryRepo repos.TaskCategoryRepo,
	taskRepo repos.TaskRepo,
) TaskCategoryService {
	return &taskCategoryService{
		db:           db,
		log:          baseLog.With("service", "TaskCategoryService"),
		categoryRepo: categoryRepo,
		taskRepo:     taskRepo,
	}
}

func (s *taskCategoryService) Create(ctx context.Context, tx *gorm.DB, category *types.TaskCategory) (*types.TaskCategory, error) {
	if category == nil {
		return nil, apierr.BadRequest("invalid_category", fmt.Errorf("missing category payload"))
	}
	category.Category = strings.TrimSpace(category.Category)
	if category.Category == "" {
		return nil, apierr.BadRequest("invalid_category", fmt.Errorf("missing category label"))
	}

	category.ID = uuid.New()
	if _, err := s.categoryRepo.Create(ctx, tx, []*types.TaskCategory{category}); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *taskCategoryService) List(ctx context.Context, tx *gorm.DB) ([]*types.TaskCategory, error) {
	categories, err := s.categoryRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return categories, nil
}

// Delete refuses to remove a category that tasks still reference.
func (s *taskCategoryService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if id == uuid.Nil {
		return apierr.BadRequest("missing_id", fmt.Errorf("missing category id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, transaction, []uuid.UUID{id})
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if len(categories) == 0 {
		return apierr.NotFound("not_found", fmt.Errorf("category %s not found", id))
	}

	inUse, err := s.taskRepo.CountByCategoryID(ctx, transaction, id)
	if err != nil {
		return fmt.Errorf("count category tasks: %w", err)
	}
	if inUse > 0 {
		return apierr.Conflict("category_in_use", fmt.Errorf("category %s is referenced by %d tasks", id, inUse))
	}

	if _, err := s.categoryRepo.DeleteByIDs(ctx, transaction, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
