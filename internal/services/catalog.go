package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/types"
)

// CatalogService is the query half of the aggregation engine for the
// subject → chapter → topic hierarchy. All read models are computed at
// query time; nothing is materialized.
type CatalogService interface {
	ListChaptersWithSubject(ctx context.Context, tx *gorm.DB) ([]types.ChapterWithSubject, error)
	ListSubjectsWithChapters(ctx context.Context, tx *gorm.DB) ([]types.SubjectWithChapters, error)
	BuildNestedCatalog(ctx context.Context, tx *gorm.DB) ([]types.CatalogSubject, error)
	ChapterProgress(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) (*types.ChapterProgress, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	chapterRepo repos.ChapterRepo
	topicRepo   repos.TopicRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	chapterRepo repos.ChapterRepo,
	topicRepo repos.TopicRepo,
) CatalogService {
	return &catalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		topicRepo:   topicRepo,
	}
}

func (s *catalogService) ListChaptersWithSubject(ctx context.Context, tx *gorm.DB) ([]types.ChapterWithSubject, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	chapters, err := s.chapterRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	subjects, err := s.subjectRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return projectChaptersWithSubject(chapters, subjects), nil
}

func (s *catalogService) ListSubjectsWithChapters(ctx context.Context, tx *gorm.DB) ([]types.SubjectWithChapters, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	subjects, err := s.subjectRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	chapters, err := s.chapterRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	return projectSubjectsWithChapters(subjects, chapters), nil
}

func (s *catalogService) BuildNestedCatalog(ctx context.Context, tx *gorm.DB) ([]types.CatalogSubject, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	subjects, err := s.subjectRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	chapters, err := s.chapterRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	topics, err := s.topicRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	return projectNestedCatalog(subjects, chapters, topics), nil
}

func (s *catalogService) ChapterProgress(ctx context.Context, tx *gorm.DB, chapterID uuid.UUID) (*types.ChapterProgress, error) {
	if chapterID == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing chapter id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	chapters, err := s.chapterRepo.GetByIDs(ctx, transaction, []uuid.UUID{chapterID})
	if err != nil {
		return nil, fmt.Errorf("load chapter: %w", err)
	}
	if len(chapters) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("chapter %s not found", chapterID))
	}
	total, done, err := s.topicRepo.CountByChapterID(ctx, transaction, chapterID)
	if err != nil {
		return nil, fmt.Errorf("count topics: %w", err)
	}
	progress := projectChapterProgress(chapterID, int(total), int(done))
	return &progress, nil
}
