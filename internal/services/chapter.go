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

// ChapterUpdate carries the fields a partial chapter update may change.
type ChapterUpdate struct {
	Name           *string
	SubjectID      *uuid.UUID
	SeqNumber      *int
	Done           *bool
	SelectionDiary *bool
	OnePager       *bool
	DPP            *bool
	Module         *bool
	PYQ            *bool
	ExtraMaterial  *bool
}

type ChapterService interface {
	Create(ctx context.Context, tx *gorm.DB, chapter *types.Chapter) (*types.Chapter, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chapter, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd ChapterUpdate) (*types.Chapter, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type chapterService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	chapterRepo repos.ChapterRepo
	topicRepo   repos.TopicRepo
}

func NewChapterService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	chapterRepo repos.ChapterRepo,
	topicRepo repos.TopicRepo,
) ChapterService {
	return &chapterService{
		db:          db,
		log:         baseLog.With("service", "ChapterService"),
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		topicRepo:   topicRepo,
	}
}

func (s *chapterService) Create(ctx context.Context, tx *gorm.DB, chapter *types.Chapter) (*types.Chapter, error) {
	if chapter == nil {
		return nil, apierr.BadRequest("invalid_chapter", fmt.Errorf("missing chapter payload"))
	}
	chapter.Name = strings.TrimSpace(chapter.Name)
	if chapter.Name == "" {
		return nil, apierr.BadRequest("invalid_chapter", fmt.Errorf("missing chapter name"))
	}
	if chapter.SubjectID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_chapter", fmt.Errorf("missing subject id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	subjects, err := s.subjectRepo.GetByIDs(ctx, transaction, []uuid.UUID{chapter.SubjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("subject %s not found", chapter.SubjectID))
	}

	chapter.ID = uuid.New()
	chapter.Subject = nil
	if _, err := s.chapterRepo.Create(ctx, transaction, []*types.Chapter{chapter}); err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}
	return chapter, nil
}

func (s *chapterService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Chapter, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing chapter id"))
	}
	chapters, err := s.chapterRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load chapter: %w", err)
	}
	if len(chapters) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("chapter %s not found", id))
	}
	return chapters[0], nil
}

func (s *chapterService) List(ctx context.Context, tx *gorm.DB) ([]*types.Chapter, error) {
	chapters, err := s.chapterRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}
	return chapters, nil
}

func (s *chapterService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd ChapterUpdate) (*types.Chapter, error) {
	existing, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apierr.BadRequest("invalid_chapter", fmt.Errorf("chapter name cannot be empty"))
		}
		updates["name"] = name
	}
	if upd.SubjectID != nil {
		if *upd.SubjectID == uuid.Nil {
			return nil, apierr.BadRequest("invalid_chapter", fmt.Errorf("subject id cannot be empty"))
		}
		subjects, err := s.subjectRepo.GetByIDs(ctx, tx, []uuid.UUID{*upd.SubjectID})
		if err != nil {
			return nil, fmt.Errorf("load subject: %w", err)
		}
		if len(subjects) == 0 {
			return nil, apierr.NotFound("not_found", fmt.Errorf("subject %s not found", *upd.SubjectID))
		}
		updates["subject_id"] = *upd.SubjectID
	}
	if upd.SeqNumber != nil {
		updates["seq_number"] = *upd.SeqNumber
	}
	if upd.Done != nil {
		updates["done"] = *upd.Done
	}
	if upd.SelectionDiary != nil {
		updates["selection_diary"] = *upd.SelectionDiary
	}
	if upd.OnePager != nil {
		updates["one_pager"] = *upd.OnePager
	}
	if upd.DPP != nil {
		updates["dpp"] = *upd.DPP
	}
	if upd.Module != nil {
		updates["module"] = *upd.Module
	}
	if upd.PYQ != nil {
		updates["pyq"] = *upd.PYQ
	}
	if upd.ExtraMaterial != nil {
		updates["extra_material"] = *upd.ExtraMaterial
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.chapterRepo.UpdateFields(ctx, tx, id, updates); err != nil {
		return nil, fmt.Errorf("update chapter: %w", err)
	}
	return s.Get(ctx, tx, id)
}

// Delete removes the chapter together with its topics.
func (s *chapterService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if id == uuid.Nil {
		return apierr.BadRequest("missing_id", fmt.Errorf("missing chapter id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		chapters, err := s.chapterRepo.GetByIDs(ctx, txx, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load chapter: %w", err)
		}
		if len(chapters) == 0 {
			return apierr.NotFound("not_found", fmt.Errorf("chapter %s not found", id))
		}
		if _, err := s.topicRepo.DeleteByChapterIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete topics: %w", err)
		}
		if _, err := s.chapterRepo.DeleteByIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete chapter: %w", err)
		}
		return nil
	})
}
