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

// SubjectUpdate carries the fields a partial subject update may change.
type SubjectUpdate struct {
	Name     *string
	Standard *string
}

type SubjectService interface {
	Create(ctx context.Context, tx *gorm.DB, subject *types.Subject) (*types.Subject, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subject, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd SubjectUpdate) (*types.Subject, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type subjectService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	chapterRepo repos.ChapterRepo
	topicRepo   repos.TopicRepo
}

func NewSubjectService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	chapterRepo repos.ChapterRepo,
	topicRepo repos.TopicRepo,
) SubjectService {
	return &subjectService{
		db:          db,
		log:         baseLog.With("service", "SubjectService"),
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
		topicRepo:   topicRepo,
	}
}

func (s *subjectService) Create(ctx context.Context, tx *gorm.DB, subject *types.Subject) (*types.Subject, error) {
	if subject == nil {
		return nil, apierr.BadRequest("invalid_subject", fmt.Errorf("missing subject payload"))
	}
	subject.Name = strings.TrimSpace(subject.Name)
	subject.Standard = strings.TrimSpace(subject.Standard)
	if subject.Name == "" {
		return nil, apierr.BadRequest("invalid_subject", fmt.Errorf("missing subject name"))
	}
	if subject.Standard == "" {
		return nil, apierr.BadRequest("invalid_subject", fmt.Errorf("missing subject standard"))
	}

	subject.ID = uuid.New()
	if _, err := s.subjectRepo.Create(ctx, tx, []*types.Subject{subject}); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Subject, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing subject id"))
	}
	subjects, err := s.subjectRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("subject %s not found", id))
	}
	return subjects[0], nil
}

func (s *subjectService) List(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error) {
	subjects, err := s.subjectRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd SubjectUpdate) (*types.Subject, error) {
	existing, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apierr.BadRequest("invalid_subject", fmt.Errorf("subject name cannot be empty"))
		}
		updates["name"] = name
	}
	if upd.Standard != nil {
		standard := strings.TrimSpace(*upd.Standard)
		if standard == "" {
			return nil, apierr.BadRequest("invalid_subject", fmt.Errorf("subject standard cannot be empty"))
		}
		updates["standard"] = standard
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.subjectRepo.UpdateFields(ctx, tx, id, updates); err != nil {
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return s.Get(ctx, tx, id)
}

// Delete removes the subject together with its chapters and their topics.
func (s *subjectService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if id == uuid.Nil {
		return apierr.BadRequest("missing_id", fmt.Errorf("missing subject id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		subjects, err := s.subjectRepo.GetByIDs(ctx, txx, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load subject: %w", err)
		}
		if len(subjects) == 0 {
			return apierr.NotFound("not_found", fmt.Errorf("subject %s not found", id))
		}

		chapters, err := s.chapterRepo.GetBySubjectIDs(ctx, txx, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load chapters: %w", err)
		}
		chapterIDs := make([]uuid.UUID, 0, len(chapters))
		for _, ch := range chapters {
			chapterIDs = append(chapterIDs, ch.ID)
		}

		if _, err := s.topicRepo.DeleteByChapterIDs(ctx, txx, chapterIDs); err != nil {
			return fmt.Errorf("delete topics: %w", err)
		}
		if _, err := s.chapterRepo.DeleteBySubjectIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete chapters: %w", err)
		}
		if _, err := s.subjectRepo.DeleteByIDs(ctx, txx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
}
