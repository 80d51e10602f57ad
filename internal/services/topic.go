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

// TopicUpdate carries the fields a partial topic update may change.
type TopicUpdate struct {
	Name      *string
	ChapterID *uuid.UUID
	SeqNumber *int
	Done      *bool
	Boards    *bool
	Mains     *bool
	Advanced  *bool
}

type TopicService interface {
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TopicUpdate) (*types.Topic, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type topicService struct {
	db          *gorm.DB
	log         *logger.Logger
	chapterRepo repos.ChapterRepo
	topicRepo   repos.TopicRepo
}

func NewTopicService(
	db *gorm.DB,
	baseLog *logger.Logger,
	chapterRepo repos.ChapterRepo,
	topicRepo repos.TopicRepo,
) TopicService {
	return &topicService{
		db:          db,
		log:         baseLog.With("service", "TopicService"),
		chapterRepo: chapterRepo,
		topicRepo:   topicRepo,
	}
}

func (s *topicService) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) (*types.Topic, error) {
	if topic == nil {
		return nil, apierr.BadRequest("invalid_topic", fmt.Errorf("missing topic payload"))
	}
	topic.Name = strings.TrimSpace(topic.Name)
	if topic.Name == "" {
		return nil, apierr.BadRequest("invalid_topic", fmt.Errorf("missing topic name"))
	}
	if topic.ChapterID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_topic", fmt.Errorf("missing chapter id"))
	}
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	chapters, err := s.chapterRepo.GetByIDs(ctx, transaction, []uuid.UUID{topic.ChapterID})
	if err != nil {
		return nil, fmt.Errorf("load chapter: %w", err)
	}
	if len(chapters) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("chapter %s not found", topic.ChapterID))
	}

	topic.ID = uuid.New()
	topic.Chapter = nil
	if _, err := s.topicRepo.Create(ctx, transaction, []*types.Topic{topic}); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

func (s *topicService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error) {
	if id == uuid.Nil {
		return nil, apierr.BadRequest("missing_id", fmt.Errorf("missing topic id"))
	}
	topics, err := s.topicRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("topic %s not found", id))
	}
	return topics[0], nil
}

func (s *topicService) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	topics, err := s.topicRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	return topics, nil
}

func (s *topicService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, upd TopicUpdate) (*types.Topic, error) {
	existing, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apierr.BadRequest("invalid_topic", fmt.Errorf("topic name cannot be empty"))
		}
		updates["name"] = name
	}
	if upd.ChapterID != nil {
		if *upd.ChapterID == uuid.Nil {
			return nil, apierr.BadRequest("invalid_topic", fmt.Errorf("chapter id cannot be empty"))
		}
		chapters, err := s.chapterRepo.GetByIDs(ctx, tx, []uuid.UUID{*upd.ChapterID})
		if err != nil {
			return nil, fmt.Errorf("load chapter: %w", err)
		}
		if len(chapters) == 0 {
			return nil, apierr.NotFound("not_found", fmt.Errorf("chapter %s not found", *upd.ChapterID))
		}
		updates["chapter_id"] = *upd.ChapterID
	}
	if upd.SeqNumber != nil {
		updates["seq_number"] = *upd.SeqNumber
	}
	if upd.Done != nil {
		updates["done"] = *upd.Done
	}
	if upd.Boards != nil {
		updates["boards"] = *upd.Boards
	}
	if upd.Mains != nil {
		updates["mains"] = *upd.Mains
	}
	if upd.Advanced != nil {
		updates["advanced"] = *upd.Advanced
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.topicRepo.UpdateFields(ctx, tx, id, updates); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return s.Get(ctx, tx, id)
}

func (s *topicService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if _, err := s.Get(ctx, tx, id); err != nil {
		return err
	}
	if _, err := s.topicRepo.DeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
