package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TopicHandler struct {
	log          *logger.Logger
	topicService services.TopicService
}

func NewTopicHandler(log *logger.Logger, topicService services.TopicService) *TopicHandler {
	return &TopicHandler{
		log:          log.With("handler", "TopicHandler"),
		topicService: topicService,
	}
}

// GET /api/topics, or ?id= for a single topic
func (h *TopicHandler) List(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("query parameter id must be a uuid"))
			return
		}
		topic, err := h.topicService.Get(c.Request.Context(), nil, id)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"topic": topic})
		return
	}
	topics, err := h.topicService.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

// POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req struct {
		Name      string    `json:"name" binding:"required,min=1"`
		ChapterID uuid.UUID `json:"chapter_id" binding:"required"`
		SeqNumber int       `json:"seq_number"`
		Done      bool      `json:"done"`
		Boards    bool      `json:"boards"`
		Mains     bool      `json:"mains"`
		Advanced  bool      `json:"advanced"`
	}
	if !BindJSON(c, &req) {
		return
	}
	topic, err := h.topicService.Create(c.Request.Context(), nil, &types.Topic{
		Name:      req.Name,
		ChapterID: req.ChapterID,
		SeqNumber: req.SeqNumber,
		Done:      req.Done,
		Boards:    req.Boards,
		Mains:     req.Mains,
		Advanced:  req.Advanced,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"topic": topic})
}

// PUT /api/topics
func (h *TopicHandler) Update(c *gin.Context) {
	var req struct {
		ID        uuid.UUID  `json:"id" binding:"required"`
		Name      *string    `json:"name"`
		ChapterID *uuid.UUID `json:"chapter_id"`
		SeqNumber *int       `json:"seq_number"`
		Done      *bool      `json:"done"`
		Boards    *bool      `json:"boards"`
		Mains     *bool      `json:"mains"`
		Advanced  *bool      `json:"advanced"`
	}
	if !BindJSON(c, &req) {
		return
	}
	topic, err := h.topicService.Update(c.Request.Context(), nil, req.ID, services.TopicUpdate{
		Name:      req.Name,
		ChapterID: req.ChapterID,
		SeqNumber: req.SeqNumber,
		Done:      req.Done,
		Boards:    req.Boards,
		Mains:     req.Mains,
		Advanced:  req.Advanced,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"topic": topic})
}

// DELETE /api/topics?id=
func (h *TopicHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.topicService.Delete(c.Request.Context(), nil, id); err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
