package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TrackerHandler struct {
	log            *logger.Logger
	trackerService services.TrackerService
}

func NewTrackerHandler(log *logger.Logger, trackerService services.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		log:            log.With("handler", "TrackerHandler"),
		trackerService: trackerService,
	}
}

// GET /api/tasks/tracker?status=current|past|all — "current" returns the
// single live-bucket summary, the other scopes one rollup per day.
func (h *TrackerHandler) Summary(c *gin.Context) {
	status := c.DefaultQuery("status", types.TrackerStatusCurrent)
	switch status {
	case types.TrackerStatusCurrent:
		summary, err := h.trackerService.CurrentSummary(c.Request.Context(), nil, time.Now())
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"summary": summary})
	case types.TrackerStatusPast, services.TrackerScopeAll:
		summaries, err := h.trackerService.DaySummaries(c.Request.Context(), nil, status)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"summaries": summaries})
	default:
		RespondError(c, http.StatusBadRequest, "invalid_status", fmt.Errorf("status must be current, past or all"))
	}
}

// POST /api/tasks/tracker
func (h *TrackerHandler) Create(c *gin.Context) {
	var req struct {
		TaskID uuid.UUID  `json:"task_id" binding:"required"`
		Date   *time.Time `json:"date"`
		Status string     `json:"status" binding:"omitempty,oneof=current past"`
	}
	if !BindJSON(c, &req) {
		return
	}
	tracker := &types.TaskTracker{
		TaskID: req.TaskID,
		Status: req.Status,
	}
	if req.Date != nil {
		tracker.Date = *req.Date
	}
	created, err := h.trackerService.Create(c.Request.Context(), nil, tracker)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"tracker": created})
}

// PUT /api/tasks/tracker
func (h *TrackerHandler) Update(c *gin.Context) {
	var req struct {
		ID     uuid.UUID  `json:"id" binding:"required"`
		Date   *time.Time `json:"date"`
		Status *string    `json:"status" binding:"omitempty,oneof=current past"`
	}
	if !BindJSON(c, &req) {
		return
	}
	tracker, err := h.trackerService.Update(c.Request.Context(), nil, req.ID, services.TrackerUpdate{
		Date:   req.Date,
		Status: req.Status,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"tracker": tracker})
}
