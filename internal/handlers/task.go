package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskHandler struct {
	log             *logger.Logger
	taskService     services.TaskService
	rolloverService services.RolloverService
}

func NewTaskHandler(log *logger.Logger, taskService services.TaskService, rolloverService services.RolloverService) *TaskHandler {
	return &TaskHandler{
		log:             log.With("handler", "TaskHandler"),
		taskService:     taskService,
		rolloverService: rolloverService,
	}
}

// GET /api/tasks/task, or ?id= for a single task
func (h *TaskHandler) List(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("query parameter id must be a uuid"))
			return
		}
		task, err := h.taskService.Get(c.Request.Context(), nil, id)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"task": task})
		return
	}
	tasks, err := h.taskService.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

// POST /api/tasks/task
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Task         string     `json:"task" binding:"required,min=1"`
		CategoryID   uuid.UUID  `json:"category_id" binding:"required"`
		AssignedDate *time.Time `json:"assigned_date"`
		Repeat       []string   `json:"repeat"`
	}
	if !BindJSON(c, &req) {
		return
	}
	task := &types.Task{
		Task:       req.Task,
		CategoryID: req.CategoryID,
		Repeat:     datatypes.NewJSONSlice(req.Repeat),
	}
	if req.AssignedDate != nil {
		task.AssignedDate = *req.AssignedDate
	}
	created, err := h.taskService.Create(c.Request.Context(), nil, task)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"task": created})
}

// PUT /api/tasks/task
func (h *TaskHandler) Update(c *gin.Context) {
	var req struct {
		ID           uuid.UUID  `json:"id" binding:"required"`
		Task         *string    `json:"task"`
		CategoryID   *uuid.UUID `json:"category_id"`
		Done         *bool      `json:"done"`
		AssignedDate *time.Time `json:"assigned_date"`
		Repeat       *[]string  `json:"repeat"`
	}
	if !BindJSON(c, &req) {
		return
	}
	task, err := h.taskService.Update(c.Request.Context(), nil, req.ID, services.TaskUpdate{
		Task:         req.Task,
		CategoryID:   req.CategoryID,
		Done:         req.Done,
		AssignedDate: req.AssignedDate,
		Repeat:       req.Repeat,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"task": task})
}

// DELETE /api/tasks/task?id=
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), nil, id); err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// PUT /api/tasks — {"type": "dayPackup"} runs the day rollover.
func (h *TaskHandler) Packup(c *gin.Context) {
	var req struct {
		Type string `json:"type" binding:"required,oneof=dayPackup"`
	}
	if !BindJSON(c, &req) {
		return
	}
	result, err := h.rolloverService.Run(c.Request.Context(), time.Now())
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"rollover": result})
}
