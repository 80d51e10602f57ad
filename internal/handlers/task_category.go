package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type TaskCategoryHandler struct {
	log             *logger.Logger
	categoryService services.TaskCategoryService
}

func NewTaskCategoryHandler(log *logger.Logger, categoryService services.TaskCategoryService) *TaskCategoryHandler {
	return &TaskCategoryHandler{
		log:             log.With("handler", "TaskCategoryHandler"),
		categoryService: categoryService,
	}
}

// GET /api/tasks/category
func (h *TaskCategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"categories": categories})
}

// POST /api/tasks/category
func (h *TaskCategoryHandler) Create(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required,min=1"`
	}
	if !BindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), nil, &types.TaskCategory{
		Category: req.Category,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"category": category})
}

// DELETE /api/tasks/category?id= — rejected while tasks still reference it.
func (h *TaskCategoryHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), nil, id); err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
