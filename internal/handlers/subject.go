package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type SubjectHandler struct {
	log            *logger.Logger
	subjectService services.SubjectService
}

func NewSubjectHandler(log *logger.Logger, subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		log:            log.With("handler", "SubjectHandler"),
		subjectService: subjectService,
	}
}

// GET /api/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectService.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"subjects": subjects})
}

// POST /api/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=1"`
		Standard string `json:"standard" binding:"required,min=1"`
	}
	if !BindJSON(c, &req) {
		return
	}
	subject, err := h.subjectService.Create(c.Request.Context(), nil, &types.Subject{
		Name:     req.Name,
		Standard: req.Standard,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"subject": subject})
}

// PUT /api/subjects
func (h *SubjectHandler) Update(c *gin.Context) {
	var req struct {
		ID       uuid.UUID `json:"id" binding:"required"`
		Name     *string   `json:"name"`
		Standard *string   `json:"standard"`
	}
	if !BindJSON(c, &req) {
		return
	}
	subject, err := h.subjectService.Update(c.Request.Context(), nil, req.ID, services.SubjectUpdate{
		Name:     req.Name,
		Standard: req.Standard,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"subject": subject})
}

// DELETE /api/subjects?id=
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.subjectService.Delete(c.Request.Context(), nil, id); err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
