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

type ChapterHandler struct {
	log            *logger.Logger
	chapterService services.ChapterService
	catalogService services.CatalogService
}

func NewChapterHandler(log *logger.Logger, chapterService services.ChapterService, catalogService services.CatalogService) *ChapterHandler {
	return &ChapterHandler{
		log:            log.With("handler", "ChapterHandler"),
		chapterService: chapterService,
		catalogService: catalogService,
	}
}

// GET /api/chapters?type=all|subjectWise, or ?id= for one chapter with its
// progress rollup.
func (h *ChapterHandler) List(c *gin.Context) {
	if raw := strings.TrimSpace(c.Query("id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("query parameter id must be a uuid"))
			return
		}
		chapter, err := h.chapterService.Get(c.Request.Context(), nil, id)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		progress, err := h.catalogService.ChapterProgress(c.Request.Context(), nil, id)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"chapter": chapter, "progress": progress})
		return
	}

	switch c.DefaultQuery("type", "all") {
	case "all":
		chapters, err := h.catalogService.ListChaptersWithSubject(c.Request.Context(), nil)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"chapters": chapters})
	case "subjectWise":
		subjects, err := h.catalogService.ListSubjectsWithChapters(c.Request.Context(), nil)
		if err != nil {
			RespondServiceError(c, h.log, err)
			return
		}
		RespondOK(c, gin.H{"subjects": subjects})
	default:
		RespondError(c, http.StatusBadRequest, "invalid_type", fmt.Errorf("type must be all or subjectWise"))
	}
}

// POST /api/chapters
func (h *ChapterHandler) Create(c *gin.Context) {
	var req struct {
		Name           string    `json:"name" binding:"required,min=1"`
		SubjectID      uuid.UUID `json:"subject_id" binding:"required"`
		SeqNumber      int       `json:"seq_number"`
		Done           bool      `json:"done"`
		SelectionDiary bool      `json:"selection_diary"`
		OnePager       bool      `json:"one_pager"`
		DPP            bool      `json:"dpp"`
		Module         bool      `json:"module"`
		PYQ            bool      `json:"pyq"`
		ExtraMaterial  bool      `json:"extra_material"`
	}
	if !BindJSON(c, &req) {
		return
	}
	chapter, err := h.chapterService.Create(c.Request.Context(), nil, &types.Chapter{
		Name:           req.Name,
		SubjectID:      req.SubjectID,
		SeqNumber:      req.SeqNumber,
		Done:           req.Done,
		SelectionDiary: req.SelectionDiary,
		OnePager:       req.OnePager,
		DPP:            req.DPP,
		Module:         req.Module,
		PYQ:            req.PYQ,
		ExtraMaterial:  req.ExtraMaterial,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"chapter": chapter})
}

// PUT /api/chapters
func (h *ChapterHandler) Update(c *gin.Context) {
	var req struct {
		ID             uuid.UUID  `json:"id" binding:"required"`
		Name           *string    `json:"name"`
		SubjectID      *uuid.UUID `json:"subject_id"`
		SeqNumber      *int       `json:"seq_number"`
		Done           *bool      `json:"done"`
		SelectionDiary *bool      `json:"selection_diary"`
		OnePager       *bool      `json:"one_pager"`
		DPP            *bool      `json:"dpp"`
		Module         *bool      `json:"module"`
		PYQ            *bool      `json:"pyq"`
		ExtraMaterial  *bool      `json:"extra_material"`
	}
	if !BindJSON(c, &req) {
		return
	}
	chapter, err := h.chapterService.Update(c.Request.Context(), nil, req.ID, services.ChapterUpdate{
		Name:           req.Name,
		SubjectID:      req.SubjectID,
		SeqNumber:      req.SeqNumber,
		Done:           req.Done,
		SelectionDiary: req.SelectionDiary,
		OnePager:       req.OnePager,
		DPP:            req.DPP,
		Module:         req.Module,
		PYQ:            req.PYQ,
		ExtraMaterial:  req.ExtraMaterial,
	})
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"chapter": chapter})
}

// DELETE /api/chapters?id=
func (h *ChapterHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.chapterService.Delete(c.Request.Context(), nil, id); err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
