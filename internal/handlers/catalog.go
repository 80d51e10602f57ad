package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/services"
)

type CatalogHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:            log.With("handler", "CatalogHandler"),
		catalogService: catalogService,
	}
}

// GET /api/data — the full subject → chapter → topic nesting.
func (h *CatalogHandler) Data(c *gin.Context) {
	catalog, err := h.catalogService.BuildNestedCatalog(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"data": catalog})
}
