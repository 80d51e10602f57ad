package server

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/studytrack-backend/internal/handlers"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/middleware"
)

type RouterConfig struct {
	Log                 *logger.Logger
	CORSOrigins         []string
	SubjectHandler      *handlers.SubjectHandler
	ChapterHandler      *handlers.ChapterHandler
	TopicHandler        *handlers.TopicHandler
	CatalogHandler      *handlers.CatalogHandler
	TaskHandler         *handlers.TaskHandler
	TaskCategoryHandler *handlers.TaskCategoryHandler
	TrackerHandler      *handlers.TrackerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidatorTagNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Subjects
		api.GET("/subjects", cfg.SubjectHandler.List)
		api.POST("/subjects", cfg.SubjectHandler.Create)
		api.PUT("/subjects", cfg.SubjectHandler.Update)
		api.DELETE("/subjects", cfg.SubjectHandler.Delete)

		// Chapters (plain CRUD plus the aggregated views via ?type= / ?id=)
		api.GET("/chapters", cfg.ChapterHandler.List)
		api.POST("/chapters", cfg.ChapterHandler.Create)
		api.PUT("/chapters", cfg.ChapterHandler.Update)
		api.DELETE("/chapters", cfg.ChapterHandler.Delete)

		// Topics
		api.GET("/topics", cfg.TopicHandler.List)
		api.POST("/topics", cfg.TopicHandler.Create)
		api.PUT("/topics", cfg.TopicHandler.Update)
		api.DELETE("/topics", cfg.TopicHandler.Delete)

		// Full nested catalog
		api.GET("/data", cfg.CatalogHandler.Data)

		// Tasks
		api.GET("/tasks/task", cfg.TaskHandler.List)
		api.POST("/tasks/task", cfg.TaskHandler.Create)
		api.PUT("/tasks/task", cfg.TaskHandler.Update)
		api.DELETE("/tasks/task", cfg.TaskHandler.Delete)

		// Day packup
		api.PUT("/tasks", cfg.TaskHandler.Packup)

		// Trackers
		api.GET("/tasks/tracker", cfg.TrackerHandler.Summary)
		api.POST("/tasks/tracker", cfg.TrackerHandler.Create)
		api.PUT("/tasks/tracker", cfg.TrackerHandler.Update)

		// Categories
		api.GET("/tasks/category", cfg.TaskCategoryHandler.List)
		api.POST("/tasks/category", cfg.TaskCategoryHandler.Create)
		api.DELETE("/tasks/category", cfg.TaskCategoryHandler.Delete)
	}

	return router
}

// registerValidatorTagNames makes validation errors report JSON field names
// instead of Go struct field names.
func registerValidatorTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
