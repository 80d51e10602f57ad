package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/clients/redis"
	"github.com/yungbote/studytrack-backend/internal/config"
	"github.com/yungbote/studytrack-backend/internal/db"
	"github.com/yungbote/studytrack-backend/internal/handlers"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/repos"
	"github.com/yungbote/studytrack-backend/internal/scheduler"
	"github.com/yungbote/studytrack-backend/internal/server"
	"github.com/yungbote/studytrack-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// Store
	var gdb *gorm.DB
	switch cfg.DBDriver {
	case "sqlite":
		sqliteService, err := db.NewSQLiteService(cfg, log)
		if err != nil {
			log.Fatal("SQLite init failed", "error", err)
		}
		if err := sqliteService.AutoMigrateAll(); err != nil {
			log.Fatal("SQLite auto migration failed", "error", err)
		}
		gdb = sqliteService.DB()
	default:
		postgresService, err := db.NewPostgresService(cfg, log)
		if err != nil {
			log.Fatal("Postgres init failed", "error", err)
		}
		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Fatal("Postgres auto migration failed", "error", err)
		}
		gdb = postgresService.DB()
	}

	// Redis day lock (optional)
	var dayLock *redis.DayLock
	if cfg.RedisAddr != "" {
		log.Info("Setting up Redis day lock from main...")
		dayLock, err = redis.NewDayLock(cfg.RedisAddr, log)
		if err != nil {
			log.Warn("Redis init failed, rollover runs without the day lock", "error", err)
			dayLock = nil
		} else {
			defer dayLock.Close()
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	subjectRepo := repos.NewSubjectRepo(gdb, log)
	chapterRepo := repos.NewChapterRepo(gdb, log)
	topicRepo := repos.NewTopicRepo(gdb, log)
	taskRepo := repos.NewTaskRepo(gdb, log)
	taskCategoryRepo := repos.NewTaskCategoryRepo(gdb, log)
	taskTrackerRepo := repos.NewTaskTrackerRepo(gdb, log)
	rolloverRunRepo := repos.NewRolloverRunRepo(gdb, log)

	// Services
	log.Info("Setting up Services from main...")
	subjectService := services.NewSubjectService(gdb, log, subjectRepo, chapterRepo, topicRepo)
	chapterService := services.NewChapterService(gdb, log, subjectRepo, chapterRepo, topicRepo)
	topicService := services.NewTopicService(gdb, log, chapterRepo, topicRepo)
	catalogService := services.NewCatalogService(gdb, log, subjectRepo, chapterRepo, topicRepo)
	taskService := services.NewTaskService(gdb, log, taskRepo, taskCategoryRepo, taskTrackerRepo)
	taskCategoryService := services.NewTaskCategoryService(gdb, log, taskCategoryRepo, taskRepo)
	trackerService := services.NewTrackerService(gdb, log, taskRepo, taskTrackerRepo)
	rolloverService := services.NewRolloverService(gdb, log, taskRepo, taskTrackerRepo, rolloverRunRepo, dayLock)

	// Handlers
	log.Info("Setting up Handlers from main...")
	subjectHandler := handlers.NewSubjectHandler(log, subjectService)
	chapterHandler := handlers.NewChapterHandler(log, chapterService, catalogService)
	topicHandler := handlers.NewTopicHandler(log, topicService)
	catalogHandler := handlers.NewCatalogHandler(log, catalogService)
	taskHandler := handlers.NewTaskHandler(log, taskService, rolloverService)
	taskCategoryHandler := handlers.NewTaskCategoryHandler(log, taskCategoryService)
	trackerHandler := handlers.NewTrackerHandler(log, trackerService)

	// Scheduler (optional time-based rollover)
	if cfg.RolloverSchedule != "" {
		log.Info("Setting up rollover schedule from main...", "at", cfg.RolloverSchedule)
		sched := scheduler.New(log)
		_, err := sched.ScheduleDaily(cfg.RolloverSchedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := rolloverService.Run(jobCtx, time.Now()); err != nil {
				log.Warn("Scheduled rollover did not run", "error", err)
			}
		})
		if err != nil {
			log.Fatal("Invalid ROLLOVER_SCHEDULE", "error", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		CORSOrigins:         cfg.CORSOrigins,
		SubjectHandler:      subjectHandler,
		ChapterHandler:      chapterHandler,
		TopicHandler:        topicHandler,
		CatalogHandler:      catalogHandler,
		TaskHandler:         taskHandler,
		TaskCategoryHandler: taskCategoryHandler,
		TrackerHandler:      trackerHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Shutdown complete")
}
