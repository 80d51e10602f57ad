package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/config"
	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(cfg config.Config, log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := autoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// autoMigrate is shared by the postgres and sqlite services so both
// backends carry the same schema. Referential integrity across tables is
// enforced at the service layer, not by the store.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Subject{},
		&types.Chapter{},
		&types.Topic{},
		&types.TaskCategory{},
		&types.Task{},
		&types.TaskTracker{},
		&types.RolloverRun{},
	)
}
