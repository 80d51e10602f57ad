package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/studytrack-backend/internal/config"
	"github.com/yungbote/studytrack-backend/internal/logger"
)

// SQLiteService is the single-file store used for local development and
// for the store-backed tests. It exposes the same surface as
// PostgresService so main can swap drivers via DB_DRIVER.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(cfg config.Config, log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	dsn := cfg.SQLitePath
	if dsn == "" {
		dsn = "studytrack.db"
	}
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	log.Info("Opening SQLite database...", "path", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating sqlite tables...")
	if err := autoMigrate(s.db); err != nil {
		s.log.Error("Auto migration failed for sqlite tables", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}

// ensureDirForSQLite creates the parent dir for the SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
