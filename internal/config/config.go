package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/studytrack-backend/internal/logger"
	"github.com/yungbote/studytrack-backend/internal/utils"
)

type Config struct {
	Port             string   `yaml:"port"`
	DBDriver         string   `yaml:"db_driver"`
	PostgresHost     string   `yaml:"postgres_host"`
	PostgresPort     string   `yaml:"postgres_port"`
	PostgresUser     string   `yaml:"postgres_user"`
	PostgresPassword string   `yaml:"postgres_password"`
	PostgresName     string   `yaml:"postgres_name"`
	SQLitePath       string   `yaml:"sqlite_path"`
	RedisAddr        string   `yaml:"redis_addr"`
	CORSOrigins      []string `yaml:"cors_origins"`
	RolloverSchedule string   `yaml:"rollover_schedule"`
	ShutdownTimeout  time.Duration
	ShutdownSeconds  int `yaml:"shutdown_seconds"`
}

// Load assembles runtime configuration. An optional YAML file (CONFIG_PATH)
// supplies defaults; environment variables always win.
func Load(log *logger.Logger) (Config, error) {
	defaults := Config{
		Port:            "8080",
		DBDriver:        "postgres",
		PostgresHost:    "localhost",
		PostgresPort:    "5432",
		PostgresUser:    "postgres",
		PostgresName:    "studytrack",
		SQLitePath:      "studytrack.db",
		ShutdownSeconds: 10,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
	}

	if path := utils.GetEnv("CONFIG_PATH", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &defaults); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		Port:             utils.GetEnv("PORT", defaults.Port, log),
		DBDriver:         strings.ToLower(utils.GetEnv("DB_DRIVER", defaults.DBDriver, log)),
		PostgresHost:     utils.GetEnv("POSTGRES_HOST", defaults.PostgresHost, log),
		PostgresPort:     utils.GetEnv("POSTGRES_PORT", defaults.PostgresPort, log),
		PostgresUser:     utils.GetEnv("POSTGRES_USER", defaults.PostgresUser, log),
		PostgresPassword: utils.GetEnv("POSTGRES_PASSWORD", defaults.PostgresPassword, log),
		PostgresName:     utils.GetEnv("POSTGRES_NAME", defaults.PostgresName, log),
		SQLitePath:       utils.GetEnv("SQLITE_PATH", defaults.SQLitePath, log),
		RedisAddr:        utils.GetEnv("REDIS_ADDR", defaults.RedisAddr, log),
		RolloverSchedule: utils.GetEnv("ROLLOVER_SCHEDULE", defaults.RolloverSchedule, log),
		CORSOrigins:      defaults.CORSOrigins,
	}

	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}

	seconds := utils.GetEnvAsInt("SHUTDOWN_TIMEOUT", defaults.ShutdownSeconds, log)
	if seconds <= 0 {
		seconds = 10
	}
	cfg.ShutdownTimeout = time.Duration(seconds) * time.Second

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}

	return cfg, nil
}
