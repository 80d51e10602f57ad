package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/studytrack-backend/internal/logger"
)

const lockTTL = 2 * time.Minute

// DayLock is a best-effort mutual-exclusion guard for the day-rollover
// job: SetNX on a per-day key keeps two concurrent invocations from both
// entering the job. The durable idempotence guard is the rollover_run
// row; this only closes the concurrent-start window. Optional — wired
// only when REDIS_ADDR is configured.
type DayLock struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewDayLock(addr string, log *logger.Logger) (*DayLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &DayLock{
		log: log.With("service", "RedisDayLock"),
		rdb: rdb,
	}, nil
}

// Acquire returns true when this caller owns the lock for the given day.
func (l *DayLock) Acquire(ctx context.Context, day string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}
	ok, err := l.rdb.SetNX(ctx, lockKey(day), 1, lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (l *DayLock) Release(ctx context.Context, day string) {
	if l == nil || l.rdb == nil {
		return
	}
	if err := l.rdb.Del(ctx, lockKey(day)).Err(); err != nil {
		l.log.Warn("Failed to release rollover day lock", "error", err, "day", day)
	}
}

func (l *DayLock) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}

func lockKey(day string) string {
	return "rollover:" + day
}
