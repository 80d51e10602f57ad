package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/studytrack-backend/internal/logger"
)

// Scheduler wraps cron for the optional time-based rollover trigger. The
// manual API trigger stays the primary path; this only adds a daily tick
// when ROLLOVER_SCHEDULE is configured.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		log:  log.With("service", "Scheduler"),
	}
}

// ScheduleDaily registers job to run every day at the given "HH:MM" (UTC).
func (s *Scheduler) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

func (s *Scheduler) Start() {
	s.log.Info("Starting scheduler...")
	s.cron.Start()
}

// Stop blocks until any in-flight job returns.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// cron field order: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
