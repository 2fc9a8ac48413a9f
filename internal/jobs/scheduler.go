package jobs

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"GstRecon/internal/config"
	"GstRecon/internal/logger"
)

// Expirer is the part of the report store the janitor drives.
type Expirer interface {
	Expire() (int, error)
}

// JanitorConfig controls when expired reports are swept.
type JanitorConfig struct {
	Schedule string
	TimeZone string
}

func NewDefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{
		Schedule: config.DefaultJanitorSchedule,
		TimeZone: config.DefaultTimeZone,
	}
}

// JanitorService periodically removes stored reports past their retention.
type JanitorService struct {
	cfg   JanitorConfig
	store Expirer
	cron  *cron.Cron
}

func NewJanitorService(cfg JanitorConfig, store Expirer) *JanitorService {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultJanitorSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	return &JanitorService{cfg: cfg, store: store}
}

func (s *JanitorService) Name() string {
	return "janitor"
}

func (s *JanitorService) Start() error {
	if s.store == nil {
		return errors.New("janitor: no report store configured")
	}
	loc, err := time.LoadLocation(s.cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for report janitor: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(s.cfg.Schedule, s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule report janitor: %v", err)
	}
	c.Start()
	s.cron = c

	log.Printf("[INFO] report janitor scheduled (%s, %s)", s.cfg.Schedule, s.cfg.TimeZone)
	return nil
}

func (s *JanitorService) Stop() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	log.Println("[INFO] report janitor stopped")
	return nil
}

// Sweep runs one expiry pass.
func (s *JanitorService) Sweep() {
	removed, err := s.store.Expire()
	if err != nil {
		log.Printf("[ERROR] report janitor: %v", err)
		return
	}
	if removed > 0 && logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("report janitor removed %d expired reports", removed))
	}
}
