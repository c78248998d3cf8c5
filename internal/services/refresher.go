package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService regenerates the stored recommendation lists on a
// schedule so the read path always has rows for the current gameweek.
type RefresherService struct {
	recommendations *RecommendationService
	logger          *logrus.Logger
	cron            *cron.Cron
	interval        time.Duration
	mu              sync.Mutex
	isRunning       bool
}

func NewRefresherService(recommendations *RecommendationService, logger *logrus.Logger, interval time.Duration) *RefresherService {
	return &RefresherService{
		recommendations: recommendations,
		logger:          logger,
		cron:            cron.New(),
		interval:        interval,
	}
}

// Start schedules the periodic refresh and runs one refresh immediately in
// the background.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Recommendation refresher started (every %s)", s.interval)

	go s.refresh()
	return nil
}

// Stop halts the schedule. Safe to call when not running.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Stop()
	s.isRunning = false
	s.logger.Info("Recommendation refresher stopped")
}

func (s *RefresherService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.recommendations.GenerateForGameweek(ctx, 0)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"component": "refresher",
			"error":     err.Error(),
		}).Error("Scheduled recommendation refresh failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"rows":      count,
	}).Info("Scheduled recommendation refresh complete")
}
