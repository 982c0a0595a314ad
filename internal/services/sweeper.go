package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// maxSweepInterval bounds how stale an expired record can get.
const maxSweepInterval = 5 * time.Minute

const sweepTimeout = 30 * time.Second

// Sweeper runs the passive TTL deletion for stories (24h, archived skipped) and
// notifications (7d). It runs on a fixed schedule, independent of request handling,
// and each run is idempotent against records another run already deleted.
type Sweeper struct {
	stories       repositories.StoryRepository
	notifications repositories.NotificationRepository
	cron          *cron.Cron
}

// NewSweeper creates a new Sweeper
func NewSweeper(stories repositories.StoryRepository, notifications repositories.NotificationRepository) *Sweeper {
	return &Sweeper{stories: stories, notifications: notifications}
}

// Start schedules the sweep at the given interval, capped at five minutes.
func (s *Sweeper) Start(interval time.Duration) error {
	if interval <= 0 || interval > maxSweepInterval {
		interval = maxSweepInterval
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.WithField("interval", interval.String()).Info("TTL sweeper started")
	return nil
}

// Stop halts the schedule. A sweep already in flight finishes on its own.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep performs one deletion pass with cutoffs measured from now.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	expiredStories, err := s.stories.DeleteExpiredStories(ctx, now.Add(-models.StoryTTL))
	if err != nil {
		logrus.WithError(err).Error("story TTL sweep failed")
	}

	expiredNotifications, err := s.notifications.DeleteOlderThan(ctx, now.Add(-models.NotificationTTL))
	if err != nil {
		logrus.WithError(err).Error("notification TTL sweep failed")
	}

	if expiredStories > 0 || expiredNotifications > 0 {
		logrus.WithFields(logrus.Fields{
			"stories":       expiredStories,
			"notifications": expiredNotifications,
		}).Info("TTL sweep removed expired records")
	}
}
