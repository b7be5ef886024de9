package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestService periodically logs feedback statistics
type DigestService struct {
	feedback *FeedbackService
	log      logrus.FieldLogger
	cron     *cron.Cron
}

// NewDigestService creates a digest job over the feedback service
func NewDigestService(feedback *FeedbackService, log logrus.FieldLogger) *DigestService {
	return &DigestService{
		feedback: feedback,
		log:      log,
		cron:     cron.New(),
	}
}

// Start schedules the digest. An empty schedule disables it.
func (s *DigestService) Start(schedule string) error {
	if schedule == "" {
		s.log.Info("Feedback digest disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			s.log.WithError(err).Error("Feedback digest failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.log.WithField("schedule", schedule).Info("Feedback digest scheduled")
	return nil
}

// Stop waits for a running digest to finish
func (s *DigestService) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce computes and logs the current statistics
func (s *DigestService) RunOnce(ctx context.Context) error {
	stats, err := s.feedback.Stats(ctx)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"total":            stats.Total,
		"byType":           stats.ByType,
		"errorsBySeverity": stats.ErrorsBySeverity,
	}).Info("Feedback digest")
	return nil
}
