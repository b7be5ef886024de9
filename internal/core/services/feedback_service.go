package services

import (
	"context"
	"strings"
	"time"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusSubmitted is the status of every accepted submission
const StatusSubmitted = "submitted"

// recentFeedbackLimit bounds Stats.RecentFeedback
const recentFeedbackLimit = 10

// SubmitFeedbackInput is a feedback submission plus request metadata
type SubmitFeedbackInput struct {
	ReportID       string
	Feedback       string
	Type           string
	Severity       string
	FlaggedSection string
	TraceID        string
	IP             string
	UserAgent      string
	SubmittedBy    *domain.Identity
}

// FeedbackReceipt is returned to the submitter
type FeedbackReceipt struct {
	ID          string              `json:"id"`
	ReportID    string              `json:"reportId"`
	Type        domain.FeedbackType `json:"type"`
	Severity    domain.Severity     `json:"severity,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
	Status      string              `json:"status"`
}

// FeedbackView is the sanitized projection of a stored entry
type FeedbackView struct {
	ID             string              `json:"id"`
	ReportID       string              `json:"reportId"`
	Feedback       string              `json:"feedback"`
	Type           domain.FeedbackType `json:"type"`
	Severity       domain.Severity     `json:"severity,omitempty"`
	FlaggedSection string              `json:"flaggedSection,omitempty"`
	SubmittedAt    time.Time           `json:"submittedAt"`
}

// FeedbackSummary is the short projection used in stats
type FeedbackSummary struct {
	ID          string              `json:"id"`
	ReportID    string              `json:"reportId"`
	Type        domain.FeedbackType `json:"type"`
	Severity    domain.Severity     `json:"severity,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

// FeedbackStats aggregates the whole store
type FeedbackStats struct {
	Total            int               `json:"total"`
	ByType           map[string]int    `json:"byType"`
	ErrorsBySeverity map[string]int    `json:"errorsBySeverity"`
	RecentFeedback   []FeedbackSummary `json:"recentFeedback"`
}

// FeedbackService validates, stores and projects feedback entries
type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepository
	log          logrus.FieldLogger
	now          func() time.Time
	newID        func() string
	latency      time.Duration
}

// FeedbackOption configures a FeedbackService
type FeedbackOption func(*FeedbackService)

// WithFeedbackClock overrides the submission timestamp source
func WithFeedbackClock(now func() time.Time) FeedbackOption {
	return func(s *FeedbackService) { s.now = now }
}

// WithIDGenerator overrides entry id generation
func WithIDGenerator(newID func() string) FeedbackOption {
	return func(s *FeedbackService) { s.newID = newID }
}

// WithStorageLatency delays every storage call by d
func WithStorageLatency(d time.Duration) FeedbackOption {
	return func(s *FeedbackService) { s.latency = d }
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, log logrus.FieldLogger, opts ...FeedbackOption) *FeedbackService {
	s := &FeedbackService{
		feedbackRepo: feedbackRepo,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and appends a new entry
func (s *FeedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*FeedbackReceipt, error) {
	entry, err := s.buildEntry(input)
	if err != nil {
		return nil, err
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"feedbackId": entry.ID,
		"reportId":   entry.ReportID,
		"type":       entry.Type,
		"traceId":    entry.Metadata.TraceID,
	}).Info("Feedback stored successfully")

	return &FeedbackReceipt{
		ID:          entry.ID,
		ReportID:    entry.ReportID,
		Type:        entry.Type,
		Severity:    entry.Severity,
		SubmittedAt: entry.Metadata.SubmittedAt,
		Status:      StatusSubmitted,
	}, nil
}

func (s *FeedbackService) buildEntry(input SubmitFeedbackInput) (*domain.FeedbackEntry, error) {
	reportID := strings.TrimSpace(input.ReportID)
	if reportID == "" {
		return nil, domain.NewValidationError("reportId", "is required")
	}
	text := strings.TrimSpace(input.Feedback)
	if text == "" {
		return nil, domain.NewValidationError("feedback", "is required")
	}

	typ := domain.FeedbackType(strings.ToLower(strings.TrimSpace(input.Type)))
	if typ == "" {
		typ = domain.FeedbackGeneral
	}
	if !typ.Valid() {
		return nil, domain.NewValidationError("type", "must be one of general, improvement, error, data")
	}

	var severity domain.Severity
	if typ == domain.FeedbackError {
		severity = domain.Severity(strings.ToLower(strings.TrimSpace(input.Severity)))
		if severity != "" && !severity.Valid() {
			return nil, domain.NewValidationError("severity", "must be one of low, medium, high")
		}
	}

	return &domain.FeedbackEntry{
		ID:             s.newID(),
		ReportID:       reportID,
		Feedback:       text,
		Type:           typ,
		Severity:       severity,
		FlaggedSection: strings.TrimSpace(input.FlaggedSection),
		Metadata: domain.FeedbackMetadata{
			TraceID:     input.TraceID,
			IP:          input.IP,
			UserAgent:   input.UserAgent,
			SubmittedAt: s.now(),
			SubmittedBy: input.SubmittedBy,
		},
	}, nil
}

// ByReportID returns the sanitized entries for reportID in submission order
func (s *FeedbackService) ByReportID(ctx context.Context, reportID string) ([]FeedbackView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	entries, err := s.feedbackRepo.ListByReportID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return toViews(entries), nil
}

// All returns every sanitized entry in submission order
func (s *FeedbackService) All(ctx context.Context) ([]FeedbackView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	entries, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(entries), nil
}

// Stats counts entries by type and error severity and returns the most
// recent entries newest first
func (s *FeedbackService) Stats(ctx context.Context) (*FeedbackStats, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	entries, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &FeedbackStats{
		Total:            len(entries),
		ByType:           map[string]int{},
		ErrorsBySeverity: map[string]int{},
		RecentFeedback:   []FeedbackSummary{},
	}
	for _, e := range entries {
		stats.ByType[string(e.Type)]++
		if e.Type == domain.FeedbackError && e.Severity != "" {
			stats.ErrorsBySeverity[string(e.Severity)]++
		}
	}
	for i := len(entries) - 1; i >= 0 && len(stats.RecentFeedback) < recentFeedbackLimit; i-- {
		e := entries[i]
		stats.RecentFeedback = append(stats.RecentFeedback, FeedbackSummary{
			ID:          e.ID,
			ReportID:    e.ReportID,
			Type:        e.Type,
			Severity:    e.Severity,
			SubmittedAt: e.Metadata.SubmittedAt,
		})
	}
	return stats, nil
}

// wait applies the simulated storage latency, aborting on cancellation
func (s *FeedbackService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func toViews(entries []domain.FeedbackEntry) []FeedbackView {
	views := make([]FeedbackView, 0, len(entries))
	for _, e := range entries {
		views = append(views, FeedbackView{
			ID:             e.ID,
			ReportID:       e.ReportID,
			Feedback:       e.Feedback,
			Type:           e.Type,
			Severity:       e.Severity,
			FlaggedSection: e.FlaggedSection,
			SubmittedAt:    e.Metadata.SubmittedAt,
		})
	}
	return views
}
