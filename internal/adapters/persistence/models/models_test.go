package models

import (
	"testing"
	"time"

	"perceive-reports/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestReportRoundTrip(t *testing.T) {
	r := domain.Report{
		ID:              "7",
		Title:           "Title",
		ReportType:      "Risk Assessment",
		ConfidenceScore: 61,
		Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Details:         domain.ReportDetails{KeyFindings: []string{"a", "b"}, DataPoints: 3},
		Sources:         []domain.Source{{ID: "s1", Reliability: 70}},
	}

	row := NewReport(r, 4)
	assert.Equal(t, 4, row.Position)
	assert.Equal(t, r, row.ToDomain())
}

func TestReportWithoutSourcesHasEmptySlice(t *testing.T) {
	row := NewReport(domain.Report{ID: "1"}, 0)
	assert.NotNil(t, row.ToDomain().Sources)
}

func TestFeedbackRoundTrip(t *testing.T) {
	e := &domain.FeedbackEntry{
		ID:       "f-1",
		ReportID: "1",
		Feedback: "numbers look off",
		Type:     domain.FeedbackError,
		Severity: domain.SeverityHigh,
		Metadata: domain.FeedbackMetadata{
			TraceID:     "t",
			IP:          "10.0.0.1",
			UserAgent:   "ua",
			SubmittedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			SubmittedBy: &domain.Identity{ID: 3, Username: "reviewer", Role: domain.RoleReviewer},
		},
	}

	assert.Equal(t, *e, NewFeedback(e).ToDomain())
}
