package repositories

import (
	"context"

	"perceive-reports/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
}

// ReportRepository is the read-only report data source. All returns the
// collection in catalog order.
type ReportRepository interface {
	All(ctx context.Context) ([]domain.Report, error)
	GetByID(ctx context.Context, id string) (*domain.Report, error)
}

// FeedbackRepository is an append-only feedback log. List methods return
// entries in insertion order.
type FeedbackRepository interface {
	Append(ctx context.Context, entry *domain.FeedbackEntry) error
	ListByReportID(ctx context.Context, reportID string) ([]domain.FeedbackEntry, error)
	List(ctx context.Context) ([]domain.FeedbackEntry, error)
}

// Set groups the repositories a server needs
type Set struct {
	Users    UserRepository
	Reports  ReportRepository
	Feedback FeedbackRepository
}
