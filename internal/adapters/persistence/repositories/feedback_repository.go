package repositories

import (
	"context"

	"perceive-reports/internal/adapters/persistence/models"
	"perceive-reports/internal/core/domain"

	"gorm.io/gorm"
)

// feedbackRepository implements FeedbackRepository over gorm. Insertion
// order is the auto-increment seq column.
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Append inserts an entry
func (r *feedbackRepository) Append(ctx context.Context, entry *domain.FeedbackEntry) error {
	return r.db.WithContext(ctx).Create(models.NewFeedback(entry)).Error
}

// ListByReportID lists entries for a report in insertion order
func (r *feedbackRepository) ListByReportID(ctx context.Context, reportID string) ([]domain.FeedbackEntry, error) {
	return r.find(r.db.WithContext(ctx).Where(exactMatch(r.db, "report_id"), reportID))
}

// List lists every entry in insertion order
func (r *feedbackRepository) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *feedbackRepository) find(q *gorm.DB) ([]domain.FeedbackEntry, error) {
	var rows []models.Feedback
	if err := q.Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.FeedbackEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].ToDomain())
	}
	return entries, nil
}

// NewGormSet builds repositories backed by db
func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Users:    NewUserRepository(db),
		Reports:  NewReportRepository(db),
		Feedback: NewFeedbackRepository(db),
	}
}
