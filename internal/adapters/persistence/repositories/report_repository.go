package repositories

import (
	"context"

	"perceive-reports/internal/adapters/persistence/models"
	"perceive-reports/internal/core/domain"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository over gorm
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// All loads the whole collection in catalog order. Filtering stays in the
// service so every backend answers queries identically.
func (r *reportRepository) All(ctx context.Context) ([]domain.Report, error) {
	var rows []models.Report
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	reports := make([]domain.Report, 0, len(rows))
	for i := range rows {
		reports = append(reports, rows[i].ToDomain())
	}
	return reports, nil
}

// GetByID gets a report by exact id
func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	var row models.Report
	if err := r.db.WithContext(ctx).Where(exactMatch(r.db, "id"), id).First(&row).Error; err != nil {
		return nil, translate(err, domain.ErrReportNotFound)
	}
	rep := row.ToDomain()
	return &rep, nil
}
