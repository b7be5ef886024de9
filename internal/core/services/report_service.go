package services

import (
	"context"
	"errors"
	"strings"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/pagination"
)

// ConfidenceBucket is a labeled range over the integer confidence score
type ConfidenceBucket string

const (
	ConfidenceAll    ConfidenceBucket = "all"
	ConfidenceHigh   ConfidenceBucket = "high"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceLow    ConfidenceBucket = "low"
)

// Contains reports whether score falls in the bucket. high is [80,100],
// medium [60,80), low [0,60). all and unknown buckets match everything.
func (b ConfidenceBucket) Contains(score int) bool {
	switch b {
	case ConfidenceHigh:
		return score >= 80 && score <= 100
	case ConfidenceMedium:
		return score >= 60 && score < 80
	case ConfidenceLow:
		return score >= 0 && score < 60
	}
	return true
}

// ConfidenceRange is a filter option shown to clients
type ConfidenceRange struct {
	Label string           `json:"label"`
	Value ConfidenceBucket `json:"value"`
}

var confidenceRanges = []ConfidenceRange{
	{Label: "All Confidence Levels", Value: ConfidenceAll},
	{Label: "High (80-100%)", Value: ConfidenceHigh},
	{Label: "Medium (60-79%)", Value: ConfidenceMedium},
	{Label: "Low (0-59%)", Value: ConfidenceLow},
}

// ReportFilters narrows a report listing. Empty fields do not filter.
type ReportFilters struct {
	Type       string
	Industry   string
	Search     string
	Confidence string
}

// ReportList is one page of filtered reports
type ReportList struct {
	Reports    []domain.Report  `json:"reports"`
	Pagination *pagination.Meta `json:"pagination"`
}

// FilterOptions lists the values clients can filter by
type FilterOptions struct {
	ReportTypes      []string          `json:"reportTypes"`
	Industries       []string          `json:"industries"`
	ConfidenceRanges []ConfidenceRange `json:"confidenceRanges"`
}

// ReportService answers report queries over a report repository
type ReportService struct {
	reportRepo repositories.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// List filters the collection and returns the requested page
func (s *ReportService) List(ctx context.Context, params *pagination.Params, filters ReportFilters) (*ReportList, error) {
	all, err := s.reportRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := applyFilters(all, filters)

	return &ReportList{
		Reports:    pagination.Slice(filtered, params),
		Pagination: pagination.GetMeta(params, len(filtered)),
	}, nil
}

// applyFilters keeps reports matching every non-empty filter
func applyFilters(reports []domain.Report, f ReportFilters) []domain.Report {
	typ := strings.ToLower(f.Type)
	industry := strings.ToLower(f.Industry)
	search := strings.ToLower(f.Search)
	bucket := ConfidenceBucket(f.Confidence)

	out := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if typ != "" && !strings.Contains(strings.ToLower(r.ReportType), typ) {
			continue
		}
		if industry != "" && !strings.Contains(strings.ToLower(r.Industry), industry) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Title), search) &&
			!strings.Contains(strings.ToLower(r.Summary), search) {
			continue
		}
		if bucket != "" && !bucket.Contains(r.ConfidenceScore) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GetByID returns a report or domain.ErrReportNotFound
func (s *ReportService) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// FilterOptions returns distinct report types and industries in first-seen
// order plus the fixed confidence buckets
func (s *ReportService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	all, err := s.reportRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	ranges := make([]ConfidenceRange, len(confidenceRanges))
	copy(ranges, confidenceRanges)

	return &FilterOptions{
		ReportTypes:      distinct(all, func(r domain.Report) string { return r.ReportType }),
		Industries:       distinct(all, func(r domain.Report) string { return r.Industry }),
		ConfidenceRanges: ranges,
	}, nil
}

func distinct(reports []domain.Report, key func(domain.Report) string) []string {
	seen := make(map[string]struct{}, len(reports))
	out := []string{}
	for _, r := range reports {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
