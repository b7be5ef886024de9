package services

import (
	"context"
	"errors"
	"testing"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/pkg/pagination"
	"perceive-reports/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureReports() []domain.Report {
	return []domain.Report{
		{ID: "1", Title: "Cloud Market Outlook", Summary: "Spending on cloud", ReportType: "Market Analysis", Industry: "Technology", ConfidenceScore: 80},
		{ID: "2", Title: "Retail Trends", Summary: "Consumer behaviour shifts", ReportType: "Trend Analysis", Industry: "Retail", ConfidenceScore: 79},
		{ID: "3", Title: "Bank Risk", Summary: "Credit cloud exposure", ReportType: "Risk Assessment", Industry: "Finance", ConfidenceScore: 60},
		{ID: "4", Title: "Energy Shift", Summary: "Renewables", ReportType: "Market Analysis", Industry: "Energy", ConfidenceScore: 59},
		{ID: "5", Title: "Health Tech", Summary: "Devices", ReportType: "Technology Assessment", Industry: "Technology", ConfidenceScore: 100},
	}
}

func newReportService(reports []domain.Report) *ReportService {
	return NewReportService(repositories.NewMemoryReportRepository(reports))
}

func ids(reports []domain.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestConfidenceBucketBoundaries(t *testing.T) {
	cases := []struct {
		bucket ConfidenceBucket
		score  int
		want   bool
	}{
		{ConfidenceHigh, 80, true},
		{ConfidenceHigh, 79, false},
		{ConfidenceHigh, 100, true},
		{ConfidenceMedium, 79, true},
		{ConfidenceMedium, 60, true},
		{ConfidenceMedium, 80, false},
		{ConfidenceMedium, 59, false},
		{ConfidenceLow, 59, true},
		{ConfidenceLow, 60, false},
		{ConfidenceLow, 0, true},
		{ConfidenceAll, 0, true},
		{ConfidenceBucket("extreme"), 42, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.bucket.Contains(tc.score), "%s/%d", tc.bucket, tc.score)
	}
}

func TestReportServiceListFilters(t *testing.T) {
	svc := newReportService(fixtureReports())
	ctx := context.Background()
	params := pagination.NewParams(1, 100)

	tests := []struct {
		name    string
		filters ReportFilters
		want    []string
	}{
		{"no filters", ReportFilters{}, []string{"1", "2", "3", "4", "5"}},
		{"type substring case-insensitive", ReportFilters{Type: "market"}, []string{"1", "4"}},
		{"industry", ReportFilters{Industry: "TECH"}, []string{"1", "5"}},
		{"search title or summary", ReportFilters{Search: "cloud"}, []string{"1", "3"}},
		{"high", ReportFilters{Confidence: "high"}, []string{"1", "5"}},
		{"medium", ReportFilters{Confidence: "medium"}, []string{"2", "3"}},
		{"low", ReportFilters{Confidence: "low"}, []string{"4"}},
		{"all", ReportFilters{Confidence: "all"}, []string{"1", "2", "3", "4", "5"}},
		{"unknown bucket", ReportFilters{Confidence: "bogus"}, []string{"1", "2", "3", "4", "5"}},
		{"conjunction", ReportFilters{Type: "analysis", Industry: "technology", Confidence: "high"}, []string{"1"}},
		{"no match", ReportFilters{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, params, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list.Reports))
			assert.Equal(t, len(tt.want), list.Pagination.Total)
		})
	}
}

func TestReportServiceListPagination(t *testing.T) {
	svc := newReportService(fixtureReports())
	ctx := context.Background()

	list, err := svc.List(ctx, pagination.NewParams(2, 2), ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4"}, ids(list.Reports))
	assert.Equal(t, 5, list.Pagination.Total)
	assert.Equal(t, 3, list.Pagination.TotalPages)
	assert.True(t, list.Pagination.HasMore)

	list, err = svc.List(ctx, pagination.NewParams(3, 2), ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, ids(list.Reports))
	assert.False(t, list.Pagination.HasMore)

	list, err = svc.List(ctx, pagination.NewParams(9, 2), ReportFilters{})
	require.NoError(t, err)
	assert.NotNil(t, list.Reports)
	assert.Empty(t, list.Reports)
	assert.Equal(t, 5, list.Pagination.Total)
	assert.False(t, list.Pagination.HasMore)
}

func TestReportServiceListLimitBound(t *testing.T) {
	reports := make([]domain.Report, 0, 150)
	for i := 0; i < 150; i++ {
		reports = append(reports, domain.Report{ID: string(rune('a'+i%26)) + string(rune('0'+i/26))})
	}
	svc := newReportService(reports)

	list, err := svc.List(context.Background(), pagination.NewParams(1, 1000), ReportFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Reports, pagination.MaxLimit)
	assert.Equal(t, 150, list.Pagination.Total)
	assert.True(t, list.Pagination.HasMore)
}

func TestReportServiceGetByID(t *testing.T) {
	svc := newReportService(fixtureReports())

	r, err := svc.GetByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Bank Risk", r.Title)

	_, err = svc.GetByID(context.Background(), "999")
	assert.True(t, errors.Is(err, domain.ErrReportNotFound))
}

func TestReportServiceFilterOptions(t *testing.T) {
	svc := newReportService(fixtureReports())

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Market Analysis", "Trend Analysis", "Risk Assessment", "Technology Assessment"}, opts.ReportTypes)
	assert.Equal(t, []string{"Technology", "Retail", "Finance", "Energy"}, opts.Industries)
	require.Len(t, opts.ConfidenceRanges, 4)
	assert.Equal(t, ConfidenceAll, opts.ConfidenceRanges[0].Value)
	assert.Equal(t, "High (80-100%)", opts.ConfidenceRanges[1].Label)
}

func TestReportServiceSeedCatalog(t *testing.T) {
	catalog, err := seed.Load()
	require.NoError(t, err)
	svc := newReportService(catalog.Reports)

	list, err := svc.List(context.Background(), pagination.NewParams(1, 10), ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, len(catalog.Reports), list.Pagination.Total)
	assert.Equal(t, 1, list.Pagination.TotalPages)
}
