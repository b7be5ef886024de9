package seed

import (
	"testing"
	"time"

	"perceive-reports/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.Len(t, c.Users, 3)
	assert.Equal(t, "admin", c.Users[0].Username)
	assert.Equal(t, domain.RoleReviewer, c.Users[0].Role)
	assert.Equal(t, domain.RoleViewer, c.Users[1].Role)

	require.Len(t, c.Reports, 5)
	first := c.Reports[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, 92, first.ConfidenceScore)
	assert.Equal(t, time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC), first.Date.UTC())
	assert.Len(t, first.Details.KeyFindings, 4)
	assert.Equal(t, 45000, first.Details.DataPoints)
	require.Len(t, first.Sources, 2)
	assert.Equal(t, "Industry Survey: Pharmaceutical Manufacturing", first.Sources[1].Title)
}

func TestParseRejectsOutOfRangeScore(t *testing.T) {
	reports := []byte(`
reports:
  - id: "x"
    title: Broken
    confidenceScore: 101
`)
	_, err := Parse([]byte("users: []"), reports)
	assert.ErrorContains(t, err, "confidenceScore 101")
}

func TestParseRejectsUnknownRole(t *testing.T) {
	users := []byte(`
users:
  - id: 1
    username: root
    password: pw
    role: admin
`)
	_, err := Parse(users, []byte("reports: []"))
	assert.ErrorContains(t, err, "unknown role")
}

func TestParseRejectsDuplicateReportIDs(t *testing.T) {
	reports := []byte(`
reports:
  - id: "1"
    confidenceScore: 10
  - id: "1"
    confidenceScore: 20
`)
	_, err := Parse([]byte("users: []"), reports)
	assert.ErrorContains(t, err, "duplicate id")
}
