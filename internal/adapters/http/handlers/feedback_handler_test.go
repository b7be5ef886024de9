package handlers

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"perceive-reports/internal/adapters/persistence/repositories"
	"perceive-reports/internal/core/services"
	"perceive-reports/internal/pkg/logger"
	"perceive-reports/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitStoresOwnedCopies(t *testing.T) {
	repo := repositories.NewMemoryFeedbackRepository()
	handler := NewFeedbackHandler(services.NewFeedbackService(repo, logger.Discard()), logger.Discard())

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Header: "X-Trace-Id", ContextKey: response.TraceIDKey}))
	app.Post("/feedback", handler.Submit)

	post := func(reportID, text, traceID string) {
		form := url.Values{"reportId": {reportID}, "feedback": {text}, "type": {"error"}, "severity": {"high"}}
		req := httptest.NewRequest(fiber.MethodPost, "/feedback", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		req.Header.Set(fiber.HeaderUserAgent, "agent-"+traceID)
		req.Header.Set("X-Trace-Id", traceID)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	post("1", "first-entry-text", "trace-first")
	for i := 0; i < 20; i++ {
		post("9", "later-entry-text", "trace-later")
	}

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 21)
	first := entries[0]
	assert.Equal(t, "1", first.ReportID)
	assert.Equal(t, "first-entry-text", first.Feedback)
	assert.Equal(t, "trace-first", first.Metadata.TraceID)
	assert.Equal(t, "agent-trace-first", first.Metadata.UserAgent)

	byReport, err := repo.ListByReportID(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, byReport, 1)
}
