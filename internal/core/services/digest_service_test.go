package services

import (
	"bytes"
	"context"
	"testing"

	"perceive-reports/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestServiceRunOnce(t *testing.T) {
	feedback := newFeedbackService()
	ctx := context.Background()
	_, err := feedback.Submit(ctx, SubmitFeedbackInput{ReportID: "1", Feedback: "x", Type: "error", Severity: "medium"})
	require.NoError(t, err)

	var buf bytes.Buffer
	digest := NewDigestService(feedback, logger.New(logger.Options{Output: &buf}))
	require.NoError(t, digest.RunOnce(ctx))

	out := buf.String()
	assert.Contains(t, out, `"msg":"Feedback digest"`)
	assert.Contains(t, out, `"total":1`)
}

func TestDigestServiceStart(t *testing.T) {
	digest := NewDigestService(newFeedbackService(), logger.Discard())

	assert.NoError(t, digest.Start(""))
	assert.Error(t, digest.Start("not a schedule"))

	require.NoError(t, digest.Start("@every 1h"))
	digest.Stop()
}
