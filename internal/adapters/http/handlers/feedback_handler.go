package handlers

import (
	"errors"

	"perceive-reports/internal/adapters/http/middleware"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/core/services"
	"perceive-reports/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// FeedbackHandler handles reviewer feedback endpoints
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	log             logrus.FieldLogger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *services.FeedbackService, log logrus.FieldLogger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		log:             log,
	}
}

// SubmitFeedbackRequest represents a feedback submission body
type SubmitFeedbackRequest struct {
	ReportID       string `json:"reportId"`
	Feedback       string `json:"feedback"`
	Type           string `json:"type"`
	Severity       string `json:"severity"`
	FlaggedSection string `json:"flaggedSection"`
}

// Submit stores a new feedback entry
// @Summary Submit feedback
// @Description Submit reviewer feedback on a report
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} response.Response{data=services.FeedbackReceipt}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Entries outlive the request, so nothing may alias fasthttp buffers
	input := services.SubmitFeedbackInput{
		ReportID:       utils.CopyString(req.ReportID),
		Feedback:       utils.CopyString(req.Feedback),
		Type:           utils.CopyString(req.Type),
		Severity:       utils.CopyString(req.Severity),
		FlaggedSection: utils.CopyString(req.FlaggedSection),
		TraceID:        utils.CopyString(response.TraceID(c)),
		IP:             utils.CopyString(c.IP()),
		UserAgent:      utils.CopyString(c.Get(fiber.HeaderUserAgent)),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		input.SubmittedBy = &user
	}

	receipt, err := h.feedbackService.Submit(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, "Failed to submit feedback")
	}

	return response.Created(c, "Feedback submitted successfully", receipt)
}

// ByReportID lists feedback for one report
// @Summary Feedback for a report
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param reportId path string true "Report ID"
// @Success 200 {object} response.Response{data=[]services.FeedbackView}
// @Router /feedback/{reportId} [get]
func (h *FeedbackHandler) ByReportID(c *fiber.Ctx) error {
	entries, err := h.feedbackService.ByReportID(c.UserContext(), c.Params("reportId"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch feedback")
	}
	return response.Success(c, "", entries)
}

// List lists all feedback
// @Summary All feedback
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]services.FeedbackView}
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	entries, err := h.feedbackService.All(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Failed to fetch feedback")
	}
	return response.Success(c, "", entries)
}

// Stats returns feedback statistics
// @Summary Feedback statistics
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.FeedbackStats}
// @Router /feedback/stats [get]
func (h *FeedbackHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.feedbackService.Stats(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Failed to fetch feedback statistics")
	}
	return response.Success(c, "", stats)
}

func (h *FeedbackHandler) fail(c *fiber.Ctx, err error, message string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return response.BadRequest(c, verr.Error())
	}
	h.log.WithError(err).WithField("traceId", response.TraceID(c)).Error(message)
	return response.InternalServerError(c, message)
}
