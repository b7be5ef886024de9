package handlers

import (
	"errors"

	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/core/services"
	"perceive-reports/internal/pkg/pagination"
	"perceive-reports/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportService *services.ReportService
	log           logrus.FieldLogger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, log logrus.FieldLogger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		log:           log,
	}
}

// List returns a filtered page of reports
// @Summary List reports
// @Description Filter reports by type, industry, free-text search and confidence bucket
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param type query string false "Report type substring"
// @Param industry query string false "Industry substring"
// @Param search query string false "Search in title and summary"
// @Param confidence query string false "Confidence bucket" Enums(all, high, medium, low)
// @Success 200 {object} response.Response{data=services.ReportList}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filters := services.ReportFilters{
		Type:       c.Query("type"),
		Industry:   c.Query("industry"),
		Search:     c.Query("search"),
		Confidence: c.Query("confidence"),
	}

	result, err := h.reportService.List(c.UserContext(), params, filters)
	if err != nil {
		h.log.WithError(err).WithField("traceId", response.TraceID(c)).Error("Failed to fetch reports")
		return response.InternalServerError(c, "Failed to fetch reports")
	}

	return response.Success(c, "", result)
}

// GetByID returns a single report
// @Summary Get report
// @Description Get a report with details and sources
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.Response{data=domain.Report}
// @Failure 404 {object} response.Response
// @Router /reports/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	report, err := h.reportService.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Report with ID "+id+" not found")
		}
		h.log.WithError(err).WithField("traceId", response.TraceID(c)).Error("Failed to fetch report")
		return response.InternalServerError(c, "Failed to fetch report")
	}

	return response.Success(c, "", report)
}

// FilterOptions returns the values available to the report filters
// @Summary Report filter options
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=services.FilterOptions}
// @Router /reports/filters/options [get]
func (h *ReportHandler) FilterOptions(c *fiber.Ctx) error {
	options, err := h.reportService.FilterOptions(c.UserContext())
	if err != nil {
		h.log.WithError(err).WithField("traceId", response.TraceID(c)).Error("Failed to fetch filter options")
		return response.InternalServerError(c, "Failed to fetch filter options")
	}

	return response.Success(c, "", options)
}
