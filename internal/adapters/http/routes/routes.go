package routes

import (
	"time"

	"perceive-reports/internal/adapters/http/handlers"
	"perceive-reports/internal/adapters/http/middleware"
	"perceive-reports/internal/config"
	"perceive-reports/internal/core/domain"
	"perceive-reports/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"
)

// APIPrefix is the second mount point of the route table
const APIPrefix = "/api"

// filterOptionsMaxAge is how long clients may cache filter options
const filterOptionsMaxAge = 5 * time.Minute

// Dependencies are the services the routes are built from
type Dependencies struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Verifier middleware.TokenVerifier
	Auth     *services.AuthService
	Reports  *services.ReportService
	Feedback *services.FeedbackService
	Health   map[string]handlers.HealthCheck
}

// route is one entry of the route table. A nil roles slice marks a public
// route.
type route struct {
	method   string
	path     string
	roles    []domain.Role
	handlers []fiber.Handler
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.Config.AppMode, deps.Health)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Log)
	reportHandler := handlers.NewReportHandler(deps.Reports, deps.Log)
	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback, deps.Log)

	noCache := middleware.NoCacheHeaders()

	// /feedback/stats must precede /feedback/:reportId
	table := []route{
		{fiber.MethodPost, "/auth/login", nil, []fiber.Handler{middleware.AuthRateLimiter(deps.Config), authHandler.Login}},
		{fiber.MethodGet, "/reports", middleware.ViewerOrReviewer, []fiber.Handler{reportHandler.List}},
		{fiber.MethodGet, "/reports/filters/options", middleware.ViewerOrReviewer, []fiber.Handler{middleware.PrivateCacheHeaders(filterOptionsMaxAge), reportHandler.FilterOptions}},
		{fiber.MethodGet, "/reports/:id", middleware.ViewerOrReviewer, []fiber.Handler{reportHandler.GetByID}},
		{fiber.MethodPost, "/feedback", middleware.ReviewerOnly, []fiber.Handler{noCache, feedbackHandler.Submit}},
		{fiber.MethodGet, "/feedback", middleware.ReviewerOnly, []fiber.Handler{noCache, feedbackHandler.List}},
		{fiber.MethodGet, "/feedback/stats", middleware.ReviewerOnly, []fiber.Handler{noCache, feedbackHandler.Stats}},
		{fiber.MethodGet, "/feedback/:reportId", middleware.ReviewerOnly, []fiber.Handler{noCache, feedbackHandler.ByReportID}},
		{fiber.MethodGet, "/health", nil, []fiber.Handler{healthHandler.HealthCheck}},
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	register(app, table, deps.Verifier)
	register(app.Group(APIPrefix), table, deps.Verifier)

	// Anything else
	app.Use(middleware.NotFoundHandler())
}

// register adds every route of table to router, guarding non-public routes
// with Authorize
func register(router fiber.Router, table []route, verifier middleware.TokenVerifier) {
	for _, r := range table {
		chain := r.handlers
		if r.roles != nil {
			chain = append([]fiber.Handler{middleware.Authorize(verifier, r.roles...)}, r.handlers...)
		}
		router.Add(r.method, r.path, chain...)
	}
}
