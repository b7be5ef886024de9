package middleware

import (
	"errors"
	"time"

	"perceive-reports/internal/config"
	"perceive-reports/internal/pkg/response"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TraceIDHeader carries the request trace id in both directions
const TraceIDHeader = "X-Trace-Id"

// Setup configures all middlewares for the application
func Setup(app *fiber.App, cfg *config.Config, log logrus.FieldLogger) {
	// Sentry captures panics before recover swallows them
	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	// Recover middleware - catches panics
	app.Use(recover.New())

	// Trace id: echo the client's or generate one
	app.Use(requestid.New(requestid.Config{
		Header:     TraceIDHeader,
		Generator:  uuid.NewString,
		ContextKey: response.TraceIDKey,
	}))

	app.Use(RequestLogger(log))

	// Gzip Compression middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Security Headers middleware (Helmet)
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// Rate Limiter middleware - General API, per IP per minute
	if cfg.RateLimit.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.Max,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.Fail(c, fiber.StatusTooManyRequests, "Too many requests", "Too many requests, please slow down")
			},
		}))
	}

	// CORS middleware
	if cfg.IsDev() {
		// Development: Allow all origins
		app.Use(cors.New(cors.Config{
			AllowOrigins:     "*",
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + TraceIDHeader,
			ExposeHeaders:    TraceIDHeader,
			AllowCredentials: false, // Cannot be true with AllowOrigins: "*"
		}))
	} else {
		// Production: Restrict origins
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.GetAllowedOrigins(),
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization," + TraceIDHeader,
			ExposeHeaders:    TraceIDHeader,
			AllowCredentials: true,
		}))
	}
}

// RequestLogger logs one structured line per request
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		fields := logrus.Fields{
			"traceId":   response.TraceID(c),
			"method":    c.Method(),
			"url":       c.OriginalURL(),
			"ip":        c.IP(),
			"userAgent": c.Get(fiber.HeaderUserAgent),
		}
		log.WithFields(fields).Debug("Request started")

		err := c.Next()

		// Run the error handler now so the logged status is the one sent
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := log.WithFields(fields).WithFields(logrus.Fields{
			"status":  status,
			"latency": time.Since(start).String(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("Request completed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
		return nil
	}
}

// AuthRateLimiter creates a stricter rate limiter for the login endpoint
func AuthRateLimiter(cfg *config.Config) fiber.Handler {
	if cfg.RateLimit.AuthMax <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimit.AuthMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-auth"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Fail(c, fiber.StatusTooManyRequests, "Too many login attempts", "Too many login attempts, please wait a minute")
		},
	})
}

// ErrorHandler handles errors that escape the handlers. Server errors are
// logged and, in prod mode, returned with a generic message.
func ErrorHandler(cfg *config.Config, log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			if fe.Code == fiber.StatusNotFound {
				return response.NotFound(c, "Route not found")
			}
			return response.Fail(c, fe.Code, utils.StatusMessage(fe.Code), fe.Message)
		}

		log.WithError(err).WithFields(logrus.Fields{
			"traceId": response.TraceID(c),
			"method":  c.Method(),
			"path":    c.Path(),
		}).Error("Unhandled error")

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		message := err.Error()
		if cfg.IsProd() {
			message = "Something went wrong"
		}
		return response.InternalServerError(c, message)
	}
}

// NotFoundHandler answers requests no route matched
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	}
}
