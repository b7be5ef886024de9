package response

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// TraceIDKey is the c.Locals key holding the request trace id
const TraceIDKey = "traceId"

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	TraceID   string      `json:"traceId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// TraceID returns the trace id assigned to the request, if any
func TraceID(c *fiber.Ctx) string {
	id, _ := c.Locals(TraceIDKey).(string)
	return id
}

// Success sends a 200 success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error envelope with a short error title and a human message
func Fail(c *fiber.Ctx, statusCode int, title, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success:   false,
		Error:     title,
		Message:   message,
		TraceID:   TraceID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusBadRequest, "Bad Request", message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, title, message string) error {
	return Fail(c, fiber.StatusUnauthorized, title, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, title, message string) error {
	return Fail(c, fiber.StatusForbidden, title, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, "Not Found", message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusInternalServerError, "Internal Server Error", message)
}
