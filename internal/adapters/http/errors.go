package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/spraylog/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, service_unavailable, internal_error
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// respondError translates a service error into a status code. Unexpected
// errors are logged and answered with a fixed message.
func respondError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case domain.IsValidation(err):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, resource+" not found")
	case errors.Is(err, domain.ErrServiceUnavailable):
		return newError(c, fiber.StatusBadRequest, "service_unavailable", err.Error())
	}

	LoggerFromCtx(c.UserContext()).Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return errInternal(c, "internal server error")
}
