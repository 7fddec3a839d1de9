package middleware

import (
	"context"
	"errors"
	"log"
	"time"

	"freshcart/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error kind onto its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindAuthentication, apperr.KindAuthorization:
		return fiber.StatusUnauthorized
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindDuplicate:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a handler as {"message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	status := StatusOf(err)
	message := apperr.MessageOf(err)
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		return c.Status(status).JSON(fiber.Map{"message": message, "errors": fields})
	}
	if status >= fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
		if apperr.KindOf(err) == apperr.KindUnknown {
			message = "Internal server error"
		}
		if errors.Is(err, context.DeadlineExceeded) {
			status = fiber.StatusServiceUnavailable
			message = "Request timed out"
		}
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// Timeout bounds the request context that handlers pass to repositories.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
