package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cycletracker/internal/services"
)

const (
	contextLanguageKey  = "language"
	contextRequestIDKey = "requestid"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.translate(c, key))
}

// failure logs the underlying cause and answers with a generic localized 500.
func (handler *Handler) failure(c *fiber.Ctx, err error, key string) error {
	handler.requestLogger(c).WithError(err).Error(key)
	return handler.localizedError(c, fiber.StatusInternalServerError, key)
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(currentLanguage(c), key)
}

func (handler *Handler) requestLogger(c *fiber.Ctx) *logrus.Entry {
	return handler.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
	})
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(contextRequestIDKey).(string)
	return id
}

// validationErrorKey returns the message key for input errors, or "" when
// err is not a validation failure.
func validationErrorKey(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		return "error.invalid_date_range"
	case errors.Is(err, services.ErrInvalidDate):
		return "error.invalid_date"
	case errors.Is(err, services.ErrInvalidFlow):
		return "error.invalid_flow"
	case errors.Is(err, services.ErrInvalidSymptomType):
		return "error.invalid_symptom_type"
	case errors.Is(err, services.ErrInvalidSeverity):
		return "error.invalid_severity"
	case errors.Is(err, services.ErrInvalidCycleLength):
		return "error.invalid_cycle_length"
	default:
		return ""
	}
}
