package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletracker/internal/models"
	"github.com/terraincognita07/cycletracker/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetCycleData(c *fiber.Ctx) error {
	profile, err := handler.profiles.GetProfile(c.UserContext())
	if errors.Is(err, services.ErrProfileNotFound) {
		return handler.localizedError(c, fiber.StatusNotFound, "error.no_cycle_data")
	}
	if err != nil {
		return handler.failure(c, err, "error.fetch_cycle_data")
	}
	return c.JSON(profile)
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	input := services.PeriodLogInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	profile, err := handler.profiles.LogPeriod(c.UserContext(), input)
	if key := validationErrorKey(err); key != "" {
		if key == "error.invalid_date" {
			key = "error.invalid_date_range"
		}
		return handler.localizedError(c, fiber.StatusBadRequest, key)
	}
	if err != nil {
		return handler.failure(c, err, "error.log_period")
	}
	return c.JSON(profile)
}

func (handler *Handler) LogSymptoms(c *fiber.Ctx) error {
	input := services.SymptomInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_payload")
	}

	profile, err := handler.profiles.LogSymptom(c.UserContext(), input)
	if key := validationErrorKey(err); key != "" {
		return handler.localizedError(c, fiber.StatusBadRequest, key)
	}
	if err != nil {
		return handler.failure(c, err, "error.log_symptoms")
	}
	return c.JSON(profile)
}

func (handler *Handler) UpdateCycleLength(c *fiber.Ctx) error {
	input := services.CycleLengthInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_cycle_length")
	}

	update, err := handler.profiles.UpdateCycleLength(c.UserContext(), input)
	if key := validationErrorKey(err); key != "" {
		return handler.localizedError(c, fiber.StatusBadRequest, key)
	}
	if err != nil {
		return handler.failure(c, err, "error.update_cycle_length")
	}

	update.Validation = handler.localizeValidation(c, update.Validation)
	return c.JSON(update)
}

func (handler *Handler) ClearPeriodLogs(c *fiber.Ctx) error {
	if err := handler.profiles.ClearPeriodLogs(c.UserContext()); err != nil {
		return handler.failure(c, err, "error.clear_period_logs")
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": handler.translate(c, "status.period_logs_cleared"),
	})
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	history, err := handler.profiles.History(c.UserContext())
	if err != nil {
		return handler.failure(c, err, "error.fetch_history")
	}
	return c.JSON(history)
}

func (handler *Handler) GetSymptomTypes(c *fiber.Ctx) error {
	return c.JSON(models.DefaultSymptomTypes())
}

func (handler *Handler) GetAnalysis(c *fiber.Ctx) error {
	analysis, err := handler.profiles.Analysis(c.UserContext())
	if err != nil {
		return handler.failure(c, err, "error.fetch_analysis")
	}
	analysis.Message = handler.translate(c, "analysis."+string(analysis.Status))
	return c.JSON(analysis)
}

// GetPhases accepts an optional ?today=YYYY-MM-DD for clients whose calendar
// day differs from the server clock.
func (handler *Handler) GetPhases(c *fiber.Ctx) error {
	today := services.UTCDate(handler.now())
	if raw := strings.TrimSpace(c.Query("today")); raw != "" {
		parsed, err := services.ParseDay(raw)
		if err != nil {
			return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_date")
		}
		today = parsed
	}

	overview, err := handler.profiles.Phases(c.UserContext(), today)
	if errors.Is(err, services.ErrProfileNotFound) {
		return handler.localizedError(c, fiber.StatusNotFound, "error.no_cycle_data")
	}
	if err != nil {
		return handler.failure(c, err, "error.fetch_phases")
	}

	overview.Validation = handler.localizeValidation(c, overview.Validation)
	return c.JSON(overview)
}

func (handler *Handler) localizeValidation(c *fiber.Ctx, validation services.CycleValidation) services.CycleValidation {
	if validation.IsValid || validation.Code == "" {
		return validation
	}
	validation.Message = handler.translate(c, "cycle."+validation.Code)
	return validation
}
