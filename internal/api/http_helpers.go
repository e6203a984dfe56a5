package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps known service errors to client statuses and logs
// everything else as an internal error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPinFormat),
		errors.Is(err, services.ErrPinMustDiffer),
		errors.Is(err, services.ErrCycleDateInFuture),
		errors.Is(err, services.ErrCycleNotesTooLong),
		errors.Is(err, services.ErrDailyLogWaterOutOfRange),
		errors.Is(err, services.ErrRangeFromDateInvalid),
		errors.Is(err, services.ErrRangeToDateInvalid),
		errors.Is(err, services.ErrRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPinInvalid):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrCycleNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCycleAlreadyLogged),
		errors.Is(err, services.ErrPinAlreadyConfigured),
		errors.Is(err, services.ErrPinNotConfigured):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func parseDayParam(c *fiber.Ctx, name string) (time.Time, error) {
	return services.ParseCalendarDate(strings.TrimSpace(c.Params(name)))
}

// parseOptionalDayQuery returns fallback when the query value is absent.
func parseOptionalDayQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	return services.ParseCalendarDate(raw)
}
