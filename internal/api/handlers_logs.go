package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/services"
)

const defaultLogRangeDays = 30

func (handler *Handler) ListDailyLogs(c *fiber.Ctx) error {
	from, to, err := services.ParseLogRange(c.Query("from"), c.Query("to"), handler.today(), defaultLogRangeDays)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	logs, err := handler.dailyLogService.ListRange(from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"from": services.FormatCalendarDate(from),
		"to":   services.FormatCalendarDate(to),
		"logs": logs,
	})
}

func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	day, err := parseDayParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	view, err := handler.dailyLogService.Get(day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) UpdateDailyLog(c *fiber.Ctx) error {
	day, err := parseDayParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := dailyLogInput{}
	if message, ok := bindInput(c, &input); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	view, err := handler.dailyLogService.Update(day, services.DailyLogUpdate{
		WaterIntake:  input.WaterIntake,
		ExerciseType: input.ExerciseType,
		Symptoms:     input.Symptoms,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(view)
}

func (handler *Handler) AddWaterGlass(c *fiber.Ctx) error {
	day, err := parseDayParam(c, "date")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	view, err := handler.dailyLogService.AddWaterGlass(day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"log":          view,
		"goal_reached": services.WaterGoalReached(view.WaterIntake),
	})
}
