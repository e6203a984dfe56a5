package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := handler.dashboardService.Build(handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(dashboard)
}
