package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HomePath is the landing URL opened by `serve --open`.
const HomePath = "/"

// Home sends an unlocked browser to the dashboard and anyone else to the auth status.
func (handler *Handler) Home(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err != nil {
		return c.Redirect("/api/auth/status", fiber.StatusSeeOther)
	}
	return c.Redirect("/api/dashboard", fiber.StatusSeeOther)
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
