package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get(HomePath, handler.Home)
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/stats/trend", handler.AuthRequired, handler.CycleLengthChart)

	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/status", handler.AuthStatus)
	auth.Post("/setup", handler.SetupPin)
	auth.Post("/unlock", handler.Unlock)
	auth.Post("/lock", handler.AuthRequired, handler.Lock)
	auth.Get("/session", handler.AuthRequired, handler.SessionInfo)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
	api.Get("/phase", handler.AuthRequired, handler.GetPhase)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListDailyLogs)
	logs.Get("/:date", handler.GetDailyLog)
	logs.Patch("/:date", handler.UpdateDailyLog)
	logs.Post("/:date/water", handler.AddWaterGlass)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/trend", handler.CycleLengthTrend)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/pin", handler.ChangePin)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
