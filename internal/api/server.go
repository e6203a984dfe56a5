package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp builds the fiber application with middleware and every route mounted.
func NewApp(handler *Handler, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "Mahwari",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(compress.New())
	RegisterRoutes(app, handler)
	return app
}

func jsonErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
		}
		return apiError(c, status, message)
	}
}
