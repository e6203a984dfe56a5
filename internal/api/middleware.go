package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/logger"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "mahwari_session"
	contextSessionKey = "session"
)

// Session describes the unlocked browser session of the current request.
type Session struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func currentSession(c *fiber.Ctx) (*Session, bool) {
	session, ok := c.Locals(contextSessionKey).(*Session)
	return session, ok && session != nil
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	session, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextSessionKey, session)
	return c.Next()
}

// RequestLogger writes one http_request entry per request after the handler ran.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		log.Info("http_request",
			zap.String("method", c.Method()),
			zap.String("path", logger.SanitizePath(c.Path())),
			zap.Int("status_code", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return err
	}
}
