package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/services"
)

func (handler *Handler) AuthStatus(c *fiber.Ctx) error {
	configured, err := handler.pinService.IsConfigured()
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	_, sessionErr := handler.authenticateRequest(c)
	return c.JSON(fiber.Map{
		"pin_configured": configured,
		"unlocked":       configured && sessionErr == nil,
	})
}

func (handler *Handler) SetupPin(c *fiber.Ctx) error {
	input := pinInput{}
	if message, ok := bindInput(c, &input); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if err := handler.pinService.Setup(input.Pin); err != nil {
		return handler.respondServiceError(c, err)
	}
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Unlock(c *fiber.Ctx) error {
	limiterKey := clientKey(c)
	now := handler.now()
	if wait, blocked := handler.unlockLimiter.blocked(limiterKey, now); blocked {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many unlock attempts")
	}

	input := pinInput{}
	if message, ok := bindInput(c, &input); !ok {
		handler.unlockLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if err := handler.pinService.Verify(input.Pin); err != nil {
		if errors.Is(err, services.ErrPinInvalid) {
			handler.unlockLimiter.recordFailure(limiterKey, now)
		}
		return handler.respondServiceError(c, err)
	}

	handler.unlockLimiter.forget(limiterKey)
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Lock revokes every issued session, including copies of this cookie.
func (handler *Handler) Lock(c *fiber.Ctx) error {
	if err := handler.pinService.RevokeSessions(); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePin(c *fiber.Ctx) error {
	input := changePinInput{}
	if message, ok := bindInput(c, &input); !ok {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if err := handler.pinService.Change(input.CurrentPin, input.NewPin); err != nil {
		return handler.respondServiceError(c, err)
	}
	// the old token is bound to the previous pin
	if err := handler.setSessionCookie(c); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SessionInfo(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"issued_at":  session.IssuedAt.UTC(),
		"expires_at": session.ExpiresAt.UTC(),
	})
}
