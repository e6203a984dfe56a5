package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionSubject = "owner"

var errInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	PinVersion string `json:"pv"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildSessionToken(pinVersion string, now time.Time) (string, error) {
	claims := sessionClaims{
		PinVersion: pinVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sessionSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx) error {
	pinVersion, err := handler.pinService.Fingerprint()
	if err != nil {
		return err
	}
	token, err := handler.buildSessionToken(pinVersion, handler.now())
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	sealed, err := handler.sealer.seal(sessionCookieName, token)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// authenticateRequest rebuilds the session from the cookie. Tokens issued for
// an older PIN are rejected.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*Session, error) {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return nil, errInvalidSession
	}
	tokenValue, err := handler.sealer.open(sessionCookieName, raw)
	if err != nil {
		return nil, errInvalidSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithSubject(sessionSubject))
	if err != nil || !token.Valid {
		return nil, errInvalidSession
	}

	pinVersion, err := handler.pinService.Fingerprint()
	if err != nil || pinVersion != claims.PinVersion {
		return nil, errInvalidSession
	}

	session := &Session{ID: claims.ID}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
