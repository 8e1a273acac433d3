package http

import (
	"strings"

	"chessplay/internal/core"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator resolves a bearer token to the user it was issued for
type TokenValidator func(token string) (userID string, claims map[string]any, err error)

// AuthRequired rejects requests without a valid bearer token
func AuthRequired(validateToken TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return unauthorized(c, "missing authorization token")
		}
		if !authenticate(c, validateToken, token) {
			return unauthorized(c, "invalid or expired token")
		}
		return c.Next()
	}
}

// OptionalAuth lets anonymous requests through. A token that is sent must
// still be valid, so a stale client does not silently lose its seat.
func OptionalAuth(validateToken TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		if !authenticate(c, validateToken, token) {
			return unauthorized(c, "invalid or expired token")
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, validateToken TokenValidator, token string) bool {
	userID, claims, err := validateToken(token)
	if err != nil || userID == "" {
		return false
	}
	c.Locals("userID", userID)
	if name, ok := claims["username"].(string); ok {
		c.Locals("username", name)
	}
	return true
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
		Error: msg,
		Code:  core.ErrUnauthorized,
	})
}

// extractBearerToken pulls the token out of an Authorization header. The
// scheme is matched case-insensitively.
func extractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
