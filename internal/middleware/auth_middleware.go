package middleware

import (
	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/token"
	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie that carries the session token.
const CookieName = "token"

const claimsKey = "session_claims"

type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// SessionGate resolves the caller's identity from the session cookie.
// It never touches the store; a missing or invalid token is a 401.
func SessionGate(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(CookieName)
		if raw == "" {
			return apperr.Unauthenticated("Unauthorized")
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			return apperr.Unauthenticated("Unauthorized")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the claims attached by SessionGate, or nil.
func Claims(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(claimsKey).(*token.Claims)
	return claims
}
