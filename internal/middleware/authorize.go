package middleware

import (
	"context"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/gofiber/fiber/v2"
)

const userKey = "session_user"

type Authorizer interface {
	Authorize(ctx context.Context, supplied, resolved string, requireAdmin bool) (*models.User, error)
}

// IdentitySource extracts the identity a caller claims to act as.
type IdentitySource func(c *fiber.Ctx) string

// FromQuery reads the identity from a query parameter.
func FromQuery(name string) IdentitySource {
	return func(c *fiber.Ctx) string {
		return c.Query(name)
	}
}

// FromBody reads the identity from a top-level JSON body field.
func FromBody(name string) IdentitySource {
	return func(c *fiber.Ctx) string {
		var body map[string]interface{}
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			return ""
		}
		s, _ := body[name].(string)
		return s
	}
}

// Authorize runs the per-route authorization check after SessionGate and
// stores the loaded user for the handler.
func Authorize(authz Authorizer, source IdentitySource, requireAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return apperr.Unauthenticated("Unauthorized")
		}

		user, err := authz.Authorize(c.UserContext(), source(c), claims.Email, requireAdmin)
		if err != nil {
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by Authorize, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
