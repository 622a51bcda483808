package services

import (
	"context"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
)

// Authorizer is the per-endpoint authorization check.
type Authorizer struct {
	auth *AuthService
}

func NewAuthorizer(auth *AuthService) *Authorizer {
	return &Authorizer{auth: auth}
}

// Authorize confirms the caller-supplied identity is the session identity,
// loads that user and, when requireAdmin is set, demands the admin role.
// The identity comparison happens before any role is considered; a missing
// identity is a mismatch like any other.
func (a *Authorizer) Authorize(ctx context.Context, supplied, resolved string, requireAdmin bool) (*models.User, error) {
	supplied = NormalizeEmail(supplied)
	if supplied == "" || supplied != NormalizeEmail(resolved) {
		return nil, apperr.Forbidden("Forbidden: identity mismatch")
	}

	user, err := a.auth.Lookup(ctx, supplied)
	if err != nil {
		return nil, err
	}
	if requireAdmin && !user.IsAdmin() {
		return nil, apperr.Forbidden("Forbidden: insufficient privileges")
	}
	return user, nil
}
