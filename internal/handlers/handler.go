package handlers

import (
	"log/slog"
	"time"

	"github.com/arzan03/lingo/internal/services"
	"github.com/arzan03/lingo/internal/token"
)

type TokenIssuer interface {
	Issue(claims token.Claims, ttl time.Duration) (string, error)
}

// Handler holds the services every route handler needs.
type Handler struct {
	auth       *services.AuthService
	lessons    *services.LessonService
	vocabulary *services.VocabularyService
	tutorials  *services.TutorialService
	profiles   *services.ProfileImageService
	tokens     TokenIssuer
	cookies    CookiePolicy
	log        *slog.Logger
}
