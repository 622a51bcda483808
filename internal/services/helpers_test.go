package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store      *repository.Store
	auth       *AuthService
	authz      *Authorizer
	lessons    *LessonService
	vocabulary *VocabularyService
	tutorials  *TutorialService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	log := discardLogger()
	auth := NewAuthService(store.Users, MinHashCost, log)
	return &fixture{
		store:      store,
		auth:       auth,
		authz:      NewAuthorizer(auth),
		lessons:    NewLessonService(store.Lessons, store.Vocabularies, log),
		vocabulary: NewVocabularyService(store.Lessons, store.Vocabularies, log),
		tutorials:  NewTutorialService(store.Tutorials),
	}
}

func (f *fixture) register(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.auth.Register(ctx, RegisterInput{Email: email, Name: "Test", Password: "secret1"})
	require.NoError(t, err)
	if role == models.RoleAdmin {
		u, err = f.store.Users.UpdateRole(ctx, u.Email, models.RoleAdmin)
		require.NoError(t, err)
	}
	return u
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected AppError, got %v", err)
	require.Equal(t, code, ae.Code, "message: %s", ae.Message)
}

func ptr[T any](v T) *T { return &v }

