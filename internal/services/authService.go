package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MinHashCost is the lowest bcrypt cost accepted for stored credentials.
	MinHashCost     = 10
	DefaultHashCost = 12

	// bcrypt rejects longer input; validator's max counts characters, not bytes.
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Photo    string `json:"photo" validate:"omitempty,max=2048"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateRoleInput struct {
	Email  string `json:"email"`
	Target string `json:"target" validate:"required,email"`
	Role   string `json:"role" validate:"required"`
}

// AuthService owns registration, login and user administration.
type AuthService struct {
	users    repository.UserRepository
	hashCost int
	log      *slog.Logger
}

func NewAuthService(users repository.UserRepository, hashCost int, log *slog.Logger) *AuthService {
	if hashCost < MinHashCost {
		hashCost = MinHashCost
	}
	return &AuthService{users: users, hashCost: hashCost, log: log}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates a user with the regular role. Uniqueness is left to the
// store; a duplicate email comes back as Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, passwordTooLong()
	}

	hash, err := s.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, passwordTooLong()
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Email:    in.Email,
		Name:     in.Name,
		Password: hash,
		Role:     models.RoleUser,
		Photo:    strings.TrimSpace(in.Photo),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("identity already exists")
		}
		return nil, apperr.Internal(err)
	}

	s.log.InfoContext(ctx, "user registered", "email", user.Email)
	return user, nil
}

func passwordTooLong() error {
	return apperr.ValidationError("Invalid request", apperr.FieldError{
		Field:   "password",
		Message: "Must be at most 72 bytes",
	})
}

// Login returns the user whose stored hash matches the password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.Lookup(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(in.Password, user.Password) {
		s.log.WarnContext(ctx, "login credential mismatch", "email", in.Email)
		return nil, apperr.CredentialMismatch()
	}
	return user, nil
}

// Lookup loads a user by identity, NotFound when absent.
func (s *AuthService) Lookup(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// HasRole answers the role check clients use to toggle admin views.
func HasRole(user *models.User, role string) bool {
	return string(user.Role) == strings.ToLower(strings.TrimSpace(role))
}

// UpdateRole changes another user's role. Callers must have authorized the
// actor as admin.
func (s *AuthService) UpdateRole(ctx context.Context, in UpdateRoleInput) (*models.User, error) {
	in.Target = NormalizeEmail(in.Target)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := validateInput(in); err != nil {
		return nil, err
	}
	role := models.Role(in.Role)
	if !role.Valid() {
		return nil, apperr.ValidationError("Invalid request", apperr.FieldError{
			Field:   "role",
			Message: "Must be one of: admin user",
		})
	}

	user, err := s.users.UpdateRole(ctx, in.Target, role)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.log.InfoContext(ctx, "user role changed", "target", in.Target, "role", in.Role, "by", NormalizeEmail(in.Email))
	return user, nil
}
