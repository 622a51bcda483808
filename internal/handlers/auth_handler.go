package handlers

import (
	"errors"
	"strings"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/middleware"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/services"
	"github.com/arzan03/lingo/internal/token"
	"github.com/gofiber/fiber/v2"
)

// setSession issues a token for user and attaches it as the session cookie.
func (h *Handler) setSession(c *fiber.Ctx, email string, role models.Role) error {
	signed, err := h.tokens.Issue(token.Claims{Email: email, Role: string(role)}, h.cookies.TTL)
	if err != nil {
		return apperr.Internal(err)
	}
	c.Cookie(h.cookies.session(signed))
	h.log.InfoContext(c.UserContext(), "session issued", "email", email, "role", role)
	return nil
}

// IssueToken exchanges an identity asserted by the external sign-in
// provider for a session cookie.
func (h *Handler) IssueToken(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}
	if err := parseBody(c, &request); err != nil {
		return err
	}
	email := services.NormalizeEmail(request.Email)
	if email == "" {
		return apperr.ValidationError("email is required")
	}

	var role models.Role
	user, err := h.auth.Lookup(c.UserContext(), email)
	switch {
	case err == nil:
		role = user.Role
	case !apperr.Is(err, "NOT_FOUND"):
		return err
	}

	if err := h.setSession(c, email, role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ValidateToken returns the user behind the current session.
func (h *Handler) ValidateToken(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	user, err := h.auth.Lookup(c.UserContext(), claims.Email)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var request services.RegisterInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully", "user": user})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var request services.LoginInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	user, err := h.auth.Login(c.UserContext(), request)
	if err != nil {
		return err
	}
	if err := h.setSession(c, user.Email, user.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Login successful", "user": user})
}

// Logout clears the cookie. The token itself stays valid until it expires.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.cookies.cleared())
	return c.JSON(fiber.Map{"success": true})
}

// CheckRole answers whether the caller holds the queried role.
func (h *Handler) CheckRole(c *fiber.Ctx) error {
	role := c.Query("role")
	if strings.TrimSpace(role) == "" {
		return apperr.ValidationError("role is required")
	}
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"validation": services.HasRole(user, role)})
}

// ProfileImageUpload returns a presigned URL the client PUTs its image to.
func (h *Handler) ProfileImageUpload(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	upload, err := h.profiles.NewUpload(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(upload)
}

// ConfirmProfileImage switches the caller's photo to an object they have
// finished uploading.
func (h *Handler) ConfirmProfileImage(c *fiber.Ctx) error {
	var request struct {
		Photo string `json:"photo"`
	}
	if err := parseBody(c, &request); err != nil {
		return err
	}
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	updated, err := h.profiles.ConfirmUpload(c.UserContext(), user, request.Photo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Profile image updated", "user": updated})
}

// ProfileImage returns a URL for the caller's profile image.
func (h *Handler) ProfileImage(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	img, err := h.profiles.PhotoURL(c.UserContext(), user)
	if err != nil {
		return err
	}
	return c.JSON(img)
}

var errNoUser = errors.New("authorized route without user")

func currentUser(c *fiber.Ctx) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, apperr.Internal(errNoUser)
	}
	return user, nil
}
