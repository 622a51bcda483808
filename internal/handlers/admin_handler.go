package handlers

import (
	"github.com/arzan03/lingo/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ListUsers returns every user; credential hashes are never serialized.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// UpdateRole promotes or demotes another user.
func (h *Handler) UpdateRole(c *fiber.Ctx) error {
	var request services.UpdateRoleInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	user, err := h.auth.UpdateRole(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Role updated", "user": user})
}
