package handlers

import (
	"github.com/arzan03/lingo/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateTutorial(c *fiber.Ctx) error {
	var request services.CreateTutorialInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	tutorial, err := h.tutorials.Create(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tutorial)
}

func (h *Handler) ListTutorials(c *fiber.Ctx) error {
	list, err := h.tutorials.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) GetTutorial(c *fiber.Ctx) error {
	id, err := services.ParseID("tutorial", c.Params("id"))
	if err != nil {
		return err
	}

	tutorial, err := h.tutorials.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tutorial)
}

func (h *Handler) EditTutorial(c *fiber.Ctx) error {
	id, err := services.ParseID("tutorial", c.Params("id"))
	if err != nil {
		return err
	}
	var request services.EditTutorialInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	tutorial, err := h.tutorials.Edit(c.UserContext(), id, request)
	if err != nil {
		return err
	}
	return c.JSON(tutorial)
}

func (h *Handler) DeleteTutorial(c *fiber.Ctx) error {
	id, err := services.ParseID("tutorial", c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.tutorials.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Tutorial deleted successfully"})
}
