package handlers

import (
	"github.com/arzan03/lingo/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateVocabulary(c *fiber.Ctx) error {
	var request services.CreateVocabularyInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	entry, err := h.vocabulary.Create(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListVocabularies optionally filters by ?lesson=<id>.
func (h *Handler) ListVocabularies(c *fiber.Ctx) error {
	entries, err := h.vocabulary.List(c.UserContext(), c.Query("lesson"))
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (h *Handler) GetVocabulary(c *fiber.Ctx) error {
	id, err := services.ParseID("vocabulary", c.Params("id"))
	if err != nil {
		return err
	}

	entry, err := h.vocabulary.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

func (h *Handler) EditVocabulary(c *fiber.Ctx) error {
	id, err := services.ParseID("vocabulary", c.Params("id"))
	if err != nil {
		return err
	}
	var request services.EditVocabularyInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	entry, err := h.vocabulary.Edit(c.UserContext(), id, request)
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

func (h *Handler) DeleteVocabulary(c *fiber.Ctx) error {
	id, err := services.ParseID("vocabulary", c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.vocabulary.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Vocabulary deleted successfully"})
}
