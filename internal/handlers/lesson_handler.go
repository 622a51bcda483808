package handlers

import (
	"github.com/arzan03/lingo/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateLesson(c *fiber.Ctx) error {
	var request services.CreateLessonInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	lesson, err := h.lessons.Create(c.UserContext(), request)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (h *Handler) ListLessons(c *fiber.Ctx) error {
	lessons, err := h.lessons.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

// GetLesson returns one lesson with its vocabulary populated.
func (h *Handler) GetLesson(c *fiber.Ctx) error {
	id, err := services.ParseID("lesson", c.Params("id"))
	if err != nil {
		return err
	}

	lesson, err := h.lessons.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

func (h *Handler) EditLesson(c *fiber.Ctx) error {
	id, err := services.ParseID("lesson", c.Params("id"))
	if err != nil {
		return err
	}
	var request services.EditLessonInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	lesson, err := h.lessons.Edit(c.UserContext(), id, request)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

func (h *Handler) DeleteLesson(c *fiber.Ctx) error {
	id, err := services.ParseID("lesson", c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.lessons.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Lesson deleted successfully"})
}
