package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"github.com/arzan03/lingo/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateLessonInput struct {
	Email  string   `json:"email"`
	Title  string   `json:"lesson_title" validate:"required,max=200"`
	Number *FlexInt `json:"lesson_number" validate:"required,gt=0"`
}

type EditLessonInput struct {
	Email  string   `json:"email"`
	Title  *string  `json:"lesson_title" validate:"omitempty,min=1,max=200"`
	Number *FlexInt `json:"lesson_number" validate:"omitempty,gt=0"`
}

type LessonService struct {
	lessons      repository.LessonRepository
	vocabularies repository.VocabularyRepository
	log          *slog.Logger
}

func NewLessonService(lessons repository.LessonRepository, vocabularies repository.VocabularyRepository, log *slog.Logger) *LessonService {
	return &LessonService{lessons: lessons, vocabularies: vocabularies, log: log}
}

func (s *LessonService) Create(ctx context.Context, in CreateLessonInput) (*models.Lesson, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{Title: in.Title, Number: int(*in.Number)}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, lessonErr(err)
	}

	s.log.InfoContext(ctx, "lesson created", "lesson_id", lesson.ID.Hex(), "number", lesson.Number, "by", NormalizeEmail(in.Email))
	return lesson, nil
}

func (s *LessonService) List(ctx context.Context) ([]models.Lesson, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return lessons, nil
}

// Get returns a lesson with its vocabulary entries in lesson order.
func (s *LessonService) Get(ctx context.Context, id primitive.ObjectID) (*models.LessonDetail, error) {
	var (
		lesson  *models.Lesson
		entries []models.Vocabulary
	)
	errs := utils.RunParallelTasks(ctx,
		func(ctx context.Context) (err error) {
			lesson, err = s.lessons.FindByID(ctx, id)
			return err
		},
		func(ctx context.Context) (err error) {
			entries, err = s.vocabularies.List(ctx, &id)
			return err
		},
	)
	if err := utils.FirstError(errs); err != nil {
		return nil, lessonErr(err)
	}

	return &models.LessonDetail{Lesson: *lesson, Entries: orderByRefs(entries, lesson.Vocabularies)}, nil
}

// Edit changes title and/or number. Renumbering onto an existing lesson's
// number is a Conflict.
func (s *LessonService) Edit(ctx context.Context, id primitive.ObjectID, in EditLessonInput) (*models.Lesson, error) {
	in.Title = trimPtr(in.Title)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Number == nil {
		return nil, apperr.ValidationError("Nothing to update")
	}

	upd := repository.LessonUpdate{Title: in.Title}
	if in.Number != nil {
		n := int(*in.Number)
		upd.Number = &n
	}
	lesson, err := s.lessons.Update(ctx, id, upd)
	if err != nil {
		return nil, lessonErr(err)
	}
	return lesson, nil
}

// Delete removes the lesson and every vocabulary entry that belongs to it.
func (s *LessonService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.lessons.Delete(ctx, id); err != nil {
		return lessonErr(err)
	}
	s.log.InfoContext(ctx, "lesson deleted", "lesson_id", id.Hex())
	return nil
}

func lessonErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Lesson")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("lesson number already exists")
	}
	return apperr.Internal(err)
}

// orderByRefs sorts entries by their position in refs; entries missing from
// refs keep their relative order at the end.
func orderByRefs(entries []models.Vocabulary, refs []primitive.ObjectID) []models.Vocabulary {
	pos := make(map[primitive.ObjectID]int, len(refs))
	for i, id := range refs {
		pos[id] = i
	}
	ordered := make([]models.Vocabulary, 0, len(entries))
	var rest []models.Vocabulary
	slots := make([]*models.Vocabulary, len(refs))
	for i := range entries {
		if p, ok := pos[entries[i].ID]; ok {
			slots[p] = &entries[i]
		} else {
			rest = append(rest, entries[i])
		}
	}
	for _, v := range slots {
		if v != nil {
			ordered = append(ordered, *v)
		}
	}
	return append(ordered, rest...)
}
