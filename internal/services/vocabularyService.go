package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateVocabularyInput struct {
	Email         string `json:"email"`
	Word          string `json:"word" validate:"required,max=200"`
	Pronunciation string `json:"pronunciation" validate:"required,max=200"`
	Meaning       string `json:"meaning" validate:"max=1000"`
	WhenToSay     string `json:"whenToSay" validate:"required,max=1000"`
	Lesson        string `json:"lesson" validate:"required,mongodb"`
}

type EditVocabularyInput struct {
	Email         string  `json:"email"`
	Word          *string `json:"word" validate:"omitempty,min=1,max=200"`
	Pronunciation *string `json:"pronunciation" validate:"omitempty,min=1,max=200"`
	Meaning       *string `json:"meaning" validate:"omitempty,max=1000"`
	WhenToSay     *string `json:"whenToSay" validate:"omitempty,min=1,max=1000"`
}

type VocabularyService struct {
	lessons      repository.LessonRepository
	vocabularies repository.VocabularyRepository
	log          *slog.Logger
}

func NewVocabularyService(lessons repository.LessonRepository, vocabularies repository.VocabularyRepository, log *slog.Logger) *VocabularyService {
	return &VocabularyService{lessons: lessons, vocabularies: vocabularies, log: log}
}

// Create adds an entry to an existing lesson. The insert and the lesson
// append succeed or fail together; a failure is reported as Internal and the
// request can simply be retried.
func (s *VocabularyService) Create(ctx context.Context, in CreateVocabularyInput) (*models.Vocabulary, error) {
	in.Word = strings.TrimSpace(in.Word)
	in.Lesson = strings.TrimSpace(in.Lesson)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	lessonID, err := ParseID("lesson", in.Lesson)
	if err != nil {
		return nil, err
	}

	if _, err := s.lessons.FindByID(ctx, lessonID); err != nil {
		return nil, lessonErr(err)
	}

	entry := &models.Vocabulary{
		Word:          in.Word,
		Pronunciation: strings.TrimSpace(in.Pronunciation),
		Meaning:       strings.TrimSpace(in.Meaning),
		WhenToSay:     strings.TrimSpace(in.WhenToSay),
		Lesson:        lessonID,
		AdminEmail:    NormalizeEmail(in.Email),
	}
	if err := s.vocabularies.CreateInLesson(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Lesson")
		}
		s.log.ErrorContext(ctx, "vocabulary create failed", "lesson_id", lessonID.Hex(), "error", err)
		return nil, apperr.Internal(err)
	}

	s.log.InfoContext(ctx, "vocabulary created", "vocabulary_id", entry.ID.Hex(), "lesson_id", lessonID.Hex())
	return entry, nil
}

// List returns all entries, or those of one lesson when lesson is set.
func (s *VocabularyService) List(ctx context.Context, lesson string) ([]models.Vocabulary, error) {
	var filter *primitive.ObjectID
	if lesson = strings.TrimSpace(lesson); lesson != "" {
		id, err := ParseID("lesson", lesson)
		if err != nil {
			return nil, err
		}
		filter = &id
	}
	entries, err := s.vocabularies.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

func (s *VocabularyService) Get(ctx context.Context, id primitive.ObjectID) (*models.Vocabulary, error) {
	entry, err := s.vocabularies.FindByID(ctx, id)
	if err != nil {
		return nil, vocabularyErr(err)
	}
	return entry, nil
}

func (s *VocabularyService) Edit(ctx context.Context, id primitive.ObjectID, in EditVocabularyInput) (*models.Vocabulary, error) {
	in.Word, in.Pronunciation = trimPtr(in.Word), trimPtr(in.Pronunciation)
	in.Meaning, in.WhenToSay = trimPtr(in.Meaning), trimPtr(in.WhenToSay)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Word == nil && in.Pronunciation == nil && in.Meaning == nil && in.WhenToSay == nil {
		return nil, apperr.ValidationError("Nothing to update")
	}

	entry, err := s.vocabularies.Update(ctx, id, repository.VocabularyUpdate{
		Word:          in.Word,
		Pronunciation: in.Pronunciation,
		Meaning:       in.Meaning,
		WhenToSay:     in.WhenToSay,
	})
	if err != nil {
		return nil, vocabularyErr(err)
	}
	return entry, nil
}

// Delete removes the entry and drops it from its lesson.
func (s *VocabularyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.vocabularies.Delete(ctx, id); err != nil {
		return vocabularyErr(err)
	}
	return nil
}

func vocabularyErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Vocabulary")
	}
	return apperr.Internal(err)
}
