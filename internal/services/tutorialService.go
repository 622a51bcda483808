package services

import (
	"context"
	"errors"
	"strings"

	"github.com/arzan03/lingo/internal/apperr"
	"github.com/arzan03/lingo/internal/models"
	"github.com/arzan03/lingo/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateTutorialInput struct {
	Email string `json:"email"`
	Title string `json:"tutorial_title" validate:"required,max=200"`
	Link  string `json:"tutorial_link" validate:"required,url,max=2048"`
}

type EditTutorialInput struct {
	Email string  `json:"email"`
	Title *string `json:"tutorial_title" validate:"omitempty,min=1,max=200"`
	Link  *string `json:"tutorial_link" validate:"omitempty,url,max=2048"`
}

type TutorialService struct {
	tutorials repository.TutorialRepository
}

func NewTutorialService(tutorials repository.TutorialRepository) *TutorialService {
	return &TutorialService{tutorials: tutorials}
}

func (s *TutorialService) Create(ctx context.Context, in CreateTutorialInput) (*models.Tutorial, error) {
	in.Title, in.Link = strings.TrimSpace(in.Title), strings.TrimSpace(in.Link)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	t := &models.Tutorial{Title: in.Title, Link: in.Link, AddedBy: NormalizeEmail(in.Email)}
	if err := s.tutorials.Create(ctx, t); err != nil {
		return nil, apperr.Internal(err)
	}
	return t, nil
}

func (s *TutorialService) List(ctx context.Context) ([]models.Tutorial, error) {
	list, err := s.tutorials.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

func (s *TutorialService) Get(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error) {
	t, err := s.tutorials.FindByID(ctx, id)
	if err != nil {
		return nil, tutorialErr(err)
	}
	return t, nil
}

func (s *TutorialService) Edit(ctx context.Context, id primitive.ObjectID, in EditTutorialInput) (*models.Tutorial, error) {
	in.Title, in.Link = trimPtr(in.Title), trimPtr(in.Link)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Title == nil && in.Link == nil {
		return nil, apperr.ValidationError("Nothing to update")
	}

	t, err := s.tutorials.Update(ctx, id, repository.TutorialUpdate{Title: in.Title, Link: in.Link})
	if err != nil {
		return nil, tutorialErr(err)
	}
	return t, nil
}

func (s *TutorialService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.tutorials.Delete(ctx, id); err != nil {
		return tutorialErr(err)
	}
	return nil
}

func tutorialErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Tutorial")
	}
	return apperr.Internal(err)
}
