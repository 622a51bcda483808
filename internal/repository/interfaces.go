// Package repository is the credential and document store behind the
// services. Every call reads or writes the backing store; nothing is cached
// between requests.
package repository

import (
	"context"
	"errors"

	"github.com/arzan03/lingo/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate key")
)

type UserRepository interface {
	// Create inserts u, assigning ID and timestamps. ErrDuplicate on a taken email.
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error)
	SetPhoto(ctx context.Context, email, ref string) error
}

type LessonUpdate struct {
	Title  *string
	Number *int
}

type LessonRepository interface {
	// Create inserts l. ErrDuplicate when the lesson number is taken.
	Create(ctx context.Context, l *models.Lesson) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error)
	List(ctx context.Context) ([]models.Lesson, error)
	Update(ctx context.Context, id primitive.ObjectID, upd LessonUpdate) (*models.Lesson, error)
	// Delete removes the lesson together with its vocabulary entries.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type VocabularyUpdate struct {
	Word          *string
	Pronunciation *string
	Meaning       *string
	WhenToSay     *string
}

type VocabularyRepository interface {
	// CreateInLesson inserts v and appends it to its lesson as one unit:
	// either both writes are visible afterwards or neither is.
	CreateInLesson(ctx context.Context, v *models.Vocabulary) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vocabulary, error)
	// List returns all entries, or only those of lessonID when it is non-nil.
	List(ctx context.Context, lessonID *primitive.ObjectID) ([]models.Vocabulary, error)
	Update(ctx context.Context, id primitive.ObjectID, upd VocabularyUpdate) (*models.Vocabulary, error)
	// Delete removes the entry and pulls it from its lesson as one unit.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TutorialUpdate struct {
	Title *string
	Link  *string
}

type TutorialRepository interface {
	Create(ctx context.Context, t *models.Tutorial) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error)
	List(ctx context.Context) ([]models.Tutorial, error)
	Update(ctx context.Context, id primitive.ObjectID, upd TutorialUpdate) (*models.Tutorial, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store bundles the repositories of one backing store.
type Store struct {
	Users        UserRepository
	Lessons      LessonRepository
	Vocabularies VocabularyRepository
	Tutorials    TutorialRepository
	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}
