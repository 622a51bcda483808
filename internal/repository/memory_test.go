package repository

import (
	"context"
	"testing"

	"github.com/arzan03/lingo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUsersUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &models.User{Email: "a@x.com", Name: "A", Password: "hash", Role: models.RoleUser}
	require.NoError(t, store.Users.Create(ctx, first))
	assert.False(t, first.ID.IsZero())

	err := store.Users.Create(ctx, &models.User{Email: "a@x.com", Name: "B"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := store.Users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, first.ID, got.ID)
}

func TestMemoryUsersUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Users.Create(ctx, &models.User{Email: "b@x.com", Role: models.RoleUser}))
	require.NoError(t, store.Users.Create(ctx, &models.User{Email: "a@x.com", Role: models.RoleUser}))

	u, err := store.Users.UpdateRole(ctx, "b@x.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	require.NoError(t, store.Users.SetPhoto(ctx, "a@x.com", "profiles/a.png"))

	_, err = store.Users.UpdateRole(ctx, "nobody@x.com", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Users.SetPhoto(ctx, "nobody@x.com", "x"), ErrNotFound)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "profiles/a.png", users[0].Photo)
}

func TestMemoryLessonNumberUnique(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	one := &models.Lesson{Title: "Greetings", Number: 1}
	two := &models.Lesson{Title: "Food", Number: 2}
	require.NoError(t, store.Lessons.Create(ctx, one))
	require.NoError(t, store.Lessons.Create(ctx, two))

	assert.ErrorIs(t, store.Lessons.Create(ctx, &models.Lesson{Title: "Dup", Number: 1}), ErrDuplicate)

	number := 2
	_, err := store.Lessons.Update(ctx, one.ID, LessonUpdate{Number: &number})
	assert.ErrorIs(t, err, ErrDuplicate)

	// keeping its own number is not a collision
	number = 1
	title := "Hello"
	updated, err := store.Lessons.Update(ctx, one.ID, LessonUpdate{Title: &title, Number: &number})
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.Title)

	lessons, err := store.Lessons.List(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, 1, lessons[0].Number)
	assert.Equal(t, 2, lessons[1].Number)
}

func TestMemoryVocabularyKeepsLessonCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	lesson := &models.Lesson{Title: "Greetings", Number: 1}
	require.NoError(t, store.Lessons.Create(ctx, lesson))

	var ids []primitive.ObjectID
	for _, word := range []string{"hola", "adiós", "gracias"} {
		v := &models.Vocabulary{Word: word, Lesson: lesson.ID, AdminEmail: "admin@x.com"}
		require.NoError(t, store.Vocabularies.CreateInLesson(ctx, v))
		ids = append(ids, v.ID)
	}

	got, err := store.Lessons.FindByID(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, ids, got.Vocabularies)
	assert.Equal(t, len(got.Vocabularies), got.VocabCount)

	require.NoError(t, store.Vocabularies.Delete(ctx, ids[1]))
	got, err = store.Lessons.FindByID(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{ids[0], ids[2]}, got.Vocabularies)
	assert.Equal(t, 2, got.VocabCount)

	entries, err := store.Vocabularies.List(ctx, &lesson.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryVocabularyMissingLessonWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Vocabularies.CreateInLesson(ctx, &models.Vocabulary{Word: "hola", Lesson: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := store.Vocabularies.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryLessonDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	keep := &models.Lesson{Title: "Keep", Number: 1}
	drop := &models.Lesson{Title: "Drop", Number: 2}
	require.NoError(t, store.Lessons.Create(ctx, keep))
	require.NoError(t, store.Lessons.Create(ctx, drop))
	require.NoError(t, store.Vocabularies.CreateInLesson(ctx, &models.Vocabulary{Word: "a", Lesson: keep.ID}))
	require.NoError(t, store.Vocabularies.CreateInLesson(ctx, &models.Vocabulary{Word: "b", Lesson: drop.ID}))

	require.NoError(t, store.Lessons.Delete(ctx, drop.ID))
	assert.ErrorIs(t, store.Lessons.Delete(ctx, drop.ID), ErrNotFound)

	all, err := store.Vocabularies.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Word)
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	lesson := &models.Lesson{Title: "Greetings", Number: 1}
	require.NoError(t, store.Lessons.Create(ctx, lesson))
	require.NoError(t, store.Vocabularies.CreateInLesson(ctx, &models.Vocabulary{Word: "a", Lesson: lesson.ID}))

	got, err := store.Lessons.FindByID(ctx, lesson.ID)
	require.NoError(t, err)
	got.Vocabularies[0] = primitive.NilObjectID

	again, err := store.Lessons.FindByID(ctx, lesson.ID)
	require.NoError(t, err)
	assert.False(t, again.Vocabularies[0].IsZero())
}

func TestMemoryTutorials(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &models.Tutorial{Title: "Verbs", Link: "https://example.com/1", AddedBy: "admin@x.com"}
	second := &models.Tutorial{Title: "Nouns", Link: "https://example.com/2", AddedBy: "admin@x.com"}
	require.NoError(t, store.Tutorials.Create(ctx, first))
	require.NoError(t, store.Tutorials.Create(ctx, second))

	list, err := store.Tutorials.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	link := "https://example.com/verbs"
	updated, err := store.Tutorials.Update(ctx, first.ID, TutorialUpdate{Link: &link})
	require.NoError(t, err)
	assert.Equal(t, "Verbs", updated.Title)
	assert.Equal(t, link, updated.Link)

	require.NoError(t, store.Tutorials.Delete(ctx, first.ID))
	_, err = store.Tutorials.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
