package services

import (
	"context"
	"testing"

	"github.com/arzan03/lingo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLesson(t *testing.T, f *fixture, number int) *models.Lesson {
	t.Helper()
	l, err := f.lessons.Create(context.Background(), CreateLessonInput{Title: "Lesson", Number: ptr(FlexInt(number))})
	require.NoError(t, err)
	return l
}

func vocabInput(lesson primitive.ObjectID, word string) CreateVocabularyInput {
	return CreateVocabularyInput{
		Email:         "Admin@x.com",
		Word:          word,
		Pronunciation: "/" + word + "/",
		Meaning:       "meaning of " + word,
		WhenToSay:     "everyday",
		Lesson:        lesson.Hex(),
	}
}

func TestCreateVocabularyUpdatesLessonCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLesson(t, f, 1)

	for i, w := range []string{"hola", "adiós"} {
		v, err := f.vocabulary.Create(ctx, vocabInput(l.ID, " "+w+" "))
		require.NoError(t, err)
		assert.Equal(t, w, v.Word)
		assert.Equal(t, "admin@x.com", v.AdminEmail)
		assert.Equal(t, l.ID, v.Lesson)

		stored, err := f.store.Lessons.FindByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, len(stored.Vocabularies))
		assert.Equal(t, len(stored.Vocabularies), stored.VocabCount)
		assert.Equal(t, v.ID, stored.Vocabularies[i])
	}
}

func TestCreateVocabularyUnknownLesson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.vocabulary.Create(ctx, vocabInput(primitive.NewObjectID(), "hola"))
	requireCode(t, err, "NOT_FOUND")

	in := vocabInput(primitive.NewObjectID(), "hola")
	in.Lesson = "not-an-id"
	_, err = f.vocabulary.Create(ctx, in)
	requireCode(t, err, "VALIDATION_ERROR")

	all, err := f.vocabulary.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateVocabularyValidation(t *testing.T) {
	f := newFixture(t)
	l := newLesson(t, f, 1)

	in := vocabInput(l.ID, "hola")
	in.WhenToSay = ""
	_, err := f.vocabulary.Create(context.Background(), in)
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestListVocabularyByLesson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	one, two := newLesson(t, f, 1), newLesson(t, f, 2)

	_, err := f.vocabulary.Create(ctx, vocabInput(one.ID, "a"))
	require.NoError(t, err)
	_, err = f.vocabulary.Create(ctx, vocabInput(two.ID, "b"))
	require.NoError(t, err)

	all, err := f.vocabulary.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyTwo, err := f.vocabulary.List(ctx, two.ID.Hex())
	require.NoError(t, err)
	require.Len(t, onlyTwo, 1)
	assert.Equal(t, "b", onlyTwo[0].Word)

	_, err = f.vocabulary.List(ctx, "zzz")
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestEditAndDeleteVocabulary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	l := newLesson(t, f, 1)

	v, err := f.vocabulary.Create(ctx, vocabInput(l.ID, "hola"))
	require.NoError(t, err)

	edited, err := f.vocabulary.Edit(ctx, v.ID, EditVocabularyInput{Meaning: ptr(" hello ")})
	require.NoError(t, err)
	assert.Equal(t, "hello", edited.Meaning)
	assert.Equal(t, "hola", edited.Word)

	_, err = f.vocabulary.Edit(ctx, v.ID, EditVocabularyInput{})
	requireCode(t, err, "VALIDATION_ERROR")

	require.NoError(t, f.vocabulary.Delete(ctx, v.ID))
	requireCode(t, f.vocabulary.Delete(ctx, v.ID), "NOT_FOUND")

	_, err = f.vocabulary.Get(ctx, v.ID)
	requireCode(t, err, "NOT_FOUND")

	stored, err := f.store.Lessons.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Vocabularies)
	assert.Equal(t, 0, stored.VocabCount)
}
