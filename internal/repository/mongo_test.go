package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/arzan03/lingo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mockDB = "lingo_test"

func newMockStore(mt *mtest.T) *Store {
	return NewMongoStore(mt.Client, mockDB, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func matched(n int) bson.E { return bson.E{Key: "n", Value: n} }

func TestMongoCreateInLesson(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("appends to lesson", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(matched(1)),
			mtest.CreateSuccessResponse(matched(1), bson.E{Key: "nModified", Value: 1}),
		)

		v := &models.Vocabulary{Word: "hello", Lesson: primitive.NewObjectID()}
		require.NoError(mt, store.Vocabularies.CreateInLesson(context.Background(), v))
		assert.False(mt, v.ID.IsZero())
		assert.Equal(mt, []string{"insert", "update"}, commandNames(mt))
	})

	mt.Run("missing lesson undoes insert", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(matched(1)),
			mtest.CreateSuccessResponse(matched(0), bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(matched(1)),
		)

		v := &models.Vocabulary{Word: "hello", Lesson: primitive.NewObjectID()}
		err := store.Vocabularies.CreateInLesson(context.Background(), v)
		require.ErrorIs(mt, err, ErrNotFound)
		require.Equal(mt, []string{"insert", "update", "delete"}, commandNames(mt))

		undo := mt.GetAllStartedEvents()[2].Command
		id, ok := undo.Lookup("deletes", "0", "q", "_id").ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, v.ID, id)
	})

	mt.Run("failed lesson update undoes insert", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(matched(1)),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad update"}),
			mtest.CreateSuccessResponse(matched(1)),
		)

		v := &models.Vocabulary{Word: "hello", Lesson: primitive.NewObjectID()}
		err := store.Vocabularies.CreateInLesson(context.Background(), v)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
		assert.Equal(mt, []string{"insert", "update", "delete"}, commandNames(mt))
	})

	mt.Run("failed insert writes nothing else", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))

		err := store.Vocabularies.CreateInLesson(context.Background(), &models.Vocabulary{Lesson: primitive.NewObjectID()})
		require.ErrorIs(mt, err, ErrDuplicate)
		assert.Equal(mt, []string{"insert"}, commandNames(mt))
	})
}

func TestMongoDeleteVocabulary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id, lessonID := primitive.NewObjectID(), primitive.NewObjectID()
	deleted := bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: id},
		{Key: "word", Value: "hello"},
		{Key: "lesson", Value: lessonID},
	}}

	mt.Run("pulls from lesson", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(deleted),
			mtest.CreateSuccessResponse(matched(1), bson.E{Key: "nModified", Value: 1}),
		)

		require.NoError(mt, store.Vocabularies.Delete(context.Background(), id))
		assert.Equal(mt, []string{"findAndModify", "update"}, commandNames(mt))
	})

	mt.Run("failed pull restores entry", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(deleted),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad update"}),
			mtest.CreateSuccessResponse(matched(1)),
		)

		require.Error(mt, store.Vocabularies.Delete(context.Background(), id))
		require.Equal(mt, []string{"findAndModify", "update", "insert"}, commandNames(mt))

		restore := mt.GetAllStartedEvents()[2].Command
		restored, ok := restore.Lookup("documents", "0", "_id").ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, id, restored)
		assert.Equal(mt, "hello", restore.Lookup("documents", "0", "word").StringValue())
	})

	mt.Run("orphaned entry", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(deleted),
			mtest.CreateSuccessResponse(matched(0), bson.E{Key: "nModified", Value: 0}),
		)

		require.NoError(mt, store.Vocabularies.Delete(context.Background(), id))
		assert.Equal(mt, []string{"findAndModify", "update"}, commandNames(mt))
	})

	mt.Run("missing entry", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		err := store.Vocabularies.Delete(context.Background(), id)
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.Equal(mt, []string{"findAndModify"}, commandNames(mt))
	})
}

func TestMongoLessons(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate number on create", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))

		err := store.Lessons.Create(context.Background(), &models.Lesson{Title: "Greetings", Number: 1})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("duplicate number on renumber", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error index: uniq_lesson_number",
		}))

		n := 2
		_, err := store.Lessons.Update(context.Background(), primitive.NewObjectID(), LessonUpdate{Number: &n})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("update missing lesson", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		title := "Numbers"
		_, err := store.Lessons.Update(context.Background(), primitive.NewObjectID(), LessonUpdate{Title: &title})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete cascades to vocabulary", func(mt *mtest.T) {
		store := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(matched(1)),
			mtest.CreateSuccessResponse(matched(3)),
		)

		require.NoError(mt, store.Lessons.Delete(context.Background(), id))
		require.Equal(mt, []string{"delete", "delete"}, commandNames(mt))

		cascade := mt.GetAllStartedEvents()[1].Command
		lesson, ok := cascade.Lookup("deletes", "0", "q", "lesson").ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, id, lesson)
	})

	mt.Run("delete missing lesson", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(matched(0)))

		err := store.Lessons.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.Equal(mt, []string{"delete"}, commandNames(mt))
	})
}

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := mockDB + ".users"

	mt.Run("find by email", func(mt *mtest.T) {
		store := newMockStore(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "role", Value: "admin"},
		}))

		u, err := store.Users.FindByEmail(context.Background(), "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.True(mt, u.IsAdmin())
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.Users.FindByEmail(context.Background(), "ghost@x.com")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))

		err := store.Users.Create(context.Background(), &models.User{Email: "a@x.com"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})
}
