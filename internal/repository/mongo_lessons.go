package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/lingo/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoLessons struct{ *mongoBase }

func (r *mongoLessons) Create(ctx context.Context, l *models.Lesson) error {
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt, l.UpdatedAt = now, now
	l.SyncCount()

	if _, err := r.lessons.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert lesson: %w", mapErr(err))
	}
	return nil
}

func (r *mongoLessons) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	var l models.Lesson
	if err := r.lessons.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, mapErr(err)
	}
	return &l, nil
}

func (r *mongoLessons) List(ctx context.Context) ([]models.Lesson, error) {
	cursor, err := r.lessons.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "lesson_number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find lessons: %w", err)
	}
	return decodeAll[models.Lesson](ctx, cursor)
}

func (r *mongoLessons) Update(ctx context.Context, id primitive.ObjectID, upd LessonUpdate) (*models.Lesson, error) {
	set := setFields(
		bson.E{Key: "lesson_title", Value: derefOrNil(upd.Title)},
		bson.E{Key: "lesson_number", Value: derefOrNil(upd.Number)},
		bson.E{Key: "updated_at", Value: time.Now().UTC()},
	)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var l models.Lesson
	if err := r.lessons.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&l); err != nil {
		return nil, mapErr(err)
	}
	return &l, nil
}

func (r *mongoLessons) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		res, err := r.lessons.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("delete lesson: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		if _, err := r.vocabularies.DeleteMany(ctx, bson.M{"lesson": id}); err != nil {
			return fmt.Errorf("delete lesson vocabularies: %w", err)
		}
		return nil
	})
}

// syncVocabularies rewrites lesson_vocabularies with expr and recomputes the
// derived count in the same single-document update.
func syncVocabularies(ctx context.Context, lessons *mongo.Collection, lessonID primitive.ObjectID, expr bson.D) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "lesson_vocabularies", Value: expr},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "lesson_vocabulary", Value: bson.D{{Key: "$size", Value: "$lesson_vocabularies"}}},
		}}},
	}
	res, err := lessons.UpdateByID(ctx, lessonID, pipeline)
	if err != nil {
		return fmt.Errorf("update lesson vocabularies: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func currentVocabularies() bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{"$lesson_vocabularies", bson.A{}}}}
}

func appendExpr(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "$concatArrays", Value: bson.A{currentVocabularies(), bson.A{id}}}}
}

func pullExpr(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: currentVocabularies()},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", id}}}},
	}}}
}
