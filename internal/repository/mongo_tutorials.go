package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/lingo/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoTutorials struct{ *mongoBase }

func (r *mongoTutorials) Create(ctx context.Context, t *models.Tutorial) error {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt, t.UpdatedAt = now, now

	if _, err := r.tutorials.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert tutorial: %w", mapErr(err))
	}
	return nil
}

func (r *mongoTutorials) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tutorial, error) {
	var t models.Tutorial
	if err := r.tutorials.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *mongoTutorials) List(ctx context.Context) ([]models.Tutorial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.tutorials.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tutorials: %w", err)
	}
	return decodeAll[models.Tutorial](ctx, cursor)
}

func (r *mongoTutorials) Update(ctx context.Context, id primitive.ObjectID, upd TutorialUpdate) (*models.Tutorial, error) {
	set := setFields(
		bson.E{Key: "tutorial_title", Value: derefOrNil(upd.Title)},
		bson.E{Key: "tutorial_link", Value: derefOrNil(upd.Link)},
		bson.E{Key: "updated_at", Value: time.Now().UTC()},
	)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t models.Tutorial
	if err := r.tutorials.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&t); err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *mongoTutorials) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.tutorials.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// derefOrNil turns an unset optional field into a nil interface so that
// setFields drops it.
func derefOrNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
