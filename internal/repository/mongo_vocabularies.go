package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/lingo/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoVocabularies struct{ *mongoBase }

func (r *mongoVocabularies) CreateInLesson(ctx context.Context, v *models.Vocabulary) error {
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.CreatedAt, v.UpdatedAt = now, now

	return r.withTx(ctx, func(ctx context.Context) error {
		if _, err := r.vocabularies.InsertOne(ctx, v); err != nil {
			return fmt.Errorf("insert vocabulary: %w", mapErr(err))
		}
		err := syncVocabularies(ctx, r.lessons, v.Lesson, appendExpr(v.ID))
		if err != nil && !r.useTx {
			r.undoInsert(ctx, v.ID)
		}
		return err
	})
}

// undoInsert is the compensating write for CreateInLesson without transactions.
func (r *mongoVocabularies) undoInsert(ctx context.Context, id primitive.ObjectID) {
	if _, err := r.vocabularies.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": id}); err != nil {
		r.log.Error("compensating vocabulary delete failed", "vocabulary_id", id.Hex(), "error", err)
	}
}

func (r *mongoVocabularies) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Vocabulary, error) {
	var v models.Vocabulary
	if err := r.vocabularies.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *mongoVocabularies) List(ctx context.Context, lessonID *primitive.ObjectID) ([]models.Vocabulary, error) {
	filter := bson.M{}
	if lessonID != nil {
		filter["lesson"] = *lessonID
	}
	cursor, err := r.vocabularies.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find vocabularies: %w", err)
	}
	return decodeAll[models.Vocabulary](ctx, cursor)
}

func (r *mongoVocabularies) Update(ctx context.Context, id primitive.ObjectID, upd VocabularyUpdate) (*models.Vocabulary, error) {
	set := setFields(
		bson.E{Key: "word", Value: derefOrNil(upd.Word)},
		bson.E{Key: "pronunciation", Value: derefOrNil(upd.Pronunciation)},
		bson.E{Key: "meaning", Value: derefOrNil(upd.Meaning)},
		bson.E{Key: "whenToSay", Value: derefOrNil(upd.WhenToSay)},
		bson.E{Key: "updated_at", Value: time.Now().UTC()},
	)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var v models.Vocabulary
	if err := r.vocabularies.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&v); err != nil {
		return nil, mapErr(err)
	}
	return &v, nil
}

func (r *mongoVocabularies) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.withTx(ctx, func(ctx context.Context) error {
		var v models.Vocabulary
		if err := r.vocabularies.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
			return mapErr(err)
		}
		err := syncVocabularies(ctx, r.lessons, v.Lesson, pullExpr(v.ID))
		if errors.Is(err, ErrNotFound) {
			// orphaned entry, nothing to pull from
			return nil
		}
		if err != nil && !r.useTx {
			if _, rerr := r.vocabularies.InsertOne(context.WithoutCancel(ctx), v); rerr != nil {
				r.log.Error("compensating vocabulary restore failed", "vocabulary_id", id.Hex(), "error", rerr)
			}
		}
		return err
	})
}
