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

type mongoUsers struct{ *mongoBase }

func (r *mongoUsers) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now

	if _, err := r.users.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user: %w", mapErr(err))
	}
	return nil
}

func (r *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *mongoUsers) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return decodeAll[models.User](ctx, cursor)
}

func (r *mongoUsers) UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	return r.update(ctx, email, bson.D{{Key: "role", Value: role}})
}

func (r *mongoUsers) SetPhoto(ctx context.Context, email, ref string) error {
	_, err := r.update(ctx, email, bson.D{{Key: "photo", Value: ref}})
	return err
}

func (r *mongoUsers) update(ctx context.Context, email string, set bson.D) (*models.User, error) {
	set = append(set, bson.E{Key: "updated_at", Value: time.Now().UTC()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}
