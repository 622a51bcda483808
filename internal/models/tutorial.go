package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tutorial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"tutorial_title" json:"tutorial_title"`
	Link      string             `bson:"tutorial_link" json:"tutorial_link"`
	AddedBy   string             `bson:"tutorial_addedBy" json:"tutorial_addedBy"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
