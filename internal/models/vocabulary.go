package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vocabulary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Word          string             `bson:"word" json:"word"`
	Pronunciation string             `bson:"pronunciation" json:"pronunciation"`
	Meaning       string             `bson:"meaning" json:"meaning"`
	WhenToSay     string             `bson:"whenToSay" json:"whenToSay"`
	Lesson        primitive.ObjectID `bson:"lesson" json:"lesson"`
	AdminEmail    string             `bson:"adminEmail" json:"adminEmail"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
