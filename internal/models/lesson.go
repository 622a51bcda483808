package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lesson struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"lesson_title" json:"lesson_title"`
	Number       int                  `bson:"lesson_number" json:"lesson_number"`
	VocabCount   int                  `bson:"lesson_vocabulary" json:"lesson_vocabulary"`
	Vocabularies []primitive.ObjectID `bson:"lesson_vocabularies" json:"lesson_vocabularies"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// SyncCount recomputes the derived vocabulary count. Call before every save.
func (l *Lesson) SyncCount() {
	if l.Vocabularies == nil {
		l.Vocabularies = []primitive.ObjectID{}
	}
	l.VocabCount = len(l.Vocabularies)
}

// LessonDetail is a lesson with its vocabulary entries populated.
type LessonDetail struct {
	Lesson
	Entries []Vocabulary `json:"vocabularies"`
}
