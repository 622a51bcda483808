package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arzan03/lingo/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoBase struct {
	client       *mongo.Client
	users        *mongo.Collection
	lessons      *mongo.Collection
	vocabularies *mongo.Collection
	tutorials    *mongo.Collection
	useTx        bool
	log          *slog.Logger
}

// NewMongoStore builds repositories over database dbName. With useTx the
// multi-document writes run inside a transaction (replica set or Atlas);
// without it they fall back to compensating writes on partial failure.
func NewMongoStore(client *mongo.Client, dbName string, useTx bool, log *slog.Logger) *Store {
	database := client.Database(dbName)
	base := &mongoBase{
		client:       client,
		users:        database.Collection(db.UsersCollection),
		lessons:      database.Collection(db.LessonsCollection),
		vocabularies: database.Collection(db.VocabulariesCollection),
		tutorials:    database.Collection(db.TutorialsCollection),
		useTx:        useTx,
		log:          log,
	}
	return &Store{
		Users:        &mongoUsers{base},
		Lessons:      &mongoLessons{base},
		Vocabularies: &mongoVocabularies{base},
		Tutorials:    &mongoTutorials{base},
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

// withTx runs fn inside a transaction when enabled, otherwise directly.
func (m *mongoBase) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.useTx {
		return fn(ctx)
	}
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// decodeAll drains cursor into a non-nil slice.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func setFields(pairs ...bson.E) bson.D {
	set := bson.D{}
	for _, p := range pairs {
		if p.Value != nil {
			set = append(set, p)
		}
	}
	return set
}
