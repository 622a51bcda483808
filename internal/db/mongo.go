package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	UsersCollection        = "users"
	LessonsCollection      = "lessons"
	VocabulariesCollection = "vocabularies"
	TutorialsCollection    = "tutorials"
)

const connectTimeout = 10 * time.Second

// Options describes how to reach the database.
type Options struct {
	URI      string
	Username string
	Password string
}

// ConnectMongoDB opens a client and verifies it with a ping.
func ConnectMongoDB(ctx context.Context, opts Options) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(opts.URI)
	if opts.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
// Uniqueness of user email and lesson number is enforced here, not in code.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		LessonsCollection: {
			Keys:    bson.D{{Key: "lesson_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_lesson_number"),
		},
		VocabulariesCollection: {
			Keys:    bson.D{{Key: "lesson", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("lesson_created"),
		},
		TutorialsCollection: {
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}

	for coll, model := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

// SupportsTransactions asks the server whether it is a replica set member or
// a mongos router. Standalone servers reject multi-document transactions.
func SupportsTransactions(ctx context.Context, client *mongo.Client) (bool, error) {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
	if err != nil {
		return false, fmt.Errorf("mongodb hello: %w", err)
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid", nil
}
