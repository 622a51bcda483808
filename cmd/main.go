package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/lingo/internal/config"
	"github.com/arzan03/lingo/internal/db"
	"github.com/arzan03/lingo/internal/handlers"
	"github.com/arzan03/lingo/internal/logging"
	"github.com/arzan03/lingo/internal/metrics"
	"github.com/arzan03/lingo/internal/repository"
	"github.com/arzan03/lingo/internal/services"
	"github.com/arzan03/lingo/internal/storage"
	"github.com/arzan03/lingo/internal/token"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Environment, cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	tokens, err := token.NewService(cfg.AccessTokenSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	store, client, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Warn("mongodb disconnect", "error", err)
			}
		}()
	}

	checks := []handlers.HealthCheck{{Name: "store", Check: store.Ping}}

	// Profile image uploads stay disabled without object storage.
	var objects services.ObjectStore
	if cfg.ObjectStorageEnabled() {
		minioStore, err := storage.NewMinio(ctx, storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		}, log)
		if err != nil {
			return err
		}
		objects = minioStore
		checks = append(checks, handlers.HealthCheck{Name: "object_storage", Check: minioStore.Ping})
	}

	reg := metrics.NewRegistry()
	auth := services.NewAuthService(store.Users, services.DefaultHashCost, log)

	app := handlers.NewApp(handlers.Deps{
		Auth:           auth,
		Lessons:        services.NewLessonService(store.Lessons, store.Vocabularies, log),
		Vocabulary:     services.NewVocabularyService(store.Lessons, store.Vocabularies, log),
		Tutorials:      services.NewTutorialService(store.Tutorials),
		Profiles:       services.NewProfileImageService(store.Users, objects),
		Tokens:         tokens,
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics.NewCollector(reg),
		Gatherer:       reg,
		Health:         checks,
		Log:            log,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Environment, "store", cfg.StoreDriver)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// openStore returns the configured Store; the Mongo client is nil for the
// memory driver.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*repository.Store, *mongo.Client, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil, nil
	}

	client, err := db.ConnectMongoDB(ctx, db.Options{
		URI:      cfg.MongoURI,
		Username: cfg.DBUser,
		Password: cfg.DBPass,
	})
	if err != nil {
		return nil, nil, err
	}
	useTx := cfg.UseTransactions
	if useTx {
		supported, err := db.SupportsTransactions(ctx, client)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		if !supported {
			log.Warn("mongodb is standalone, falling back to compensating writes", "env", "MONGO_TRANSACTIONS")
			useTx = false
		}
	}
	log.Info("connected to mongodb", "database", cfg.DBName, "transactions", useTx)

	if err := db.EnsureIndexes(ctx, client.Database(cfg.DBName)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return repository.NewMongoStore(client, cfg.DBName, useTx, log), client, nil
}
