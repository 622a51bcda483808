package handlers

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/arzan03/lingo/internal/metrics"
	"github.com/arzan03/lingo/internal/middleware"
	"github.com/arzan03/lingo/internal/services"
	"github.com/arzan03/lingo/internal/token"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Auth       *services.AuthService
	Lessons    *services.LessonService
	Vocabulary *services.VocabularyService
	Tutorials  *services.TutorialService
	Profiles   *services.ProfileImageService
	Tokens     *token.Service

	Production     bool
	AllowedOrigins []string

	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Health   []HealthCheck
	Log      *slog.Logger
}

// NewApp builds the Fiber application with every route registered.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "lingo",
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler(d.Log),
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: middleware.RequestIDKey,
	}))
	app.Use(corsMiddleware(d.AllowedOrigins))
	app.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		app.Use(middleware.Metrics(d.Metrics))
	}

	h := &Handler{
		auth:       d.Auth,
		lessons:    d.Lessons,
		vocabulary: d.Vocabulary,
		tutorials:  d.Tutorials,
		profiles:   d.Profiles,
		tokens:     d.Tokens,
		cookies:    CookiePolicy{Production: d.Production, TTL: d.Tokens.TTL()},
		log:        d.Log,
	}

	authz := services.NewAuthorizer(d.Auth)
	gate := middleware.SessionGate(d.Tokens)
	self := func(src middleware.IdentitySource) fiber.Handler { return middleware.Authorize(authz, src, false) }
	admin := func(src middleware.IdentitySource) fiber.Handler { return middleware.Authorize(authz, src, true) }
	query, body := middleware.FromQuery("email"), middleware.FromBody("email")

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Hello World") })
	app.Get("/health", healthHandler(d.Health))
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// Auth Routes
	app.Post("/jwt", h.IssueToken)
	app.Post("/validate-token", gate, h.ValidateToken)
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/logout", h.Logout)

	// User Routes
	app.Get("/users/checking", gate, self(query), h.CheckRole)
	app.Get("/users", gate, admin(query), h.ListUsers)
	app.Patch("/users/role", gate, admin(body), h.UpdateRole)
	app.Get("/users/photo", gate, self(query), h.ProfileImage)
	app.Put("/users/photo", gate, self(query), h.ConfirmProfileImage)
	app.Post("/users/photo-upload", gate, self(query), h.ProfileImageUpload)

	// Lesson Routes
	app.Post("/create-lesson", gate, admin(body), h.CreateLesson)
	app.Get("/lessons", gate, self(query), h.ListLessons)
	app.Get("/lessons/:id", gate, self(query), h.GetLesson)
	app.Patch("/edit-lesson/:id", gate, admin(body), h.EditLesson)
	app.Delete("/delete-lesson/:id", gate, admin(query), h.DeleteLesson)

	// Vocabulary Routes
	app.Post("/create-vocabulary", gate, admin(body), h.CreateVocabulary)
	app.Get("/vocabularies", gate, self(query), h.ListVocabularies)
	app.Get("/vocabularies/:id", gate, self(query), h.GetVocabulary)
	app.Patch("/edit-vocabulary/:id", gate, admin(body), h.EditVocabulary)
	app.Delete("/delete-vocabulary/:id", gate, admin(query), h.DeleteVocabulary)

	// Tutorial Routes
	app.Post("/create-tutorial", gate, admin(body), h.CreateTutorial)
	app.Get("/tutorials", gate, self(query), h.ListTutorials)
	app.Get("/tutorials/:id", gate, self(query), h.GetTutorial)
	app.Patch("/edit-tutorial/:id", gate, admin(body), h.EditTutorial)
	app.Delete("/delete-tutorial/:id", gate, admin(query), h.DeleteTutorial)

	return app
}

// corsMiddleware allows credentialed requests from the configured origins.
func corsMiddleware(origins []string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
	}
	// fiber refuses credentials with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOrigins = "*"
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
