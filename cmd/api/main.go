// Package main is the entrypoint for the Everkeep API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/cache"
	"github.com/everkeep/everkeep/internal/client"
	"github.com/everkeep/everkeep/internal/config"
	"github.com/everkeep/everkeep/internal/handler"
	"github.com/everkeep/everkeep/internal/middleware"
	"github.com/everkeep/everkeep/internal/repository"
	"github.com/everkeep/everkeep/internal/server"
	"github.com/everkeep/everkeep/internal/service"
	"github.com/everkeep/everkeep/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Run pending migrations before opening the pool.
	if err := repository.Migrate(ctx, cfg.DatabaseURL); err != nil {
		logger.Error(
			"failed to run migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	store, err := storage.NewLocalStore(cfg.MediaDir)
	if err != nil {
		logger.Error("failed to prepare media directory", "error", err, "dir", cfg.MediaDir)
		os.Exit(1)
	}

	codec, err := auth.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		logger.Error("failed to initialize token codec", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	faceClient := client.NewFaceClient(cfg.FaceServiceURL, cfg.ClientTimeout)
	speechClient := client.NewSpeechClient(cfg.SpeechServiceURL, cfg.ClientTimeout)

	// Services
	userService := service.NewUserService(repo, hasher, codec, cfg.JWTTTL)
	contactService := service.NewContactService(repo)
	mediaService := service.NewMediaService(repo, store, cfg.MaxUploadBytes)
	storyService := service.NewStoryService(repo)
	chatService := service.NewChatService(repo)
	sudokuService := service.NewSudokuService(repo)
	cloneService := service.NewAICloneService(repo, store, faceClient, speechClient)

	// Handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(userService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	mediaHandler := handler.NewMediaHandler(mediaService, logger)
	storyHandler := handler.NewStoryHandler(storyService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	sudokuHandler := handler.NewSudokuHandler(sudokuService, logger)
	cloneHandler := handler.NewCloneVideoHandler(cloneService, logger)
	assessmentHandler := handler.NewAssessmentHandler(repo, logger)

	r := setupRouter(routerDeps{
		cfg:        cfg,
		logger:     logger,
		repo:       repo,
		cache:      cacheClient,
		codec:      codec,
		health:     healthHandler,
		auth:       authHandler,
		user:       userHandler,
		contact:    contactHandler,
		media:      mediaHandler,
		story:      storyHandler,
		chat:       chatHandler,
		sudoku:     sudokuHandler,
		clone:      cloneHandler,
		assessment: assessmentHandler,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	cfg        *config.Config
	logger     *slog.Logger
	repo       *repository.Repository
	cache      *cache.Cache
	codec      *auth.TokenCodec
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	user       *handler.UserHandler
	contact    *handler.ContactHandler
	media      *handler.MediaHandler
	story      *handler.StoryHandler
	chat       *handler.ChatHandler
	sudoku     *handler.SudokuHandler
	clone      *handler.CloneVideoHandler
	assessment *handler.AssessmentHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	if origins := d.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)

	authCfg := middleware.AuthConfig{
		Logger: d.logger,
		Codec:  d.codec,
		Users:  d.repo,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.logger,
		Cache:   d.cache,
		Enabled: d.cfg.RateLimitAuthEnabled,
		RPS:     d.cfg.RateLimitAuthRPS,
		Burst:   d.cfg.RateLimitAuthBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Registration and login are the only unauthenticated routes;
		// they carry IP rate limiting instead.
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimitIP(rateLimitCfg))
			r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/register", d.auth.Register)
			r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/login", d.auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", d.user.Me)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Patch("/me", d.user.UpdateProfile)
				r.Delete("/me", d.user.Delete)
				r.Get("/{id}", d.user.Get)
			})

			r.Route("/emergency-contacts", func(r chi.Router) {
				r.Get("/", d.contact.List)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/", d.contact.Create)
				r.Get("/{id}", d.contact.Get)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Patch("/{id}", d.contact.Update)
				r.Delete("/{id}", d.contact.Delete)
			})

			r.Route("/media", func(r chi.Router) {
				r.Get("/", d.media.List)
				r.Post("/", d.media.Upload)
				r.Get("/{id}", d.media.Get)
				r.Get("/{id}/content", d.media.Download)
				r.Delete("/{id}", d.media.Delete)
			})

			r.Route("/stories", func(r chi.Router) {
				r.Get("/", d.story.List)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/", d.story.Create)
				r.Get("/{id}", d.story.Get)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Patch("/{id}", d.story.Update)
				r.Delete("/{id}", d.story.Delete)
			})

			r.Route("/chat/sessions", func(r chi.Router) {
				r.Get("/", d.chat.ListSessions)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/", d.chat.CreateSession)
				r.Get("/{id}", d.chat.GetSession)
				r.Delete("/{id}", d.chat.DeleteSession)
				r.Get("/{id}/messages", d.chat.ListMessages)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/{id}/messages", d.chat.PostMessage)
			})

			r.Route("/sudoku", func(r chi.Router) {
				r.Get("/", d.sudoku.List)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/", d.sudoku.Create)
				r.Get("/{id}", d.sudoku.Get)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Patch("/{id}", d.sudoku.UpdateBoard)
				r.Delete("/{id}", d.sudoku.Delete)
			})

			r.Route("/ai-clone/videos", func(r chi.Router) {
				r.Get("/", d.clone.List)
				r.With(bodyLimit(d.cfg.MaxRequestBodySize)).Post("/", d.clone.Create)
				r.Get("/{id}", d.clone.Get)
				r.Delete("/{id}", d.clone.Delete)
			})

			r.Get("/assessment-types", d.assessment.List)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// bodyLimit caps the request body size for JSON endpoints. Media
// uploads are excluded; the media service enforces its own cap.
func bodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
