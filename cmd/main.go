// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_beauty_tracker/internal/config"
	"go_beauty_tracker/internal/handlers"
	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/repository"
	"go_beauty_tracker/internal/seed"
	"go_beauty_tracker/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gorm.io/gorm"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	if err := config.LoadConfig("../configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// === Database ===
	// デモモードではインメモリSQLiteにスキーマと初期データを投入する
	var db *gorm.DB
	var err error
	if config.Cfg.Demo.Enabled {
		slog.Info("Demo mode enabled: using in-memory SQLite")
		db, err = repository.NewDemoDB(logger)
		if err != nil {
			slog.Error("Error initializing demo database", slog.Any("error", err))
			os.Exit(1)
		}
		if err := seed.Run(db, logger); err != nil {
			slog.Error("Error seeding demo data", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		db, err = repository.NewDB(config.Cfg.Database.URL, logger)
		if err != nil {
			slog.Error("Error initializing database", slog.Any("error", err))
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// === Dependency Injection ===
	userRepo := repository.NewGormUserRepository()
	tokenRepo := repository.NewGormTokenRepository()
	habitRepo := repository.NewGormHabitRepository()
	templateRepo := repository.NewGormTemplateRepository()
	programRepo := repository.NewGormProgramRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo, tokenRepo, mailer, &config.Cfg)
	trackerService := service.NewTrackerService(db, programRepo, templateRepo, &config.Cfg)
	templateService := service.NewTemplateService(db, templateRepo, habitRepo)
	habitService := service.NewHabitService(db, habitRepo)

	authHandler := handlers.NewAuthHandler(authService)
	trackerHandler := handlers.NewTrackerHandler(trackerService, templateService, logger)
	adminHandler := handlers.NewAdminHandler(templateService, habitService, logger)

	// === Router ===
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
		Debug:            false,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// 認証ミドルウェアの選択。auth.enabled=false はローカル開発専用で、
	// X-User-ID / X-User-Role ヘッダーをそのまま信用する。
	var authMiddleware func(http.Handler) http.Handler
	if config.Cfg.Auth.Enabled {
		slog.Info("Applying JWT authentication middleware")
		authMiddleware = middleware.JWTAuthMiddleware(&config.Cfg)
	} else {
		slog.Warn("Authentication disabled: using dev header middleware")
		authMiddleware = middleware.DevUserContextMiddleware
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/register", authHandler.Register)
		r.Get("/auth/verify", authHandler.VerifyAccount)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/public", func(r chi.Router) {
			r.Get("/info", trackerHandler.GetPublicInfo)
			r.Get("/programs", trackerHandler.ListPublicPrograms)
			r.Get("/programs/{template_id}/demo-day", trackerHandler.GetDemoDay)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/auth/me", authHandler.GetMe)

			r.Route("/tracker", func(r chi.Router) {
				r.Post("/programs/start", trackerHandler.StartProgram)
				r.Get("/programs/current", trackerHandler.GetCurrentProgram)
				r.Post("/programs/abandon", trackerHandler.AbandonProgram)
				r.Get("/days", trackerHandler.GetDays)
				r.Get("/days/current", trackerHandler.GetCurrentDay)
				r.Get("/days/{day_number}", trackerHandler.GetDay)
				r.Post("/days/{day_number}/habits/{habit_id}/toggle", trackerHandler.ToggleHabit)
				r.Post("/days/{day_number}/complete", trackerHandler.CompleteDay)
				r.Post("/days/{day_number}/skip", trackerHandler.SkipDay)
				r.Get("/progress", trackerHandler.GetProgress)
			})

			// --- Admin routes ---
			r.Route("/admin/tracker", func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleAdmin))

				r.Route("/templates", func(r chi.Router) {
					r.Post("/", adminHandler.PostTemplate)
					r.Get("/", adminHandler.GetTemplates)
					r.Get("/{template_id}", adminHandler.GetTemplate)
					r.Patch("/{template_id}", adminHandler.PatchTemplate)
					r.Post("/{template_id}/activate", adminHandler.ActivateTemplate)
					r.Delete("/{template_id}", adminHandler.DeleteTemplate)

					r.Post("/{template_id}/days", adminHandler.PostTemplateDay)
					r.Get("/{template_id}/days", adminHandler.GetTemplateDays)
					r.Patch("/{template_id}/days/{day_number}", adminHandler.PatchTemplateDay)
					r.Delete("/{template_id}/days/{day_number}", adminHandler.DeleteTemplateDay)
				})

				r.Route("/habits", func(r chi.Router) {
					r.Post("/", adminHandler.PostHabit)
					r.Get("/", adminHandler.GetHabits)
					r.Get("/{habit_id}", adminHandler.GetHabit)
					r.Patch("/{habit_id}", adminHandler.PatchHabit)
					r.Delete("/{habit_id}", adminHandler.DeleteHabit)
				})
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// === Server ===
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
