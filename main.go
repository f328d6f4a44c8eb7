package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worklog/app"
	"worklog/config"
	"worklog/database"
	"worklog/handlers"
	"worklog/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", cfg.DBPath)

	a := app.New(db, cfg)

	srv := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: cfg.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
		ReadBufferSize:        8192,
	})

	srv.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	srv.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := srv.Group("/api")

	api.Get("/companies", handlers.GetCompanies(a))
	api.Post("/companies", handlers.CreateCompany(a))
	api.Get("/companies/interactions", handlers.CompanyInteractions(a))
	api.Get("/companies/:pid", handlers.GetCompany(a))
	api.Put("/companies/:id/default", handlers.SetDefaultCompany(a))
	api.Delete("/companies/:id", handlers.DeleteCompany(a))

	api.Get("/projects", handlers.GetProjects(a))
	api.Post("/projects", handlers.CreateProject(a))
	api.Get("/projects/interactions", handlers.ProjectInteractions(a))
	api.Get("/projects/:pid", handlers.GetProject(a))
	api.Put("/projects/:id/ignored-jobs", handlers.SetIgnoredJobs(a))
	api.Delete("/projects/:id", handlers.DeleteProject(a))

	api.Get("/jobs", handlers.GetJobs(a))
	api.Post("/jobs", handlers.CreateJob(a))
	api.Get("/jobs/interactions", handlers.JobInteractions(a))
	api.Get("/jobs/:jid", handlers.GetJob(a))
	api.Delete("/jobs/:id", handlers.DeleteJob(a))

	api.Get("/records", handlers.GetRecords(a))
	api.Post("/records", handlers.CreateRecord(a))
	api.Get("/records/stats", handlers.RecordStats(a))
	api.Post("/records/export", handlers.ExportRecords(a))
	api.Delete("/records/:id", handlers.DeleteRecord(a))

	api.Get("/tasks", handlers.GetTasks(a))
	api.Post("/tasks", handlers.CreateTask(a))
	api.Put("/tasks/:id/complete", handlers.CompleteTask(a))
	api.Put("/tasks/:id/cancel", handlers.CancelTask(a))

	api.Get("/notes", handlers.GetNotes(a))
	api.Post("/notes", handlers.CreateNote(a))
	api.Put("/notes/:id", handlers.UpdateNote(a))
	api.Get("/notes/:id/versions", handlers.GetNoteVersions(a))
	api.Delete("/notes/:id", handlers.DeleteNote(a))

	api.Get("/people", handlers.GetPeople(a))
	api.Post("/people", handlers.CreatePerson(a))
	api.Delete("/people/:id", handlers.DeletePerson(a))

	api.Get("/plan", handlers.GetPlan(a))
	api.Post("/plan", handlers.CreatePlan(a))

	api.Get("/terms", handlers.GetTerms(a))
	api.Post("/terms", handlers.CreateTerm(a))
	api.Get("/terms/:id/definitions", handlers.GetTermDefinitions(a))
	api.Post("/definitions", handlers.CreateDefinition(a))
	api.Delete("/terms/:id", handlers.DeleteTerm(a))

	api.Get("/words", handlers.GetBannedWords(a))
	api.Post("/words", handlers.CreateBannedWord(a))
	api.Delete("/words/:id", handlers.DeleteBannedWord(a))

	api.Get("/searches", handlers.GetSavedSearches(a))
	api.Post("/searches", handlers.SaveSearch(a))
	api.Delete("/searches", handlers.DeleteSavedSearch(a))

	api.Get("/assessments/factors", handlers.GetFactors(a))
	api.Post("/assessments/factors", handlers.CreateFactor(a))
	api.Put("/assessments/factors/:id", handlers.UpdateFactor(a))
	api.Delete("/assessments/factors/:id", handlers.DeleteFactor(a))
	api.Get("/assessments/thresholds", handlers.GetThresholds(a))
	api.Post("/assessments/thresholds/reset", handlers.ResetThresholds(a))

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Flush anything still staged before the process exits.
	if err := db.Commit(); err != nil {
		logger.Error("failed to flush pending writes", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: cfg.Env == "development",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	level := config.GetEnv("LOG_LEVEL", "info")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("unhandled error",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
