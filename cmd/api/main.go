package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-checker/internal/config"
	"alfredoptarigan/ats-checker/internal/handlers"
	"alfredoptarigan/ats-checker/internal/logger"
	"alfredoptarigan/ats-checker/internal/repositories"
	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/workspace"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	log.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	// Analysis history is optional; without it nothing touches a database.
	recordRepo := repositories.NewNoopAnalysisRecordRepository()
	if cfg.History.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize database")
		}
		recordRepo = repositories.NewAnalysisRecordRepository(db)
		log.Info().Msg("✅ Analysis history enabled")
	}
	historyService := services.NewHistoryService(recordRepo, cfg.History.Limit)

	// Initialize services
	pdfParser := services.NewPDFParserService()
	ingestionService := services.NewIngestionService(pdfParser, cfg.Upload.MaxFileSize)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}
	log.Info().Str("model", geminiService.ModelName()).Msg("✅ Gemini AI initialized successfully")

	analyzer := services.NewAnalyzer(geminiService)

	// Workspaces
	registry := workspace.NewRegistry(cfg.Session.MaxWorkspaces)
	submitter := workspace.NewSubmitter(analyzer, historyService)
	janitor := workspace.NewJanitor(registry, cfg.Session.IdleTimeout, cfg.Session.SweepInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	janitor.Start(ctx)

	workspaceHandler := handlers.NewWorkspaceHandler(ingestionService, submitter, historyService)
	app := handlers.NewRouter(workspaceHandler, registry, handlers.RouterOptions{
		CookieName: cfg.Session.CookieName,
		// Slightly oversized uploads reach ingestion and get the inline error.
		BodyLimit: int(cfg.Upload.MaxFileSize * 2),
		AccessLog: true,
	})
	log.Info().Msg("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		janitor.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Msgf("🚀 Server starting on %s", addr)
	log.Info().Msgf("📖 Open http://localhost%s in a browser", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}
