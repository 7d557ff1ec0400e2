package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"alfredoptarigan/ats-checker/internal/config"
	"alfredoptarigan/ats-checker/internal/logger"
	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/view"
	"alfredoptarigan/ats-checker/internal/workspace"
)

// check_resume runs one analysis from the command line, going through the
// same workspace transitions as the web front-end.
func main() {
	resumePath := pflag.StringP("resume", "r", "", "path to the resume PDF")
	jobRole := pflag.StringP("role", "t", "", "target job role")
	descriptionPath := pflag.StringP("description", "d", "", "path to a text file with the job description")
	pflag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: "pretty"})

	if *resumePath == "" || *descriptionPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	description, err := os.ReadFile(*descriptionPath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to read job description")
	}

	f, err := os.Open(*resumePath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to open resume")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to stat resume")
	}

	ctx := context.Background()
	ingestion := services.NewIngestionService(services.NewPDFParserService(), cfg.Upload.MaxFileSize)
	mediaType := mime.TypeByExtension(filepath.Ext(*resumePath))
	file, err := ingestion.Ingest(ctx, filepath.Base(*resumePath), mediaType, stat.Size(), f)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Resume rejected")
	}

	ws := workspace.New("cli")
	_ = ws.StageFile(file)
	_ = ws.SetJobRole(*jobRole)
	_ = ws.SetJobDescription(string(description))
	if !ws.CanSubmit() {
		log.Fatal().Msg("❌ " + view.ReadinessHint)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize Gemini AI")
	}

	result, err := workspace.NewSubmitter(services.NewAnalyzer(geminiService), nil).Submit(ctx, ws)
	if err != nil {
		log.Fatal().Msg("❌ " + workspace.NoticeFor(err))
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	fmt.Printf("\nScore %d%%: %s\n", result.Score, view.BandFor(result.Score).Message)
}
