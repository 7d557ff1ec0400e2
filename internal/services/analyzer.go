package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"alfredoptarigan/ats-checker/internal/models"
)

type Analyzer interface {
	Analyze(ctx context.Context, encodedFile, mediaType, jobDescription, jobRole string) (*models.AnalysisResult, error)
}

type analyzer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewAnalyzer(gemini GeminiService) Analyzer {
	return &analyzer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze sends the resume and job details to the model once and decodes
// the structured answer. Every failure is an *AnalysisError.
func (a *analyzer) Analyze(ctx context.Context, encodedFile, mediaType, jobDescription, jobRole string) (*models.AnalysisResult, error) {
	data, err := base64.StdEncoding.DecodeString(encodedFile)
	if err != nil {
		return nil, &AnalysisError{Message: "Uploaded file is not valid base64 content.", Err: err}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mediaType),
			genai.NewPartFromText(a.promptBuilder.BuildATSPrompt(jobRole, jobDescription)),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   AnalysisResponseSchema(),
	}

	started := time.Now()
	text, err := a.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		log.Error().Err(err).Str("role", jobRole).Msg("❌ ATS analysis failed")
		return nil, upstreamError(err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, &AnalysisError{Message: MsgNoResponse}
	}

	result, err := DecodeAnalysisResult(text)
	if err != nil {
		log.Error().Err(err).Int("chars", len(text)).Msg("❌ Failed to parse ATS analysis response")
		return nil, &AnalysisError{Message: "Failed to parse AI response: " + err.Error(), Err: err}
	}

	log.Info().
		Str("role", jobRole).
		Int("score", result.Score).
		Dur("took", time.Since(started)).
		Msg("✅ ATS analysis completed")

	return result, nil
}

func upstreamError(err error) *AnalysisError {
	if isNotFound(err) {
		return &AnalysisError{Message: MsgModelNotFound, Err: err}
	}

	msg := err.Error()
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	if strings.TrimSpace(msg) == "" {
		msg = MsgAnalyzeFailed
	}
	return &AnalysisError{Message: msg, Err: err}
}

func isNotFound(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code == http.StatusNotFound {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "NOT_FOUND")
}
