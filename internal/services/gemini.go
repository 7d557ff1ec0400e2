package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)
	ModelName() string
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds a client from an explicit key. baseURL is only set
// when pointing at a proxy or a test server.
func NewGeminiService(apiKey, modelName, baseURL string) (GeminiService, error) {
	ctx := context.Background()

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

// GenerateContent implements GeminiService. An empty string with a nil
// error means the model answered without text.
func (g *geminiService) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Error().Err(err).Str("model", g.modelName).Msg("❌ Gemini API error")
		return "", err
	}

	if resp == nil {
		log.Warn().Str("model", g.modelName).Msg("❌ Gemini API returned nil response")
		return "", nil
	}

	text := resp.Text()
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		log.Warn().Str("model", g.modelName).Str("finish_reason", reason).Msg("❌ No text content in response")
	} else {
		log.Debug().Str("model", g.modelName).Int("chars", len(text)).Msg("📊 Gemini response received")
	}

	return text, nil
}
