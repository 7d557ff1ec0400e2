package workspace

import (
	"context"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/services"
)

// Recorder is notified after each successful analysis.
type Recorder interface {
	RecordAnalysis(ctx context.Context, sessionID string, req models.AnalysisRequest, result *models.AnalysisResult) error
}

type Submitter struct {
	analyzer services.Analyzer
	recorder Recorder
}

func NewSubmitter(analyzer services.Analyzer, recorder Recorder) *Submitter {
	return &Submitter{
		analyzer: analyzer,
		recorder: recorder,
	}
}

// Submit runs one analysis for ws: Editing → Submitting → Result on success,
// back to Editing on failure. A form that is not ready yields ErrNotReady
// and the analyzer is never called.
func (s *Submitter) Submit(ctx context.Context, ws *Workspace) (*models.AnalysisResult, error) {
	req, err := ws.BeginSubmit()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session", ws.ID()).
		Str("file", req.File.Name).
		Str("role", req.JobRole).
		Msg("🤖 Analyzing resume")

	result, err := s.analyzer.Analyze(ctx, req.File.EncodedContent, req.File.MediaType, req.JobDescription, req.JobRole)
	if err != nil {
		if failErr := ws.Fail(err); failErr != nil {
			log.Warn().Err(failErr).Str("session", ws.ID()).Msg("⚠️  Workspace left submitting state early")
		}
		return nil, err
	}

	if err := ws.Complete(result); err != nil {
		return nil, err
	}

	if s.recorder != nil {
		if err := s.recorder.RecordAnalysis(ctx, ws.ID(), req, result); err != nil {
			log.Warn().Err(err).Str("session", ws.ID()).Msg("⚠️  Failed to record analysis history")
		}
	}

	return result, nil
}
