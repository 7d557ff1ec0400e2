package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/repositories"
)

type HistoryService interface {
	RecordAnalysis(ctx context.Context, sessionID string, req models.AnalysisRequest, result *models.AnalysisResult) error
	Recent(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRecord, error)
}

type historyService struct {
	repo     repositories.AnalysisRecordRepository
	maxLimit int
}

func NewHistoryService(repo repositories.AnalysisRecordRepository, maxLimit int) HistoryService {
	if maxLimit <= 0 {
		maxLimit = 20
	}
	return &historyService{
		repo:     repo,
		maxLimit: maxLimit,
	}
}

// RecordAnalysis stores counts and the score only; resume content and the
// job description never leave memory.
func (h *historyService) RecordAnalysis(ctx context.Context, sessionID string, req models.AnalysisRequest, result *models.AnalysisResult) error {
	return h.repo.Create(ctx, &models.AnalysisRecord{
		ID:           uuid.New(),
		SessionID:    sessionID,
		JobRole:      req.JobRole,
		FileName:     req.File.Name,
		Score:        result.Score,
		MatchedCount: len(result.MatchedKeywords),
		MissingCount: len(result.MissingKeywords),
		CreatedAt:    time.Now(),
	})
}

// Recent lists the latest analyses of one session, newest first.
func (h *historyService) Recent(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRecord, error) {
	if sessionID == "" {
		return []models.AnalysisRecord{}, nil
	}
	if limit <= 0 || limit > h.maxLimit {
		limit = h.maxLimit
	}
	return h.repo.FindRecent(ctx, sessionID, limit)
}
