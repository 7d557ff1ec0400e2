package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/ats-checker/internal/models"
)

type AnalysisRecordRepository interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	FindRecent(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRecord, error)
}

type analysisRecordRepository struct {
	db *gorm.DB
}

func NewAnalysisRecordRepository(db *gorm.DB) AnalysisRecordRepository {
	return &analysisRecordRepository{db: db}
}

// Create implements AnalysisRecordRepository.
func (r *analysisRecordRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// FindRecent implements AnalysisRecordRepository.
func (r *analysisRecordRepository) FindRecent(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find analysis records: %w", err)
	}

	return records, nil
}

type noopAnalysisRecordRepository struct{}

// NewNoopAnalysisRecordRepository is used when history is disabled.
func NewNoopAnalysisRecordRepository() AnalysisRecordRepository {
	return noopAnalysisRecordRepository{}
}

func (noopAnalysisRecordRepository) Create(context.Context, *models.AnalysisRecord) error {
	return nil
}

func (noopAnalysisRecordRepository) FindRecent(context.Context, string, int) ([]models.AnalysisRecord, error) {
	return []models.AnalysisRecord{}, nil
}
