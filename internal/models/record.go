package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is an audit entry for one successful analysis. It is never
// used to restore a workspace.
type AnalysisRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    string    `gorm:"type:text;index" json:"-"`
	JobRole      string    `gorm:"type:text" json:"job_role"`
	FileName     string    `gorm:"type:text" json:"file_name"`
	Score        int       `gorm:"not null" json:"score"`
	MatchedCount int       `gorm:"not null" json:"matched_count"`
	MissingCount int       `gorm:"not null" json:"missing_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
