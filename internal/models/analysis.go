package models

type AnalysisRequest struct {
	File           UploadedFile
	JobRole        string
	JobDescription string
}

type AnalysisResult struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Summary         string   `json:"summary"`
	Suggestions     []string `json:"suggestions"`
}
