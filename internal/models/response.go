package models

type WorkspaceResponse struct {
	State          string          `json:"state"`
	File           *UploadedFile   `json:"file,omitempty"`
	FileError      string          `json:"file_error,omitempty"`
	JobRole        string          `json:"job_role"`
	JobDescription string          `json:"job_description"`
	CanSubmit      bool            `json:"can_submit"`
	Notice         string          `json:"notice,omitempty"`
	Result         *AnalysisResult `json:"result,omitempty"`
}

type DetailsRequest struct {
	JobRole        *string `json:"job_role"`
	JobDescription *string `json:"job_description"`
}

type HistoryResponse struct {
	Records []AnalysisRecord `json:"records"`
}
