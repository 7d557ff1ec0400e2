package models

// MediaTypePDF is the only media type accepted for resumes.
const MediaTypePDF = "application/pdf"

// UploadedFile is a staged resume, held in memory as base64 text.
type UploadedFile struct {
	Name           string `json:"name"`
	MediaType      string `json:"media_type"`
	EncodedContent string `json:"-"`
	Size           int64  `json:"size"`
	PageCount      int    `json:"page_count,omitempty"`
}
