package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported media type: only application/pdf is accepted")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
)

// Upload messages shown next to the upload control.
const (
	MsgUnsupportedFileType = "Only PDF files are supported currently."
	MsgFileTooLarge        = "File size exceeds 5MB limit."
	MsgFileRead            = "Failed to read file."
)

// FileReadError wraps a failure to read an accepted upload.
type FileReadError struct {
	Err error
}

func (e *FileReadError) Error() string {
	if e.Err == nil {
		return "failed to read file"
	}
	return fmt.Sprintf("failed to read file: %v", e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

const (
	MsgNoResponse    = "No response from AI"
	MsgModelNotFound = "The AI model requested was not found. Please try again or contact support."
	MsgAnalyzeFailed = "Failed to analyze resume. Please try again."
)

// AnalysisError is returned for every failed analysis. Message is safe to
// show to the user.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IngestionMessage returns the user-facing text for an upload failure.
// Errors that are not ingestion failures keep their own text.
func IngestionMessage(err error) string {
	var readErr *FileReadError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFileType):
		return MsgUnsupportedFileType
	case errors.Is(err, ErrFileTooLarge):
		return MsgFileTooLarge
	case errors.As(err, &readErr):
		return MsgFileRead
	default:
		return err.Error()
	}
}

// IsIngestionError reports whether err is one of the recoverable upload
// failures shown next to the upload control.
func IsIngestionError(err error) bool {
	var readErr *FileReadError
	return errors.Is(err, ErrUnsupportedFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.As(err, &readErr)
}
