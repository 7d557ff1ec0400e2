package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-checker/internal/models"
)

// DefaultMaxFileSize is 5 MiB.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type IngestionService interface {
	Ingest(ctx context.Context, name, mediaType string, size int64, content io.Reader) (*models.UploadedFile, error)
}

type ingestionService struct {
	pdfParser   PDFParserService
	maxFileSize int64
}

func NewIngestionService(pdfParser PDFParserService, maxFileSize int64) IngestionService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &ingestionService{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
	}
}

// Ingest validates the declared media type, then the declared size, then
// reads and base64-encodes the content. Click and drop uploads share it.
func (s *ingestionService) Ingest(ctx context.Context, name, mediaType string, size int64, content io.Reader) (*models.UploadedFile, error) {
	if mediaType != models.MediaTypePDF {
		return nil, ErrUnsupportedFileType
	}

	if size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	if content == nil {
		return nil, &FileReadError{Err: io.ErrUnexpectedEOF}
	}
	if err := ctx.Err(); err != nil {
		return nil, &FileReadError{Err: err}
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(content, s.maxFileSize+1))
	if err != nil {
		return nil, &FileReadError{Err: err}
	}
	// Declared size can lie.
	if n > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	data := buf.Bytes()
	file := &models.UploadedFile{
		Name:           name,
		MediaType:      mediaType,
		EncodedContent: base64.StdEncoding.EncodeToString(data),
		Size:           n,
	}

	if s.pdfParser != nil {
		info, err := s.pdfParser.Inspect(data)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("⚠️  Could not inspect PDF")
		} else {
			file.PageCount = info.PageCount
			if info.TextPages == 0 {
				log.Debug().Str("file", name).Msg("PDF has no extractable text")
			}
		}
	}

	return file, nil
}
