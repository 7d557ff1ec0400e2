package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	Inspect(data []byte) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
	// TextPages counts pages with extractable text. Zero usually means a
	// scanned resume, which the model can still read.
	TextPages int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) Inspect(data []byte) (info *PDFInfo, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF")
	}

	// The reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	info = &PDFInfo{PageCount: r.NumPage()}
	for pageIndex := 1; pageIndex <= info.PageCount; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if len(bytes.TrimSpace([]byte(text))) > 0 {
			info.TextPages++
		}
	}

	return info, nil
}
