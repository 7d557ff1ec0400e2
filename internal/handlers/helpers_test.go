package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/repositories"
	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/workspace"
)

const (
	testCookie      = "ats_session"
	testRole        = "Backend Engineer"
	testDescription = "We are hiring a backend engineer fluent in Go, SQL and Kubernetes to run our platform."
)

type stubPDFParser struct{}

func (stubPDFParser) Inspect(data []byte) (*services.PDFInfo, error) {
	return &services.PDFInfo{PageCount: 1, TextPages: 1}, nil
}

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, encodedFile, mediaType, jobDescription, jobRole string) (*models.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

func scenarioResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Score:           72,
		MatchedKeywords: []string{"Go", "SQL"},
		MissingKeywords: []string{"Kubernetes"},
		Summary:         "Solid backend profile.",
		Suggestions:     []string{"Add K8s experience"},
	}
}

type testServer struct {
	app      *fiber.App
	registry *workspace.Registry
	analyzer *stubAnalyzer
	cookies  []*http.Cookie
}

type testServerConfig struct {
	maxFileSize   int64
	maxWorkspaces int
	records       repositories.AnalysisRecordRepository
}

func newTestServer(t *testing.T, analyzer *stubAnalyzer, maxFileSize int64) *testServer {
	t.Helper()
	return newTestServerWith(t, analyzer, testServerConfig{maxFileSize: maxFileSize})
}

func newTestServerWith(t *testing.T, analyzer *stubAnalyzer, cfg testServerConfig) *testServer {
	t.Helper()

	records := cfg.records
	if records == nil {
		records = repositories.NewNoopAnalysisRecordRepository()
	}

	ingestion := services.NewIngestionService(stubPDFParser{}, cfg.maxFileSize)
	history := services.NewHistoryService(records, 20)
	registry := workspace.NewRegistry(cfg.maxWorkspaces)
	submitter := workspace.NewSubmitter(analyzer, history)

	h := NewWorkspaceHandler(ingestion, submitter, history)
	app := NewRouter(h, registry, RouterOptions{CookieName: testCookie})

	return &testServer{app: app, registry: registry, analyzer: analyzer}
}

// client is a second browser against the same server.
func (s *testServer) client() *testServer {
	return &testServer{app: s.app, registry: s.registry, analyzer: s.analyzer}
}

type memoryRecords struct {
	mu      sync.Mutex
	records []models.AnalysisRecord
}

func (m *memoryRecords) Create(ctx context.Context, record *models.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryRecords) FindRecent(ctx context.Context, sessionID string, limit int) ([]models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AnalysisRecord{}
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

// do sends req with the session cookie of earlier responses.
func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			s.cookies = []*http.Cookie{c}
		}
	}
	return resp
}

func uploadRequest(t *testing.T, path, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
