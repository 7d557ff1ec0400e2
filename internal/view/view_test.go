package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/workspace"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		score int
		band  Band
	}{
		{0, BandNeedsAttention},
		{59, BandNeedsAttention},
		{60, BandGoodStart},
		{79, BandGoodStart},
		{80, BandExcellent},
		{100, BandExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, BandFor(tc.score), "score %d", tc.score)
	}
}

func editingSnapshot() workspace.Snapshot {
	return workspace.Snapshot{
		ID:    "ws-1",
		State: workspace.StateEditing,
	}
}

func TestBuildEmptyEditing(t *testing.T) {
	page := Build(editingSnapshot())

	assert.Equal(t, LayoutEditing, page.Layout)
	assert.False(t, page.Upload.HasFile)
	assert.False(t, page.Upload.Disabled)
	assert.False(t, page.Action.SubmitEnabled)
	assert.Equal(t, SubmitLabel, page.Action.Label)
	assert.Equal(t, ReadinessHint, page.Action.Hint)
	assert.Nil(t, page.Result)
}

func TestBuildReadyEditing(t *testing.T) {
	snap := editingSnapshot()
	snap.File = &models.UploadedFile{Name: "resume.pdf", Size: 2048, PageCount: 2}
	snap.JobRole = "Backend Engineer"
	snap.JobDescription = strings.Repeat("x", 60)
	snap.CanSubmit = true

	page := Build(snap)

	assert.True(t, page.Upload.HasFile)
	assert.True(t, page.Upload.Disabled, "one staged file at a time")
	assert.False(t, page.Upload.RemoveDisabled)
	assert.Equal(t, "resume.pdf", page.Upload.FileName)
	assert.Equal(t, "2.0 KB", page.Upload.FileSize)
	assert.Equal(t, 2, page.Upload.PageCount)
	assert.True(t, page.Action.SubmitEnabled)
	assert.Empty(t, page.Action.Hint)
	assert.Equal(t, ReadinessHint, page.Action.HintText)
	assert.True(t, page.Action.Live)
}

func TestBuildSubmitting(t *testing.T) {
	snap := editingSnapshot()
	snap.State = workspace.StateSubmitting
	snap.File = &models.UploadedFile{Name: "resume.pdf"}
	snap.CanSubmit = true

	page := Build(snap)

	assert.Equal(t, LayoutEditing, page.Layout)
	assert.Equal(t, SubmittingLabel, page.Action.Label)
	assert.False(t, page.Action.SubmitEnabled)
	assert.Empty(t, page.Action.Hint)
	assert.True(t, page.Upload.Disabled)
	assert.True(t, page.Upload.RemoveDisabled)
	assert.True(t, page.Details.Disabled)
	assert.False(t, page.Action.Live)
}

func TestBuildResult(t *testing.T) {
	snap := editingSnapshot()
	snap.State = workspace.StateResult
	snap.Result = &models.AnalysisResult{
		Score:           72,
		MatchedKeywords: []string{"Go", "SQL"},
		MissingKeywords: []string{"Kubernetes"},
		Summary:         "Solid backend profile.",
		Suggestions:     []string{"Add K8s experience"},
	}

	page := Build(snap)

	require.NotNil(t, page.Result)
	assert.Equal(t, LayoutResult, page.Layout)
	assert.Equal(t, 72, page.Result.Score)
	assert.Equal(t, BandGoodStart, page.Result.Band)
	assert.Equal(t, []string{"Go", "SQL"}, page.Result.MatchedKeywords)
	assert.Equal(t, []string{"Kubernetes"}, page.Result.MissingKeywords)
	assert.Empty(t, page.Result.MatchedEmpty)
	assert.Empty(t, page.Result.MissingEmpty)
}

func TestBuildResultEmptyKeywordLists(t *testing.T) {
	snap := editingSnapshot()
	snap.State = workspace.StateResult
	snap.Result = &models.AnalysisResult{Score: 95}

	page := Build(snap)

	require.NotNil(t, page.Result)
	assert.Equal(t, BandExcellent, page.Result.Band)
	assert.Equal(t, NoMatchedKeywords, page.Result.MatchedEmpty)
	assert.Equal(t, NoMissingKeywords, page.Result.MissingEmpty)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "5.0 MB", HumanSize(5*1024*1024))
}

func render(t *testing.T, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewEngine().Render(&buf, "index", page))
	return buf.String()
}

func TestRenderEditing(t *testing.T) {
	snap := editingSnapshot()
	snap.FileError = "Only PDF files are supported currently."
	snap.Notice = "Quota exceeded"

	out := render(t, Build(snap))

	assert.Contains(t, out, `name="resume"`)
	assert.Contains(t, out, `data-testid="file-error"`)
	assert.Contains(t, out, "Only PDF files are supported currently.")
	assert.Contains(t, out, `data-testid="notice"`)
	assert.Contains(t, out, "Quota exceeded")
	assert.Contains(t, out, `data-testid="hint"`)
	assert.NotContains(t, out, `data-testid="score"`)
}

func TestRenderResult(t *testing.T) {
	snap := editingSnapshot()
	snap.State = workspace.StateResult
	snap.Result = &models.AnalysisResult{
		Score:           72,
		MatchedKeywords: []string{"Go", "SQL"},
		MissingKeywords: []string{"Kubernetes"},
		Summary:         "Solid backend profile.",
		Suggestions:     []string{"Add K8s experience"},
	}

	out := render(t, Build(snap))

	assert.Contains(t, out, "72%")
	assert.Contains(t, out, `data-band="good-start"`)
	assert.Equal(t, 2, strings.Count(out, `class="chip matched"`))
	assert.Equal(t, 1, strings.Count(out, `class="chip missing"`))
	assert.Contains(t, out, "Solid backend profile.")
	assert.Contains(t, out, "<li>Add K8s experience</li>")
	assert.NotContains(t, out, `name="resume"`)
}

func TestRenderCarriesReadinessRules(t *testing.T) {
	out := render(t, Build(editingSnapshot()))

	assert.Contains(t, out, `data-has-file="false"`)
	assert.Contains(t, out, `data-live="true"`)
	assert.Contains(t, out, `data-min-role="3"`)
	assert.Contains(t, out, `data-min-description="50"`)
	assert.Contains(t, out, `id="analyze-button"`)
}

func TestRenderReadyHidesHintButKeepsText(t *testing.T) {
	snap := editingSnapshot()
	snap.File = &models.UploadedFile{Name: "resume.pdf", Size: 10}
	snap.JobRole = "Backend Engineer"
	snap.JobDescription = strings.Repeat("x", 60)
	snap.CanSubmit = true

	out := render(t, Build(snap))

	assert.Contains(t, out, `data-has-file="true"`)
	assert.Contains(t, out, `data-testid="hint" hidden>`+ReadinessHint)
	assert.NotContains(t, out, `data-testid="submit" disabled`)
}
