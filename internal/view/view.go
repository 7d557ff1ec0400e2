package view

import (
	"fmt"

	"alfredoptarigan/ats-checker/internal/workspace"
)

const (
	LayoutEditing = "editing"
	LayoutResult  = "result"

	SubmitLabel     = "Analyze Resume"
	SubmittingLabel = "Analyzing..."
	ReadinessHint   = "Please complete all fields (Role, Description) and upload a resume."

	NoMatchedKeywords = "No exact keywords matched."
	NoMissingKeywords = "Great job! No major keywords missing."
)

type Band struct {
	Key     string
	Label   string
	Message string
	Color   string
}

var (
	BandExcellent      = Band{Key: "excellent", Label: "excellent", Message: "Excellent! Your resume is highly optimized.", Color: "#22c55e"}
	BandGoodStart      = Band{Key: "good-start", Label: "good start", Message: "Good start, but there's room for improvement.", Color: "#eab308"}
	BandNeedsAttention = Band{Key: "needs-attention", Label: "needs attention", Message: "Needs attention. Consider adding more relevant keywords.", Color: "#ef4444"}
)

// BandFor maps a score to its qualitative band: >=80, 60-79, <60.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGoodStart
	default:
		return BandNeedsAttention
	}
}

type Page struct {
	Layout  string
	Notice  string
	Upload  UploadPanel
	Details DetailsPanel
	Action  ActionPanel
	Result  *ResultPanel
}

type UploadPanel struct {
	HasFile   bool
	FileName  string
	FileSize  string
	PageCount int
	Error     string
	// Disabled covers the file input: one staged file, nothing while submitting.
	Disabled       bool
	RemoveDisabled bool
}

type DetailsPanel struct {
	JobRole        string
	JobDescription string
	Disabled       bool
}

type ActionPanel struct {
	SubmitEnabled bool
	Label         string
	// Hint is set when the form is not ready; HintText is always the
	// readiness message so the page can show it while the user types.
	Hint     string
	HintText string
	// Live enables in-page readiness checks against the minimum lengths.
	Live                    bool
	MinJobRoleLength        int
	MinJobDescriptionLength int
}

type ResultPanel struct {
	Score           int
	Band            Band
	MatchedKeywords []string
	MissingKeywords []string
	MatchedEmpty    string
	MissingEmpty    string
	Summary         string
	Suggestions     []string
}

// Build turns a workspace snapshot into what the page shows. Editing and
// Submitting share the input layout; Result shows the four result panels.
func Build(snap workspace.Snapshot) Page {
	page := Page{Notice: snap.Notice}

	if snap.State == workspace.StateResult && snap.Result != nil {
		r := snap.Result
		page.Layout = LayoutResult
		page.Result = &ResultPanel{
			Score:           r.Score,
			Band:            BandFor(r.Score),
			MatchedKeywords: r.MatchedKeywords,
			MissingKeywords: r.MissingKeywords,
			Summary:         r.Summary,
			Suggestions:     r.Suggestions,
		}
		if len(r.MatchedKeywords) == 0 {
			page.Result.MatchedEmpty = NoMatchedKeywords
		}
		if len(r.MissingKeywords) == 0 {
			page.Result.MissingEmpty = NoMissingKeywords
		}
		return page
	}

	submitting := snap.State == workspace.StateSubmitting
	page.Layout = LayoutEditing

	page.Upload = UploadPanel{
		HasFile:        snap.File != nil,
		Error:          snap.FileError,
		Disabled:       submitting || snap.File != nil,
		RemoveDisabled: submitting,
	}
	if snap.File != nil {
		page.Upload.FileName = snap.File.Name
		page.Upload.FileSize = HumanSize(snap.File.Size)
		page.Upload.PageCount = snap.File.PageCount
	}

	page.Details = DetailsPanel{
		JobRole:        snap.JobRole,
		JobDescription: snap.JobDescription,
		Disabled:       submitting,
	}

	page.Action = ActionPanel{
		SubmitEnabled:           snap.CanSubmit && !submitting,
		Label:                   SubmitLabel,
		HintText:                ReadinessHint,
		Live:                    !submitting,
		MinJobRoleLength:        workspace.MinJobRoleLength,
		MinJobDescriptionLength: workspace.MinJobDescriptionLength,
	}
	if submitting {
		page.Action.Label = SubmittingLabel
	} else if !snap.CanSubmit {
		page.Action.Hint = ReadinessHint
	}

	return page
}

func HumanSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
