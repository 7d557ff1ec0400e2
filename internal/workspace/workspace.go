package workspace

import (
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/services"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateResult     State = "result"
)

const (
	MinJobRoleLength        = 3
	MinJobDescriptionLength = 50
)

var (
	ErrInputsLocked       = errors.New("inputs are locked while an analysis is in progress")
	ErrNotReady           = errors.New("please complete all fields (role, description) and upload a resume")
	ErrSubmissionInFlight = errors.New("an analysis is already in progress")
	ErrNotEditing         = errors.New("go back to the input form before submitting again")
	ErrNotSubmitting      = errors.New("no analysis is in progress")
)

// Workspace holds one user's form state and view state. All methods are
// safe for concurrent use; none of them block on I/O.
type Workspace struct {
	mu sync.Mutex

	id             string
	state          State
	file           *models.UploadedFile
	fileError      string
	jobRole        string
	jobDescription string
	result         *models.AnalysisResult
	notice         string
	lastSeen       time.Time
}

// Snapshot is a read-only copy of a workspace for rendering.
type Snapshot struct {
	ID             string
	State          State
	File           *models.UploadedFile
	FileError      string
	JobRole        string
	JobDescription string
	CanSubmit      bool
	Notice         string
	Result         *models.AnalysisResult
}

func New(id string) *Workspace {
	return &Workspace{
		id:       id,
		state:    StateEditing,
		lastSeen: time.Now(),
	}
}

func (w *Workspace) ID() string {
	return w.id
}

func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		ID:             w.id,
		State:          w.state,
		FileError:      w.fileError,
		JobRole:        w.jobRole,
		JobDescription: w.jobDescription,
		CanSubmit:      w.canSubmitLocked(),
		Notice:         w.notice,
		Result:         w.result,
	}
	if w.file != nil {
		f := *w.file
		snap.File = &f
	}
	return snap
}

// StageFile replaces any staged file and clears the file error.
func (w *Workspace) StageFile(file *models.UploadedFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrInputsLocked
	}
	w.file = file
	w.fileError = ""
	return nil
}

// RejectFile records an ingestion failure next to the upload control. A
// previously staged file is kept.
func (w *Workspace) RejectFile(err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrInputsLocked
	}
	w.fileError = services.IngestionMessage(err)
	return nil
}

func (w *Workspace) RemoveFile() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrInputsLocked
	}
	w.file = nil
	w.fileError = ""
	return nil
}

// CanSelectFile mirrors the upload control: one staged file at a time and
// never during a submission.
func (w *Workspace) CanSelectFile() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file == nil && w.state != StateSubmitting
}

func (w *Workspace) SetJobRole(role string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrInputsLocked
	}
	w.jobRole = role
	return nil
}

func (w *Workspace) SetJobDescription(description string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateSubmitting {
		return ErrInputsLocked
	}
	w.jobDescription = description
	return nil
}

func (w *Workspace) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked()
}

func (w *Workspace) canSubmitLocked() bool {
	return CanSubmit(w.file, w.jobRole, w.jobDescription)
}

// CanSubmit is the readiness predicate. Lengths are counted in characters.
func CanSubmit(file *models.UploadedFile, jobRole, jobDescription string) bool {
	return file != nil &&
		utf8.RuneCountInString(jobRole) >= MinJobRoleLength &&
		utf8.RuneCountInString(jobDescription) >= MinJobDescriptionLength
}

// BeginSubmit moves Editing to Submitting and returns the request to send.
// When the form is not ready nothing changes and ErrNotReady is returned.
func (w *Workspace) BeginSubmit() (models.AnalysisRequest, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case StateSubmitting:
		return models.AnalysisRequest{}, ErrSubmissionInFlight
	case StateResult:
		return models.AnalysisRequest{}, ErrNotEditing
	}

	if !w.canSubmitLocked() {
		return models.AnalysisRequest{}, ErrNotReady
	}

	w.state = StateSubmitting
	w.notice = ""
	return models.AnalysisRequest{
		File:           *w.file,
		JobRole:        w.jobRole,
		JobDescription: w.jobDescription,
	}, nil
}

// Complete stores result, replacing any earlier one, and shows it.
func (w *Workspace) Complete(result *models.AnalysisResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSubmitting {
		return ErrNotSubmitting
	}
	w.result = result
	w.state = StateResult
	return nil
}

// Fail returns to Editing with the inputs untouched and a dismissible
// notice carrying the user-facing message of err.
func (w *Workspace) Fail(err error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSubmitting {
		return ErrNotSubmitting
	}
	w.notice = NoticeFor(err)
	w.state = StateEditing
	return nil
}

// Back leaves the result view. File, role and description are kept so the
// same inputs can be checked again.
func (w *Workspace) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateResult {
		return
	}
	w.result = nil
	w.state = StateEditing
}

func (w *Workspace) DismissNotice() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notice = ""
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = now
}

func (w *Workspace) idle(now time.Time, timeout time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state != StateSubmitting && now.Sub(w.lastSeen) > timeout
}

// NoticeFor picks the message shown to the user for a failed analysis.
func NoticeFor(err error) string {
	var analysisErr *services.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Message != "" {
		return analysisErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return services.MsgAnalyzeFailed
}
