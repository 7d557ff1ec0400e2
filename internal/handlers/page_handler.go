package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/view"
	"alfredoptarigan/ats-checker/internal/workspace"
)

// Page handlers serve the HTML front-end. Every POST redirects back to /
// so a reload never resubmits a form.

func (h *WorkspaceHandler) HandleIndex(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	return c.Render("index", view.Build(ws.Snapshot()))
}

// HandleUploadForm stages the posted file. The page hides the file input
// while a file is staged, so a stale form post is ignored.
func (h *WorkspaceHandler) HandleUploadForm(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	if !ws.CanSelectFile() {
		return redirectHome(c)
	}

	// Ingestion failures are already on the workspace and render inline.
	if err := h.ingestUpload(c, ws); err != nil && !services.IsIngestionError(err) {
		log.Warn().Err(err).Str("session", ws.ID()).Msg("⚠️  Upload not staged")
	}
	return redirectHome(c)
}

func (h *WorkspaceHandler) HandleRemoveFileForm(c *fiber.Ctx) error {
	_ = workspaceFrom(c).RemoveFile()
	return redirectHome(c)
}

func (h *WorkspaceHandler) HandleDetailsForm(c *fiber.Ctx) error {
	_ = applyDetails(workspaceFrom(c), detailsFromForm(c))
	return redirectHome(c)
}

// HandleAnalyzeForm saves any posted details, then submits. A form that is
// not ready is a no-op.
func (h *WorkspaceHandler) HandleAnalyzeForm(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	if err := applyDetails(ws, detailsFromForm(c)); err != nil {
		return redirectHome(c)
	}

	if _, err := h.submitter.Submit(c.UserContext(), ws); err != nil && !isTransitionError(err) {
		log.Warn().Err(err).Str("session", ws.ID()).Msg("❌ Analysis failed")
	}
	return redirectHome(c)
}

func (h *WorkspaceHandler) HandleBackForm(c *fiber.Ctx) error {
	workspaceFrom(c).Back()
	return redirectHome(c)
}

func (h *WorkspaceHandler) HandleDismissNoticeForm(c *fiber.Ctx) error {
	workspaceFrom(c).DismissNotice()
	return redirectHome(c)
}

func redirectHome(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}

func isTransitionError(err error) bool {
	return errors.Is(err, workspace.ErrNotReady) ||
		errors.Is(err, workspace.ErrSubmissionInFlight) ||
		errors.Is(err, workspace.ErrNotEditing) ||
		errors.Is(err, workspace.ErrInputsLocked)
}
