package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/workspace"
)

// HandleHealth handles GET /api/v1/health
func (h *WorkspaceHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleGetWorkspace handles GET /api/v1/workspace
func (h *WorkspaceHandler) HandleGetWorkspace(c *fiber.Ctx) error {
	return c.JSON(toResponse(workspaceFrom(c).Snapshot()))
}

// HandleUpload handles POST /api/v1/upload
func (h *WorkspaceHandler) HandleUpload(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	if err := h.ingestUpload(c, ws); err != nil {
		return errorJSON(c, ingestionStatus(err), services.IngestionMessage(err))
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(ws.Snapshot()))
}

// HandleRemoveFile handles DELETE /api/v1/file
func (h *WorkspaceHandler) HandleRemoveFile(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	if err := ws.RemoveFile(); err != nil {
		return errorJSON(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(toResponse(ws.Snapshot()))
}

// HandleDetails handles PUT /api/v1/details
func (h *WorkspaceHandler) HandleDetails(c *fiber.Ctx) error {
	var req models.DetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	ws := workspaceFrom(c)
	if err := applyDetails(ws, req); err != nil {
		return errorJSON(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(toResponse(ws.Snapshot()))
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *WorkspaceHandler) HandleAnalyze(c *fiber.Ctx) error {
	ws := workspaceFrom(c)

	_, err := h.submitter.Submit(c.UserContext(), ws)
	switch {
	case err == nil, errors.Is(err, workspace.ErrNotReady):
		return c.JSON(toResponse(ws.Snapshot()))
	case errors.Is(err, workspace.ErrSubmissionInFlight), errors.Is(err, workspace.ErrNotEditing):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	}

	var analysisErr *services.AnalysisError
	if errors.As(err, &analysisErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     workspace.NoticeFor(err),
			"code":      fiber.StatusBadGateway,
			"workspace": toResponse(ws.Snapshot()),
		})
	}
	return err
}

// HandleBack handles POST /api/v1/back
func (h *WorkspaceHandler) HandleBack(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	ws.Back()
	return c.JSON(toResponse(ws.Snapshot()))
}

// HandleDismissNotice handles DELETE /api/v1/notice
func (h *WorkspaceHandler) HandleDismissNotice(c *fiber.Ctx) error {
	ws := workspaceFrom(c)
	ws.DismissNotice()
	return c.JSON(toResponse(ws.Snapshot()))
}

// HandleHistory handles GET /api/v1/history
// Only the caller's own analyses are listed.
func (h *WorkspaceHandler) HandleHistory(c *fiber.Ctx) error {
	if !hasSession(c) {
		return c.JSON(models.HistoryResponse{Records: []models.AnalysisRecord{}})
	}

	records, err := h.history.Recent(c.UserContext(), workspaceFrom(c).ID(), c.QueryInt("limit", 0))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load analysis history")
	}
	return c.JSON(models.HistoryResponse{Records: records})
}

func errorJSON(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}
