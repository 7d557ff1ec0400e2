package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/services"
	"alfredoptarigan/ats-checker/internal/workspace"
)

type WorkspaceHandler struct {
	ingestion services.IngestionService
	submitter *workspace.Submitter
	history   services.HistoryService
}

func NewWorkspaceHandler(
	ingestion services.IngestionService,
	submitter *workspace.Submitter,
	history services.HistoryService,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		ingestion: ingestion,
		submitter: submitter,
		history:   history,
	}
}

// ingestUpload runs the "resume" form file through ingestion and stages it.
// Ingestion failures are recorded on the workspace and returned.
func (h *WorkspaceHandler) ingestUpload(c *fiber.Ctx, ws *workspace.Workspace) error {
	if ws.State() == workspace.StateSubmitting {
		return workspace.ErrInputsLocked
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		readErr := &services.FileReadError{Err: err}
		_ = ws.RejectFile(readErr)
		return readErr
	}

	src, err := fileHeader.Open()
	if err != nil {
		readErr := &services.FileReadError{Err: err}
		_ = ws.RejectFile(readErr)
		return readErr
	}
	defer src.Close()

	mediaType := fileHeader.Header.Get(fiber.HeaderContentType)
	file, err := h.ingestion.Ingest(c.UserContext(), fileHeader.Filename, mediaType, fileHeader.Size, src)
	if err != nil {
		log.Info().
			Err(err).
			Str("session", ws.ID()).
			Str("file", fileHeader.Filename).
			Str("media_type", mediaType).
			Msg("⚠️  Upload rejected")
		if rejectErr := ws.RejectFile(err); rejectErr != nil {
			return rejectErr
		}
		return err
	}

	if err := ws.StageFile(file); err != nil {
		return err
	}

	log.Info().
		Str("session", ws.ID()).
		Str("file", file.Name).
		Int64("size", file.Size).
		Int("pages", file.PageCount).
		Msg("📄 Resume staged")
	return nil
}

func applyDetails(ws *workspace.Workspace, req models.DetailsRequest) error {
	if req.JobRole != nil {
		if err := ws.SetJobRole(*req.JobRole); err != nil {
			return err
		}
	}
	if req.JobDescription != nil {
		if err := ws.SetJobDescription(*req.JobDescription); err != nil {
			return err
		}
	}
	return nil
}

// detailsFromForm reads only the fields present in the form post.
func detailsFromForm(c *fiber.Ctx) models.DetailsRequest {
	var req models.DetailsRequest
	args := c.Request().PostArgs()
	if args.Has("job_role") {
		v := string(args.Peek("job_role"))
		req.JobRole = &v
	}
	if args.Has("job_description") {
		v := string(args.Peek("job_description"))
		req.JobDescription = &v
	}
	return req
}

func toResponse(snap workspace.Snapshot) models.WorkspaceResponse {
	return models.WorkspaceResponse{
		State:          string(snap.State),
		File:           snap.File,
		FileError:      snap.FileError,
		JobRole:        snap.JobRole,
		JobDescription: snap.JobDescription,
		CanSubmit:      snap.CanSubmit,
		Notice:         snap.Notice,
		Result:         snap.Result,
	}
}

func ingestionStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, workspace.ErrInputsLocked):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
