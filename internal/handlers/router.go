package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-checker/internal/view"
	"alfredoptarigan/ats-checker/internal/workspace"
)

type RouterOptions struct {
	CookieName string
	BodyLimit  int
	AccessLog  bool
}

// NewRouter builds the Fiber app with the HTML pages and the JSON API.
func NewRouter(h *WorkspaceHandler, registry *workspace.Registry, opts RouterOptions) *fiber.App {
	if opts.CookieName == "" {
		opts.CookieName = "ats_session"
	}

	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Checker",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: customErrorHandler,
		Views:        view.NewEngine(),
	})

	// Middleware
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	api := app.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api.Get("/health", h.HandleHealth)

	session := SessionMiddleware(registry, opts.CookieName)
	readSession := ReadSessionMiddleware(registry, opts.CookieName)

	api.Get("/workspace", readSession, h.HandleGetWorkspace)
	api.Get("/history", readSession, h.HandleHistory)
	api.Post("/upload", session, h.HandleUpload)
	api.Delete("/file", session, h.HandleRemoveFile)
	api.Put("/details", session, h.HandleDetails)
	api.Post("/analyze", session, h.HandleAnalyze)
	api.Post("/back", session, h.HandleBack)
	api.Delete("/notice", session, h.HandleDismissNotice)

	// HTML front-end
	app.Get("/", readSession, h.HandleIndex)
	app.Post("/upload", session, h.HandleUploadForm)
	app.Post("/file/remove", session, h.HandleRemoveFileForm)
	app.Post("/details", session, h.HandleDetailsForm)
	app.Post("/analyze", session, h.HandleAnalyzeForm)
	app.Post("/back", session, h.HandleBackForm)
	app.Post("/notice/dismiss", session, h.HandleDismissNoticeForm)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
