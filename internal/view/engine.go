package view

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewEngine returns the Fiber html engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	return engine
}
