package api

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"tasktrack-api/domain"
)

//go:embed web/templates/*.html
var templatesFS embed.FS

// ViewRenderer serves the embedded HTML views through Echo's renderer hook.
type ViewRenderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded view templates.
func NewRenderer() *ViewRenderer {
	return &ViewRenderer{
		templates: template.Must(template.ParseFS(templatesFS, "web/templates/*.html")),
	}
}

// Render implements echo.Renderer.
func (r *ViewRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func homePage(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

func addTaskPage(c echo.Context) error {
	return c.Render(http.StatusOK, "add_task.html", nil)
}

// editTaskPage renders the edit form for an existing task. A missing task is
// reported with a plain text 404, matching the behavior of the page routes
// rather than the JSON API.
func editTaskPage(store TaskStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := taskID(c)
		if !ok {
			return c.String(http.StatusNotFound, "Task not found")
		}
		task, err := store.GetTask(c.Request().Context(), id)
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.String(http.StatusNotFound, "Task not found")
		}
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, "Failed to load task")
		}
		return c.Render(http.StatusOK, "edit_task.html", task)
	}
}
