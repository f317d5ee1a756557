// Package view renders the HTML surface: template loading, the shared
// render context (current user, flash notices), and error pages.
package view

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmgrocery/internal/platform/session"
	"farmgrocery/web"
)

// Templates parses the embedded template set.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(web.Templates, "templates/*.tmpl"))
}

// HTML renders a named page with the fields every template expects:
// the current user and the drained one-shot flash notices.
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	var success, errs []string
	for _, f := range session.PopFlashes(c) {
		if f.Kind == "error" {
			errs = append(errs, f.Text)
		} else {
			success = append(success, f.Text)
		}
	}

	data["CurrentUser"] = session.CurrentUser(c)
	data["Success"] = success
	data["Error"] = errs

	c.HTML(code, name, data)
}

// NotFound renders the 404 page. Missing or malformed ids on public
// routes land here instead of leaking a server error.
func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, "errors/404", nil)
}

// ServerError renders the 500 page.
func ServerError(c *gin.Context) {
	HTML(c, http.StatusInternalServerError, "errors/500", nil)
}
