package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home",
	"room",
	"login_register",
	"room_form",
	"delete",
	"profile",
	"edit_profile",
	"topics",
	"activity",
	"not_found",
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}

		templates[name] = tmpl
	}

	return templates, nil
}

// render executes the named page template into a buffer first so a
// template error never produces a half-written response.
func (s *ForumApp) render(w http.ResponseWriter, statusCode int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.log.Printf("no such template: %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.Printf("execute template %q: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	buf.WriteTo(w)
}

func (s *ForumApp) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "not_found", notFoundPageData{
		CurrentUser: s.currentUser(r),
	})
}
