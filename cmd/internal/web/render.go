package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"portfolio/cmd/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages is the closed set of renderable views.
var pages = []string{
	"about",
	"resume",
	"blog",
	"contact",
	"daily-routine",
	"login",
	"admin-settings",
}

// pageData is the context every template receives.
// ActivePage and IsAdmin are set on every render; the rest is per-page.
type pageData struct {
	Title      string
	ActivePage string
	IsAdmin    bool

	Error   string
	Success string

	AdminUsername string
	Posts         []content.Post
	Blogs         []content.Blog
}

type renderer struct {
	log   *slog.Logger
	views map[string]*template.Template
}

func newRenderer(log *slog.Logger) (*renderer, error) {
	views := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
		views[name] = t
	}
	return &renderer{log: log, views: views}, nil
}

// render executes a view into a buffer first so a template error never emits
// a half-written page.
func (re *renderer) render(w http.ResponseWriter, status int, page string, data pageData) {
	t, ok := re.views[page]
	if !ok {
		re.log.Error("web.render.unknown_page", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		re.log.Error("web.render.fail", "page", page, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
