package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/restaurant-console/navigation"
	"github.com/jrsteele09/restaurant-console/sessions"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*
var templateFiles embed.FS

// pageNames are the content templates; each is parsed together with layout.html
var pageNames = []string{
	"login.html",
	"unauthorized.html",
	"dashboard.html",
	"profile.html",
	"schedule.html",
	"list.html",
	"form.html",
}

// pageData is what layout.html renders. Body carries the page specific data.
type pageData struct {
	AppName     string
	Title       string
	Session     *sessions.Session
	Menu        []navigation.Item
	ActiveRoute string
	Notice      string
	Error       string
	Body        any
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// parsePages parses every content template with the shared layout
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).ParseFS(TemplateFilesFS(), "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes a page into a buffer first so a template error never sends half a page
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("unknown page template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.AppName = s.config.GetAppName()
	if data.Session == nil {
		if session, ok := sessions.FromContext(r.Context()); ok {
			data.Session = &session
		}
	}
	if data.Session != nil && data.Menu == nil {
		data.Menu = s.menus.For(data.Session.Role)
	}
	if data.ActiveRoute == "" {
		data.ActiveRoute = r.URL.Path
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
