package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"arto/internal/data/entity"
	"arto/pkg/flash"
)

//go:embed templates
var templateFS embed.FS

// Page is the data every template receives. Data holds the page specific
// payload, Form the submitted or prefilled input and Errors the field errors
// keyed by form field name.
type Page struct {
	Title     string
	User      *entity.User
	CSRFToken string
	CSRFField string
	Flashes   []flash.Message
	Form      any
	Errors    map[string]string
	Data      any
}

// Renderer executes pages wrapped in the shared layout.
type Renderer struct {
	pages    map[string]*template.Template
	mediaURL string
}

// New parses every page under templates/ together with the layout and partials.
func New(mediaURL string) (*Renderer, error) {
	partials, err := fs.Glob(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("list partials: %w", err)
	}
	pageFiles, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	r := &Renderer{
		pages:    make(map[string]*template.Template),
		mediaURL: mediaURL,
	}

	for _, file := range pageFiles {
		name := path.Base(file)
		if name == "layout.html" {
			continue
		}

		files := append([]string{"templates/layout.html", file}, partials...)
		tpl, err := template.New("layout.html").Funcs(r.funcs()).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tpl
	}

	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"year": func() int { return time.Now().Year() },
		"media": func(rel *string) string {
			if rel == nil || *rel == "" {
				return ""
			}
			return r.mediaURL + *rel
		},
		"specialties":      func() []entity.Specialty { return entity.Specialties },
		"experienceLevels": func() []entity.ExperienceLevel { return entity.ExperienceLevels },
		"initial": func(s string) string {
			for _, c := range s {
				return strings.ToUpper(string(c))
			}
			return "?"
		},
	}
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes the named page into a buffer first so a template error
// never leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page *Page) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
