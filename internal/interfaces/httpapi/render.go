package httpapi

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageWelcome = "welcome"
	pageTimes   = "times"
)

// pageRenderer renders into a pooled buffer first so a failing template never
// leaves a half-written page behind.
type pageRenderer struct {
	templates *template.Template
	buffers   bytebufferpool.Pool
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &pageRenderer{templates: tmpl}, nil
}

func mustPageRenderer() *pageRenderer {
	renderer, err := newPageRenderer()
	if err != nil {
		panic(err)
	}
	return renderer
}

func (p *pageRenderer) render(ctx context.Context, w http.ResponseWriter, status int, name string, data any) error {
	_, span := startSpan(ctx, "httpapi.render")
	defer span.End()

	buf := p.buffers.Get()
	defer p.buffers.Put(buf)

	if err := p.templates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.B)
	return err
}

type welcomePage struct {
	Title            string
	Message          string
	DefaultSegmentID string
	Groups           []groupLinkView
}

type groupLinkView struct {
	ID           int
	Name         string
	AthleteCount int
}

type timesPage struct {
	Title      string
	GroupID    int
	GroupName  string
	SegmentID  string
	SegmentURL string
	Entries    []entryView
	NoTimes    []string
}

type entryView struct {
	Position int
	Name     string
	Time     string
}
