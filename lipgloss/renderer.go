// Package lipgloss renders diffs as styled terminal output using the
// lipgloss library.
package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var _ gitlines.Renderer = (*Renderer)(nil)

// Theme holds the styles used to render a diff listing.
type Theme struct {
	File    lipgloss.Style
	Added   lipgloss.Style
	Deleted lipgloss.Style
	Note    lipgloss.Style
}

// DefaultTheme returns the standard styling: bold file headings,
// green additions, red deletions.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		File:    r.NewStyle().Bold(true),
		Added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Deleted: r.NewStyle().Foreground(lipgloss.Color("1")),
		Note:    r.NewStyle().Faint(true),
	}
}

// Renderer formats diffs as numbered line listings.
type Renderer struct {
	lr          *lipgloss.Renderer
	theme       Theme
	themeSet    bool
	highlighter gitlines.Highlighter
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile forces a specific color profile instead of detecting
// one from the output writer.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.lr.SetColorProfile(p)
	}
}

// WithTheme overrides the default styling.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
		r.themeSet = true
	}
}

// WithHighlighter enables syntax highlighting of line content.
func WithHighlighter(h gitlines.Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// NewRenderer creates a renderer whose colors target w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{lr: lipgloss.NewRenderer(w)}
	for _, opt := range opts {
		opt(r)
	}
	if !r.themeSet {
		r.theme = DefaultTheme(r.lr)
	}
	return r
}

// Render returns the numbered listing of diff: a heading per file,
// additions as "  +N:<TAB>content" with new-file numbers, deletions
// as "  -N:<TAB>content" with old-file numbers, hunks and files
// separated by blank lines. An empty diff renders as an empty string.
func (r *Renderer) Render(diff *gitlines.Diff) string {
	var b strings.Builder
	for i := range diff.Files {
		if i > 0 {
			b.WriteString("\n")
		}
		r.renderFile(&b, &diff.Files[i])
	}
	return b.String()
}

func (r *Renderer) renderFile(b *strings.Builder, f *gitlines.FileDiff) {
	b.WriteString(r.theme.File.Render(f.Path() + ":"))
	b.WriteString("\n")
	if f.Binary {
		b.WriteString(r.theme.Note.Render("  (binary)"))
		b.WriteString("\n")
		return
	}
	for i, h := range f.Hunks {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range h.Lines {
			r.renderLine(b, f.Path(), line)
		}
	}
}

func (r *Renderer) renderLine(b *strings.Builder, path string, line gitlines.Line) {
	var prefix string
	var style lipgloss.Style
	switch line.Kind {
	case gitlines.LineAdded:
		prefix = fmt.Sprintf("+%d:", line.NewNum)
		style = r.theme.Added
	case gitlines.LineDeleted:
		prefix = fmt.Sprintf("-%d:", line.OldNum)
		style = r.theme.Deleted
	default:
		return
	}
	b.WriteString("  ")
	b.WriteString(style.Render(prefix))
	b.WriteString("\t")
	b.WriteString(r.renderContent(path, line.Content, style))
	b.WriteString("\n")
}

func (r *Renderer) renderContent(path, content string, fallback lipgloss.Style) string {
	if r.highlighter != nil {
		if spans := r.highlighter.Highlight(path, content); spans != nil {
			var b strings.Builder
			for _, span := range spans {
				b.WriteString(r.spanStyle(span.Style).Render(span.Text))
			}
			return b.String()
		}
	}
	return fallback.Render(content)
}

func (r *Renderer) spanStyle(s gitlines.Style) lipgloss.Style {
	style := r.lr.NewStyle()
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}
