// Package mock provides test doubles for the gitlines interfaces.
package mock

import (
	"context"
	"io"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var (
	_ gitlines.Parser      = (*Parser)(nil)
	_ gitlines.Differ      = (*Differ)(nil)
	_ gitlines.Applier     = (*Applier)(nil)
	_ gitlines.Renderer    = (*Renderer)(nil)
	_ gitlines.Picker      = (*Picker)(nil)
	_ gitlines.Highlighter = (*Highlighter)(nil)
)

// Parser is a mock implementation of gitlines.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*gitlines.Diff, error)
}

func (m *Parser) Parse(r io.Reader) (*gitlines.Diff, error) {
	return m.ParseFn(r)
}

// Differ is a mock implementation of gitlines.Differ.
type Differ struct {
	DiffFn func(ctx context.Context, paths ...string) (string, error)
}

func (m *Differ) Diff(ctx context.Context, paths ...string) (string, error) {
	return m.DiffFn(ctx, paths...)
}

// Applier is a mock implementation of gitlines.Applier.
type Applier struct {
	ApplyFn func(ctx context.Context, patch string) error
}

func (m *Applier) Apply(ctx context.Context, patch string) error {
	return m.ApplyFn(ctx, patch)
}

// Renderer is a mock implementation of gitlines.Renderer.
type Renderer struct {
	RenderFn func(diff *gitlines.Diff) string
}

func (m *Renderer) Render(diff *gitlines.Diff) string {
	return m.RenderFn(diff)
}

// Picker is a mock implementation of gitlines.Picker.
type Picker struct {
	PickFn func(ctx context.Context, diff *gitlines.Diff) ([]gitlines.FileSelection, error)
}

func (m *Picker) Pick(ctx context.Context, diff *gitlines.Diff) ([]gitlines.FileSelection, error) {
	return m.PickFn(ctx, diff)
}

// Highlighter is a mock implementation of gitlines.Highlighter.
type Highlighter struct {
	HighlightFn func(path, line string) []gitlines.Span
}

func (m *Highlighter) Highlight(path, line string) []gitlines.Span {
	return m.HighlightFn(path, line)
}
