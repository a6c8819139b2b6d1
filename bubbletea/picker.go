package bubbletea

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var _ gitlines.Picker = (*Picker)(nil)

// Picker runs the line picker as a full-screen terminal program.
type Picker struct {
	input  io.Reader
	output io.Writer
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithInput overrides the program input. Defaults to stdin.
func WithInput(r io.Reader) PickerOption {
	return func(p *Picker) {
		p.input = r
	}
}

// WithOutput overrides the program output. Defaults to stdout.
func WithOutput(w io.Writer) PickerOption {
	return func(p *Picker) {
		p.output = w
	}
}

// NewPicker creates a Picker.
func NewPicker(opts ...PickerOption) *Picker {
	p := &Picker{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick displays diff and blocks until the user confirms or cancels.
// Cancelling returns no selections and no error.
func (p *Picker) Pick(ctx context.Context, diff *gitlines.Diff) ([]gitlines.FileSelection, error) {
	if len(diff.Files) == 0 {
		return nil, nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if p.input != nil {
		opts = append(opts, tea.WithInput(p.input))
	}
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	final, err := tea.NewProgram(NewModel(diff), opts...).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok || !m.Confirmed() {
		return nil, nil
	}
	return m.Selections(), nil
}
