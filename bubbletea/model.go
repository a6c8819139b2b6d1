// Package bubbletea implements the interactive line picker as a
// bubbletea program.
package bubbletea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gitlines "github.com/Omegaice/git-lines"
)

// KeyMap defines the key bindings for the picker.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	ToggleFile key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the standard picker bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle line")),
		ToggleFile: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle file")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "stage")),
		Cancel:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleFile, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.ToggleFile}, {k.Confirm, k.Cancel}}
}

// row is one display line of the picker: a file heading or a changed
// line with the reference that would stage it.
type row struct {
	heading bool
	path    string
	fileIdx int
	line    gitlines.Line
	ref     gitlines.LineRef
}

// styles holds the lipgloss styles used by the picker.
type styles struct {
	Heading lipgloss.Style
	Added   lipgloss.Style
	Deleted lipgloss.Style
	Status  lipgloss.Style
}

func defaultStyles(r *lipgloss.Renderer) styles {
	return styles{
		Heading: r.NewStyle().Bold(true),
		Added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Deleted: r.NewStyle().Foreground(lipgloss.Color("1")),
		Status:  r.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for the interactive line picker.
type Model struct {
	rows      []row
	cursor    int
	selected  map[int]bool
	viewport  viewport.Model
	keys      KeyMap
	help      help.Model
	renderer  *lipgloss.Renderer
	styles    styles
	ready     bool
	confirmed bool
}

// Option configures a Model.
type Option func(*Model)

// WithRenderer sets the lipgloss renderer used for styling. This is
// useful for testing color output without affecting global state.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keys = k
	}
}

// NewModel creates a picker model for diff.
func NewModel(diff *gitlines.Diff, opts ...Option) Model {
	m := Model{
		rows:     buildRows(diff),
		selected: make(map[int]bool),
		keys:     DefaultKeyMap(),
		renderer: lipgloss.DefaultRenderer(),
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.styles = defaultStyles(m.renderer)
	return m
}

func buildRows(diff *gitlines.Diff) []row {
	var rows []row
	for i := range diff.Files {
		f := &diff.Files[i]
		rows = append(rows, row{heading: true, path: f.Path(), fileIdx: i})
		for _, h := range f.Hunks {
			for _, line := range h.Lines {
				switch line.Kind {
				case gitlines.LineAdded:
					rows = append(rows, row{
						path:    f.Path(),
						fileIdx: i,
						line:    line,
						ref:     gitlines.LineRef{Kind: gitlines.RefAddition, Num: line.NewNum},
					})
				case gitlines.LineDeleted:
					rows = append(rows, row{
						path:    f.Path(),
						fileIdx: i,
						line:    line,
						ref:     gitlines.LineRef{Kind: gitlines.RefDeletion, Num: line.OldNum},
					})
				}
			}
		}
	}
	return rows
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// One line is reserved for the status bar.
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-1)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 1
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggleCurrent()
			return m, nil
		case key.Matches(msg, m.keys.ToggleFile):
			if len(m.rows) > 0 {
				m.toggleFile(m.rows[m.cursor].fileIdx)
			}
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}
	return m.viewport.View() + "\n" + m.statusView()
}

// Confirmed reports whether the user accepted the selection rather
// than cancelling.
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Selections returns the toggled lines as per-file selections, files
// in diff order and refs in display order.
func (m Model) Selections() []gitlines.FileSelection {
	var out []gitlines.FileSelection
	byPath := make(map[string]int)
	for i, r := range m.rows {
		if r.heading || !m.selected[i] {
			continue
		}
		idx, ok := byPath[r.path]
		if !ok {
			idx = len(out)
			byPath[r.path] = idx
			out = append(out, gitlines.FileSelection{Path: r.path})
		}
		out[idx].Refs = append(out[idx].Refs, r.ref)
	}
	return out
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.cursor = next
	m.ensureVisible()
	m.viewport.SetContent(m.content())
}

func (m *Model) ensureVisible() {
	if !m.ready {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) toggleCurrent() {
	if len(m.rows) == 0 {
		return
	}
	r := m.rows[m.cursor]
	if r.heading {
		m.toggleFile(r.fileIdx)
		return
	}
	m.selected[m.cursor] = !m.selected[m.cursor]
	m.viewport.SetContent(m.content())
}

// toggleFile selects every line of the file, or clears them all when
// they are already all selected.
func (m *Model) toggleFile(fileIdx int) {
	all := true
	for i, r := range m.rows {
		if r.heading || r.fileIdx != fileIdx {
			continue
		}
		if !m.selected[i] {
			all = false
			break
		}
	}
	for i, r := range m.rows {
		if r.heading || r.fileIdx != fileIdx {
			continue
		}
		m.selected[i] = !all
	}
	m.viewport.SetContent(m.content())
}

func (m *Model) content() string {
	var b strings.Builder
	for i := range m.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(i))
	}
	return b.String()
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	if r.heading {
		return cursor + m.styles.Heading.Render(r.path+":")
	}

	mark := "[ ] "
	if m.selected[i] {
		mark = "[x] "
	}

	var prefix string
	var style lipgloss.Style
	if r.line.Kind == gitlines.LineDeleted {
		prefix = "-" + strconv.Itoa(r.line.OldNum)
		style = m.styles.Deleted
	} else {
		prefix = "+" + strconv.Itoa(r.line.NewNum)
		style = m.styles.Added
	}

	text := fmt.Sprintf("%s%s%s: %s", cursor, mark, prefix, expandTabs(r.line.Content, len(cursor)+len(mark)+len(prefix)+2))
	if m.ready {
		text = truncate(text, m.viewport.Width)
	}
	return style.Render(text)
}

func (m *Model) statusView() string {
	count := 0
	for i, r := range m.rows {
		if !r.heading && m.selected[i] {
			count++
		}
	}
	status := m.styles.Status.Render(fmt.Sprintf("%d selected", count))
	return status + "  " + m.help.View(m.keys)
}
