package bubbletea_test

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"

	gitlines "github.com/Omegaice/git-lines"
	"github.com/Omegaice/git-lines/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainRenderer creates a lipgloss renderer with no color output so
// assertions can match raw bytes.
func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

// sampleDiff has two additions in a.go and one deletion in b.go.
func sampleDiff() *gitlines.Diff {
	return &gitlines.Diff{Files: []gitlines.FileDiff{
		{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []gitlines.Hunk{
				{
					OldStart: 3, OldCount: 0, NewStart: 4, NewCount: 2,
					Lines: []gitlines.Line{
						{Kind: gitlines.LineAdded, Content: "alpha", NewNum: 4},
						{Kind: gitlines.LineAdded, Content: "beta", NewNum: 5},
					},
				},
			},
		},
		{
			OldPath: "b.go", NewPath: "b.go",
			Hunks: []gitlines.Hunk{
				{
					OldStart: 7, OldCount: 1, NewStart: 6, NewCount: 0,
					Lines: []gitlines.Line{
						{Kind: gitlines.LineDeleted, Content: "gamma", OldNum: 7},
					},
				},
			},
		},
	}}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_RendersHeadingsAndLines(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer()))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("a.go:")) &&
			bytes.Contains(out, []byte("[ ] +4: alpha")) &&
			bytes.Contains(out, []byte("[ ] -7: gamma"))
	})

	tm.Send(keyRune('q'))
	tm.WaitFinished(t, teatest.WithFinalTimeout(0))
}

func TestModel_ToggleAndConfirm(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer()))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("alpha"))
	})

	// Move to the first changed line and toggle it.
	tm.Send(keyRune('j'))
	tm.Send(keyRune(' '))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("[x] +4: alpha"))
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final, ok := tm.FinalModel(t).(bubbletea.Model)
	require.True(t, ok)
	require.True(t, final.Confirmed())

	assert.Equal(t, []gitlines.FileSelection{
		{Path: "a.go", Refs: []gitlines.LineRef{{Kind: gitlines.RefAddition, Num: 4}}},
	}, final.Selections())
}

func TestModel_CancelLeavesUnconfirmed(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer()))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("alpha"))
	})

	tm.Send(keyRune('j'))
	tm.Send(keyRune(' '))
	tm.Send(keyRune('q'))

	final, ok := tm.FinalModel(t).(bubbletea.Model)
	require.True(t, ok)
	assert.False(t, final.Confirmed())
}

func TestModel_ToggleFileFromHeading(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer()))
	tm := teatest.NewTestModel(t, m,
		teatest.WithInitialTermSize(80, 24),
	)

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("alpha"))
	})

	// Cursor starts on the a.go heading; 'a' selects the whole file.
	tm.Send(keyRune('a'))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Count(out, []byte("[x]")) >= 2
	})

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final, ok := tm.FinalModel(t).(bubbletea.Model)
	require.True(t, ok)
	assert.Equal(t, []gitlines.FileSelection{
		{Path: "a.go", Refs: []gitlines.LineRef{
			{Kind: gitlines.RefAddition, Num: 4},
			{Kind: gitlines.RefAddition, Num: 5},
		}},
	}, final.Selections())
}

// update drives the model like the bubbletea runtime would.
func update(t *testing.T, m tea.Model, msgs ...tea.Msg) bubbletea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	out, ok := m.(bubbletea.Model)
	require.True(t, ok)
	return out
}

func TestModel_ToggleFileTwiceClearsIt(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		keyRune('a'),
	)
	require.Len(t, m.Selections(), 1)

	m = update(t, m, keyRune('a'))
	assert.Empty(t, m.Selections())
}

func TestModel_SelectionsFollowDisplayOrder(t *testing.T) {
	t.Parallel()

	// Toggle beta before alpha; refs still come back in display order.
	m := update(t, bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		keyRune('j'), keyRune('j'), keyRune(' '),
		keyRune('k'), keyRune(' '),
		keyRune('j'), keyRune('j'), keyRune('j'), keyRune(' '),
	)

	assert.Equal(t, []gitlines.FileSelection{
		{Path: "a.go", Refs: []gitlines.LineRef{
			{Kind: gitlines.RefAddition, Num: 4},
			{Kind: gitlines.RefAddition, Num: 5},
		}},
		{Path: "b.go", Refs: []gitlines.LineRef{
			{Kind: gitlines.RefDeletion, Num: 7},
		}},
	}, m.Selections())
}

func TestModel_CursorStopsAtEdges(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		keyRune('k'), keyRune('k'),
	)
	assert.Contains(t, m.View(), "> a.go:")

	for i := 0; i < 10; i++ {
		m = update(t, m, keyRune('j'))
	}
	assert.Contains(t, m.View(), "> [ ] -7: gamma")
}

func TestModel_StatusBarCountsSelections(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
	)
	assert.Contains(t, m.View(), "0 selected")

	m = update(t, m, keyRune('j'), keyRune(' '), keyRune('j'), keyRune(' '))
	assert.Contains(t, m.View(), "2 selected")
}

func TestModel_ViewEmptyBeforeSized(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer()))
	assert.Empty(t, m.View())
}

func TestModel_ExpandsTabsInContent(t *testing.T) {
	t.Parallel()

	diff := &gitlines.Diff{Files: []gitlines.FileDiff{
		{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []gitlines.Hunk{
				{OldStart: 3, NewStart: 4, NewCount: 1, Lines: []gitlines.Line{
					{Kind: gitlines.LineAdded, Content: "a\tb", NewNum: 4},
				}},
			},
		},
	}}

	m := update(t, bubbletea.NewModel(diff, bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
	)

	// Content starts at column 10, so "a" lands on column 10 and the
	// tab jumps to the stop at column 16.
	assert.Contains(t, m.View(), "+4: a     b")
}

func TestModel_TruncatesToWindowWidth(t *testing.T) {
	t.Parallel()

	diff := &gitlines.Diff{Files: []gitlines.FileDiff{
		{
			OldPath: "a.go", NewPath: "a.go",
			Hunks: []gitlines.Hunk{
				{OldStart: 3, NewStart: 4, NewCount: 1, Lines: []gitlines.Line{
					{Kind: gitlines.LineAdded, Content: "abcdefghijklmnop", NewNum: 4},
				}},
			},
		},
	}}

	m := update(t, bubbletea.NewModel(diff, bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 14, Height: 24},
	)

	view := m.View()
	assert.Contains(t, view, "+4: abcd")
	assert.NotContains(t, view, "abcde")
}

func TestModel_SpaceOnHeadingTogglesFile(t *testing.T) {
	t.Parallel()

	m := update(t, bubbletea.NewModel(sampleDiff(), bubbletea.WithRenderer(plainRenderer())),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		keyRune(' '),
	)

	require.Len(t, m.Selections(), 1)
	assert.Len(t, m.Selections()[0].Refs, 2)
}
