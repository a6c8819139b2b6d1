package bubbletea_test

import (
	"context"
	"io"
	"strings"
	"testing"

	gitlines "github.com/Omegaice/git-lines"
	"github.com/Omegaice/git-lines/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPicker_EmptyDiff(t *testing.T) {
	t.Parallel()

	selections, err := bubbletea.NewPicker().Pick(context.Background(), &gitlines.Diff{})
	require.NoError(t, err)
	assert.Nil(t, selections)
}

func TestPicker_CancelReturnsNothing(t *testing.T) {
	t.Parallel()

	p := bubbletea.NewPicker(
		bubbletea.WithInput(strings.NewReader("q")),
		bubbletea.WithOutput(io.Discard),
	)

	selections, err := p.Pick(context.Background(), sampleDiff())
	require.NoError(t, err)
	assert.Nil(t, selections)
}

func TestPicker_ConfirmReturnsSelections(t *testing.T) {
	t.Parallel()

	// 'a' selects all of a.go from its heading, carriage return
	// confirms.
	p := bubbletea.NewPicker(
		bubbletea.WithInput(strings.NewReader("a\r")),
		bubbletea.WithOutput(io.Discard),
	)

	selections, err := p.Pick(context.Background(), sampleDiff())
	require.NoError(t, err)

	assert.Equal(t, []gitlines.FileSelection{
		{Path: "a.go", Refs: []gitlines.LineRef{
			{Kind: gitlines.RefAddition, Num: 4},
			{Kind: gitlines.RefAddition, Num: 5},
		}},
	}, selections)
}
