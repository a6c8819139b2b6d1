package gitlines

import "context"

// Picker interactively chooses lines to stage from a diff.
type Picker interface {
	// Pick displays the diff and blocks until the user confirms or
	// cancels. A cancelled pick returns no selections and no error.
	Pick(ctx context.Context, diff *Diff) ([]FileSelection, error)
}
