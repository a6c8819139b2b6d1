package gitlines

import "context"

// Differ produces raw diff text for a repository's unstaged changes.
type Differ interface {
	// Diff returns the zero-context diff of the working tree against
	// the index, optionally restricted to the given paths. An empty
	// result means there are no unstaged changes.
	Diff(ctx context.Context, paths ...string) (string, error)
}
