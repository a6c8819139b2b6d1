package gitlines

import "context"

// Applier applies patch text to the git index.
type Applier interface {
	// Apply stages the patch. The index is left unchanged on error.
	Apply(ctx context.Context, patch string) error
}
