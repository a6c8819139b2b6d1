package gitlines

// Renderer formats a diff for human-readable display.
type Renderer interface {
	// Render returns the numbered line listing of the diff.
	Render(diff *Diff) string
}
