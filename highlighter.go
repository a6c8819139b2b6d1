package gitlines

// Span is a run of text sharing a single style.
type Span struct {
	Text  string
	Style Style
}

// Style describes how a span of text is drawn.
type Style struct {
	Foreground string // hex color like "#c678dd", empty for default
	Bold       bool
}

// Highlighter splits source text into styled spans for display.
type Highlighter interface {
	// Highlight styles one line of the named file.
	// Returns nil if the file's language is not supported.
	Highlight(path, line string) []Span
}
