package gitlines

import "io"

// Parser parses raw diff text into domain types.
type Parser interface {
	// Parse reads unified diff content and returns the parsed result.
	Parse(r io.Reader) (*Diff, error)
}
