package gitlines

import "fmt"

// ParseError reports a malformed file reference argument.
type ParseError struct {
	Input  string // the offending argument
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// DiffError reports diff text that could not be parsed.
type DiffError struct {
	Err error
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("parse diff: %v", e.Err)
}

func (e *DiffError) Unwrap() error { return e.Err }

// NoChangesError reports that a file, or the whole working tree when
// Path is empty, has no unstaged changes.
type NoChangesError struct {
	Path string
}

func (e *NoChangesError) Error() string {
	if e.Path == "" {
		return "no unstaged changes"
	}
	return fmt.Sprintf("no unstaged changes for %s", e.Path)
}

// NoMatchingLinesError reports a reference that matches no changed
// line in the file it names.
type NoMatchingLinesError struct {
	Path string
	Ref  LineRef
}

func (e *NoMatchingLinesError) Error() string {
	return fmt.Sprintf("no matching line %s in %s", e.Ref, e.Path)
}

// PatchError reports a selection that cannot be rendered as a valid
// patch.
type PatchError struct {
	Path   string
	Reason string
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("build patch for %s: %s", e.Path, e.Reason)
}
