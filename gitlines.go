// Package gitlines provides domain types and operations for staging
// individual changed lines from a git diff.
package gitlines

import "io/fs"

// Diff represents a complete diff containing zero or more file changes.
type Diff struct {
	Files []FileDiff
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	OldPath string      // empty for created files
	NewPath string      // empty for deleted files
	OldMode fs.FileMode // git octal mode, 0 if not recorded
	NewMode fs.FileMode // git octal mode, 0 if not recorded
	Binary  bool        // binary files have no hunks
	Hunks   []Hunk
}

// Path returns the path used to address the file in selections and
// display output: the new path, or the old path for deleted files.
func (f *FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Created reports whether the file does not exist on the old side.
func (f *FileDiff) Created() bool { return f.OldPath == "" }

// Deleted reports whether the file does not exist on the new side.
func (f *FileDiff) Deleted() bool { return f.NewPath == "" }

// Hunk represents a contiguous block of changes within a file.
type Hunk struct {
	OldStart int // from @@ -X,Y
	OldCount int
	NewStart int // from @@ +X,Y
	NewCount int
	Lines    []Line
}

// Line represents a single line within a hunk.
type Line struct {
	Kind      LineKind
	Content   string // without trailing newline
	OldNum    int    // 0 if line is added
	NewNum    int    // 0 if line is deleted
	NoNewline bool   // "\ No newline at end of file" follows this line
}

// LineKind represents the type of a diff line.
type LineKind int

// Line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineDeleted
)
