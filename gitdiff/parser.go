// Package gitdiff parses unified diff text using the go-gitdiff
// library.
package gitdiff

import (
	"io"
	"strings"

	gd "github.com/bluekeyes/go-gitdiff/gitdiff"

	gitlines "github.com/Omegaice/git-lines"
)

// Compile-time interface verification.
var _ gitlines.Parser = (*Parser)(nil)

// Parser converts git diff output into the diff model.
type Parser struct{}

// NewParser creates a new go-gitdiff backed parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads unified diff text and returns the parsed diff. Line
// numbers are resolved from the hunk headers: additions are numbered
// in the new file, deletions in the old file. A line that ends the
// file without a trailing newline is recorded on the line itself.
func (p *Parser) Parse(r io.Reader) (*gitlines.Diff, error) {
	files, _, err := gd.Parse(r)
	if err != nil {
		return nil, &gitlines.DiffError{Err: err}
	}

	diff := &gitlines.Diff{}
	for _, f := range files {
		diff.Files = append(diff.Files, convertFile(f))
	}
	return diff, nil
}

func convertFile(f *gd.File) gitlines.FileDiff {
	out := gitlines.FileDiff{
		OldPath: f.OldName,
		NewPath: f.NewName,
		OldMode: f.OldMode,
		NewMode: f.NewMode,
		Binary:  f.IsBinary,
	}
	if f.IsNew {
		out.OldPath = ""
	}
	if f.IsDelete {
		out.NewPath = ""
	}
	if f.IsBinary {
		return out
	}
	for _, frag := range f.TextFragments {
		out.Hunks = append(out.Hunks, convertFragment(frag))
	}
	return out
}

func convertFragment(frag *gd.TextFragment) gitlines.Hunk {
	h := gitlines.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
	}

	oldNum := int(frag.OldPosition)
	newNum := int(frag.NewPosition)
	for _, fl := range frag.Lines {
		content, terminated := strings.CutSuffix(fl.Line, "\n")
		line := gitlines.Line{Content: content, NoNewline: !terminated}
		switch fl.Op {
		case gd.OpDelete:
			line.Kind = gitlines.LineDeleted
			line.OldNum = oldNum
			oldNum++
		case gd.OpAdd:
			line.Kind = gitlines.LineAdded
			line.NewNum = newNum
			newNum++
		default:
			line.Kind = gitlines.LineContext
			line.OldNum = oldNum
			line.NewNum = newNum
			oldNum++
			newNum++
		}
		h.Lines = append(h.Lines, line)
	}
	return h
}
