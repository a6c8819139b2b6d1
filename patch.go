package gitlines

import (
	"fmt"
	"strings"
)

const noNewlineMarker = `\ No newline at end of file`

// BuildPatch renders a selected diff as zero-context patch text
// suitable for git apply --cached --unidiff-zero.
//
// Hunk positions are recomputed for the selection: a group keeps the
// old-file position of its first kept deletion, or attaches to the
// line the source hunk inserts after, and new-file positions shift by
// the net line delta of the groups already emitted for the file. Files
// render in the order given, one header block each.
func BuildPatch(diff *Diff) (string, error) {
	var b strings.Builder
	for i := range diff.Files {
		if err := writeFilePatch(&b, &diff.Files[i]); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeFilePatch(b *strings.Builder, f *FileDiff) error {
	path := f.Path()
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", path, path)
	switch {
	case f.Created():
		if f.NewMode != 0 {
			fmt.Fprintf(b, "new file mode %o\n", uint32(f.NewMode))
		}
		b.WriteString("--- /dev/null\n")
		fmt.Fprintf(b, "+++ b/%s\n", path)
	case f.Deleted():
		if f.OldMode != 0 {
			fmt.Fprintf(b, "deleted file mode %o\n", uint32(f.OldMode))
		}
		fmt.Fprintf(b, "--- a/%s\n", path)
		b.WriteString("+++ /dev/null\n")
	default:
		fmt.Fprintf(b, "--- a/%s\n", path)
		fmt.Fprintf(b, "+++ b/%s\n", path)
	}

	delta := 0
	prevEnd := -1
	for _, h := range f.Hunks {
		dels, adds := splitKinds(h.Lines)
		oldCount, newCount := len(dels), len(adds)
		if oldCount == 0 && newCount == 0 {
			continue
		}

		var oldStart, newStart int
		switch {
		case oldCount > 0 && newCount > 0:
			oldStart = dels[0].OldNum
			newStart = oldStart + delta
		case oldCount > 0:
			oldStart = dels[0].OldNum
			newStart = oldStart - 1 + delta
		default:
			oldStart = attachPoint(h, adds[0].NewNum)
			newStart = oldStart + 1 + delta
		}

		if oldStart <= prevEnd {
			return &PatchError{Path: path, Reason: fmt.Sprintf("hunk at old line %d overlaps the previous hunk", oldStart)}
		}
		prevEnd = oldStart
		if oldCount > 0 {
			prevEnd = dels[oldCount-1].OldNum
		}

		b.WriteString("@@ -")
		writeRange(b, oldStart, oldCount)
		b.WriteString(" +")
		writeRange(b, newStart, newCount)
		b.WriteString(" @@\n")
		writeLines(b, "-", dels)
		writeLines(b, "+", adds)

		delta += newCount - oldCount
	}
	return nil
}

// attachPoint finds the old-file line a pure-addition group inserts
// after. For an insertion hunk that is the hunk's own anchor; for a
// mixed hunk the kept additions attach before the old line they
// replace, clamped to the hunk's old extent when they only extend it.
func attachPoint(h Hunk, firstNewNum int) int {
	if h.OldCount == 0 {
		return h.OldStart
	}
	idx := firstNewNum - h.NewStart
	if idx > h.OldCount {
		idx = h.OldCount
	}
	return h.OldStart + idx - 1
}

func writeRange(b *strings.Builder, start, count int) {
	switch count {
	case 0:
		fmt.Fprintf(b, "%d,0", start)
	case 1:
		fmt.Fprintf(b, "%d", start)
	default:
		fmt.Fprintf(b, "%d,%d", start, count)
	}
}

func writeLines(b *strings.Builder, prefix string, lines []Line) {
	for _, line := range lines {
		b.WriteString(prefix)
		b.WriteString(line.Content)
		b.WriteString("\n")
		if line.NoNewline {
			b.WriteString(noNewlineMarker)
			b.WriteString("\n")
		}
	}
}

func splitKinds(lines []Line) (dels, adds []Line) {
	for _, line := range lines {
		switch line.Kind {
		case LineDeleted:
			dels = append(dels, line)
		case LineAdded:
			adds = append(adds, line)
		}
	}
	return dels, adds
}
