package gitlines

import "sort"

// Select prunes diff down to the lines named by selections.
//
// Every reference must match an added or deleted line of its kind; the
// first reference that matches nothing fails the whole selection
// before anything is staged. Kept lines stay grouped by the hunk they
// came from, with the hunk's original header values preserved so patch
// construction can anchor positions, and files are ordered by path so
// output is deterministic.
//
// When additions are kept after an old section that ends without a
// trailing newline, the final deletion and a re-addition of its
// content are included as well: without them the staged file would
// concatenate the new content onto the unterminated line.
func Select(diff *Diff, selections []FileSelection) (*Diff, error) {
	byPath := make(map[string]*FileDiff, len(diff.Files))
	for i := range diff.Files {
		f := &diff.Files[i]
		byPath[f.Path()] = f
	}

	out := &Diff{}
	for _, sel := range selections {
		src, ok := byPath[sel.Path]
		if !ok {
			return nil, &NoChangesError{Path: sel.Path}
		}
		picked, err := selectFile(src, sel)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, *picked)
	}

	sort.Slice(out.Files, func(i, j int) bool {
		return out.Files[i].Path() < out.Files[j].Path()
	})
	return out, nil
}

func selectFile(src *FileDiff, sel FileSelection) (*FileDiff, error) {
	wantAdd := make(map[int]bool)
	wantDel := make(map[int]bool)
	for _, ref := range sel.Refs {
		if ref.Kind == RefDeletion {
			wantDel[ref.Num] = true
		} else {
			wantAdd[ref.Num] = true
		}
	}

	matchedAdd := make(map[int]bool)
	matchedDel := make(map[int]bool)
	var hunks []Hunk
	for _, h := range src.Hunks {
		if kept := selectHunk(h, wantAdd, wantDel, matchedAdd, matchedDel); kept != nil {
			hunks = append(hunks, *kept)
		}
	}

	for _, ref := range sel.Refs {
		matched := matchedAdd
		if ref.Kind == RefDeletion {
			matched = matchedDel
		}
		if !matched[ref.Num] {
			return nil, &NoMatchingLinesError{Path: sel.Path, Ref: ref}
		}
	}

	out := *src
	out.Hunks = hunks
	return &out, nil
}

// selectHunk keeps the requested lines of one hunk, recording each
// matched line number. Returns nil when nothing is kept.
func selectHunk(h Hunk, wantAdd, wantDel, matchedAdd, matchedDel map[int]bool) *Hunk {
	var dels, adds []Line
	var lastDel *Line
	lastDelKept := false
	firstAddKept := false
	sawAdd := false

	for i := range h.Lines {
		line := h.Lines[i]
		switch line.Kind {
		case LineDeleted:
			lastDel = &h.Lines[i]
			lastDelKept = wantDel[line.OldNum]
			if lastDelKept {
				matchedDel[line.OldNum] = true
				dels = append(dels, line)
			}
		case LineAdded:
			if wantAdd[line.NewNum] {
				matchedAdd[line.NewNum] = true
				adds = append(adds, line)
				if !sawAdd {
					firstAddKept = true
				}
			}
			sawAdd = true
		}
	}

	if len(dels) == 0 && len(adds) == 0 {
		return nil
	}

	// Appending after an unterminated final line requires rewriting
	// that line so the kept additions start on their own line.
	if lastDel != nil && lastDel.NoNewline && len(adds) > 0 && !firstAddKept {
		if !lastDelKept {
			dels = append(dels, *lastDel)
		}
		bridge := Line{Kind: LineAdded, Content: lastDel.Content, NewNum: h.NewStart}
		adds = append([]Line{bridge}, adds...)
	}

	out := h
	out.Lines = append(dels, adds...)
	return &out
}
