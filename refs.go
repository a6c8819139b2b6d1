package gitlines

import (
	"fmt"
	"strconv"
	"strings"
)

// RefKind distinguishes addition references from deletion references.
type RefKind int

// Reference kinds.
const (
	RefAddition RefKind = iota
	RefDeletion
)

// LineRef identifies a single changed line: an addition by its
// new-file line number, or a deletion by its old-file line number.
type LineRef struct {
	Kind RefKind
	Num  int
}

// String renders the ref in input syntax, "12" or "-12".
func (r LineRef) String() string {
	if r.Kind == RefDeletion {
		return "-" + strconv.Itoa(r.Num)
	}
	return strconv.Itoa(r.Num)
}

// FileSelection names the changed lines to stage from one file.
type FileSelection struct {
	Path string
	Refs []LineRef
}

// ParseRefs parses file reference arguments of the form
// "path:sel[,sel...]" into per-file selections. A selector is an
// addition line number ("12"), a deletion line number ("-12"), or an
// inclusive range of either ("3..7", "-3..-7"). Ranges expand to
// individual refs, duplicates are dropped, and arguments naming the
// same path merge into one selection.
func ParseRefs(args []string) ([]FileSelection, error) {
	var order []string
	byPath := make(map[string][]LineRef)
	seen := make(map[string]map[LineRef]bool)

	for _, arg := range args {
		path, rest, found := strings.Cut(arg, ":")
		if !found {
			return nil, &ParseError{Input: arg, Reason: "expected path:refs"}
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return nil, &ParseError{Input: arg, Reason: "empty file name"}
		}
		refs, err := parseSelectors(arg, rest)
		if err != nil {
			return nil, err
		}
		if _, ok := byPath[path]; !ok {
			order = append(order, path)
			seen[path] = make(map[LineRef]bool)
		}
		for _, ref := range refs {
			if seen[path][ref] {
				continue
			}
			seen[path][ref] = true
			byPath[path] = append(byPath[path], ref)
		}
	}

	selections := make([]FileSelection, 0, len(order))
	for _, path := range order {
		selections = append(selections, FileSelection{Path: path, Refs: byPath[path]})
	}
	return selections, nil
}

func parseSelectors(input, s string) ([]LineRef, error) {
	var refs []LineRef
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := parseSelector(input, part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, parsed...)
	}
	if len(refs) == 0 {
		return nil, &ParseError{Input: input, Reason: "empty refs"}
	}
	return refs, nil
}

func parseSelector(input, sel string) ([]LineRef, error) {
	if start, end, found := strings.Cut(sel, ".."); found {
		return parseRange(input, sel, start, end)
	}
	if rest, found := strings.CutPrefix(sel, "-"); found {
		n, err := parseLineNum(input, rest)
		if err != nil {
			return nil, err
		}
		return []LineRef{{Kind: RefDeletion, Num: n}}, nil
	}
	n, err := parseLineNum(input, sel)
	if err != nil {
		return nil, err
	}
	return []LineRef{{Kind: RefAddition, Num: n}}, nil
}

func parseRange(input, sel, start, end string) ([]LineRef, error) {
	kind := RefAddition
	if s, found := strings.CutPrefix(start, "-"); found {
		e, found := strings.CutPrefix(end, "-")
		if !found {
			return nil, &ParseError{Input: input, Reason: fmt.Sprintf("invalid deletion range %q", sel)}
		}
		kind, start, end = RefDeletion, s, e
	}
	lo, err := parseLineNum(input, start)
	if err != nil {
		return nil, err
	}
	hi, err := parseLineNum(input, end)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, &ParseError{Input: input, Reason: fmt.Sprintf("invalid range %q", sel)}
	}
	refs := make([]LineRef, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		refs = append(refs, LineRef{Kind: kind, Num: n})
	}
	return refs, nil
}

func parseLineNum(input, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &ParseError{Input: input, Reason: fmt.Sprintf("invalid line number %q", s)}
	}
	return n, nil
}
