package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	gitlines "github.com/Omegaice/git-lines"
)

// App holds the collaborators behind the git-lines subcommands so
// tests can substitute any of them.
type App struct {
	Differ   gitlines.Differ
	Applier  gitlines.Applier
	Parser   gitlines.Parser
	Renderer gitlines.Renderer
	Picker   gitlines.Picker
	Stdout   io.Writer
}

// Stage parses fileRefs, builds the minimal patch for the referenced
// lines, and applies it to the index in one atomic step. Unless quiet
// is set, the staged lines are echoed to stdout.
func (a *App) Stage(ctx context.Context, fileRefs []string, quiet bool) error {
	selections, err := gitlines.ParseRefs(fileRefs)
	if err != nil {
		return err
	}

	paths := make([]string, len(selections))
	for i, sel := range selections {
		paths[i] = sel.Path
	}

	selected, err := a.selectLines(ctx, paths, selections)
	if err != nil {
		return err
	}

	patch, err := gitlines.BuildPatch(selected)
	if err != nil {
		return err
	}
	if err := a.Applier.Apply(ctx, patch); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(a.Stdout, "Staged:\n%s", a.Renderer.Render(selected))
	}
	return nil
}

// Diff prints the unstaged changes as a numbered line listing,
// optionally restricted to paths.
func (a *App) Diff(ctx context.Context, paths []string) error {
	raw, err := a.Differ.Diff(ctx, paths...)
	if err != nil {
		return err
	}
	diff, err := a.Parser.Parse(strings.NewReader(raw))
	if err != nil {
		return err
	}
	fmt.Fprint(a.Stdout, a.Renderer.Render(diff))
	return nil
}

// Pick runs the interactive picker over the unstaged changes and
// stages whatever the user confirmed. A cancelled pick stages
// nothing and is not an error.
func (a *App) Pick(ctx context.Context, paths []string) error {
	raw, err := a.Differ.Diff(ctx, paths...)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return &gitlines.NoChangesError{}
	}
	diff, err := a.Parser.Parse(strings.NewReader(raw))
	if err != nil {
		return err
	}

	selections, err := a.Picker.Pick(ctx, diff)
	if err != nil {
		return err
	}
	if len(selections) == 0 {
		return nil
	}

	selected, err := gitlines.Select(diff, selections)
	if err != nil {
		return err
	}
	patch, err := gitlines.BuildPatch(selected)
	if err != nil {
		return err
	}
	if err := a.Applier.Apply(ctx, patch); err != nil {
		return err
	}

	fmt.Fprintf(a.Stdout, "Staged:\n%s", a.Renderer.Render(selected))
	return nil
}

// selectLines fetches the diff restricted to paths and resolves
// selections against it.
func (a *App) selectLines(ctx context.Context, paths []string, selections []gitlines.FileSelection) (*gitlines.Diff, error) {
	raw, err := a.Differ.Diff(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &gitlines.NoChangesError{}
	}
	diff, err := a.Parser.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return gitlines.Select(diff, selections)
}
