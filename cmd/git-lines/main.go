// Command git-lines stages individual changed lines from the working
// tree into the git index, without staging whole files or hunks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Omegaice/git-lines/bubbletea"
	"github.com/Omegaice/git-lines/chroma"
	"github.com/Omegaice/git-lines/git"
	"github.com/Omegaice/git-lines/gitdiff"
	"github.com/Omegaice/git-lines/lipgloss"
)

const usage = `usage: git-lines [-C dir] <command> [arguments]

Commands:
  stage [-q] <path:refs> ...  stage the referenced lines (e.g. main.go:12,15..17,-40)
  diff [path ...]             list unstaged changes with line numbers
  pick [path ...]             choose lines to stage interactively
`

func main() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line and returns the process exit code: 0
// on success, 1 on an operational error, 2 on a usage error.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine; anything else is worth surfacing.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	defaultDir := os.Getenv("GIT_LINES_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}

	global := flag.NewFlagSet("git-lines", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	dir := global.String("C", defaultDir, "run as if started in this directory")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	client := git.NewClient(*dir)
	app := &App{
		Differ:   client,
		Applier:  client,
		Parser:   gitdiff.NewParser(),
		Renderer: lipgloss.NewRenderer(stdout, lipgloss.WithHighlighter(chroma.NewHighlighter())),
		Picker:   bubbletea.NewPicker(),
		Stdout:   stdout,
	}

	name, rest := global.Arg(0), global.Args()[1:]
	var err error
	switch name {
	case "stage":
		fs := flag.NewFlagSet("stage", flag.ContinueOnError)
		fs.SetOutput(stderr)
		defaultQuiet := envBool("GIT_LINES_QUIET")
		var quiet bool
		fs.BoolVar(&quiet, "q", defaultQuiet, "suppress the staged lines listing")
		fs.BoolVar(&quiet, "quiet", defaultQuiet, "suppress the staged lines listing")
		if err := fs.Parse(rest); err != nil {
			return 2
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "stage: at least one path:refs argument is required")
			return 2
		}
		err = app.Stage(ctx, fs.Args(), quiet)
	case "diff":
		fs := flag.NewFlagSet("diff", flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(rest); err != nil {
			return 2
		}
		err = app.Diff(ctx, fs.Args())
	case "pick":
		fs := flag.NewFlagSet("pick", flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(rest); err != nil {
			return 2
		}
		err = app.Pick(ctx, fs.Args())
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		global.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
