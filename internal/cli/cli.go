// Package cli wires argument parsing, logging and error presentation around
// the seqfile finder.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/seqfile/internal/config"
	pkgerrors "github.com/joe/seqfile/pkg/errors"
	"github.com/joe/seqfile/pkg/filesystem"
	"github.com/joe/seqfile/pkg/logger"
	"github.com/joe/seqfile/pkg/seqfile"
)

// Exit codes that do not come from an errno.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// maxExitCode is the largest status a POSIX parent can observe.
const maxExitCode = 255

// Run executes the command line args (without the program name), writes the
// reserved path to stdout and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, stdout)

	switch {
	case errors.Is(err, arg.ErrHelp), errors.Is(err, arg.ErrVersion):
		return ExitOK
	case err != nil:
		report(stderr, err, "")
		return ExitCode(err)
	}

	log, err := logger.New(logger.Config{Level: cfg.EffectiveLogLevel(), Development: true, Writer: stderr})
	if err != nil {
		report(stderr, err, "")
		return ExitFailure
	}

	defer func() { _ = log.Sync() }()

	path, err := reserve(cfg, log)
	if err != nil {
		log.Debugw("reservation failed", "error", err)
		report(stderr, err, cfg.Folder)

		return ExitCode(err)
	}

	fmt.Fprintln(stdout, path)

	return ExitOK
}

// reserve claims the next file in cfg.Folder, local or remote.
func reserve(cfg *config.Config, log *logger.Logger) (string, error) {
	fs, parsed, closer, err := filesystem.CreateFileSystem(cfg.Folder)
	if err != nil {
		return "", err //nolint:wrapcheck // Message already names the folder
	}
	defer closer()

	opts := []seqfile.Option{seqfile.WithLogger(log)}
	if parsed.IsRemote {
		opts = append(opts, seqfile.WithExpander(seqfile.ExpandVariables))
	}

	path, err := seqfile.NewFinder(fs, opts...).Find(cfg.Request(parsed.Dir()))
	if err != nil {
		return "", err //nolint:wrapcheck // Typed errors are part of the contract
	}

	return parsed.URL(path), nil
}

// ExitCode maps an error to a process exit status: 2 for bad arguments, the
// EEXIST errno when every candidate was taken, the errno of a failed system
// call, and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *config.UsageError
	if errors.As(err, &usageErr) || errors.Is(err, seqfile.ErrConfiguration) {
		return ExitUsage
	}

	if errors.Is(err, seqfile.ErrExhausted) {
		return errnoExitCode(syscall.EEXIST)
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errnoExitCode(errno)
	}

	return ExitFailure
}

func errnoExitCode(errno syscall.Errno) int {
	code := int(errno)
	if code <= 0 || code > maxExitCode {
		return ExitFailure
	}

	return code
}

// report writes err to stderr. On a terminal the message is styled and
// followed by suggestions; otherwise it is a single plain line.
func report(stderr io.Writer, err error, folder string) {
	if !isTerminal(stderr) {
		fmt.Fprintf(stderr, "%s: %v\n", config.ProgramName, err)

		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(stderr, usageErr.Usage)
		}

		return
	}

	fmt.Fprint(stderr, renderError(lipgloss.NewRenderer(stderr), err, folder))
}

// renderError formats err with its suggestions using the given renderer.
func renderError(renderer *lipgloss.Renderer, err error, folder string) string {
	enriched := pkgerrors.NewEnricher().Enrich(err, folder)

	out := errorStyle(renderer).Render(config.ProgramName+": "+err.Error()) + "\n"

	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		out += dimStyle(renderer).Render(usageErr.Usage) + "\n"
	}

	if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
		out += labelStyle(renderer).Render("Try these solutions:") + "\n" + suggestions + "\n"
	}

	return out
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}
