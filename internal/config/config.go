// Package config handles command-line argument parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/joe/seqfile/pkg/filesystem"
	"github.com/joe/seqfile/pkg/seqfile"
)

// ProgramName is the name used in usage and error messages.
const ProgramName = "seqfile"

// Config holds the application configuration
type Config struct {
	Prefix      string `arg:"positional,required" help:"text before the sequence number"`
	Suffix      string `arg:"positional" help:"text after the sequence number"`
	Folder      string `arg:"positional" default:"." help:"folder to create the file in; a local path or sftp://user@host[:port]/path"`
	MaxAttempts int    `arg:"-m,--max-attempts" default:"10" help:"number of names to try before giving up"`
	Base        int    `arg:"-b,--base" default:"0" help:"first index of the sequence"`
	Verbose     bool   `arg:"-v,--verbose" help:"log every attempt to stderr"`
	LogLevel    string `arg:"--log-level,env:SEQFILE_LOG_LEVEL" default:"warn" help:"debug, info, warn or error"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Creates the next unused file in a numbered sequence (prefix0suffix, prefix1suffix, ...) and prints its path.\n" +
		"Concurrent invocations on the same folder always get different files."
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "seqfile 1.0.0"
}

// Request converts the configuration into a reservation request.
func (cfg *Config) Request(folder string) seqfile.Request {
	req := seqfile.NewRequest(folder)
	req.Affix = &seqfile.Affix{Prefix: cfg.Prefix, Suffix: cfg.Suffix}
	req.Base = cfg.Base
	req.MaxAttempts = cfg.MaxAttempts

	return req
}

// EffectiveLogLevel returns the log level, with --verbose forcing debug.
func (cfg *Config) EffectiveLogLevel() string {
	if cfg.Verbose {
		return "debug"
	}

	return cfg.LogLevel
}

// UsageError reports arguments that could not be parsed or are invalid.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Parse parses command-line arguments, without the program name. Help and
// version requests are written to out and returned as arg.ErrHelp and
// arg.ErrVersion.
func Parse(args []string, out io.Writer) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: ProgramName}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)

	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(out)
		return nil, err //nolint:wrapcheck // Sentinel checked by the caller
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(out, cfg.Version())
		return nil, err //nolint:wrapcheck // Sentinel checked by the caller
	case err != nil:
		return nil, &UsageError{Err: err, Usage: usage(parser)}
	}

	cfg, err = PostProcessConfig(cfg)
	if err != nil {
		return nil, &UsageError{Err: err, Usage: usage(parser)}
	}

	return cfg, nil
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Folder == "" {
		cfg.Folder = "."
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values go-arg cannot check by itself. A non-positive
// --max-attempts is allowed; the search then fails as exhausted.
func (cfg *Config) Validate() error {
	if cfg.Base < 0 {
		return fmt.Errorf("base must not be negative, got %d", cfg.Base)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}

	if _, err := filesystem.ParsePath(cfg.Folder); err != nil {
		return err //nolint:wrapcheck // Message already names the URL problem
	}

	return nil
}

func usage(parser *arg.Parser) string {
	var buf bytes.Buffer

	parser.WriteUsage(&buf)

	return strings.TrimRight(buf.String(), "\n")
}
