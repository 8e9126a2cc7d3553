package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"findreplace/internal/apply"
	"findreplace/internal/diff"
	"findreplace/internal/discovery"
	"findreplace/internal/processor"
	"findreplace/internal/substitute"
)

// Exit codes.
const (
	exitOK    = 0
	exitUsage = 1
	exitFatal = 2
)

var (
	errNotEnoughArgs = errors.New("Not enough arguments provided.")
	errTooManyArgs   = errors.New("Too many arguments provided.")
)

type Config struct {
	Help     bool
	Version  bool
	Verbose  bool
	DryRun   bool
	Backup   bool
	NoColor  bool
	LogLevel zerolog.Level

	Pattern    string
	Substitute string
	FilePath   string
}

func parseArgs(args []string, getenv func(string) string) (Config, error) {
	var cfg Config
	var level string
	fs := pflag.NewFlagSet("findreplace", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	// Everything after the first positional argument is positional, so a
	// pattern or substitute may look like a flag.
	fs.SetInterspersed(false)

	fs.BoolVarP(&cfg.Help, "help", "h", false, "Show help menu")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "Show version info")
	fs.BoolVarP(&cfg.Verbose, "log", "l", false, "Show verbose log")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the changes instead of writing the file")
	fs.BoolVar(&cfg.Backup, "backup", false, "Keep a copy of the original before writing")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors in output")
	fs.StringVar(&level, "log-level", getenv(envLogLevel), "Diagnostics level on stderr")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Help || cfg.Version {
		return cfg, nil
	}

	lvl, err := resolveLevel(level, cfg.Verbose)
	if err != nil {
		return cfg, errors.Errorf("invalid log level %q", level)
	}
	cfg.LogLevel = lvl

	pos := fs.Args()
	switch {
	case len(pos) < 3:
		return cfg, errNotEnoughArgs
	case len(pos) > 3:
		return cfg, errTooManyArgs
	}
	cfg.Pattern, cfg.Substitute, cfg.FilePath = pos[0], pos[1], pos[2]
	return cfg, nil
}

// Run executes the CLI with the provided args and writers, returning the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(args, stdout, stderr, os.Getenv)
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) == 0 {
		// A bare invocation exits 0, unlike a short argument list.
		fmt.Fprintln(stderr, "Error: No option or argument provided.")
		return exitOK
	}

	cfg, err := parseArgs(args, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	switch {
	case cfg.Help:
		fmt.Fprint(stdout, usage)
		return exitOK
	case cfg.Version:
		fmt.Fprintf(stdout, "%s (%s)\n", appName, version)
		return exitOK
	}

	logger := newLogger(stderr, cfg.LogLevel, cfg.NoColor)
	ctx := logger.WithContext(context.Background())

	if err := replaceInFile(ctx, cfg, stdout); err != nil {
		if errors.Is(err, discovery.ErrNotFound) {
			fmt.Fprintln(stdout, "Invalid file path!")
			return exitOK
		}
		logger.Debug().Str("stack", fmt.Sprintf("%+v", err)).Msg("aborting")
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return exitFatal
	}
	return exitOK
}

// replaceInFile runs one invocation end to end. Nothing is written unless
// every step before the write succeeded.
func replaceInFile(ctx context.Context, cfg Config, stdout io.Writer) error {
	logger := zerolog.Ctx(ctx)

	if cfg.Verbose {
		fmt.Fprintf(stdout, "Arguments:\n  Pattern: %s\n  Substitute: %s\n  FilePath: %s\n",
			cfg.Pattern, cfg.Substitute, cfg.FilePath)
	}

	path, err := discovery.Locate(cfg.FilePath)
	if err != nil {
		return err
	}
	contents, err := processor.ReadText(path)
	if err != nil {
		return err
	}

	sub := substitute.InterpretContext(ctx, cfg.Substitute)
	if cfg.Verbose {
		fmt.Fprintf(stdout, "Substitute:\n  Format: %s\n", sub.Format)
		if sub.Kind == substitute.Mapping {
			fmt.Fprintf(stdout, "  Interpreted as: %s\n", sub.Describe())
		}
	}

	res, err := processor.Apply(ctx, contents, cfg.Pattern, sub)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		preview, changed, err := diff.Diff(res.Before, res.After, diff.Options{Color: !cfg.NoColor})
		if err != nil {
			return errors.Errorf("diff: %w", err)
		}
		if changed {
			fmt.Fprintf(stdout, "file: %s  (matches: %d, replacements: %d)\n", path, res.Matches, res.Replacements)
			fmt.Fprint(stdout, preview)
		}
		return nil
	}

	out, err := apply.WriteAtomic(path, []byte(res.After), apply.Options{Backup: cfg.Backup})
	if err != nil {
		return err
	}
	logger.Info().
		Str("path", path).
		Str("format", string(sub.Format)).
		Int("matches", res.Matches).
		Int("replacements", res.Replacements).
		Str("backup", out.BackupPath).
		Msg("file written")
	if cfg.Verbose {
		if out.BackupPath != "" {
			fmt.Fprintf(stdout, "Backup: %s\n", out.BackupPath)
		}
		fmt.Fprintln(stdout, "Replaced matches!")
	}
	return nil
}
