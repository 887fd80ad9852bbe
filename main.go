// funcselector reports unsafe-region complexity and best-effort variable
// types for the free functions of Rust source files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirlanci/FuncSelector/internal/analyze"
	"github.com/sirlanci/FuncSelector/internal/complexity"
	"github.com/sirlanci/FuncSelector/internal/config"
	"github.com/sirlanci/FuncSelector/internal/emit"
	"github.com/sirlanci/FuncSelector/internal/lang"
	"github.com/sirlanci/FuncSelector/internal/model"
	"github.com/sirlanci/FuncSelector/internal/parse"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// reportedError marks a failure whose diagnostic has already been written to
// the error stream.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// app carries the state shared by every subcommand of one invocation.
type app struct {
	stdout, stderr io.Writer

	configPath string
	verbosity  int
	quiet      bool

	cfg    *config.Config
	logger *slog.Logger
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(&app{stdout: stdout, stderr: stderr})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "funcselector",
		Short:         "Score unsafe regions and tag variable types in Rust functions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./"+config.LocalFile+" if present)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress all log output")

	root.AddCommand(
		newUnsafeCmd(a),
		newTypesCmd(a),
		newSummaryCmd(a),
		newInitCmd(a),
	)
	return root
}

func (a *app) setup() error {
	a.logger = newLogger(a.stderr, a.verbosity, a.quiet)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded",
		"path", a.configPath,
		"count_terminated", cfg.Unsafe.CountTerminated,
		"categories", len(cfg.Categories))
	return nil
}

func (a *app) complexityOptions() complexity.Options {
	return complexity.Options{CountTerminated: a.cfg.Unsafe.CountTerminated}
}

// exactlyOne rejects any positional argument count but one and repeats the
// command's usage line in the error.
func exactlyOne(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w\nusage: %s", err, cmd.UseLine())
	}
	return nil
}

func newUnsafeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unsafe <file.rs>",
		Short: "Print unsafe region count and per-region scores for each function",
		Long: `Print one line per top-level function:

  <name>;<region count>;<score>;<score>;...

Each unsafe block at the top level of the body is one region. Its score
counts the control-flow constructs and branch slots nested inside it.`,
		Args: exactlyOne,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit.Unsafe(a.stdout, report)
		},
	}
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types <file.rs>",
		Short: "Print best-effort type tags for arguments, return values and locals",
		Long: `Print a Function line for each top-level function followed by its
Argument, Return and Local lines. Types are taken from annotations where
present and guessed from initializer shape otherwise; shapes that cannot be
classified are reported as NotIdentified#<kind>.`,
		Args: exactlyOne,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.analyzeFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit.Types(a.stdout, report)
		},
	}
}

// analyzeFile reads and analyzes a single file. Parse failures are rendered
// to the error stream with a caret excerpt.
func (a *app) analyzeFile(ctx context.Context, path string) (*model.FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	parser := lang.Languages[lang.Rust].NewParser()
	defer parser.Close()

	report, err := analyze.Source(ctx, parser, source, path, a.complexityOptions())
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			_, _ = fmt.Fprintln(a.stderr, perr.Render(source))
			return nil, &reportedError{err: err}
		}
		return nil, err
	}
	a.logger.Info("analyzed file", "path", path, "functions", len(report.Functions))
	return report, nil
}
