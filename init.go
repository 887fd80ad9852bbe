package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/sirlanci/FuncSelector/internal/config"
)

// newInitCmd implements `funcselector init`, which writes the commented
// default configuration so it can be edited in place.
func newInitCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Long: `Write the default configuration, with comments, to path. path defaults to
./` + config.LocalFile + `, which is picked up automatically when --config is not
given. An existing file is left untouched unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		// init must work even when the current config is broken.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(a.stderr, a.verbosity, a.quiet)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.LocalFile
			if len(args) > 0 {
				path = args[0]
			}
			return a.runInit(path, dryRun, force)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the configuration instead of writing it")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) runInit(path string, dryRun, force bool) error {
	data := config.DefaultTOML()

	if dryRun {
		_, _ = a.stdout.Write(data)
		return nil
	}

	a.logger.Debug("writing default configuration", "path", path, "force", force)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if !a.quiet {
		_, _ = fmt.Fprintf(a.stderr, "wrote default configuration to %s\n", path)
	}
	return nil
}
