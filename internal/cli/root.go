// Package cli implements the softbrush command line: flag parsing, config
// and logger setup, then hand-off to the window.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"SoftBrush/internal/config"
	"SoftBrush/internal/imageio"
	"SoftBrush/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion is called from main with values injected through ldflags.
func SetVersion(v, c string) {
	version = v
	commit = c
}

// runFunc starts the UI. Tests replace it.
type runFunc func(ctx context.Context, cfg config.Config, logger *log.Logger, initial imageio.Source) error

// Execute runs the root command with ctx.
func Execute(ctx context.Context, stderr io.Writer) error {
	return newRootCmd(stderr, ui.RunApp).ExecuteContext(ctx)
}

func newRootCmd(stderr io.Writer, run runFunc) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "softbrush [image]",
		Short:         "Paint soft blurred brush strokes over an image",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Debug("Config loaded", "path", configPath, "brush", cfg.Brush.Size, "blur", cfg.Brush.Blur)

			var initial imageio.Source
			if len(args) == 1 {
				initial, err = imageio.OpenFile(args[0])
				if err != nil {
					return err
				}
			}
			return run(cmd.Context(), cfg, logger, initial)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("softbrush %s\ncommit: %s\n", version, commit))
	root.SetErr(stderr)
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	return root
}
