package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/docksmith/stevedore/internal/config"
	"github.com/docksmith/stevedore/internal/engine"
	"github.com/docksmith/stevedore/internal/flatten"
)

// FlattenOptions holds flags for the flatten command
type FlattenOptions struct {
	Tag        string // Final image name
	Dockerfile string // Source image definition override
	Platform   string // Target platform override
}

// NewFlattenCmd creates the flatten command
func NewFlattenCmd(app *App) *cobra.Command {
	var opts FlattenOptions

	cmd := &cobra.Command{
		Use:   "flatten <image>",
		Short: "Build an image and flatten its layers into one",
		Long: `Flatten builds the source image, exports its filesystem, imports it
back as a single-layer base, and rebuilds the runtime configuration
(env, workdir, user, entrypoint, cmd, ports, volumes) on top of it.

The named image is the only artifact kept; the layered source build,
the flattened base, the export container and the archive are all
removed on exit, even when a step fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Tag = args[0]
			return app.Flatten(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dockerfile, "file", "f", "", "Source Dockerfile (overrides config)")
	cmd.Flags().StringVar(&opts.Platform, "platform", "", "Target platform, e.g. linux/amd64 (overrides config)")

	return cmd
}

// Flatten runs the image flattening pipeline.
func (a *App) Flatten(ctx context.Context, opts FlattenOptions) error {
	printer := NewPrinter()

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if opts.Dockerfile != "" {
		cfg.Flatten.Dockerfile = opts.Dockerfile
	}
	if opts.Platform != "" {
		cfg.Flatten.Platform = opts.Platform
	}

	runtime, err := engine.DetectRuntime()
	if err != nil {
		return err
	}
	eng := engine.NewClient(runtime)

	var buildOut io.Writer = io.Discard
	if a.verbose {
		buildOut = os.Stderr
	}

	summary, err := flatten.Run(ctx, eng, flatten.Options{
		Tag:        opts.Tag,
		Dockerfile: cfg.Flatten.Dockerfile,
		ContextDir: cfg.Flatten.ContextDir,
		Platform:   cfg.Flatten.Platform,
		WorkDir:    dir,
		Out:        buildOut,
		Report:     printer.Stepf,
	})
	if err != nil {
		return err
	}

	printer.OKf("flattened %s", opts.Tag)
	printer.Dimf("layered size:   %s", summary.SourceSize)
	printer.Dimf("flattened size: %s", summary.FinalSize)
	return nil
}
