package flatten

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/docksmith/stevedore/internal/engine"
)

// ReconstructionFile is the fixed name of the synthesized Dockerfile,
// written to the working directory and removed on cleanup.
const ReconstructionFile = "Dockerfile.flat"

// Options configures a flatten run.
type Options struct {
	// Tag is the final image name, the only artifact retained.
	Tag string

	// Dockerfile is the path to the source image definition.
	Dockerfile string

	// ContextDir is the build context for the source image.
	ContextDir string

	// Platform is an optional target platform passed through to the
	// build and import steps.
	Platform string

	// WorkDir is where the export archive and the reconstruction
	// Dockerfile are written. Defaults to the current directory.
	WorkDir string

	// Out receives streamed engine build output. Defaults to discard.
	Out io.Writer

	// Report, when set, is called with a status line before each step.
	Report func(format string, args ...any)
}

// Summary holds the engine-reported sizes of the layered source image
// and the final flattened image.
type Summary struct {
	SourceSize string
	FinalSize  string
}

func (o *Options) report(format string, args ...any) {
	if o.Report != nil {
		o.Report(format, args...)
	}
}

// Run executes the flatten pipeline: build the source image, capture
// its configuration, export its filesystem, import it as a
// single-layer base, rebuild the runtime configuration on top, and
// report sizes. Every intermediate resource is registered with a
// Tracker and released in reverse order when the run ends, whether or
// not a step failed.
func Run(ctx context.Context, eng *engine.Client, opts Options) (Summary, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}

	tracker := engine.NewTracker()
	defer func() {
		// Cleanup runs even when the pipeline was aborted, and its
		// own failures are logged, never propagated.
		for desc, err := range tracker.Close(context.Background()) {
			opts.report("cleanup %s: %v", desc, err)
		}
	}()

	return run(ctx, eng, tracker, opts)
}

func run(ctx context.Context, eng *engine.Client, tracker *engine.Tracker, opts Options) (Summary, error) {
	suffix := engine.RandomSuffix()
	srcImage := fmt.Sprintf("stevedore-layered-%s", suffix)
	flatImage := fmt.Sprintf("stevedore-flatbase-%s", suffix)
	exportCtr := fmt.Sprintf("stevedore-export-%s", suffix)
	archive := filepath.Join(opts.WorkDir, fmt.Sprintf("stevedore-rootfs-%s.tar", suffix))

	opts.report("building source image %s", srcImage)
	err := eng.Build(ctx, engine.BuildConfig{
		Tag:        srcImage,
		Dockerfile: opts.Dockerfile,
		ContextDir: opts.ContextDir,
		Platform:   opts.Platform,
	}, opts.Out)
	if err != nil {
		return Summary{}, err
	}
	tracker.Add("image "+srcImage, func(ctx context.Context) error {
		return eng.RemoveImage(ctx, srcImage)
	})

	opts.report("capturing image configuration")
	cfg, err := engine.InspectImage(ctx, srcImage)
	if err != nil {
		return Summary{}, err
	}

	opts.report("exporting filesystem")
	if _, err := eng.Create(ctx, exportCtr, srcImage); err != nil {
		return Summary{}, err
	}
	tracker.Add("container "+exportCtr, func(ctx context.Context) error {
		return eng.RemoveContainer(ctx, exportCtr)
	})

	// The engine truncates the archive before the export can fail
	// mid-stream, so the file is tracked before the export runs. A
	// file the export never created is already released.
	tracker.Add("archive "+archive, func(context.Context) error {
		if err := os.Remove(archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
	if err := eng.Export(ctx, exportCtr, archive); err != nil {
		return Summary{}, err
	}

	opts.report("importing flattened base %s", flatImage)
	if err := eng.Import(ctx, archive, flatImage, opts.Platform); err != nil {
		return Summary{}, err
	}
	tracker.Add("image "+flatImage, func(ctx context.Context) error {
		return eng.RemoveImage(ctx, flatImage)
	})

	opts.report("reconstructing runtime configuration")
	definition := Dockerfile(flatImage, cfg)
	definitionPath := filepath.Join(opts.WorkDir, ReconstructionFile)
	if err := os.WriteFile(definitionPath, []byte(definition), 0o644); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", definitionPath, err)
	}
	tracker.Add("file "+definitionPath, func(context.Context) error {
		return os.Remove(definitionPath)
	})

	opts.report("building final image %s", opts.Tag)
	err = eng.Build(ctx, engine.BuildConfig{
		Tag:        opts.Tag,
		Dockerfile: definitionPath,
		ContextDir: opts.WorkDir,
		Platform:   opts.Platform,
	}, opts.Out)
	if err != nil {
		return Summary{}, err
	}
	tracker.Add("image "+opts.Tag, func(ctx context.Context) error {
		return eng.RemoveImage(ctx, opts.Tag)
	})

	var summary Summary
	if summary.SourceSize, err = eng.ImageSize(ctx, srcImage); err != nil {
		return Summary{}, err
	}
	if summary.FinalSize, err = eng.ImageSize(ctx, opts.Tag); err != nil {
		return Summary{}, err
	}

	// The run succeeded: promote the final image out of cleanup.
	tracker.Remove("image " + opts.Tag)
	return summary, nil
}
