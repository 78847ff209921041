package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docksmith/stevedore/internal/config"
	"github.com/docksmith/stevedore/internal/engine"
	"github.com/docksmith/stevedore/internal/verify"
)

// VerifyOptions holds flags for the verify command
type VerifyOptions struct {
	Image string // Database image override
}

// NewVerifyCmd creates the verify command
func NewVerifyCmd(app *App) *cobra.Command {
	var opts VerifyOptions

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify database extensions in a fresh container",
		Long: `Verify launches a disposable database container, waits for it to
accept connections, then runs every declared extension case: create
the extension if absent and exercise it with a functional query.

All cases run even when earlier ones fail. The process exits non-zero
when any case failed. The container is stopped on the way out, pass
or fail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Verify(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Image, "image", "", "Database image (overrides config)")

	return cmd
}

// Verify runs the extension verification pipeline.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	printer := NewPrinter()

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if opts.Image != "" {
		cfg.Database.Image = opts.Image
	}

	runtime, err := engine.DetectRuntime()
	if err != nil {
		return err
	}
	eng := engine.NewClient(runtime)

	name := "stevedore-verify-" + engine.RandomSuffix()
	printer.Stepf("starting %s as %s", cfg.Database.Image, name)

	_, err = eng.RunDetached(ctx, engine.RunConfig{
		Image:      cfg.Database.Image,
		Name:       name,
		AutoRemove: true,
		Env: map[string]string{
			"POSTGRES_USER":     cfg.Database.User,
			"POSTGRES_PASSWORD": cfg.Database.Password,
			"POSTGRES_DB":       cfg.Database.Name,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		// Auto-remove reaps the container once stopped. A container
		// that already exited is not a cleanup failure.
		if err := eng.Stop(context.Background(), name); err != nil {
			printer.Dimf("cleanup: %v", err)
		}
	}()

	interval, err := cfg.Database.ReadyIntervalDuration()
	if err != nil {
		return err
	}

	printer.Stepf("waiting for database to accept connections")
	verifier := &verify.Verifier{Engine: eng, DB: cfg.Database}
	attempts, err := verify.WaitReady(ctx, verifier.Probe(name), verify.PollConfig{
		Attempts: cfg.Database.ReadyAttempts,
		Interval: interval,
	})
	if err != nil {
		return err
	}
	printer.Stepf("ready after %d attempt(s)", attempts)

	results := verifier.RunAll(ctx, name, cfg.Extensions)
	for _, r := range results {
		if r.OK() {
			printer.OKf("%s", r.Name)
			continue
		}
		printer.Failf("%s", r.Name)
		printer.Dimf("%v", r.Err)
		if a.verbose && r.Output != "" {
			printer.Dimf("%s", r.Output)
		}
	}

	failed := verify.FailedCount(results)
	if failed > 0 {
		printer.Failf("%d of %d extension checks failed", failed, len(results))
		return &verify.AggregateError{Failed: failed, Total: len(results)}
	}
	printer.OKf("all %d extension checks passed", len(results))
	return nil
}
