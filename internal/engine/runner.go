package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Runner executes container engine commands.
type Runner interface {
	Exec(ctx context.Context, args ...string) (string, error)
	ExecStream(ctx context.Context, out io.Writer, args ...string) error
}

// osRunner executes real engine commands via exec.CommandContext.
type osRunner struct {
	bin string
}

func (r osRunner) Exec(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", newCommandError(r.bin, args, err, stderr.String())
	}

	return stdout.String(), nil
}

func (r osRunner) ExecStream(ctx context.Context, out io.Writer, args ...string) error {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = io.MultiWriter(out, &stderr)

	if err := cmd.Run(); err != nil {
		return newCommandError(r.bin, args, err, stderr.String())
	}

	return nil
}

func newCommandError(bin string, args []string, err error, stderr string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &CommandError{
		Command:  fmt.Sprintf("%s %s", bin, strings.Join(args, " ")),
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}
}

var (
	runnerMu      sync.RWMutex
	runnerFactory = func(bin string) Runner { return osRunner{bin: bin} }
)

// SetRunnerFactory replaces how runners are constructed. Intended for tests.
// Passing nil restores the real exec-backed runner.
func SetRunnerFactory(factory func(bin string) Runner) {
	runnerMu.Lock()
	defer runnerMu.Unlock()
	if factory == nil {
		runnerFactory = func(bin string) Runner { return osRunner{bin: bin} }
		return
	}
	runnerFactory = factory
}

func newRunner(bin string) Runner {
	runnerMu.RLock()
	defer runnerMu.RUnlock()
	return runnerFactory(bin)
}
