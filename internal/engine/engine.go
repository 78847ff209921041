package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Client runs container engine operations through a detected runtime.
type Client struct {
	bin    string
	runner Runner
}

// NewClient creates a Client for the given runtime binary.
// Use DetectRuntime() to find an available runtime first.
func NewClient(bin string) *Client {
	return &Client{bin: bin, runner: newRunner(bin)}
}

// NewClientWithRunner creates a Client with an explicit runner.
// Intended for tests.
func NewClientWithRunner(bin string, runner Runner) *Client {
	return &Client{bin: bin, runner: runner}
}

// Runtime returns the runtime binary this client drives.
func (c *Client) Runtime() string {
	return c.bin
}

// RunDetached starts a detached container and returns its ID.
func (c *Client) RunDetached(ctx context.Context, cfg RunConfig) (ContainerID, error) {
	args := []string{"run", "-d"}
	if cfg.AutoRemove {
		args = append(args, "--rm")
	}
	if cfg.Name != "" {
		args = append(args, "--name", cfg.Name)
	}
	for _, k := range sortedKeys(cfg.Env) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, cfg.Env[k]))
	}
	args = append(args, cfg.Image)

	output, err := c.runner.Exec(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	id := ContainerID(strings.TrimSpace(output))
	if id == "" {
		return "", fmt.Errorf("engine returned no container ID for image %s", cfg.Image)
	}
	return id, nil
}

// Exec runs a command inside a running container and returns its
// combined output. Extra environment variables are passed with -e.
func (c *Client) Exec(ctx context.Context, container string, env map[string]string, command ...string) (string, error) {
	args := []string{"exec"}
	for _, k := range sortedKeys(env) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, env[k]))
	}
	args = append(args, container)
	args = append(args, command...)

	return c.runner.Exec(ctx, args...)
}

// Stop stops a running container.
func (c *Client) Stop(ctx context.Context, container string) error {
	if _, err := c.runner.Exec(ctx, "stop", container); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", container, err)
	}
	return nil
}

// Build builds an image from a Dockerfile, streaming engine output to out.
func (c *Client) Build(ctx context.Context, cfg BuildConfig, out io.Writer) error {
	args := []string{"build", "-t", cfg.Tag, "-f", cfg.Dockerfile}
	if cfg.Platform != "" {
		args = append(args, "--platform", cfg.Platform)
	}
	contextDir := cfg.ContextDir
	if contextDir == "" {
		contextDir = "."
	}
	args = append(args, contextDir)

	if err := c.runner.ExecStream(ctx, out, args...); err != nil {
		return fmt.Errorf("failed to build image %s: %w", cfg.Tag, err)
	}
	return nil
}

// Create creates a container from an image without starting it.
func (c *Client) Create(ctx context.Context, name, image string) (ContainerID, error) {
	output, err := c.runner.Exec(ctx, "create", "--name", name, image)
	if err != nil {
		return "", fmt.Errorf("failed to create container from %s: %w", image, err)
	}
	return ContainerID(strings.TrimSpace(output)), nil
}

// Export writes a container's filesystem to a tar archive on disk.
func (c *Client) Export(ctx context.Context, container, tarPath string) error {
	if _, err := c.runner.Exec(ctx, "export", "-o", tarPath, container); err != nil {
		return fmt.Errorf("failed to export container %s: %w", container, err)
	}
	return nil
}

// Import imports a filesystem tar archive as a new single-layer image.
func (c *Client) Import(ctx context.Context, tarPath, tag, platform string) error {
	args := []string{"import"}
	if platform != "" {
		args = append(args, "--platform", platform)
	}
	args = append(args, tarPath, tag)

	if _, err := c.runner.Exec(ctx, args...); err != nil {
		return fmt.Errorf("failed to import %s as %s: %w", tarPath, tag, err)
	}
	return nil
}

// RemoveContainer force-removes a container.
func (c *Client) RemoveContainer(ctx context.Context, container string) error {
	if _, err := c.runner.Exec(ctx, "rm", "-f", container); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", container, err)
	}
	return nil
}

// RemoveImage force-removes an image.
func (c *Client) RemoveImage(ctx context.Context, image string) error {
	if _, err := c.runner.Exec(ctx, "rmi", "-f", image); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", image, err)
	}
	return nil
}

// ImageSize returns the engine's human-readable size for an image.
func (c *Client) ImageSize(ctx context.Context, image string) (string, error) {
	output, err := c.runner.Exec(ctx, "images", "--format", "{{.Size}}", image)
	if err != nil {
		return "", fmt.Errorf("failed to query size of %s: %w", image, err)
	}
	size := strings.TrimSpace(output)
	if size == "" {
		return "", fmt.Errorf("no such image: %s", image)
	}
	// Multi-tag images repeat the same size per line.
	if i := strings.IndexByte(size, '\n'); i >= 0 {
		size = size[:i]
	}
	return size, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
