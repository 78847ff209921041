package engine

// ContainerID is a unique identifier for a container.
// This is the full ID returned by `docker create`, not the short form.
type ContainerID string

// ImageConfig is the runtime configuration captured from an image.
// Immutable once inspected; it is consumed to synthesize the
// reconstruction Dockerfile after flattening.
type ImageConfig struct {
	// Env contains KEY=VALUE entries in their original order.
	Env []string

	// WorkingDir is the working directory, empty if unset.
	WorkingDir string

	// User is the user identity string, empty if unset.
	User string

	// Entrypoint is the entrypoint argument vector.
	Entrypoint []string

	// Cmd is the command argument vector.
	Cmd []string

	// ExposedPorts holds port specifiers like "5432/tcp", sorted.
	ExposedPorts []string

	// Volumes holds declared volume paths, sorted.
	Volumes []string
}

// RunConfig specifies parameters for a detached container run.
type RunConfig struct {
	// Image is the container image reference.
	Image string

	// Name is the container name.
	Name string

	// Env contains environment variables to set in the container.
	Env map[string]string

	// AutoRemove removes the container when it exits.
	AutoRemove bool
}

// BuildConfig specifies parameters for an image build.
type BuildConfig struct {
	// Tag is the target image tag.
	Tag string

	// Dockerfile is the path to the build definition file.
	Dockerfile string

	// ContextDir is the build context directory. Defaults to ".".
	ContextDir string

	// Platform is an optional target platform (e.g. "linux/amd64").
	Platform string
}
