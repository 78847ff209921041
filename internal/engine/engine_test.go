package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docksmith/stevedore/internal/engine"
	"github.com/docksmith/stevedore/internal/testutil"
)

func TestRunDetached_BuildsArgs(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("run -d --rm --name db -e A=1 -e B=2 postgres:16", "abc123\n", nil)

	eng := engine.NewClientWithRunner("docker", runner)
	id, err := eng.RunDetached(context.Background(), engine.RunConfig{
		Image:      "postgres:16",
		Name:       "db",
		AutoRemove: true,
		// Env flags are emitted in sorted key order.
		Env: map[string]string{"B": "2", "A": "1"},
	})

	require.NoError(t, err)
	assert.Equal(t, engine.ContainerID("abc123"), id)
}

func TestRunDetached_EmptyIDIsError(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("run -d --name db alpine", "\n", nil)

	eng := engine.NewClientWithRunner("docker", runner)
	_, err := eng.RunDetached(context.Background(), engine.RunConfig{Image: "alpine", Name: "db"})
	assert.Error(t, err)
}

func TestExec_PassesEnvAndCommand(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("exec -e PGPASSWORD=secret db psql -c SELECT 1", "1\n", nil)

	eng := engine.NewClientWithRunner("docker", runner)
	out, err := eng.Exec(context.Background(), "db",
		map[string]string{"PGPASSWORD": "secret"}, "psql", "-c", "SELECT 1")

	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestBuild_PlatformIsOptional(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("build -t app -f Dockerfile .", "", nil)
	runner.Stub("build -t app -f Dockerfile --platform linux/amd64 ctx", "", nil)

	eng := engine.NewClientWithRunner("docker", runner)

	err := eng.Build(context.Background(), engine.BuildConfig{Tag: "app", Dockerfile: "Dockerfile"}, nil)
	require.NoError(t, err)

	err = eng.Build(context.Background(), engine.BuildConfig{
		Tag:        "app",
		Dockerfile: "Dockerfile",
		ContextDir: "ctx",
		Platform:   "linux/amd64",
	}, nil)
	require.NoError(t, err)
}

func TestImport_PlatformIsOptional(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("import rootfs.tar flat:latest", "sha256:deadbeef\n", nil)
	runner.Stub("import --platform linux/arm64 rootfs.tar flat:latest", "sha256:deadbeef\n", nil)

	eng := engine.NewClientWithRunner("docker", runner)

	require.NoError(t, eng.Import(context.Background(), "rootfs.tar", "flat:latest", ""))
	require.NoError(t, eng.Import(context.Background(), "rootfs.tar", "flat:latest", "linux/arm64"))
}

func TestImageSize(t *testing.T) {
	runner := testutil.NewStubRunner()
	runner.Stub("images --format {{.Size}} app:latest", "412MB\n", nil)
	runner.Stub("images --format {{.Size}} multi:tag", "98.1MB\n98.1MB\n", nil)
	runner.Stub("images --format {{.Size}} missing", "\n", nil)

	eng := engine.NewClientWithRunner("docker", runner)

	size, err := eng.ImageSize(context.Background(), "app:latest")
	require.NoError(t, err)
	assert.Equal(t, "412MB", size)

	size, err = eng.ImageSize(context.Background(), "multi:tag")
	require.NoError(t, err)
	assert.Equal(t, "98.1MB", size)

	_, err = eng.ImageSize(context.Background(), "missing")
	assert.Error(t, err)
}

func TestErrors_WrapUnderlyingFailure(t *testing.T) {
	probeErr := errors.New("connection refused")
	runner := testutil.NewStubRunner()
	runner.Stub("stop db", "", probeErr)

	eng := engine.NewClientWithRunner("docker", runner)
	err := eng.Stop(context.Background(), "db")

	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
	assert.Contains(t, err.Error(), "db")
}
