package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docksmith/stevedore/internal/engine"
)

func TestFlatten_EndToEnd(t *testing.T) {
	runner := fakeRuntime(t)

	img, err := mutate.Config(empty.Image, v1.Config{Cmd: []string{"sh"}})
	require.NoError(t, err)
	engine.SetImageResolver(func(ctx context.Context, ref name.Reference) (v1.Image, error) {
		return img, nil
	})
	t.Cleanup(func() { engine.SetImageResolver(nil) })

	workDir, err := os.Getwd()
	require.NoError(t, err)
	archive := filepath.Join(workDir, "stevedore-rootfs-"+testSuffix+".tar")
	definition := filepath.Join(workDir, "Dockerfile.flat")

	runner.Stub("build -t stevedore-layered-"+testSuffix+" -f Dockerfile.src --platform linux/amd64 .", "", nil)
	runner.Stub("create --name stevedore-export-"+testSuffix+" stevedore-layered-"+testSuffix, "cid\n", nil)
	runner.Stub("export -o "+archive+" stevedore-export-"+testSuffix, "", nil)
	runner.Stub("import --platform linux/amd64 "+archive+" stevedore-flatbase-"+testSuffix, "sha256:f1a7\n", nil)
	runner.Stub("build -t app:flat -f "+definition+" --platform linux/amd64 "+workDir, "", nil)
	runner.Stub("images --format {{.Size}} stevedore-layered-"+testSuffix, "512MB\n", nil)
	runner.Stub("images --format {{.Size}} app:flat", "488MB\n", nil)
	runner.StubDefault("rmi -f stevedore-layered-"+testSuffix, "", nil)
	runner.StubDefault("rmi -f stevedore-flatbase-"+testSuffix, "", nil)
	runner.StubDefault("rm -f stevedore-export-"+testSuffix, "", nil)

	app := New()
	err = app.Flatten(context.Background(), FlattenOptions{
		Tag:        "app:flat",
		Dockerfile: "Dockerfile.src",
		Platform:   "linux/amd64",
	})
	require.NoError(t, err)

	// Only the final image survives; both intermediates are removed.
	assert.Equal(t, 1, runner.CallsFor("rmi", "-f", "stevedore-layered-"+testSuffix))
	assert.Equal(t, 1, runner.CallsFor("rmi", "-f", "stevedore-flatbase-"+testSuffix))
	assert.Equal(t, 0, runner.CallsFor("rmi", "-f", "app:flat"))
}
