package engine

import (
	"context"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubImage(t *testing.T, cfg v1.Config) v1.Image {
	t.Helper()
	img, err := mutate.Config(empty.Image, cfg)
	require.NoError(t, err)
	return img
}

func TestInspectImage_ExtractsConfig(t *testing.T) {
	img := stubImage(t, v1.Config{
		Env:        []string{"PATH=/usr/bin:/bin", "PGDATA=/var/lib/postgresql/data"},
		WorkingDir: "/srv",
		User:       "postgres",
		Entrypoint: []string{"docker-entrypoint.sh"},
		Cmd:        []string{"postgres"},
		ExposedPorts: map[string]struct{}{
			"8080/tcp": {},
			"5432/tcp": {},
		},
		Volumes: map[string]struct{}{
			"/var/lib/postgresql/data": {},
		},
	})

	SetImageResolver(func(ctx context.Context, ref name.Reference) (v1.Image, error) {
		return img, nil
	})
	t.Cleanup(func() { SetImageResolver(nil) })

	cfg, err := InspectImage(context.Background(), "example:latest")
	require.NoError(t, err)

	assert.Equal(t, []string{"PATH=/usr/bin:/bin", "PGDATA=/var/lib/postgresql/data"}, cfg.Env)
	assert.Equal(t, "/srv", cfg.WorkingDir)
	assert.Equal(t, "postgres", cfg.User)
	assert.Equal(t, []string{"docker-entrypoint.sh"}, cfg.Entrypoint)
	assert.Equal(t, []string{"postgres"}, cfg.Cmd)
	// Port and volume sets come back sorted.
	assert.Equal(t, []string{"5432/tcp", "8080/tcp"}, cfg.ExposedPorts)
	assert.Equal(t, []string{"/var/lib/postgresql/data"}, cfg.Volumes)
}

func TestInspectImage_EmptyFieldsStayEmpty(t *testing.T) {
	img := stubImage(t, v1.Config{})

	SetImageResolver(func(ctx context.Context, ref name.Reference) (v1.Image, error) {
		return img, nil
	})
	t.Cleanup(func() { SetImageResolver(nil) })

	cfg, err := InspectImage(context.Background(), "scratchish:latest")
	require.NoError(t, err)

	assert.Empty(t, cfg.Env)
	assert.Empty(t, cfg.WorkingDir)
	assert.Empty(t, cfg.User)
	assert.Empty(t, cfg.Entrypoint)
	assert.Empty(t, cfg.Cmd)
	assert.Nil(t, cfg.ExposedPorts)
	assert.Nil(t, cfg.Volumes)
}

func TestInspectImage_InvalidReference(t *testing.T) {
	_, err := InspectImage(context.Background(), "not a valid ref")
	assert.Error(t, err)
}
