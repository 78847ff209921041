package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/daemon"
)

// ImageResolver fetches an image from the local daemon.
type ImageResolver func(ctx context.Context, ref name.Reference) (v1.Image, error)

func daemonResolver(ctx context.Context, ref name.Reference) (v1.Image, error) {
	return daemon.Image(ref, daemon.WithContext(ctx))
}

var imageResolver ImageResolver = daemonResolver

// SetImageResolver replaces the daemon-backed resolver. Intended for
// tests. Passing nil restores the default.
func SetImageResolver(resolver ImageResolver) {
	if resolver == nil {
		imageResolver = daemonResolver
		return
	}
	imageResolver = resolver
}

// InspectImage retrieves the runtime configuration of a local image
// through the engine's API socket rather than by parsing CLI output.
func InspectImage(ctx context.Context, imageRef string) (*ImageConfig, error) {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return nil, fmt.Errorf("invalid image reference %q: %w", imageRef, err)
	}

	img, err := imageResolver(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", imageRef, err)
	}

	cfgFile, err := img.ConfigFile()
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", imageRef, err)
	}
	if cfgFile == nil {
		return nil, fmt.Errorf("inspect %s: %w", imageRef, ErrNoConfig)
	}

	return configFromFile(cfgFile), nil
}

func configFromFile(cfgFile *v1.ConfigFile) *ImageConfig {
	cfg := cfgFile.Config

	return &ImageConfig{
		Env:          append([]string(nil), cfg.Env...),
		WorkingDir:   cfg.WorkingDir,
		User:         cfg.User,
		Entrypoint:   append([]string(nil), cfg.Entrypoint...),
		Cmd:          append([]string(nil), cfg.Cmd...),
		ExposedPorts: sortedSet(cfg.ExposedPorts),
		Volumes:      sortedSet(cfg.Volumes),
	}
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
