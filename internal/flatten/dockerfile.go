package flatten

import (
	"encoding/json"
	"strings"

	"github.com/docksmith/stevedore/internal/engine"
)

// Dockerfile synthesizes the reconstruction definition: a minimal
// Dockerfile that, built on top of the flattened base, restores the
// runtime configuration captured from the source image. Directives
// are emitted in a fixed order and only when the corresponding field
// is present, so an unset entrypoint never produces an empty
// `ENTRYPOINT []` line.
func Dockerfile(base string, cfg *engine.ImageConfig) string {
	var b strings.Builder

	b.WriteString("FROM " + base + "\n")

	for _, entry := range cfg.Env {
		key, value, _ := strings.Cut(entry, "=")
		if value == "" {
			b.WriteString("ENV " + key + "=\n")
			continue
		}
		escaped := strings.ReplaceAll(value, `"`, `\"`)
		b.WriteString("ENV " + key + `="` + escaped + `"` + "\n")
	}

	if cfg.WorkingDir != "" {
		b.WriteString("WORKDIR " + cfg.WorkingDir + "\n")
	}

	if cfg.User != "" {
		b.WriteString("USER " + cfg.User + "\n")
	}

	if len(cfg.Entrypoint) > 0 {
		b.WriteString("ENTRYPOINT " + execForm(cfg.Entrypoint) + "\n")
	}

	if len(cfg.Cmd) > 0 {
		b.WriteString("CMD " + execForm(cfg.Cmd) + "\n")
	}

	for _, port := range cfg.ExposedPorts {
		b.WriteString("EXPOSE " + port + "\n")
	}

	for _, volume := range cfg.Volumes {
		b.WriteString("VOLUME " + volume + "\n")
	}

	return b.String()
}

// execForm renders an argument vector as a JSON array, which is the
// Dockerfile exec form. Argument order is preserved.
func execForm(args []string) string {
	data, err := json.Marshal(args)
	if err != nil {
		// []string cannot fail to marshal
		panic(err)
	}
	return string(data)
}
