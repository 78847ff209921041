package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/docksmith/stevedore/internal/config"
	"github.com/docksmith/stevedore/internal/engine"
)

// Result records the outcome of one extension case.
type Result struct {
	Name   string
	Output string
	Err    error
}

// OK reports whether the case passed.
func (r Result) OK() bool {
	return r.Err == nil
}

// AggregateError is returned when one or more extension cases failed.
// It surfaces the failure count as a process-level error so the exit
// code reflects the batch outcome.
type AggregateError struct {
	Failed int
	Total  int
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("%d of %d extension checks failed", e.Failed, e.Total)
}

// Verifier runs extension test cases against a database container.
type Verifier struct {
	Engine *engine.Client
	DB     config.DatabaseConfig
}

// Probe returns a readiness probe for the given container, backed by
// pg_isready inside the container.
func (v *Verifier) Probe(container string) Probe {
	return func(ctx context.Context) error {
		_, err := v.Engine.Exec(ctx, container, nil,
			"pg_isready", "-U", v.DB.User, "-d", v.DB.Name)
		return err
	}
}

// RunCase executes a single case: the create statement and its
// verification query in one psql batch, with ON_ERROR_STOP so any
// statement failure surfaces as a non-zero exit.
func (v *Verifier) RunCase(ctx context.Context, container string, c config.ExtensionCase) Result {
	output, err := v.Engine.Exec(ctx, container,
		map[string]string{"PGPASSWORD": v.DB.Password},
		"psql", "-v", "ON_ERROR_STOP=1",
		"-U", v.DB.User, "-d", v.DB.Name,
		"-c", c.SQL())

	return Result{
		Name:   c.Name,
		Output: strings.TrimSpace(output),
		Err:    err,
	}
}

// RunAll executes every case in order. It never stops early: a failed
// case is recorded and the batch continues through the full list.
func (v *Verifier) RunAll(ctx context.Context, container string, cases []config.ExtensionCase) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		results = append(results, v.RunCase(ctx, container, c))
	}
	return results
}

// FailedCount returns the number of failed results.
func FailedCount(results []Result) int {
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	return failed
}
