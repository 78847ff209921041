package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_ReleasesInReverseOrder(t *testing.T) {
	tracker := NewTracker()

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		tracker.Add(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	failures := tracker.Close(context.Background())
	require.Nil(t, failures)
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestTracker_CloseIsIdempotent(t *testing.T) {
	tracker := NewTracker()

	calls := 0
	tracker.Add("resource", func(context.Context) error {
		calls++
		return nil
	})

	tracker.Close(context.Background())
	tracker.Close(context.Background())
	assert.Equal(t, 1, calls)
}

func TestTracker_CollectsFailuresWithoutStopping(t *testing.T) {
	tracker := NewTracker()

	released := false
	tracker.Add("good", func(context.Context) error {
		released = true
		return nil
	})
	tracker.Add("gone", func(context.Context) error {
		return errors.New("no such resource")
	})

	failures := tracker.Close(context.Background())
	require.Len(t, failures, 1)
	assert.Error(t, failures["gone"])
	assert.True(t, released, "later failure must not skip earlier resources")
}

func TestTracker_RemoveKeepsFinalArtifact(t *testing.T) {
	tracker := NewTracker()

	var released []string
	tracker.Add("intermediate", func(context.Context) error {
		released = append(released, "intermediate")
		return nil
	})
	tracker.Add("final", func(context.Context) error {
		released = append(released, "final")
		return nil
	})

	tracker.Remove("final")
	tracker.Close(context.Background())
	assert.Equal(t, []string{"intermediate"}, released)
}
