package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliaslint/aliaslint/internal/lints"
)

func TestWatchStartStop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	engine, err := NewEngine(dir, nil, lints.DefaultSettings(), nil)
	require.NoError(t, err)

	require.NoError(t, engine.StartWatching([]string{dir}))
	assert.Error(t, engine.StartWatching([]string{dir}), "double start must be rejected")

	// stopping races the watch goroutine's reads of the watching flag
	require.NoError(t, engine.StopWatching())
	assert.NoError(t, engine.StopWatching(), "stop is idempotent")
}
