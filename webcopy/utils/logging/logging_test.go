package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIDRoundTrip(t *testing.T) {
	assert.Equal(t, "", RunID(context.Background()))
	ctx := WithRunID(context.Background(), "run-1234abcd")
	assert.Equal(t, "run-1234abcd", RunID(ctx))
}

func TestInitLoggerWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLogger(dir))

	AppLogger.Info("hello")
	ErrorLogger.Error("broken")
	LogDuration(WithRunID(context.Background(), "run-x"), "unit")()
	Sync()

	for _, name := range []string{"app.log", "error.log", "timer.log"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
	timer, err := os.ReadFile(filepath.Join(dir, "timer.log"))
	require.NoError(t, err)
	assert.Contains(t, string(timer), `"run_id":"run-x"`)
}
