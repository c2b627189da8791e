package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webcopy/webcopy/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDescriptors(t *testing.T) {
	assert.Len(t, modelDescriptors(nil), 3)

	got := modelDescriptors([]config.ModelConfig{
		{ID: "a", Description: "first", RateLimit: &config.RateLimitConfig{Calls: 5, WindowSeconds: 30}, DailyLimit: 7},
		{ID: "b"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	require.NotNil(t, got[0].RateLimit)
	assert.Equal(t, 30*time.Second, got[0].RateLimit.Window)
	assert.Equal(t, 7, got[0].DailyLimit)
	assert.Nil(t, got[1].RateLimit)
}

func TestRun_GeneratesFilesAgainstFakeService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"generated"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	root := t.TempDir()
	cfg := config.Config{
		GoogleAPIKey:  "test-key",
		GeminiBaseURL: srv.URL,
		OutputRoot:    root,
		MaxIterations: 150,
		Models:        []config.ModelConfig{{ID: "gemini-test", Description: "test"}},
	}
	out := &bytes.Buffer{}

	err := run(context.Background(), cfg, strings.NewReader("1\nHome, About\n"), out)

	require.NoError(t, err)
	dirs, err := filepath.Glob(filepath.Join(root, "web_copy_*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	for _, name := range []string{"Home.txt", "About.txt"} {
		data, err := os.ReadFile(filepath.Join(dirs[0], name))
		require.NoError(t, err)
		assert.Equal(t, "generated", string(data))
	}
	assert.Contains(t, out.String(), "Generating copy for page 'About' (2 of 2)...")
}

func TestRun_NoInput(t *testing.T) {
	cfg := config.Config{GoogleAPIKey: "k", OutputRoot: t.TempDir()}

	err := run(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})

	assert.Error(t, err)
}
