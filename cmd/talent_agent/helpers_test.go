package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContent_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Senior backend engineer\n"), 0o644))

	content, err := loadContent(context.Background(), path, "", false)
	require.NoError(t, err)
	assert.Equal(t, "Senior backend engineer", content)
}

func TestLoadContent_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))

	_, err := loadContent(context.Background(), path, "", false)
	assert.ErrorContains(t, err, "is empty")
}

func TestLoadContent_NoSource(t *testing.T) {
	_, err := loadContent(context.Background(), "", "", false)
	assert.ErrorContains(t, err, "either --text-file or --url")
}

func TestLoadContent_BothSources(t *testing.T) {
	_, err := loadContent(context.Background(), "job.txt", "https://example.com", false)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestLoadContent_MissingFile(t *testing.T) {
	_, err := loadContent(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "", false)
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"serve", "process", "search-string", "source", "enrich", "match", "interview-questions", "scrape"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
