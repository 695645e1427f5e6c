package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadDecodesArbitraryDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: demo\ncount: 3\n"), 0o644))

	l := NewLoader()
	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "demo", doc["name"])
	assert.Equal(t, 3, doc["count"])
}

func TestLoaderLoadReturnsErrorForMissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoaderLoadRespectsCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: demo\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader()
	_, err := l.Load(ctx, path)
	require.Error(t, err)
}
