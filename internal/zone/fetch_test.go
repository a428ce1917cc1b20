package zone

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFetcherFetch(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"tl_2020_13_county20.shp": "shape bytes",
		"tl_2020_13_county20.dbf": "attr bytes",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(srv.Client(), 100)
	paths, err := f.Fetch(context.Background(), []string{srv.URL + "/county.zip"}, dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	data, err := os.ReadFile(filepath.Join(dir, "tl_2020_13_county20.shp"))
	require.NoError(t, err)
	assert.Equal(t, "shape bytes", string(data))
}

func TestFetcherFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), 100)
	_, err := f.Fetch(context.Background(), []string{srv.URL + "/missing.zip"}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcherFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(http.DefaultClient, 100)
	_, err := f.Fetch(ctx, []string{"http://localhost/never.zip"}, t.TempDir())
	assert.Error(t, err)
}

func TestExtractZIPFlattensPaths(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "nested.zip")
	require.NoError(t, os.WriteFile(archivePath, zipArchive(t, map[string]string{
		"deep/nested/layer.shp": "content",
	}), 0644))

	paths, err := extractZIP(archivePath, dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "layer.shp"), paths[0])
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(nil, 0)
	require.NotNil(t, f)
	assert.NotNil(t, f.client)
	assert.NotNil(t, f.limiter)
}
