package archive

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, path string, payload []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestExtractGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "P_2020.01.tif.gz")
	out := filepath.Join(dir, "P_2020.01.tif")
	payload := []byte("monthly precipitation raster bytes")
	writeGzip(t, in, payload)

	var last, total int64
	err := ExtractGzip(context.Background(), in, out, func(done, size int64) {
		last, total = done, size
	})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm()&0600)

	_, err = os.Stat(in)
	assert.True(t, os.IsNotExist(err), "input removed after extraction")
	assert.Equal(t, total, last, "progress reached the input size")
}

func TestExtractGzipMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := ExtractGzip(context.Background(), filepath.Join(dir, "none.gz"), filepath.Join(dir, "none"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractGzipNotGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain.gz")
	require.NoError(t, os.WriteFile(in, []byte("not compressed"), 0644))

	err := ExtractGzip(context.Background(), in, filepath.Join(dir, "plain"), nil)
	require.Error(t, err)

	_, statErr := os.Stat(in)
	assert.NoError(t, statErr, "input kept on failure")
}

func TestExtractGzipTruncatedRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.gz")
	writeGzip(t, full, bytes.Repeat([]byte("evapotranspiration "), 4096))

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	in := filepath.Join(dir, "ET_2020.01.tif.gz")
	require.NoError(t, os.WriteFile(in, data[:len(data)/2], 0644))

	out := filepath.Join(dir, "ET_2020.01.tif")
	err = ExtractGzip(context.Background(), in, out, nil)
	require.Error(t, err)
	assert.NoFileExists(t, out, "partial output removed")
	assert.FileExists(t, in, "input kept on failure")
}

func TestWriteAllCloseFailure(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Error(t, writeAll(f, bytes.NewReader(nil)), "closing an already closed file fails")
}

func TestExtractGzipCanceled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.gz")
	writeGzip(t, in, []byte("data"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExtractGzip(ctx, in, filepath.Join(dir, "a"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(in)
	assert.NoError(t, statErr)
}
