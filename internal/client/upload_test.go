package client

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyBody_CloseBeforeRead(t *testing.T) {
	t.Parallel()

	upload := newMultipartUpload("package", filepath.Join(t.TempDir(), "missing.zip"))

	body, err := upload.Open()
	require.NoError(t, err)

	closer, ok := body.(io.Closer)
	require.True(t, ok)
	require.NoError(t, closer.Close())

	_, err = body.Read(make([]byte, 8))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestLazyBody_MissingFile(t *testing.T) {
	t.Parallel()

	upload := newMultipartUpload("package", filepath.Join(t.TempDir(), "missing.zip"))

	body, err := upload.Open()
	require.NoError(t, err)

	_, err = io.ReadAll(body)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMultipartUpload_FreshBodies(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fn.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0o600))

	upload := newMultipartUpload("package", path)
	assert.Contains(t, upload.ContentType(), "boundary="+upload.boundary)

	first, err := upload.Open()
	require.NoError(t, err)

	second, err := upload.Open()
	require.NoError(t, err)

	firstBytes, err := io.ReadAll(first)
	require.NoError(t, err)

	secondBytes, err := io.ReadAll(second)
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes)
	assert.Contains(t, string(firstBytes), `name="package"; filename="fn.zip"`)
}
