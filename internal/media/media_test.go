package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0.0 КБ"},
		{512, "0.5 КБ"},
		{1536, "1.5 КБ"},
		{mebibyte - 1, "1024.0 КБ"},
		{mebibyte, "1.0 МБ"},
		{5 * mebibyte / 2, "2.5 МБ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.n), "FormatSize(%d)", tt.n)
	}
}

func TestPick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", 2048)), 0600))

	att, err := Pick(path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", att.Name)
	assert.Equal(t, int64(2048), att.Size)
	assert.Equal(t, "2.0 КБ", att.SizeText)
	assert.True(t, strings.HasPrefix(att.URL, "file://"))
	assert.True(t, strings.HasPrefix(att.MIMEType, "text/plain"))
}

func TestPickMissingAndDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Pick(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)

	_, err = Pick(dir)
	assert.Error(t, err)
}

func TestBlobsPutAndRevoke(t *testing.T) {
	blobs, err := NewBlobs(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	blob, err := blobs.Put([]byte{0x00, 0x01, 0x02}, "audio/webm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(blob.URL, "blob:mockchat/"))
	assert.Equal(t, "audio/webm", blob.MIMEType)
	assert.Equal(t, ".webm", filepath.Ext(blob.Path))
	assert.FileExists(t, blob.Path)

	got, ok := blobs.Get(blob.URL)
	require.True(t, ok)
	assert.Equal(t, blob, got)

	require.NoError(t, blobs.Revoke(blob.URL))
	assert.NoFileExists(t, blob.Path)
	assert.ErrorIs(t, blobs.Revoke(blob.URL), ErrUnknownBlob)
}

func TestBlobsRevokeAll(t *testing.T) {
	blobs, err := NewBlobs(t.TempDir())
	require.NoError(t, err)

	a, err := blobs.Put([]byte("x"), "video/webm")
	require.NoError(t, err)
	b, err := blobs.Put([]byte("y"), "video/webm")
	require.NoError(t, err)

	require.NoError(t, blobs.RevokeAll())
	assert.NoFileExists(t, a.Path)
	assert.NoFileExists(t, b.Path)
	_, ok := blobs.Get(a.URL)
	assert.False(t, ok)
}
