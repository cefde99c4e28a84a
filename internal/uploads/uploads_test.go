package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader carrying `size` bytes.
func fileHeader(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(size) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestUploadStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveImageNaming(t *testing.T) {
	s := newTestUploadStore(t)

	name, err := s.SaveImage(fileHeader(t, "photo.JPG", 64), "main")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "main_"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "photo")
	assert.True(t, s.Exists(name))

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	require.NoError(t, err)
	assert.Len(t, data, 64)
}

func TestSaveImageRejectsDisallowedType(t *testing.T) {
	s := newTestUploadStore(t)

	for _, filename := range []string{"payload.exe", "page.php", "noext", "clip.mp4"} {
		_, err := s.SaveImage(fileHeader(t, filename, 16), "main")
		assert.ErrorIs(t, err, ErrDisallowedType, filename)
	}
}

func TestSaveImageRejectsOversize(t *testing.T) {
	s := newTestUploadStore(t)

	_, err := s.SaveImage(fileHeader(t, "big.png", MaxImageBytes+1), "main")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveVideo(t *testing.T) {
	s := newTestUploadStore(t)

	name, err := s.SaveVideo(fileHeader(t, "demo.MP4", 128), "video")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "video_"))
	assert.True(t, strings.HasSuffix(name, ".mp4"))

	_, err = s.SaveVideo(fileHeader(t, "photo.jpg", 128), "video")
	assert.ErrorIs(t, err, ErrDisallowedType)
}

func TestRemoveIdempotent(t *testing.T) {
	s := newTestUploadStore(t)

	name, err := s.SaveImage(fileHeader(t, "photo.png", 32), "sub")
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	assert.False(t, s.Exists(name))
	require.NoError(t, s.Remove(name))
	require.NoError(t, s.Remove(""))
}

func TestRemoveStripsLegacyPath(t *testing.T) {
	s := newTestUploadStore(t)

	name, err := s.SaveImage(fileHeader(t, "photo.gif", 32), "main")
	require.NoError(t, err)

	// Rows written by the old panel stored "images/<name>".
	require.NoError(t, s.Remove("images/"+name))
	assert.False(t, s.Exists(name))
}

func TestRemoveAll(t *testing.T) {
	s := newTestUploadStore(t)

	a, err := s.SaveImage(fileHeader(t, "a.jpg", 16), "sub")
	require.NoError(t, err)
	b, err := s.SaveImage(fileHeader(t, "b.jpg", 16), "sub")
	require.NoError(t, err)

	s.RemoveAll([]string{a, b, "missing.jpg", ""})
	assert.False(t, s.Exists(a))
	assert.False(t, s.Exists(b))
}
