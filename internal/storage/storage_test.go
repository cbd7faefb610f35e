package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcms/cms-api/internal/config"
	"github.com/webcms/cms-api/internal/domain"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()

	fs, err := NewFileStorage(&config.StorageConfig{
		BasePath:  filepath.Join(t.TempDir(), "storage"),
		PublicURL: "http://localhost:8080/storage/",
	})
	require.NoError(t, err)

	return fs
}

func pngUpload(t *testing.T, name string, w, h int) domain.Upload {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return domain.Upload{Filename: name, Size: int64(buf.Len()), Content: &buf}
}

func TestFileStorage_SaveAndDelete(t *testing.T) {
	fs := newTestStorage(t)
	ctx := context.Background()

	rel, err := fs.Save(ctx, "publications/pdf", domain.Upload{
		Filename: "Paper.PDF",
		Content:  strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "publications/pdf/"))
	assert.True(t, strings.HasSuffix(rel, ".pdf"))
	assert.True(t, fs.Exists(rel))
	assert.Equal(t, "http://localhost:8080/storage/"+rel, fs.URL(rel))

	full, err := fs.Path(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, fs.Delete(ctx, rel))
	assert.False(t, fs.Exists(rel))

	// Deleting twice is fine.
	require.NoError(t, fs.Delete(ctx, rel))
}

func TestFileStorage_UniqueNames(t *testing.T) {
	fs := newTestStorage(t)

	a, err := fs.Save(context.Background(), "events", domain.Upload{Filename: "x.jpg", Content: strings.NewReader("a")})
	require.NoError(t, err)
	b, err := fs.Save(context.Background(), "events", domain.Upload{Filename: "x.jpg", Content: strings.NewReader("b")})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFileStorage_RejectsTraversal(t *testing.T) {
	fs := newTestStorage(t)

	for _, rel := range []string{"../etc/passwd", "events/../../x", ""} {
		_, err := fs.Path(rel)
		assert.ErrorIs(t, err, ErrInvalidPath, rel)
	}

	assert.ErrorIs(t, fs.Delete(context.Background(), "../secret"), ErrInvalidPath)
}

func TestFileStorage_CancelledContext(t *testing.T) {
	fs := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Save(ctx, "events", domain.Upload{Filename: "x.jpg", Content: strings.NewReader("a")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThumbnailer_Make(t *testing.T) {
	fs := newTestStorage(t)
	thumbs := NewThumbnailer(fs, 40, 30)
	ctx := context.Background()

	src, err := fs.Save(ctx, "gallery", pngUpload(t, "photo.png", 200, 100))
	require.NoError(t, err)

	rel, err := thumbs.Make(ctx, src, "gallery/thumbnails")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "gallery/thumbnails/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	full, err := fs.Path(rel)
	require.NoError(t, err)
	img, err := imaging.Open(full)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestThumbnailer_NotAnImage(t *testing.T) {
	fs := newTestStorage(t)
	thumbs := NewThumbnailer(fs, 40, 30)

	src, err := fs.Save(context.Background(), "gallery", domain.Upload{Filename: "notes.png", Content: strings.NewReader("plain text")})
	require.NoError(t, err)

	_, err = thumbs.Make(context.Background(), src, "gallery/thumbnails")
	assert.Error(t, err)
}
