package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Thumbnailer writes reduced copies of stored images next to the originals.
type Thumbnailer struct {
	files  *FileStorage
	width  int
	height int
}

func NewThumbnailer(files *FileStorage, width, height int) *Thumbnailer {
	return &Thumbnailer{
		files:  files,
		width:  width,
		height: height,
	}
}

// Make crops and scales srcPath to fill the configured box and stores the
// result under namespace. Formats imaging cannot encode are written as JPEG.
func (t *Thumbnailer) Make(ctx context.Context, srcPath, namespace string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := t.files.Path(srcPath)
	if err != nil {
		return "", err
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("imaging.Open -> %w", err)
	}

	ext := strings.ToLower(filepath.Ext(srcPath))
	if _, err = imaging.FormatFromExtension(ext); err != nil {
		ext = ".jpg"
	}

	rel := path.Join(namespace, uuid.NewString()+ext)
	dst, err := t.files.Path(rel)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	thumb := imaging.Thumbnail(img, t.width, t.height, imaging.Lanczos)
	if err = imaging.Save(thumb, dst); err != nil {
		return "", fmt.Errorf("imaging.Save -> %w", err)
	}

	return rel, nil
}
