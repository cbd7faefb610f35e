package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/webcms/cms-api/internal/config"
	"github.com/webcms/cms-api/internal/domain"
)

var ErrInvalidPath = errors.New("invalid blob path")

// FileStorage keeps uploaded files on local disk under basePath. Paths handed
// out are relative, slash-separated and start with the namespace.
type FileStorage struct {
	basePath  string
	publicURL string
}

func NewFileStorage(conf *config.StorageConfig) (*FileStorage, error) {
	if err := os.MkdirAll(conf.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &FileStorage{
		basePath:  conf.BasePath,
		publicURL: strings.TrimRight(conf.PublicURL, "/"),
	}, nil
}

// Save writes the upload under namespace with a random name that keeps the
// original extension.
func (s *FileStorage) Save(ctx context.Context, namespace string, upload domain.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := path.Join(namespace, uuid.NewString()+strings.ToLower(filepath.Ext(upload.Filename)))
	full, err := s.Path(rel)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}

	if _, err = io.Copy(f, upload.Content); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("io.Copy -> %w", err)
	}
	if err = f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("f.Close -> %w", err)
	}

	return rel, nil
}

// Delete removes the file. Missing files are not an error.
func (s *FileStorage) Delete(_ context.Context, rel string) error {
	full, err := s.Path(rel)
	if err != nil {
		return err
	}

	if err = os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func (s *FileStorage) Exists(rel string) bool {
	full, err := s.Path(rel)
	if err != nil {
		return false
	}

	_, err = os.Stat(full)

	return err == nil
}

func (s *FileStorage) URL(rel string) string {
	return s.publicURL + "/" + strings.TrimLeft(rel, "/")
}

// Path resolves rel to a file path inside basePath.
func (s *FileStorage) Path(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if clean == "/" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}

	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}

func (s *FileStorage) Root() string {
	return s.basePath
}
