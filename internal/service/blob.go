package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/webcms/cms-api/internal/domain"
)

type BlobStore interface {
	Save(ctx context.Context, namespace string, upload domain.Upload) (string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) string
}

const (
	NamespaceEvents           = "events"
	NamespaceActualities      = "actualities"
	NamespaceAuthors          = "authors"
	NamespacePublications     = "publications"
	NamespacePublicationPDFs  = "publications/pdf"
	NamespaceRequestDocuments = "publication_requests/documents"
	NamespaceRequestImages    = "publication_requests/images"
	NamespaceGallery          = "gallery"
	NamespaceThumbnails       = "gallery/thumbnails"
)

// storeUpload saves upload when present and returns its path, or current
// when nothing was uploaded.
func storeUpload(ctx context.Context, blobs BlobStore, namespace string, upload *domain.Upload, current *string) (*string, error) {
	if upload == nil {
		return current, nil
	}

	path, err := blobs.Save(ctx, namespace, *upload)
	if err != nil {
		return nil, fmt.Errorf("blobs.Save -> %w", err)
	}

	return &path, nil
}

// removeBlobs deletes stored files that are no longer referenced. Failures
// are logged; the database row is the source of truth.
func removeBlobs(ctx context.Context, blobs BlobStore, paths ...*string) {
	for _, p := range paths {
		if p == nil || *p == "" {
			continue
		}

		if err := blobs.Delete(ctx, *p); err != nil {
			zap.L().Warn("failed to delete blob", zap.String("path", *p), zap.Error(err))
		}
	}
}

// replaced returns old when it differs from current, i.e. when a new upload
// took its place.
func replaced(old, current *string) *string {
	if old == nil || (current != nil && *old == *current) {
		return nil
	}

	return old
}
