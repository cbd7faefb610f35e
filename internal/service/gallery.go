package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrGalleryPhotoNotFound = repository.ErrGalleryPhotoNotFound

// UnlimitedPerPage is the page size from which the gallery returns every
// photo on a single page.
const UnlimitedPerPage = 1000

const galleryCategoriesKey = "gallery:categories"

type GalleryRepository interface {
	FindByID(ctx context.Context, id uint) (domain.GalleryPhoto, error)
	Create(ctx context.Context, p domain.GalleryPhoto) (domain.GalleryPhoto, error)
	Update(ctx context.Context, p domain.GalleryPhoto) (domain.GalleryPhoto, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.GalleryFilter, page domain.PageRequest) ([]domain.GalleryPhoto, int64, error)
	Categories(ctx context.Context) ([]domain.GalleryCategory, error)
}

// Thumbnailer renders a reduced copy of a stored image and returns its path.
type Thumbnailer interface {
	Make(ctx context.Context, srcPath, namespace string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type GalleryService struct {
	repo   GalleryRepository
	blobs  BlobStore
	thumbs Thumbnailer
	cache  Cache
}

func NewGalleryService(repo GalleryRepository, blobs BlobStore, thumbs Thumbnailer, cache Cache) *GalleryService {
	return &GalleryService{
		repo:   repo,
		blobs:  blobs,
		thumbs: thumbs,
		cache:  cache,
	}
}

func (s *GalleryService) List(ctx context.Context, filter domain.GalleryFilter, page domain.PageRequest) ([]domain.GalleryPhoto, domain.Pagination, error) {
	unlimited := page.PerPage >= UnlimitedPerPage
	if unlimited {
		// A negative limit drops the LIMIT clause.
		page = domain.PageRequest{Page: 1, PerPage: -1}
	} else {
		page = page.Normalize(false)
	}

	photos, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}
	for i := range photos {
		s.withURLs(&photos[i])
	}

	if unlimited {
		return photos, domain.Pagination{Page: 1, Limit: len(photos), Total: total, TotalPages: 1}, nil
	}

	return photos, domain.NewPagination(page, total), nil
}

// Categories returns the distinct non-empty categories with their photo
// counts. Results are cached until the next gallery write.
func (s *GalleryService) Categories(ctx context.Context) ([]domain.GalleryCategory, error) {
	var cached []domain.GalleryCategory
	hit, err := s.cache.Get(ctx, galleryCategoriesKey, &cached)
	if err != nil {
		zap.L().Warn("gallery category cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Categories -> %w", err)
	}

	if err = s.cache.Set(ctx, galleryCategoriesKey, categories); err != nil {
		zap.L().Warn("gallery category cache write failed", zap.Error(err))
	}

	return categories, nil
}

func (s *GalleryService) Get(ctx context.Context, id uint) (domain.GalleryPhoto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	s.withURLs(&p)

	return p, nil
}

func (s *GalleryService) Create(ctx context.Context, p domain.GalleryPhoto, image domain.Upload) (domain.GalleryPhoto, error) {
	path, err := s.blobs.Save(ctx, NamespaceGallery, image)
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("s.blobs.Save -> %w", err)
	}
	p.Image = path
	p.Thumbnail = s.thumbnail(ctx, path)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		removeBlobs(ctx, s.blobs, &p.Image, p.Thumbnail)
		return domain.GalleryPhoto{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	s.invalidate(ctx)
	s.withURLs(&created)

	return created, nil
}

// Update applies changes to the photo. A new image replaces the stored one
// and regenerates the thumbnail.
func (s *GalleryService) Update(ctx context.Context, id uint, apply func(*domain.GalleryPhoto) error, image *domain.Upload) (domain.GalleryPhoto, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	oldImage, oldThumb := p.Image, p.Thumbnail

	if err = apply(&p); err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("apply -> %w", err)
	}

	var fresh []*string
	if image != nil {
		path, err := s.blobs.Save(ctx, NamespaceGallery, *image)
		if err != nil {
			return domain.GalleryPhoto{}, fmt.Errorf("s.blobs.Save -> %w", err)
		}
		p.Image = path
		p.Thumbnail = s.thumbnail(ctx, path)
		fresh = append(fresh, &p.Image, p.Thumbnail)
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		removeBlobs(ctx, s.blobs, fresh...)
		return domain.GalleryPhoto{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	if image != nil {
		removeBlobs(ctx, s.blobs, &oldImage, oldThumb)
	}
	s.invalidate(ctx)
	s.withURLs(&updated)

	return updated, nil
}

func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	removeBlobs(ctx, s.blobs, &p.Image, p.Thumbnail)
	s.invalidate(ctx)

	return nil
}

// thumbnail returns nil when the image could not be reduced; the photo is
// still stored.
func (s *GalleryService) thumbnail(ctx context.Context, path string) *string {
	thumb, err := s.thumbs.Make(ctx, path, NamespaceThumbnails)
	if err != nil {
		zap.L().Warn("failed to generate thumbnail", zap.String("path", path), zap.Error(err))
		return nil
	}

	return &thumb
}

func (s *GalleryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, galleryCategoriesKey); err != nil {
		zap.L().Warn("gallery category cache invalidation failed", zap.Error(err))
	}
}

// withURLs rewrites stored paths into public URLs for the response.
func (s *GalleryService) withURLs(p *domain.GalleryPhoto) {
	if p.Image != "" {
		p.Image = s.blobs.URL(p.Image)
	}
	if p.Thumbnail != nil && *p.Thumbnail != "" {
		url := s.blobs.URL(*p.Thumbnail)
		p.Thumbnail = &url
	}
}
