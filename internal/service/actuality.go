package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrActualityNotFound = repository.ErrActualityNotFound

type ActualityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Actuality, error)
	Create(ctx context.Context, a domain.Actuality) (domain.Actuality, error)
	Update(ctx context.Context, a domain.Actuality) (domain.Actuality, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.ActualityFilter, page domain.PageRequest) ([]domain.Actuality, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type ActualityImages struct {
	Image       *domain.Upload
	AuthorPhoto *domain.Upload
}

type ActualityService struct {
	repo  ActualityRepository
	blobs BlobStore
}

func NewActualityService(repo ActualityRepository, blobs BlobStore) *ActualityService {
	return &ActualityService{
		repo:  repo,
		blobs: blobs,
	}
}

func (s *ActualityService) List(ctx context.Context, filter domain.ActualityFilter, page domain.PageRequest) ([]domain.Actuality, domain.Pagination, error) {
	page = page.Normalize(false)

	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return items, domain.NewPagination(page, total), nil
}

// Get returns the actuality and counts the read.
func (s *ActualityService) Get(ctx context.Context, id uint) (domain.Actuality, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return domain.Actuality{}, fmt.Errorf("s.repo.IncrementViews -> %w", err)
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Actuality{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return a, nil
}

func (s *ActualityService) Create(ctx context.Context, a domain.Actuality, images ActualityImages) (domain.Actuality, error) {
	if err := s.checkRelated(ctx, 0, a.RelatedArticles); err != nil {
		return domain.Actuality{}, err
	}
	if a.Status == "" {
		a.Status = domain.ContentDraft
	}
	a.Views = 0

	var err error
	if a.Image, err = storeUpload(ctx, s.blobs, NamespaceActualities, images.Image, nil); err != nil {
		return domain.Actuality{}, err
	}
	if a.AuthorPhoto, err = storeUpload(ctx, s.blobs, NamespaceAuthors, images.AuthorPhoto, nil); err != nil {
		removeBlobs(ctx, s.blobs, a.Image)
		return domain.Actuality{}, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		removeBlobs(ctx, s.blobs, a.Image, a.AuthorPhoto)
		return domain.Actuality{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ActualityService) Update(ctx context.Context, id uint, apply func(*domain.Actuality) error, images ActualityImages) (domain.Actuality, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Actuality{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	oldImage, oldPhoto := a.Image, a.AuthorPhoto

	if err = apply(&a); err != nil {
		return domain.Actuality{}, fmt.Errorf("apply -> %w", err)
	}
	if err = s.checkRelated(ctx, id, a.RelatedArticles); err != nil {
		return domain.Actuality{}, err
	}

	if a.Image, err = storeUpload(ctx, s.blobs, NamespaceActualities, images.Image, oldImage); err != nil {
		return domain.Actuality{}, err
	}
	if a.AuthorPhoto, err = storeUpload(ctx, s.blobs, NamespaceAuthors, images.AuthorPhoto, oldPhoto); err != nil {
		removeBlobs(ctx, s.blobs, replaced(a.Image, oldImage))
		return domain.Actuality{}, err
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		removeBlobs(ctx, s.blobs, replaced(a.Image, oldImage), replaced(a.AuthorPhoto, oldPhoto))
		return domain.Actuality{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	removeBlobs(ctx, s.blobs, replaced(oldImage, updated.Image), replaced(oldPhoto, updated.AuthorPhoto))

	return updated, nil
}

func (s *ActualityService) Delete(ctx context.Context, id uint) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	removeBlobs(ctx, s.blobs, a.Image, a.AuthorPhoto)

	return nil
}

// checkRelated rejects related articles that do not exist or point back at self.
func (s *ActualityService) checkRelated(ctx context.Context, self uint, ids []uint) error {
	for _, id := range ids {
		if self != 0 && id == self {
			return fieldError("related_articles", "an article cannot be related to itself")
		}
	}

	missing, err := s.repo.MissingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("s.repo.MissingIDs -> %w", err)
	}
	if len(missing) > 0 {
		strs := make([]string, len(missing))
		for i, id := range missing {
			strs[i] = fmt.Sprint(id)
		}

		return fieldError("related_articles", "unknown articles: "+strings.Join(strs, ", "))
	}

	return nil
}
