package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var ErrGalleryPhotoNotFound = dao.ErrGalleryPhotoNotFound

type GalleryDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.GalleryPhoto, error)
	Insert(ctx context.Context, p dao.GalleryPhoto) (dao.GalleryPhoto, error)
	Update(ctx context.Context, p dao.GalleryPhoto, omit ...string) (dao.GalleryPhoto, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.GalleryPhoto, int64, error)
	Categories(ctx context.Context) ([]dao.CategoryCount, error)
}

type GalleryRepository struct {
	dao GalleryDAO
}

func NewGalleryRepository(dao GalleryDAO) *GalleryRepository {
	return &GalleryRepository{
		dao: dao,
	}
}

func (r *GalleryRepository) FindByID(ctx context.Context, id uint) (domain.GalleryPhoto, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return galleryDaoToDomain(found), nil
}

func (r *GalleryRepository) Create(ctx context.Context, p domain.GalleryPhoto) (domain.GalleryPhoto, error) {
	created, err := r.dao.Insert(ctx, galleryDomainToDao(p))
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return galleryDaoToDomain(created), nil
}

func (r *GalleryRepository) Update(ctx context.Context, p domain.GalleryPhoto) (domain.GalleryPhoto, error) {
	updated, err := r.dao.Update(ctx, galleryDomainToDao(p))
	if err != nil {
		return domain.GalleryPhoto{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return galleryDaoToDomain(updated), nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GalleryRepository) List(ctx context.Context, filter domain.GalleryFilter, page domain.PageRequest) ([]domain.GalleryPhoto, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("category", filter.Category),
		dao.EqPtr("featured", filter.Featured),
		dao.OrderBy("sort_order ASC", "date DESC NULLS LAST", "created_at DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	out := make([]domain.GalleryPhoto, len(rows))
	for i, row := range rows {
		out[i] = galleryDaoToDomain(row)
	}

	return out, total, nil
}

func (r *GalleryRepository) Categories(ctx context.Context) ([]domain.GalleryCategory, error) {
	counts, err := r.dao.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Categories -> %w", err)
	}

	out := make([]domain.GalleryCategory, len(counts))
	for i, c := range counts {
		out[i] = domain.GalleryCategory{ID: c.Name, Name: c.Name, Count: c.Count}
	}

	return out, nil
}

func galleryDomainToDao(p domain.GalleryPhoto) dao.GalleryPhoto {
	return dao.GalleryPhoto{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Thumbnail:   p.Thumbnail,
		Category:    p.Category,
		Date:        p.Date,
		Author:      p.Author,
		Tags:        p.Tags,
		Featured:    p.Featured,
		Order:       p.Order,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func galleryDaoToDomain(p dao.GalleryPhoto) domain.GalleryPhoto {
	return domain.GalleryPhoto{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Thumbnail:   p.Thumbnail,
		Category:    p.Category,
		Date:        p.Date,
		Author:      p.Author,
		Tags:        nonNil(p.Tags),
		Featured:    p.Featured,
		Order:       p.Order,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
