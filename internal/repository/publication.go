package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var (
	ErrPublicationNotFound        = dao.ErrPublicationNotFound
	ErrPublicationRequestNotFound = dao.ErrPublicationRequestNotFound
)

type PublicationDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.Publication, error)
	Insert(ctx context.Context, p dao.Publication) (dao.Publication, error)
	Update(ctx context.Context, p dao.Publication) (dao.Publication, error)
	Delete(ctx context.Context, id uint) error
	All(ctx context.Context, scopes ...dao.Scope) ([]dao.Publication, error)
	IncrementViews(ctx context.Context, id uint) error
}

type PublicationRepository struct {
	dao PublicationDAO
}

func NewPublicationRepository(dao PublicationDAO) *PublicationRepository {
	return &PublicationRepository{
		dao: dao,
	}
}

func (r *PublicationRepository) FindByID(ctx context.Context, id uint) (domain.Publication, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return publicationDaoToDomain(found), nil
}

func (r *PublicationRepository) Create(ctx context.Context, p domain.Publication) (domain.Publication, error) {
	created, err := r.dao.Insert(ctx, publicationDomainToDao(p))
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return publicationDaoToDomain(created), nil
}

func (r *PublicationRepository) Update(ctx context.Context, p domain.Publication) (domain.Publication, error) {
	updated, err := r.dao.Update(ctx, publicationDomainToDao(p))
	if err != nil {
		return domain.Publication{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return publicationDaoToDomain(updated), nil
}

func (r *PublicationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *PublicationRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.dao.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementViews -> %w", err)
	}

	return nil
}

// All returns every matching publication. The feed merges them with
// publication requests before paginating, so no paging happens here.
func (r *PublicationRepository) All(ctx context.Context, filter domain.PublicationFilter) ([]domain.Publication, error) {
	rows, err := r.dao.All(ctx,
		dao.Eq("status", filter.Status),
		dao.Eq("type", filter.Type),
		dao.EqPtr("featured", filter.Featured),
		dao.OrderBy("publication_date DESC", "created_at DESC"),
	)
	if err != nil {
		return nil, fmt.Errorf("r.dao.All -> %w", err)
	}

	out := make([]domain.Publication, len(rows))
	for i, row := range rows {
		out[i] = publicationDaoToDomain(row)
	}

	return out, nil
}

func publicationDomainToDao(p domain.Publication) dao.Publication {
	authors := make([]dao.PublicationAuthor, len(p.Authors))
	for i, a := range p.Authors {
		authors[i] = dao.PublicationAuthor{Name: a.Name, Affiliation: a.Affiliation, Email: a.Email, ORCID: a.ORCID}
	}

	return dao.Publication{
		ID:              p.ID,
		Title:           p.Title,
		Abstract:        p.Abstract,
		Content:         p.Content,
		Image:           p.Image,
		Type:            p.Type,
		Authors:         authors,
		Journal:         p.Journal,
		Publisher:       p.Publisher,
		PublicationDate: p.PublicationDate,
		DOI:             p.DOI,
		ISBN:            p.ISBN,
		Citations:       p.Citations,
		Downloads:       p.Downloads,
		Views:           p.Views,
		PDFURL:          p.PDFURL,
		PDFPath:         p.PDF,
		Domains:         p.Domains,
		Keywords:        p.Keywords,
		References:      p.References,
		Status:          p.Status,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func publicationDaoToDomain(p dao.Publication) domain.Publication {
	authors := make([]domain.Author, len(p.Authors))
	for i, a := range p.Authors {
		authors[i] = domain.Author{ID: i + 1, Name: a.Name, Affiliation: a.Affiliation, Email: a.Email, ORCID: a.ORCID}
	}

	return domain.Publication{
		ID:              p.ID,
		Title:           p.Title,
		Abstract:        p.Abstract,
		Content:         p.Content,
		Image:           p.Image,
		Type:            p.Type,
		Authors:         authors,
		Journal:         p.Journal,
		Publisher:       p.Publisher,
		PublicationDate: p.PublicationDate,
		DOI:             p.DOI,
		ISBN:            p.ISBN,
		Citations:       p.Citations,
		Downloads:       p.Downloads,
		Views:           p.Views,
		PDFURL:          p.PDFURL,
		PDF:             p.PDFPath,
		Domains:         nonNil(p.Domains),
		Keywords:        nonNil(p.Keywords),
		References:      nonNil(p.References),
		Status:          p.Status,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
