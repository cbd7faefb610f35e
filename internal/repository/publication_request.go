package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

type PublicationRequestDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.PublicationRequest, error)
	Insert(ctx context.Context, p dao.PublicationRequest) (dao.PublicationRequest, error)
	Update(ctx context.Context, p dao.PublicationRequest, omit ...string) (dao.PublicationRequest, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.PublicationRequest, int64, error)
	All(ctx context.Context, scopes ...dao.Scope) ([]dao.PublicationRequest, error)
}

type PublicationRequestRepository struct {
	dao PublicationRequestDAO
}

func NewPublicationRequestRepository(dao PublicationRequestDAO) *PublicationRequestRepository {
	return &PublicationRequestRepository{
		dao: dao,
	}
}

func (r *PublicationRequestRepository) FindByID(ctx context.Context, id uint) (domain.PublicationRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return pubRequestDaoToDomain(found), nil
}

func (r *PublicationRequestRepository) Create(ctx context.Context, p domain.PublicationRequest) (domain.PublicationRequest, error) {
	created, err := r.dao.Insert(ctx, pubRequestDomainToDao(p))
	if err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return pubRequestDaoToDomain(created), nil
}

func (r *PublicationRequestRepository) Update(ctx context.Context, p domain.PublicationRequest) (domain.PublicationRequest, error) {
	updated, err := r.dao.Update(ctx, pubRequestDomainToDao(p))
	if err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return pubRequestDaoToDomain(updated), nil
}

func (r *PublicationRequestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *PublicationRequestRepository) List(ctx context.Context, filter domain.PublicationRequestFilter, page domain.PageRequest) ([]domain.PublicationRequest, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage, pubRequestScopes(filter)...)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	return pubRequestsDaoToDomain(rows), total, nil
}

func (r *PublicationRequestRepository) All(ctx context.Context, filter domain.PublicationRequestFilter) ([]domain.PublicationRequest, error) {
	rows, err := r.dao.All(ctx, pubRequestScopes(filter)...)
	if err != nil {
		return nil, fmt.Errorf("r.dao.All -> %w", err)
	}

	return pubRequestsDaoToDomain(rows), nil
}

func pubRequestScopes(filter domain.PublicationRequestFilter) []dao.Scope {
	return []dao.Scope{
		dao.Eq("status", filter.Status),
		dao.In("status", filter.Statuses),
		dao.Eq("type", filter.Type),
		dao.Search(filter.Search, "name", "email", "title", "authors"),
		dao.OrderBy("created_at DESC", "id DESC"),
	}
}

func pubRequestsDaoToDomain(rows []dao.PublicationRequest) []domain.PublicationRequest {
	out := make([]domain.PublicationRequest, len(rows))
	for i, row := range rows {
		out[i] = pubRequestDaoToDomain(row)
	}

	return out
}

func pubRequestDomainToDao(p domain.PublicationRequest) dao.PublicationRequest {
	return dao.PublicationRequest{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Institution:    p.Institution,
		Position:       p.Position,
		Title:          p.Title,
		Abstract:       p.Abstract,
		Type:           p.Type,
		Domains:        p.Domains,
		Authors:        p.Authors,
		CoAuthors:      p.CoAuthors,
		Keywords:       p.Keywords,
		Message:        p.Message,
		DocumentFile:   p.DocumentFile,
		DocumentImage:  p.DocumentImage,
		Status:         p.Status,
		SubmissionDate: p.SubmissionDate,
		ReviewedAt:     p.ReviewedAt,
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func pubRequestDaoToDomain(p dao.PublicationRequest) domain.PublicationRequest {
	return domain.PublicationRequest{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Institution:    p.Institution,
		Position:       p.Position,
		Title:          p.Title,
		Abstract:       p.Abstract,
		Type:           p.Type,
		Domains:        nonNil(p.Domains),
		Authors:        p.Authors,
		CoAuthors:      p.CoAuthors,
		Keywords:       p.Keywords,
		Message:        p.Message,
		DocumentFile:   p.DocumentFile,
		DocumentImage:  p.DocumentImage,
		Status:         p.Status,
		SubmissionDate: p.SubmissionDate,
		ReviewedAt:     p.ReviewedAt,
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
