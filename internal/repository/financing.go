package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var ErrFinancingRequestNotFound = dao.ErrFinancingRequestNotFound

type FinancingDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.FinancingRequest, error)
	Insert(ctx context.Context, f dao.FinancingRequest) (dao.FinancingRequest, error)
	Update(ctx context.Context, f dao.FinancingRequest, omit ...string) (dao.FinancingRequest, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.FinancingRequest, int64, error)
}

type FinancingRepository struct {
	dao FinancingDAO
}

func NewFinancingRepository(dao FinancingDAO) *FinancingRepository {
	return &FinancingRepository{
		dao: dao,
	}
}

func (r *FinancingRepository) FindByID(ctx context.Context, id uint) (domain.FinancingRequest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return financingDaoToDomain(found), nil
}

func (r *FinancingRepository) Create(ctx context.Context, f domain.FinancingRequest) (domain.FinancingRequest, error) {
	created, err := r.dao.Insert(ctx, financingDomainToDao(f))
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return financingDaoToDomain(created), nil
}

func (r *FinancingRepository) Update(ctx context.Context, f domain.FinancingRequest) (domain.FinancingRequest, error) {
	updated, err := r.dao.Update(ctx, financingDomainToDao(f))
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return financingDaoToDomain(updated), nil
}

func (r *FinancingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FinancingRepository) List(ctx context.Context, filter domain.FinancingFilter, page domain.PageRequest) ([]domain.FinancingRequest, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("status", filter.Status),
		dao.Eq("project_type", filter.ProjectType),
		dao.Contains("sector", filter.Sector),
		dao.Search(filter.Search, "company_name", "contact_first_name", "contact_last_name", "contact_email", "project_title"),
		dao.OrderBy("created_at DESC", "id DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	out := make([]domain.FinancingRequest, len(rows))
	for i, row := range rows {
		out[i] = financingDaoToDomain(row)
	}

	return out, total, nil
}

func financingDomainToDao(f domain.FinancingRequest) dao.FinancingRequest {
	return dao.FinancingRequest{
		ID:                 f.ID,
		CompanyName:        f.CompanyName,
		LegalForm:          f.LegalForm,
		RegistrationNumber: f.RegistrationNumber,
		TaxID:              f.TaxID,
		Address:            f.Address,
		City:               f.City,
		Country:            f.Country,
		Phone:              f.Phone,
		Email:              f.Email,
		Website:            f.Website,
		ContactFirstName:   f.ContactFirstName,
		ContactLastName:    f.ContactLastName,
		ContactPosition:    f.ContactPosition,
		ContactPhone:       f.ContactPhone,
		ContactEmail:       f.ContactEmail,
		ProjectTitle:       f.ProjectTitle,
		ProjectDescription: f.ProjectDescription,
		ProjectType:        f.ProjectType,
		Sector:             f.Sector,
		RequestedAmount:    f.RequestedAmount,
		Currency:           f.Currency,
		ProjectDuration:    f.ProjectDuration,
		ExpectedStartDate:  f.ExpectedStartDate,
		Status:             f.Status,
		ReviewNotes:        f.ReviewNotes,
		ReviewedBy:         f.ReviewedBy,
		ReviewedAt:         f.ReviewedAt,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func financingDaoToDomain(f dao.FinancingRequest) domain.FinancingRequest {
	return domain.FinancingRequest{
		ID:                 f.ID,
		CompanyName:        f.CompanyName,
		LegalForm:          f.LegalForm,
		RegistrationNumber: f.RegistrationNumber,
		TaxID:              f.TaxID,
		Address:            f.Address,
		City:               f.City,
		Country:            f.Country,
		Phone:              f.Phone,
		Email:              f.Email,
		Website:            f.Website,
		ContactFirstName:   f.ContactFirstName,
		ContactLastName:    f.ContactLastName,
		ContactPosition:    f.ContactPosition,
		ContactPhone:       f.ContactPhone,
		ContactEmail:       f.ContactEmail,
		ProjectTitle:       f.ProjectTitle,
		ProjectDescription: f.ProjectDescription,
		ProjectType:        f.ProjectType,
		Sector:             f.Sector,
		RequestedAmount:    f.RequestedAmount,
		Currency:           f.Currency,
		ProjectDuration:    f.ProjectDuration,
		ExpectedStartDate:  f.ExpectedStartDate,
		Status:             f.Status,
		ReviewNotes:        f.ReviewNotes,
		ReviewedBy:         f.ReviewedBy,
		ReviewedAt:         f.ReviewedAt,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}
