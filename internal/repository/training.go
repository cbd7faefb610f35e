package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var ErrTrainingRegistrationNotFound = dao.ErrTrainingRegistrationNotFound

type TrainingDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.TrainingRegistration, error)
	Insert(ctx context.Context, t dao.TrainingRegistration) (dao.TrainingRegistration, error)
	Update(ctx context.Context, t dao.TrainingRegistration, omit ...string) (dao.TrainingRegistration, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.TrainingRegistration, int64, error)
}

type TrainingRepository struct {
	dao TrainingDAO
}

func NewTrainingRepository(dao TrainingDAO) *TrainingRepository {
	return &TrainingRepository{
		dao: dao,
	}
}

func (r *TrainingRepository) FindByID(ctx context.Context, id uint) (domain.TrainingRegistration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return trainingDaoToDomain(found), nil
}

func (r *TrainingRepository) Create(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error) {
	created, err := r.dao.Insert(ctx, trainingDomainToDao(t))
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return trainingDaoToDomain(created), nil
}

func (r *TrainingRepository) Update(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error) {
	updated, err := r.dao.Update(ctx, trainingDomainToDao(t))
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return trainingDaoToDomain(updated), nil
}

func (r *TrainingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *TrainingRepository) List(ctx context.Context, filter domain.TrainingFilter, page domain.PageRequest) ([]domain.TrainingRegistration, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("status", filter.Status),
		dao.Eq("program", filter.Program),
		dao.Search(filter.Search, "name", "email", "company"),
		dao.OrderBy("created_at DESC", "id DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	out := make([]domain.TrainingRegistration, len(rows))
	for i, row := range rows {
		out[i] = trainingDaoToDomain(row)
	}

	return out, total, nil
}

func trainingDomainToDao(t domain.TrainingRegistration) dao.TrainingRegistration {
	return dao.TrainingRegistration{
		ID:               t.ID,
		Name:             t.Name,
		Email:            t.Email,
		Phone:            t.Phone,
		Program:          t.Program,
		ProgramName:      t.ProgramName,
		Message:          t.Message,
		Company:          t.Company,
		Position:         t.Position,
		Status:           t.Status,
		RegistrationDate: t.RegistrationDate,
		ConfirmedAt:      t.ConfirmedAt,
		CancelledAt:      t.CancelledAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func trainingDaoToDomain(t dao.TrainingRegistration) domain.TrainingRegistration {
	return domain.TrainingRegistration{
		ID:               t.ID,
		Name:             t.Name,
		Email:            t.Email,
		Phone:            t.Phone,
		Program:          t.Program,
		ProgramName:      t.ProgramName,
		Message:          t.Message,
		Company:          t.Company,
		Position:         t.Position,
		Status:           t.Status,
		RegistrationDate: t.RegistrationDate,
		ConfirmedAt:      t.ConfirmedAt,
		CancelledAt:      t.CancelledAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
