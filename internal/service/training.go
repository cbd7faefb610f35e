package service

import (
	"context"
	"fmt"
	"time"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrTrainingRegistrationNotFound = repository.ErrTrainingRegistrationNotFound

type TrainingRepository interface {
	FindByID(ctx context.Context, id uint) (domain.TrainingRegistration, error)
	Create(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error)
	Update(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.TrainingFilter, page domain.PageRequest) ([]domain.TrainingRegistration, int64, error)
}

type TrainingService struct {
	repo TrainingRepository
	now  func() time.Time
}

func NewTrainingService(repo TrainingRepository) *TrainingService {
	return &TrainingService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TrainingService) List(ctx context.Context, filter domain.TrainingFilter, page domain.PageRequest) ([]domain.TrainingRegistration, domain.Pagination, error) {
	page = page.Normalize(false)

	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return rows, domain.NewPagination(page, total), nil
}

func (s *TrainingService) Get(ctx context.Context, id uint) (domain.TrainingRegistration, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return t, nil
}

func (s *TrainingService) Register(ctx context.Context, t domain.TrainingRegistration) (domain.TrainingRegistration, error) {
	now := s.now()
	t.Status = domain.TrainingPending
	t.RegistrationDate = &now
	t.ConfirmedAt = nil
	t.CancelledAt = nil
	if t.ProgramName == nil || *t.ProgramName == "" {
		if name, ok := domain.TrainingPrograms[t.Program]; ok {
			t.ProgramName = &name
		}
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update applies changes and stamps the time of a move into the confirmed or
// cancelled status.
func (s *TrainingService) Update(ctx context.Context, id uint, apply func(*domain.TrainingRegistration) error) (domain.TrainingRegistration, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	previous := t.Status

	if err = apply(&t); err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("apply -> %w", err)
	}

	if t.Status != previous {
		now := s.now()
		switch t.Status {
		case domain.TrainingConfirmed:
			t.ConfirmedAt = &now
		case domain.TrainingCancelled:
			t.CancelledAt = &now
		}
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return domain.TrainingRegistration{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TrainingService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
