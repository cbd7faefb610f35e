package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound  = dao.ErrRegistrationNotFound
	ErrDuplicateRegistration = dao.ErrRegistrationDuplicate
	ErrTxConflict            = dao.ErrTxConflict
)

// RegistrationTx is the unit of work handed to the registration workflow.
// Every call runs inside the same database transaction.
type RegistrationTx interface {
	// LockEvent returns the event and holds its row lock until commit.
	LockEvent(eventID uint) (domain.Event, error)
	// LockRegistration locks the owning event, then the registration.
	LockRegistration(id uint) (domain.Registration, error)
	CountActive(eventID uint) (int64, error)
	HasActiveWithEmail(eventID uint, email string, excludeID uint) (bool, error)
	Create(reg domain.Registration) (domain.Registration, error)
	UpdateStatus(id uint, status domain.RegistrationStatus) (domain.Registration, error)
	Delete(id uint) error
	AdjustAttendees(eventID uint, delta int) error
}

type RegistrationDAO interface {
	Transaction(ctx context.Context, fn func(tx *dao.RegistrationTx) error) error
	ListByEvent(ctx context.Context, eventID uint) ([]dao.EventRegistration, error)
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.EventRegistration, int64, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) WithinTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	return r.dao.Transaction(ctx, func(tx *dao.RegistrationTx) error {
		return fn(&registrationTx{tx: tx})
	})
}

func (r *RegistrationRepository) ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	rows, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	regs := make([]domain.Registration, len(rows))
	for i, row := range rows {
		regs[i] = registrationDaoToDomain(row)
	}

	return regs, nil
}

func (r *RegistrationRepository) List(ctx context.Context, filter domain.RegistrationFilter, page domain.PageRequest) ([]domain.Registration, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.EqPtr("event_id", filter.EventID),
		dao.Eq("status", string(filter.Status)),
		dao.Preload("Event"),
		dao.OrderBy("created_at DESC", "id DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	regs := make([]domain.Registration, len(rows))
	for i, row := range rows {
		regs[i] = registrationDaoToDomain(row)
	}

	return regs, total, nil
}

type registrationTx struct {
	tx *dao.RegistrationTx
}

func (t *registrationTx) LockEvent(eventID uint) (domain.Event, error) {
	event, err := t.tx.LockEvent(eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("t.tx.LockEvent -> %w", err)
	}

	return eventDaoToDomain(event), nil
}

func (t *registrationTx) LockRegistration(id uint) (domain.Registration, error) {
	reg, err := t.tx.LockRegistration(id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("t.tx.LockRegistration -> %w", err)
	}

	return registrationDaoToDomain(reg), nil
}

func (t *registrationTx) CountActive(eventID uint) (int64, error) {
	count, err := t.tx.CountActive(eventID)
	if err != nil {
		return 0, fmt.Errorf("t.tx.CountActive -> %w", err)
	}

	return count, nil
}

func (t *registrationTx) HasActiveWithEmail(eventID uint, email string, excludeID uint) (bool, error) {
	found, err := t.tx.HasActiveWithEmail(eventID, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("t.tx.HasActiveWithEmail -> %w", err)
	}

	return found, nil
}

func (t *registrationTx) Create(reg domain.Registration) (domain.Registration, error) {
	created, err := t.tx.Insert(registrationDomainToDao(reg))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("t.tx.Insert -> %w", err)
	}

	return registrationDaoToDomain(created), nil
}

func (t *registrationTx) UpdateStatus(id uint, status domain.RegistrationStatus) (domain.Registration, error) {
	updated, err := t.tx.SetStatus(id, string(status))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("t.tx.SetStatus -> %w", err)
	}

	return registrationDaoToDomain(updated), nil
}

func (t *registrationTx) Delete(id uint) error {
	if err := t.tx.Delete(id); err != nil {
		return fmt.Errorf("t.tx.Delete -> %w", err)
	}

	return nil
}

func (t *registrationTx) AdjustAttendees(eventID uint, delta int) error {
	if err := t.tx.AdjustAttendees(eventID, delta); err != nil {
		return fmt.Errorf("t.tx.AdjustAttendees -> %w", err)
	}

	return nil
}

func registrationDomainToDao(r domain.Registration) dao.EventRegistration {
	return dao.EventRegistration{
		ID:           r.ID,
		EventID:      r.EventID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		Organization: r.Organization,
		Position:     r.Position,
		Notes:        r.Notes,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func registrationDaoToDomain(r dao.EventRegistration) domain.Registration {
	reg := domain.Registration{
		ID:      r.ID,
		EventID: r.EventID,
		Registrant: domain.Registrant{
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Email:        r.Email,
			Phone:        r.Phone,
			Organization: r.Organization,
			Position:     r.Position,
			Notes:        r.Notes,
		},
		Status:    domain.RegistrationStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.Event != nil {
		event := eventDaoToDomain(*r.Event)
		reg.Event = &event
	}

	return reg
}
