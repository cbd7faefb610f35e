package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var (
	ErrRegistrationNotFound  = repository.ErrRegistrationNotFound
	ErrDuplicateRegistration = repository.ErrDuplicateRegistration
	ErrTxConflict            = repository.ErrTxConflict

	ErrRegistrationNotApplicable = errors.New("event does not accept registrations")
	ErrDeadlineExpired           = errors.New("registration deadline has passed")
	ErrCapacityExceeded          = errors.New("event is full")
)

type RegistrationTx = repository.RegistrationTx

type RegistrationRepository interface {
	WithinTx(ctx context.Context, fn func(tx RegistrationTx) error) error
	ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	List(ctx context.Context, filter domain.RegistrationFilter, page domain.PageRequest) ([]domain.Registration, int64, error)
}

type EventLookup interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// RegistrationService admits registrants to events and keeps each event's
// current_attendees equal to its number of non-cancelled registrations.
type RegistrationService struct {
	repo   RegistrationRepository
	events EventLookup
	now    func() time.Time
}

func NewRegistrationService(repo RegistrationRepository, events EventLookup) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// Register checks, in order: the event exists, it takes registrations, the
// deadline has not passed, a seat is left, the email holds no active
// registration, and the registrant is valid. The seat count is read while
// holding the event row lock, so concurrent calls cannot overbook.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, registrant domain.Registrant) (domain.Registration, error) {
	registrant = trimRegistrant(registrant)

	var created domain.Registration
	err := s.repo.WithinTx(ctx, func(tx RegistrationTx) error {
		event, err := tx.LockEvent(eventID)
		if err != nil {
			return err
		}

		if !event.RegistrationRequired {
			return ErrRegistrationNotApplicable
		}

		if event.RegistrationClosed(s.now()) {
			return ErrDeadlineExpired
		}

		if event.HasCapacityLimit() {
			active, err := tx.CountActive(eventID)
			if err != nil {
				return err
			}
			if active >= int64(*event.MaxAttendees) {
				return ErrCapacityExceeded
			}
		}

		taken, err := tx.HasActiveWithEmail(eventID, registrant.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateRegistration
		}

		if err = registrant.Validate(); err != nil {
			return NewValidationError(err)
		}

		created, err = tx.Create(domain.Registration{
			EventID:    eventID,
			Registrant: registrant,
			Status:     domain.RegistrationPending,
		})
		if err != nil {
			return err
		}

		return tx.AdjustAttendees(eventID, 1)
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.WithinTx -> %w", err)
	}

	zap.L().Info("registration created",
		zap.Uint("event_id", eventID),
		zap.Uint("registration_id", created.ID),
	)

	return created, nil
}

// UpdateStatus moves a registration to status and applies the matching
// counter change. Reinstating a cancelled registration skips the capacity
// and deadline checks; only the one-active-registration-per-email rule holds.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id uint, status domain.RegistrationStatus) (domain.Registration, error) {
	if !status.Valid() {
		return domain.Registration{}, fieldError("status", "must be one of pending, confirmed, cancelled")
	}

	var updated domain.Registration
	err := s.repo.WithinTx(ctx, func(tx RegistrationTx) error {
		current, err := tx.LockRegistration(id)
		if err != nil {
			return err
		}

		delta := domain.AttendeeDelta(current.Status, status)
		if delta > 0 {
			taken, err := tx.HasActiveWithEmail(current.EventID, current.Email, current.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateRegistration
			}
		}

		updated, err = tx.UpdateStatus(id, status)
		if err != nil {
			return err
		}

		return tx.AdjustAttendees(current.EventID, delta)
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.WithinTx -> %w", err)
	}

	return updated, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id uint) error {
	err := s.repo.WithinTx(ctx, func(tx RegistrationTx) error {
		current, err := tx.LockRegistration(id)
		if err != nil {
			return err
		}

		if err = tx.Delete(id); err != nil {
			return err
		}

		if current.Status.Active() {
			return tx.AdjustAttendees(current.EventID, -1)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.repo.WithinTx -> %w", err)
	}

	return nil
}

func (s *RegistrationService) ListForEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	regs, err := s.repo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListForEvent -> %w", err)
	}

	return regs, nil
}

func (s *RegistrationService) List(ctx context.Context, filter domain.RegistrationFilter, page domain.PageRequest) ([]domain.Registration, domain.Pagination, error) {
	page = page.Normalize(false)

	regs, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return regs, domain.NewPagination(page, total), nil
}

func trimRegistrant(r domain.Registrant) domain.Registrant {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Organization = strings.TrimSpace(r.Organization)
	r.Position = strings.TrimSpace(r.Position)
	r.Notes = strings.TrimSpace(r.Notes)

	return r
}
