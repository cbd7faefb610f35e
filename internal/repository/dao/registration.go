package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrRegistrationDuplicate = errors.New("active registration already exists for this email")
)

const activeRegistrationIndex = "uni_event_registrations_active_email"

type EventRegistration struct {
	ID           uint      `gorm:"primaryKey"`
	EventID      uint      `gorm:"not null;index"`
	Event        *Event    `gorm:"constraint:OnDelete:CASCADE"`
	FirstName    string    `gorm:"size:255;not null"`
	LastName     string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;index"`
	Phone        string    `gorm:"size:20"`
	Organization string    `gorm:"size:255"`
	Position     string    `gorm:"size:255"`
	Notes        string    `gorm:"type:text"`
	Status       string    `gorm:"size:20;not null;default:pending;index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

type RegistrationDAO struct {
	Table[EventRegistration]
	policy RetryPolicy
}

func NewRegistrationDAO(db *gorm.DB, policy RetryPolicy) *RegistrationDAO {
	return &RegistrationDAO{
		Table:  newTable[EventRegistration](db, ErrRegistrationNotFound),
		policy: policy,
	}
}

// Transaction runs fn as one unit of work, replayed on transient conflicts.
func (d *RegistrationDAO) Transaction(ctx context.Context, fn func(tx *RegistrationTx) error) error {
	return RunInTx(ctx, d.db, d.policy, func(tx *gorm.DB) error {
		return fn(&RegistrationTx{db: tx})
	})
}

func (d *RegistrationDAO) ListByEvent(ctx context.Context, eventID uint) ([]EventRegistration, error) {
	return d.All(ctx, EqPtr("event_id", &eventID), OrderBy("created_at DESC", "id DESC"))
}

// RegistrationTx exposes the statements the registration workflow needs
// inside a single transaction.
type RegistrationTx struct {
	db *gorm.DB
}

// LockEvent reads the event row with FOR UPDATE; concurrent registrations
// for the same event queue behind it until commit.
func (t *RegistrationTx) LockEvent(eventID uint) (Event, error) {
	var event Event

	result := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// LockRegistration locks the owning event before the registration so every
// transaction takes row locks in the same order.
func (t *RegistrationTx) LockRegistration(id uint) (EventRegistration, error) {
	var reg EventRegistration

	result := t.db.Select("event_id").First(&reg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRegistration{}, ErrRegistrationNotFound
		}

		return EventRegistration{}, result.Error
	}

	if _, err := t.LockEvent(reg.EventID); err != nil {
		return EventRegistration{}, err
	}

	reg = EventRegistration{}
	result = t.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventRegistration{}, ErrRegistrationNotFound
		}

		return EventRegistration{}, result.Error
	}

	return reg, nil
}

func (t *RegistrationTx) CountActive(eventID uint) (int64, error) {
	var count int64

	result := t.db.Model(&EventRegistration{}).
		Where("event_id = ? AND status <> ?", eventID, "cancelled").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// HasActiveWithEmail ignores the registration identified by excludeID.
func (t *RegistrationTx) HasActiveWithEmail(eventID uint, email string, excludeID uint) (bool, error) {
	var count int64

	result := t.db.Model(&EventRegistration{}).
		Where("event_id = ? AND LOWER(email) = LOWER(?) AND status <> ? AND id <> ?", eventID, email, "cancelled", excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (t *RegistrationTx) Insert(reg EventRegistration) (EventRegistration, error) {
	result := t.db.Create(&reg)
	if result.Error != nil {
		if isUniqueViolation(result.Error, activeRegistrationIndex) {
			return EventRegistration{}, ErrRegistrationDuplicate
		}

		return EventRegistration{}, result.Error
	}

	return reg, nil
}

func (t *RegistrationTx) SetStatus(id uint, status string) (EventRegistration, error) {
	result := t.db.Model(&EventRegistration{ID: id}).Update("status", status)
	if result.Error != nil {
		if isUniqueViolation(result.Error, activeRegistrationIndex) {
			return EventRegistration{}, ErrRegistrationDuplicate
		}

		return EventRegistration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventRegistration{}, ErrRegistrationNotFound
	}

	var reg EventRegistration
	if err := t.db.First(&reg, id).Error; err != nil {
		return EventRegistration{}, err
	}

	return reg, nil
}

func (t *RegistrationTx) Delete(id uint) error {
	result := t.db.Delete(&EventRegistration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// AdjustAttendees applies delta to the event counter. The check constraint on
// current_attendees rejects any update that would go negative.
func (t *RegistrationTx) AdjustAttendees(eventID uint, delta int) error {
	if delta == 0 {
		return nil
	}

	result := t.db.Model(&Event{}).
		Where("id = ?", eventID).
		UpdateColumn("current_attendees", gorm.Expr("current_attendees + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
