package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return true
	}

	return false
}

// Active registrations count against the event capacity.
func (s RegistrationStatus) Active() bool {
	return s != RegistrationCancelled
}

// AttendeeDelta is the change to an event's attendee counter when a
// registration moves from one status to another.
func AttendeeDelta(from, to RegistrationStatus) int {
	switch {
	case from.Active() && !to.Active():
		return -1
	case !from.Active() && to.Active():
		return 1
	default:
		return 0
	}
}

type Registrant struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
	Position     string `json:"position,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (r Registrant) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
		validation.Field(&r.Organization, validation.Length(0, 255)),
		validation.Field(&r.Position, validation.Length(0, 255)),
		validation.Field(&r.Notes, validation.Length(0, 1000)),
	)
}

type Registration struct {
	ID      uint `json:"id"`
	EventID uint `json:"event_id"`
	Registrant
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	Event *Event `json:"event,omitempty"`
}

type RegistrationFilter struct {
	EventID *uint
	Status  RegistrationStatus
}
