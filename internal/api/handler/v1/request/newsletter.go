package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/webcms/cms-api/internal/domain"
)

type Subscription struct {
	Email       *string                       `json:"email" form:"email"`
	FirstName   *string                       `json:"first_name" form:"first_name"`
	LastName    *string                       `json:"last_name" form:"last_name"`
	Status      *string                       `json:"status" form:"status"`
	Preferences *domain.NewsletterPreferences `json:"preferences" form:"-"`
}

func (r *Subscription) ValidateCreate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&r.FirstName, validation.Length(0, 255)),
		validation.Field(&r.LastName, validation.Length(0, 255)),
	)
}

func (r *Subscription) ValidateUpdate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email, validation.Length(1, 255)),
		validation.Field(&r.FirstName, validation.Length(0, 255)),
		validation.Field(&r.LastName, validation.Length(0, 255)),
		validation.Field(&r.Status, oneOf(domain.SubscriptionStatuses)),
	)
}

func (r *Subscription) ApplyTo(s *domain.NewsletterSubscription) error {
	if r.Email != nil {
		s.Email = trimmed(*r.Email)
	}
	if r.FirstName != nil {
		s.FirstName = nullable(*r.FirstName)
	}
	if r.LastName != nil {
		s.LastName = nullable(*r.LastName)
	}
	if r.Status != nil && *r.Status != "" {
		s.Status = *r.Status
	}
	if r.Preferences != nil {
		s.Preferences = *r.Preferences
	}

	return nil
}

// Email is the body of unsubscribe calls and the status query.
type Email struct {
	Email string `json:"email" form:"email"`
}

func (r *Email) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}
