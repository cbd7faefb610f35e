package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/domain"
)

// Event is the body of event create and update calls. Nil fields are left
// untouched on update.
type Event struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Content     *string `json:"content" form:"content"`
	Type        *string `json:"type" form:"type"`
	Status      *string `json:"status" form:"status"`

	StartDate *string `json:"start_date" form:"start_date" example:"2026-05-14"`
	EndDate   *string `json:"end_date" form:"end_date"`
	StartTime *string `json:"start_time" form:"start_time" example:"09:00"`
	EndTime   *string `json:"end_time" form:"end_time"`

	Location *string  `json:"location" form:"location"`
	Address  *string  `json:"address" form:"address"`
	Price    *float64 `json:"price" form:"price"`
	Currency *string  `json:"currency" form:"currency"`

	MaxAttendees         *int      `json:"max_attendees" form:"max_attendees"`
	RegistrationRequired *FlexBool `json:"registration_required" form:"-" swaggertype:"boolean"`
	RegistrationDeadline *string   `json:"registration_deadline" form:"registration_deadline"`

	Speakers StringList `json:"speakers" form:"-" swaggertype:"array,string"`
	Agenda   StringList `json:"agenda" form:"-" swaggertype:"array,string"`
	Tags     StringList `json:"tags" form:"-" swaggertype:"array,string"`
	Category *string    `json:"category" form:"category"`
}

func (r *Event) ValidateCreate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.StartDate, validation.Required, isDate),
		validation.Field(&r.StartTime, validation.Required, isClock),
		validation.Field(&r.Location, validation.Required, validation.Length(1, 255)),
	)...)
}

func (r *Event) ValidateUpdate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.StartDate, validation.NilOrNotEmpty, isDate),
		validation.Field(&r.StartTime, validation.NilOrNotEmpty, isClock),
		validation.Field(&r.Location, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)...)
}

func (r *Event) rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&r.Type, oneOf(domain.EventTypes)),
		validation.Field(&r.Status, oneOf(domain.EventStatuses)),
		validation.Field(&r.EndDate, isDate),
		validation.Field(&r.EndTime, isClock),
		validation.Field(&r.Price, validation.Min(float64(0))),
		validation.Field(&r.Currency, validation.Length(0, 3)),
		validation.Field(&r.MaxAttendees, atLeast(1)),
		validation.Field(&r.RegistrationDeadline, isTimestamp),
		validation.Field(&r.Category, validation.Length(0, 255)),
	}
}

// ApplyTo copies the provided fields onto e and checks that the resulting
// schedule is coherent.
func (r *Event) ApplyTo(e *domain.Event) error {
	if r.Title != nil {
		e.Title = trimmed(*r.Title)
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Content != nil {
		e.Content = nullable(*r.Content)
	}
	if r.Type != nil && *r.Type != "" {
		e.Type = *r.Type
	}
	if r.Status != nil && *r.Status != "" {
		e.Status = *r.Status
	}
	if r.StartDate != nil {
		e.StartDate = parseDate(*r.StartDate)
	}
	if r.EndDate != nil {
		e.EndDate = optDate(*r.EndDate)
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = nullable(*r.EndTime)
	}
	if r.Location != nil {
		e.Location = trimmed(*r.Location)
	}
	if r.Address != nil {
		e.Address = nullable(*r.Address)
	}
	if r.Price != nil {
		e.Price = r.Price
	}
	if r.Currency != nil {
		if c := nullable(*r.Currency); c != nil {
			e.Currency = strings.ToUpper(*c)
		} else {
			e.Currency = ""
		}
	}
	if r.MaxAttendees != nil {
		e.MaxAttendees = r.MaxAttendees
	}
	if r.RegistrationRequired != nil {
		e.RegistrationRequired = bool(*r.RegistrationRequired)
	}
	if r.RegistrationDeadline != nil {
		e.RegistrationDeadline = optTimestamp(*r.RegistrationDeadline)
	}
	if r.Speakers != nil {
		e.Speakers = strs(r.Speakers)
	}
	if r.Agenda != nil {
		e.Agenda = strs(r.Agenda)
	}
	if r.Tags != nil {
		e.Tags = strs(r.Tags)
	}
	if r.Category != nil {
		e.Category = nullable(*r.Category)
	}

	return checkSchedule(*e)
}

func checkSchedule(e domain.Event) error {
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return validation.Errors{"end_date": errors.New("must be a date after or equal to start_date")}
	}

	sameDay := e.EndDate == nil || e.EndDate.Equal(e.StartDate)
	if sameDay && e.EndTime != nil && *e.EndTime <= e.StartTime {
		return validation.Errors{"end_time": errors.New("must be after start_time")}
	}

	return nil
}

// Registrant is the body of an event registration. It is checked by the
// registration workflow once the event gates have passed.
type Registrant struct {
	FirstName    string `json:"first_name" form:"first_name"`
	LastName     string `json:"last_name" form:"last_name"`
	Email        string `json:"email" form:"email"`
	Phone        string `json:"phone" form:"phone"`
	Organization string `json:"organization" form:"organization"`
	Position     string `json:"position" form:"position"`
	Notes        string `json:"notes" form:"notes"`
}

func (r Registrant) ToDomain() domain.Registrant {
	return domain.Registrant{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		Organization: r.Organization,
		Position:     r.Position,
		Notes:        r.Notes,
	}
}

// Status is the body of the status transition endpoints.
type Status struct {
	Status string `json:"status" form:"status"`
}

func (r *Status) Validate(allowed []string) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required, oneOf(allowed)),
	)
}
