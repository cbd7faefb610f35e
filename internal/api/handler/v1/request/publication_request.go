package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/webcms/cms-api/internal/domain"
)

const MinAbstractLength = 200

type PublicationRequest struct {
	Name        *string    `json:"name" form:"name"`
	Email       *string    `json:"email" form:"email"`
	Phone       *string    `json:"phone" form:"phone"`
	Institution *string    `json:"institution" form:"institution"`
	Position    *string    `json:"position" form:"position"`
	Title       *string    `json:"title" form:"title"`
	Abstract    *string    `json:"abstract" form:"abstract"`
	Type        *string    `json:"type" form:"type"`
	Domains     StringList `json:"domains" form:"-" swaggertype:"array,string"`
	Authors     *string    `json:"authors" form:"authors"`
	CoAuthors   *string    `json:"co_authors" form:"co_authors"`
	Keywords    *string    `json:"keywords" form:"keywords"`
	Message     *string    `json:"message" form:"message"`
	Status      *string    `json:"status" form:"status"`
}

func (r *PublicationRequest) ValidateCreate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(1, 255)),
		validation.Field(&r.Phone, isPhone),
		validation.Field(&r.Institution, validation.Length(0, 255)),
		validation.Field(&r.Position, validation.Length(0, 255)),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Abstract, validation.Required, validation.RuneLength(MinAbstractLength, 0)),
		validation.Field(&r.Type, oneOf(domain.PublicationTypes)),
		validation.Field(&r.Domains, validation.Required),
		validation.Field(&r.Authors, validation.Required),
	)
}

// ValidateUpdate covers the fields an editor may change after submission.
func (r *PublicationRequest) ValidateUpdate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email, validation.Length(1, 255)),
		validation.Field(&r.Status, oneOf(domain.PubRequestStatuses)),
	)
}

func (r *PublicationRequest) ApplyTo(p *domain.PublicationRequest) error {
	if r.Name != nil {
		p.Name = trimmed(*r.Name)
	}
	if r.Email != nil {
		p.Email = trimmed(*r.Email)
	}
	if r.Phone != nil {
		p.Phone = nullable(*r.Phone)
	}
	if r.Institution != nil {
		p.Institution = nullable(*r.Institution)
	}
	if r.Position != nil {
		p.Position = nullable(*r.Position)
	}
	if r.Title != nil {
		p.Title = trimmed(*r.Title)
	}
	if r.Abstract != nil {
		p.Abstract = *r.Abstract
	}
	if r.Type != nil && *r.Type != "" {
		p.Type = *r.Type
	}
	if r.Domains != nil {
		p.Domains = strs(r.Domains)
	}
	if r.Authors != nil {
		p.Authors = trimmed(*r.Authors)
	}
	if r.CoAuthors != nil {
		p.CoAuthors = nullable(*r.CoAuthors)
	}
	if r.Keywords != nil {
		p.Keywords = nullable(*r.Keywords)
	}
	if r.Message != nil {
		p.Message = nullable(*r.Message)
	}
	if r.Status != nil && *r.Status != "" {
		p.Status = *r.Status
	}

	return nil
}

// ApplyEditable copies only the fields allowed on update.
func (r *PublicationRequest) ApplyEditable(p *domain.PublicationRequest) error {
	edit := PublicationRequest{Name: r.Name, Email: r.Email, Status: r.Status}

	return edit.ApplyTo(p)
}
