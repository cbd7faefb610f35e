package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/domain"
)

type GalleryPhoto struct {
	Title       *string    `json:"title" form:"title"`
	Description *string    `json:"description" form:"description"`
	Category    *string    `json:"category" form:"category"`
	Date        *string    `json:"date" form:"date" example:"2026-02-11"`
	Author      *string    `json:"author" form:"author"`
	Tags        StringList `json:"tags" form:"-" swaggertype:"array,string"`
	Featured    *FlexBool  `json:"featured" form:"-" swaggertype:"boolean"`
	Order       *int       `json:"order" form:"order"`
}

func (r *GalleryPhoto) ValidateCreate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)...)
}

func (r *GalleryPhoto) ValidateUpdate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)...)
}

func (r *GalleryPhoto) rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&r.Category, validation.Length(0, 255)),
		validation.Field(&r.Date, isDate),
		validation.Field(&r.Author, validation.Length(0, 255)),
		validation.Field(&r.Tags, itemsMax(255)),
		validation.Field(&r.Order, atLeast(0)),
	}
}

func (r *GalleryPhoto) ApplyTo(p *domain.GalleryPhoto) error {
	if r.Title != nil {
		p.Title = trimmed(*r.Title)
	}
	if r.Description != nil {
		p.Description = nullable(*r.Description)
	}
	if r.Category != nil {
		p.Category = nullable(*r.Category)
	}
	if r.Date != nil {
		p.Date = optDate(*r.Date)
	}
	if r.Author != nil {
		p.Author = nullable(*r.Author)
	}
	if r.Tags != nil {
		p.Tags = strs(r.Tags)
	}
	if r.Featured != nil {
		p.Featured = bool(*r.Featured)
	}
	if r.Order != nil {
		p.Order = *r.Order
	}

	return nil
}
