package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/webcms/cms-api/internal/domain"
)

type Actuality struct {
	Title       *string   `json:"title" form:"title"`
	Summary     *string   `json:"summary" form:"summary"`
	Content     *string   `json:"content" form:"content"`
	Category    *string   `json:"category" form:"category"`
	Author      *string   `json:"author" form:"author"`
	PublishDate *string   `json:"publish_date" form:"publish_date" example:"2026-03-01"`
	ReadTime    *int      `json:"read_time" form:"read_time"`
	Featured    *FlexBool `json:"featured" form:"-" swaggertype:"boolean"`
	Status      *string   `json:"status" form:"status"`

	Tags            StringList `json:"tags" form:"-" swaggertype:"array,string"`
	LearningPoints  StringList `json:"learning_points" form:"-" swaggertype:"array,string"`
	KeyPoints       StringList `json:"key_points" form:"-" swaggertype:"array,string"`
	RelatedArticles IntList    `json:"related_articles" form:"-" swaggertype:"array,integer"`
}

func (r *Actuality) ValidateCreate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Summary, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.PublishDate, validation.Required, isTimestamp),
	)...)
}

func (r *Actuality) ValidateUpdate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Summary, validation.NilOrNotEmpty),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.PublishDate, validation.NilOrNotEmpty, isTimestamp),
	)...)
}

func (r *Actuality) rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&r.Category, validation.Length(0, 255)),
		validation.Field(&r.ReadTime, atLeast(1)),
		validation.Field(&r.Status, oneOf(domain.ContentStatuses)),
		validation.Field(&r.Tags, itemsMax(255)),
		validation.Field(&r.LearningPoints, itemsMax(500)),
		validation.Field(&r.KeyPoints, itemsMax(500)),
	}
}

func (r *Actuality) ApplyTo(a *domain.Actuality) error {
	if r.Title != nil {
		a.Title = trimmed(*r.Title)
	}
	if r.Summary != nil {
		a.Summary = *r.Summary
	}
	if r.Content != nil {
		a.Content = *r.Content
	}
	if r.Category != nil {
		a.Category = nullable(*r.Category)
	}
	if r.Author != nil {
		a.Author = trimmed(*r.Author)
	}
	if r.PublishDate != nil {
		if t := optTimestamp(*r.PublishDate); t != nil {
			a.PublishDate = *t
		}
	}
	if r.ReadTime != nil {
		a.ReadTime = r.ReadTime
	}
	if r.Featured != nil {
		a.Featured = bool(*r.Featured)
	}
	if r.Status != nil && *r.Status != "" {
		a.Status = *r.Status
	}
	if r.Tags != nil {
		a.Tags = strs(r.Tags)
	}
	if r.LearningPoints != nil {
		a.LearningPoints = strs(r.LearningPoints)
	}
	if r.KeyPoints != nil {
		a.KeyPoints = strs(r.KeyPoints)
	}
	if r.RelatedArticles != nil {
		a.RelatedArticles = []uint(r.RelatedArticles)
	}

	return nil
}
