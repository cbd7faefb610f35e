package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/webcms/cms-api/internal/domain"
)

// AuthorList accepts a JSON array of author objects or of plain names,
// either directly or encoded in a string.
type AuthorList []domain.Author

func (l *AuthorList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		return l.UnmarshalForm([]string{s})
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("must be a list of authors: %w", err)
	}

	out := make(AuthorList, 0, len(raw))
	for _, r := range raw {
		a, err := decodeAuthor(r)
		if err != nil {
			return err
		}
		out = append(out, a)
	}
	*l = out

	return nil
}

func (l *AuthorList) UnmarshalForm(values []string) error {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		return l.UnmarshalJSON([]byte(values[0]))
	}

	out := make(AuthorList, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "{") {
			a, err := decodeAuthor(json.RawMessage(v))
			if err != nil {
				return err
			}
			out = append(out, a)
			continue
		}
		out = append(out, domain.Author{Name: v})
	}
	*l = out

	return nil
}

func decodeAuthor(r json.RawMessage) (domain.Author, error) {
	var name string
	if err := json.Unmarshal(r, &name); err == nil {
		return domain.Author{Name: strings.TrimSpace(name)}, nil
	}

	var a domain.Author
	if err := json.Unmarshal(r, &a); err != nil {
		return domain.Author{}, errors.New("each author must be an object with a name")
	}
	a.Name = strings.TrimSpace(a.Name)

	return a, nil
}

var authorsValid = validation.By(func(value interface{}) error {
	list, _ := value.(AuthorList)
	for i, a := range list {
		err := validation.ValidateStruct(&a,
			validation.Field(&a.Name, validation.Required, validation.Length(1, 255)),
			validation.Field(&a.Email, is.Email),
			validation.Field(&a.Affiliation, validation.Length(0, 255)),
		)
		if err != nil {
			return fmt.Errorf("author %d: %w", i+1, err)
		}
	}

	return nil
})

type Publication struct {
	Title           *string    `json:"title" form:"title"`
	Abstract        *string    `json:"abstract" form:"abstract"`
	Content         *string    `json:"content" form:"content"`
	Type            *string    `json:"type" form:"type"`
	Authors         AuthorList `json:"authors" form:"-"`
	Journal         *string    `json:"journal" form:"journal"`
	Publisher       *string    `json:"publisher" form:"publisher"`
	PublicationDate *string    `json:"publication_date" form:"publication_date" example:"2026-01-20"`
	DOI             *string    `json:"doi" form:"doi"`
	ISBN            *string    `json:"isbn" form:"isbn"`
	PDFURL          *string    `json:"pdf_url" form:"pdf_url"`
	Domains         StringList `json:"domains" form:"-" swaggertype:"array,string"`
	Keywords        StringList `json:"keywords" form:"-" swaggertype:"array,string"`
	References      StringList `json:"references" form:"-" swaggertype:"array,string"`
	Status          *string    `json:"status" form:"status"`
	Featured        *FlexBool  `json:"featured" form:"-" swaggertype:"boolean"`
}

func (r *Publication) ValidateCreate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Abstract, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Authors, validation.Required, authorsValid),
		validation.Field(&r.PublicationDate, validation.Required, isDate),
		validation.Field(&r.Domains, validation.Required),
	)...)
}

func (r *Publication) ValidateUpdate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Abstract, validation.NilOrNotEmpty),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Authors, validation.NilOrNotEmpty, authorsValid),
		validation.Field(&r.PublicationDate, validation.NilOrNotEmpty, isDate),
		validation.Field(&r.Domains, validation.NilOrNotEmpty),
	)...)
}

func (r *Publication) rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&r.Type, oneOf(domain.PublicationTypes)),
		validation.Field(&r.Journal, validation.Length(0, 255)),
		validation.Field(&r.Publisher, validation.Length(0, 255)),
		validation.Field(&r.DOI, validation.Length(0, 255)),
		validation.Field(&r.ISBN, validation.Length(0, 32)),
		validation.Field(&r.PDFURL, is.URL),
		validation.Field(&r.Status, oneOf(domain.ContentStatuses)),
	}
}

func (r *Publication) ApplyTo(p *domain.Publication) error {
	if r.Title != nil {
		p.Title = trimmed(*r.Title)
	}
	if r.Abstract != nil {
		p.Abstract = *r.Abstract
	}
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Type != nil && *r.Type != "" {
		p.Type = *r.Type
	}
	if r.Authors != nil {
		p.Authors = []domain.Author(r.Authors)
	}
	if r.Journal != nil {
		p.Journal = nullable(*r.Journal)
	}
	if r.Publisher != nil {
		p.Publisher = nullable(*r.Publisher)
	}
	if r.PublicationDate != nil {
		p.PublicationDate = parseDate(*r.PublicationDate)
	}
	if r.DOI != nil {
		p.DOI = nullable(*r.DOI)
	}
	if r.ISBN != nil {
		p.ISBN = nullable(*r.ISBN)
	}
	if r.PDFURL != nil {
		p.PDFURL = nullable(*r.PDFURL)
	}
	if r.Domains != nil {
		p.Domains = strs(r.Domains)
	}
	if r.Keywords != nil {
		p.Keywords = strs(r.Keywords)
	}
	if r.References != nil {
		p.References = strs(r.References)
	}
	if r.Status != nil && *r.Status != "" {
		p.Status = *r.Status
	}
	if r.Featured != nil {
		p.Featured = bool(*r.Featured)
	}

	return nil
}
