package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPublicationNotFound        = errors.New("publication not found")
	ErrPublicationRequestNotFound = errors.New("publication request not found")
)

type PublicationAuthor struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	Email       string `json:"email,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
}

type Publication struct {
	ID              uint                `gorm:"primaryKey"`
	Title           string              `gorm:"size:255;not null"`
	Abstract        string              `gorm:"type:text;not null"`
	Content         string              `gorm:"type:text;not null"`
	Image           *string             `gorm:"size:255"`
	Type            string              `gorm:"size:20;not null;default:article;index"`
	Authors         []PublicationAuthor `gorm:"type:jsonb;serializer:json;not null"`
	Journal         *string             `gorm:"size:255"`
	Publisher       *string             `gorm:"size:255"`
	PublicationDate time.Time           `gorm:"type:date;not null;index"`
	DOI             *string             `gorm:"column:doi;size:255"`
	ISBN            *string             `gorm:"column:isbn;size:255"`
	Citations       int                 `gorm:"not null;default:0"`
	Downloads       int                 `gorm:"not null;default:0"`
	Views           int                 `gorm:"not null;default:0"`
	PDFURL          *string             `gorm:"column:pdf_url;size:255"`
	PDFPath         *string             `gorm:"column:pdf_path;size:255"`
	Domains         []string            `gorm:"type:jsonb;serializer:json;not null"`
	Keywords        []string            `gorm:"type:jsonb;serializer:json"`
	References      []string            `gorm:"type:jsonb;serializer:json"`
	Status          string              `gorm:"size:20;not null;default:draft;index"`
	Featured        bool                `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PublicationDAO struct {
	Table[Publication]
}

func NewPublicationDAO(db *gorm.DB) *PublicationDAO {
	return &PublicationDAO{
		Table: newTable[Publication](db, ErrPublicationNotFound),
	}
}

func (d *PublicationDAO) Update(ctx context.Context, p Publication) (Publication, error) {
	return d.Table.Update(ctx, p, "views", "downloads", "citations")
}

func (d *PublicationDAO) IncrementViews(ctx context.Context, id uint) error {
	ok, err := d.Adjust(ctx, id, "views", 1)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPublicationNotFound
	}

	return nil
}

type PublicationRequest struct {
	ID            uint     `gorm:"primaryKey"`
	Name          string   `gorm:"size:500;not null"`
	Email         string   `gorm:"size:255;not null;index"`
	Phone         *string  `gorm:"size:50"`
	Institution   *string  `gorm:"size:255"`
	Position      *string  `gorm:"size:255"`
	Title         string   `gorm:"type:text;not null"`
	Abstract      string   `gorm:"type:text;not null"`
	Type          string   `gorm:"size:20;not null;default:article;index"`
	Domains       []string `gorm:"type:jsonb;serializer:json"`
	Authors       string   `gorm:"size:500;not null"`
	CoAuthors     *string  `gorm:"type:text"`
	Keywords      *string  `gorm:"type:text"`
	Message       *string  `gorm:"type:text"`
	DocumentFile  *string  `gorm:"size:255"`
	DocumentImage *string  `gorm:"size:255"`
	Status        string   `gorm:"size:20;not null;default:pending;index"`

	SubmissionDate *time.Time
	ReviewedAt     *time.Time
	PublishedAt    *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type PublicationRequestDAO struct {
	Table[PublicationRequest]
}

func NewPublicationRequestDAO(db *gorm.DB) *PublicationRequestDAO {
	return &PublicationRequestDAO{
		Table: newTable[PublicationRequest](db, ErrPublicationRequestNotFound),
	}
}
