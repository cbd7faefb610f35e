package domain

import "time"

const (
	PublicationTypeArticle       = "article"
	PublicationTypeResearchPaper = "research-paper"
	PublicationTypeBook          = "book"
	PublicationTypeReport        = "report"
	PublicationTypeOther         = "other"
)

var PublicationTypes = []string{
	PublicationTypeArticle, PublicationTypeResearchPaper, PublicationTypeBook, PublicationTypeReport, PublicationTypeOther,
}

type Author struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	Email       string `json:"email,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
}

type Publication struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	Content         string    `json:"content"`
	Image           *string   `json:"image"`
	Type            string    `json:"type"`
	Authors         []Author  `json:"authors"`
	Journal         *string   `json:"journal"`
	Publisher       *string   `json:"publisher"`
	PublicationDate time.Time `json:"publication_date"`
	DOI             *string   `json:"doi"`
	ISBN            *string   `json:"isbn"`
	Citations       int       `json:"citations"`
	Downloads       int       `json:"downloads"`
	Views           int       `json:"views"`
	PDFURL          *string   `json:"pdf_url"`
	PDF             *string   `json:"-"`
	Domains         []string  `json:"domains"`
	Keywords        []string  `json:"keywords"`
	References      []string  `json:"references"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PublicationFilter struct {
	Status   string
	Type     string
	Featured *bool
}

// FeedItem is one entry of the public publications listing, which mixes
// curated publications with accepted publication requests.
type FeedItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Abstract        string    `json:"abstract"`
	Content         string    `json:"content"`
	Image           *string   `json:"image"`
	Type            string    `json:"type"`
	Authors         []Author  `json:"authors"`
	Journal         *string   `json:"journal"`
	Publisher       *string   `json:"publisher"`
	PublicationDate string    `json:"publication_date"`
	DOI             *string   `json:"doi"`
	ISBN            *string   `json:"isbn"`
	Citations       int       `json:"citations"`
	Downloads       int       `json:"downloads"`
	Views           int       `json:"views"`
	PDFURL          *string   `json:"pdf_url"`
	Domains         []string  `json:"domains"`
	Keywords        []string  `json:"keywords"`
	Status          string    `json:"status"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	IsFromRequest    bool    `json:"is_from_request"`
	RequestID        *uint   `json:"request_id,omitempty"`
	DocumentFileURL  *string `json:"document_file_url,omitempty"`
	DocumentImageURL *string `json:"document_image_url,omitempty"`
}
