package domain

import "time"

const (
	PubRequestPending     = "pending"
	PubRequestUnderReview = "under-review"
	PubRequestAccepted    = "accepted"
	PubRequestRejected    = "rejected"
	PubRequestPublished   = "published"
)

var PubRequestStatuses = []string{
	PubRequestPending, PubRequestUnderReview, PubRequestAccepted, PubRequestRejected, PubRequestPublished,
}

type PublicationRequest struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         *string  `json:"phone"`
	Institution   *string  `json:"institution"`
	Position      *string  `json:"position"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	Type          string   `json:"type"`
	Domains       []string `json:"domains"`
	Authors       string   `json:"authors"`
	CoAuthors     *string  `json:"co_authors"`
	Keywords      *string  `json:"keywords"`
	Message       *string  `json:"message"`
	DocumentFile  *string  `json:"document_file"`
	DocumentImage *string  `json:"document_image"`
	Status        string   `json:"status"`

	SubmissionDate *time.Time `json:"submission_date"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	PublishedAt    *time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DocumentFileURL  *string `json:"document_file_url,omitempty"`
	DocumentImageURL *string `json:"document_image_url,omitempty"`
}

// Visible reports whether the request is shown in the public publications feed.
func (r PublicationRequest) Visible() bool {
	return r.Status == PubRequestAccepted || r.Status == PubRequestPublished
}

type PublicationRequestFilter struct {
	Status   string
	Type     string
	Statuses []string
	Search   string
}
