package domain

import "time"

const (
	FinancingDraft       = "draft"
	FinancingSubmitted   = "submitted"
	FinancingUnderReview = "under-review"
	FinancingApproved    = "approved"
	FinancingRejected    = "rejected"
	FinancingOnHold      = "on-hold"

	ProjectStartup        = "startup"
	ProjectExpansion      = "expansion"
	ProjectEquipment      = "equipment"
	ProjectWorkingCapital = "working-capital"
	ProjectOther          = "other"

	Unspecified = "Non spécifié"
)

var (
	FinancingStatuses = []string{
		FinancingDraft, FinancingSubmitted, FinancingUnderReview, FinancingApproved, FinancingRejected, FinancingOnHold,
	}
	ProjectTypes = []string{ProjectStartup, ProjectExpansion, ProjectEquipment, ProjectWorkingCapital, ProjectOther}
)

type FinancingRequest struct {
	ID                 uint    `json:"id"`
	CompanyName        string  `json:"company_name"`
	LegalForm          *string `json:"legal_form"`
	RegistrationNumber *string `json:"registration_number"`
	TaxID              *string `json:"tax_id"`
	Address            string  `json:"address"`
	City               string  `json:"city"`
	Country            string  `json:"country"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	Website            *string `json:"website"`

	ContactFirstName string  `json:"contact_first_name"`
	ContactLastName  string  `json:"contact_last_name"`
	ContactPosition  *string `json:"contact_position"`
	ContactPhone     string  `json:"contact_phone"`
	ContactEmail     string  `json:"contact_email"`

	ProjectTitle       string     `json:"project_title"`
	ProjectDescription string     `json:"project_description"`
	ProjectType        string     `json:"project_type"`
	Sector             *string    `json:"sector"`
	RequestedAmount    float64    `json:"requested_amount"`
	Currency           string     `json:"currency"`
	ProjectDuration    *int       `json:"project_duration"`
	ExpectedStartDate  *time.Time `json:"expected_start_date"`

	Status      string     `json:"status"`
	ReviewNotes *string    `json:"review_notes"`
	ReviewedBy  *string    `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FinancingFilter struct {
	Status      string
	ProjectType string
	Sector      string
	Search      string
}
