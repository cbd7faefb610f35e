package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/service"
)

// FinancingIntake accepts both the short contact form and the full
// structured application.
type FinancingIntake struct {
	Name    *string `json:"name" form:"name"`
	Email   *string `json:"email" form:"email"`
	Phone   *string `json:"phone" form:"phone"`
	Subject *string `json:"subject" form:"subject"`
	Message *string `json:"message" form:"message"`

	CompanyName        *string `json:"company_name" form:"company_name"`
	LegalForm          *string `json:"legal_form" form:"legal_form"`
	RegistrationNumber *string `json:"registration_number" form:"registration_number"`
	TaxID              *string `json:"tax_id" form:"tax_id"`
	Address            *string `json:"address" form:"address"`
	City               *string `json:"city" form:"city"`
	Country            *string `json:"country" form:"country"`
	Website            *string `json:"website" form:"website"`

	ContactFirstName *string `json:"contact_first_name" form:"contact_first_name"`
	ContactLastName  *string `json:"contact_last_name" form:"contact_last_name"`
	ContactPosition  *string `json:"contact_position" form:"contact_position"`
	ContactPhone     *string `json:"contact_phone" form:"contact_phone"`
	ContactEmail     *string `json:"contact_email" form:"contact_email"`

	ProjectTitle       *string  `json:"project_title" form:"project_title"`
	ProjectDescription *string  `json:"project_description" form:"project_description"`
	ProjectType        *string  `json:"project_type" form:"project_type"`
	Sector             *string  `json:"sector" form:"sector"`
	RequestedAmount    *float64 `json:"requested_amount" form:"requested_amount"`
	Currency           *string  `json:"currency" form:"currency"`
	ProjectDuration    *int     `json:"project_duration" form:"project_duration"`
	ExpectedStartDate  *string  `json:"expected_start_date" form:"expected_start_date"`
}

func (r *FinancingIntake) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, requiredWithout(r.CompanyName, "company_name"), validation.Length(0, 255)),
		validation.Field(&r.Email, requiredWithout(r.ContactEmail, "contact_email"), is.Email),
		validation.Field(&r.Phone, isPhone),
		validation.Field(&r.Subject, requiredWithout(r.ProjectTitle, "project_title"), validation.Length(0, 255)),
		validation.Field(&r.Message, requiredWithout(r.ProjectDescription, "project_description")),
		validation.Field(&r.CompanyName, requiredWithout(r.Name, "name"), validation.Length(0, 255)),
		validation.Field(&r.Website, is.URL),
		validation.Field(&r.ContactEmail, requiredWithout(r.Email, "email"), is.Email),
		validation.Field(&r.ContactPhone, isPhone),
		validation.Field(&r.ProjectTitle, requiredWithout(r.Subject, "subject"), validation.Length(0, 255)),
		validation.Field(&r.ProjectDescription, requiredWithout(r.Message, "message")),
		validation.Field(&r.ProjectType, oneOf(domain.ProjectTypes)),
		validation.Field(&r.RequestedAmount, validation.Min(float64(0))),
		validation.Field(&r.Currency, validation.Length(0, 3)),
		validation.Field(&r.ProjectDuration, atLeast(1)),
		validation.Field(&r.ExpectedStartDate, isDate),
	)
}

func (r *FinancingIntake) ToIntake() service.FinancingIntake {
	in := service.FinancingIntake{
		Name:    val(r.Name),
		Email:   val(r.Email),
		Phone:   val(r.Phone),
		Subject: val(r.Subject),
		Message: val(r.Message),
	}

	f := &in.Request
	f.CompanyName = val(r.CompanyName)
	f.LegalForm = nullable(val(r.LegalForm))
	f.RegistrationNumber = nullable(val(r.RegistrationNumber))
	f.TaxID = nullable(val(r.TaxID))
	f.Address = val(r.Address)
	f.City = val(r.City)
	f.Country = val(r.Country)
	f.Website = nullable(val(r.Website))
	f.ContactFirstName = val(r.ContactFirstName)
	f.ContactLastName = val(r.ContactLastName)
	f.ContactPosition = nullable(val(r.ContactPosition))
	f.ContactPhone = val(r.ContactPhone)
	f.ContactEmail = val(r.ContactEmail)
	f.ProjectTitle = val(r.ProjectTitle)
	f.ProjectDescription = val(r.ProjectDescription)
	f.ProjectType = val(r.ProjectType)
	f.Sector = nullable(val(r.Sector))
	if r.RequestedAmount != nil {
		f.RequestedAmount = *r.RequestedAmount
	}
	f.Currency = val(r.Currency)
	f.ProjectDuration = r.ProjectDuration
	f.ExpectedStartDate = optDate(val(r.ExpectedStartDate))

	return in
}

type FinancingUpdate struct {
	CompanyName *string `json:"company_name" form:"company_name"`
	Status      *string `json:"status" form:"status"`
	ReviewNotes *string `json:"review_notes" form:"review_notes"`
}

func (r *FinancingUpdate) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CompanyName, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Status, oneOf(domain.FinancingStatuses)),
	)
}

func (r *FinancingUpdate) ApplyTo(f *domain.FinancingRequest) error {
	if r.CompanyName != nil {
		f.CompanyName = trimmed(*r.CompanyName)
	}
	if r.Status != nil && *r.Status != "" {
		f.Status = *r.Status
	}
	if r.ReviewNotes != nil {
		f.ReviewNotes = nullable(*r.ReviewNotes)
	}

	return nil
}

type FinancingReview struct {
	Status      string  `json:"status" form:"status"`
	ReviewNotes *string `json:"review_notes" form:"review_notes"`
	ReviewedBy  string  `json:"reviewed_by" form:"reviewed_by"`
}

func (r *FinancingReview) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required, oneOf(domain.FinancingStatuses)),
		validation.Field(&r.ReviewedBy, validation.Length(0, 255)),
	)
}

func val(s *string) string {
	if s == nil {
		return ""
	}

	return trimmed(*s)
}
