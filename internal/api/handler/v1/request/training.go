package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/webcms/cms-api/internal/domain"
)

type TrainingRegistration struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email"`
	Phone       *string `json:"phone" form:"phone"`
	Program     *string `json:"program" form:"program" example:"training1"`
	ProgramName *string `json:"program_name" form:"program_name"`
	Message     *string `json:"message" form:"message"`
	Company     *string `json:"company" form:"company"`
	Position    *string `json:"position" form:"position"`
	Status      *string `json:"status" form:"status"`
}

func (r *TrainingRegistration) ValidateCreate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Program, validation.Required, validation.Length(1, 255)),
	)...)
}

func (r *TrainingRegistration) ValidateUpdate() error {
	return validation.ValidateStruct(r, append(r.rules(),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Program, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Status, oneOf(domain.TrainingStatuses)),
	)...)
}

func (r *TrainingRegistration) rules() []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&r.Phone, isPhone),
		validation.Field(&r.ProgramName, validation.Length(0, 255)),
		validation.Field(&r.Company, validation.Length(0, 255)),
		validation.Field(&r.Position, validation.Length(0, 255)),
	}
}

func (r *TrainingRegistration) ApplyTo(t *domain.TrainingRegistration) error {
	if r.Name != nil {
		t.Name = trimmed(*r.Name)
	}
	if r.Email != nil {
		t.Email = trimmed(*r.Email)
	}
	if r.Phone != nil {
		t.Phone = nullable(*r.Phone)
	}
	if r.Program != nil {
		t.Program = trimmed(*r.Program)
	}
	if r.ProgramName != nil {
		t.ProgramName = nullable(*r.ProgramName)
	}
	if r.Message != nil {
		t.Message = nullable(*r.Message)
	}
	if r.Company != nil {
		t.Company = nullable(*r.Company)
	}
	if r.Position != nil {
		t.Position = nullable(*r.Position)
	}
	if r.Status != nil && *r.Status != "" {
		t.Status = *r.Status
	}

	return nil
}
