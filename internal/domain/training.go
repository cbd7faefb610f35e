package domain

import "time"

const (
	TrainingPending   = "pending"
	TrainingConfirmed = "confirmed"
	TrainingCancelled = "cancelled"
	TrainingCompleted = "completed"
)

var TrainingStatuses = []string{TrainingPending, TrainingConfirmed, TrainingCancelled, TrainingCompleted}

// TrainingPrograms maps program codes to their display names.
var TrainingPrograms = map[string]string{
	"training1": "Formation en Gestion Financière",
	"training2": "Formation en Marketing Digital",
	"training3": "Formation en Leadership",
	"training4": "Formation en Innovation",
}

type TrainingRegistration struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            *string    `json:"phone"`
	Program          string     `json:"program"`
	ProgramName      *string    `json:"program_name"`
	Message          *string    `json:"message"`
	Company          *string    `json:"company"`
	Position         *string    `json:"position"`
	Status           string     `json:"status"`
	RegistrationDate *time.Time `json:"registration_date"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	CancelledAt      *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrainingFilter struct {
	Status  string
	Program string
	Search  string
}
