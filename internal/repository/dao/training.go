package dao

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTrainingRegistrationNotFound = errors.New("training registration not found")

type TrainingRegistration struct {
	ID               uint    `gorm:"primaryKey"`
	Name             string  `gorm:"size:255;not null"`
	Email            string  `gorm:"size:255;not null;index"`
	Phone            *string `gorm:"size:50"`
	Program          string  `gorm:"size:50;not null;index"`
	ProgramName      *string `gorm:"size:255"`
	Message          *string `gorm:"type:text"`
	Company          *string `gorm:"size:255"`
	Position         *string `gorm:"size:255"`
	Status           string  `gorm:"size:20;not null;default:pending;index"`
	RegistrationDate *time.Time
	ConfirmedAt      *time.Time
	CancelledAt      *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type TrainingDAO struct {
	Table[TrainingRegistration]
}

func NewTrainingDAO(db *gorm.DB) *TrainingDAO {
	return &TrainingDAO{
		Table: newTable[TrainingRegistration](db, ErrTrainingRegistrationNotFound),
	}
}
