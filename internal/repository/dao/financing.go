package dao

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrFinancingRequestNotFound = errors.New("financing request not found")

type FinancingRequest struct {
	ID                 uint    `gorm:"primaryKey"`
	CompanyName        string  `gorm:"size:255;not null"`
	LegalForm          *string `gorm:"size:255"`
	RegistrationNumber *string `gorm:"size:255"`
	TaxID              *string `gorm:"size:255"`
	Address            string  `gorm:"type:text"`
	City               string  `gorm:"size:255"`
	Country            string  `gorm:"size:255;not null;default:RDC"`
	Phone              string  `gorm:"size:50"`
	Email              string  `gorm:"size:255;not null"`
	Website            *string `gorm:"size:255"`

	ContactFirstName string  `gorm:"size:255;not null"`
	ContactLastName  string  `gorm:"size:255;not null"`
	ContactPosition  *string `gorm:"size:255"`
	ContactPhone     string  `gorm:"size:50"`
	ContactEmail     string  `gorm:"size:255;not null;index"`

	ProjectTitle       string     `gorm:"size:255;not null"`
	ProjectDescription string     `gorm:"type:text;not null"`
	ProjectType        string     `gorm:"size:20;not null;default:other;index"`
	Sector             *string    `gorm:"size:255"`
	RequestedAmount    float64    `gorm:"type:numeric(15,2);not null;default:0"`
	Currency           string     `gorm:"size:3;not null;default:USD"`
	ProjectDuration    *int       `gorm:"comment:months"`
	ExpectedStartDate  *time.Time `gorm:"type:date"`

	Status      string  `gorm:"size:20;not null;default:submitted;index"`
	ReviewNotes *string `gorm:"type:text"`
	ReviewedBy  *string `gorm:"size:255"`
	ReviewedAt  *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type FinancingDAO struct {
	Table[FinancingRequest]
}

func NewFinancingDAO(db *gorm.DB) *FinancingDAO {
	return &FinancingDAO{
		Table: newTable[FinancingRequest](db, ErrFinancingRequestNotFound),
	}
}
