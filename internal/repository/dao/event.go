package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text;not null"`
	Content     *string `gorm:"type:text"`
	Image       *string `gorm:"size:255"`
	Type        string  `gorm:"size:20;not null;default:other;index"`
	Status      string  `gorm:"size:20;not null;default:upcoming;index"`

	StartDate time.Time  `gorm:"type:date;not null;index"`
	EndDate   *time.Time `gorm:"type:date"`
	StartTime string     `gorm:"size:5;not null"`
	EndTime   *string    `gorm:"size:5"`

	Location string   `gorm:"size:255;not null"`
	Address  *string  `gorm:"type:text"`
	Price    *float64 `gorm:"type:numeric(10,2)"`
	Currency string   `gorm:"size:3;not null;default:USD"`

	MaxAttendees         *int
	CurrentAttendees     int  `gorm:"not null;default:0;check:chk_events_current_attendees,current_attendees >= 0"`
	RegistrationRequired bool `gorm:"not null;default:false"`
	RegistrationDeadline *time.Time

	Speakers []string `gorm:"type:jsonb;serializer:json"`
	Agenda   []string `gorm:"type:jsonb;serializer:json"`
	Tags     []string `gorm:"type:jsonb;serializer:json"`
	Category *string  `gorm:"size:255;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	Table[Event]
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		Table: newTable[Event](db, ErrEventNotFound),
	}
}

// Update never touches current_attendees, which only the registration
// workflow mutates under a row lock.
func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	return d.Table.Update(ctx, event, "current_attendees")
}
