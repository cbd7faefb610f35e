package domain

import "time"

const (
	EventTypeConference = "conference"
	EventTypeWorkshop   = "workshop"
	EventTypeSeminar    = "seminar"
	EventTypeWebinar    = "webinar"
	EventTypeOther      = "other"

	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

var (
	EventTypes    = []string{EventTypeConference, EventTypeWorkshop, EventTypeSeminar, EventTypeWebinar, EventTypeOther}
	EventStatuses = []string{EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled}
)

type Event struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	StartTime string     `json:"start_time"`
	EndTime   *string    `json:"end_time"`

	Location string   `json:"location"`
	Address  *string  `json:"address"`
	Price    *float64 `json:"price"`
	Currency string   `json:"currency"`

	// MaxAttendees nil means unlimited. CurrentAttendees is owned by the
	// registration workflow and mirrors the number of non-cancelled
	// registrations.
	MaxAttendees         *int       `json:"max_attendees"`
	CurrentAttendees     int        `json:"current_attendees"`
	RegistrationRequired bool       `json:"registration_required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`

	Speakers []string `json:"speakers"`
	Agenda   []string `json:"agenda"`
	Tags     []string `json:"tags"`
	Category *string  `json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e Event) HasCapacityLimit() bool {
	return e.MaxAttendees != nil
}

// RegistrationClosed reports whether now is past the registration deadline.
func (e Event) RegistrationClosed(now time.Time) bool {
	return e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline)
}

type EventFilter struct {
	Status   string
	Type     string
	Category string
}
