package domain

import "time"

const (
	SubscriptionActive       = "active"
	SubscriptionUnsubscribed = "unsubscribed"
	SubscriptionPending      = "pending"
)

var SubscriptionStatuses = []string{SubscriptionActive, SubscriptionUnsubscribed, SubscriptionPending}

type NewsletterPreferences struct {
	Events       bool `json:"events"`
	Publications bool `json:"publications"`
	Actualities  bool `json:"actualities"`
	General      bool `json:"general"`
}

func DefaultPreferences() NewsletterPreferences {
	return NewsletterPreferences{Events: true, Publications: true, Actualities: true, General: true}
}

type NewsletterSubscription struct {
	ID             uint                  `json:"id"`
	Email          string                `json:"email"`
	FirstName      *string               `json:"first_name"`
	LastName       *string               `json:"last_name"`
	Status         string                `json:"status"`
	Preferences    NewsletterPreferences `json:"preferences"`
	SubscribedAt   *time.Time            `json:"subscribed_at"`
	UnsubscribedAt *time.Time            `json:"unsubscribed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewsletterFilter struct {
	Status string
	Search string
}
