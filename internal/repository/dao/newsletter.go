package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound    = errors.New("newsletter subscription not found")
	ErrSubscriptionEmailExists = errors.New("email already subscribed")
)

type NewsletterPreferences struct {
	Events       bool `json:"events"`
	Publications bool `json:"publications"`
	Actualities  bool `json:"actualities"`
	General      bool `json:"general"`
}

type NewsletterSubscription struct {
	ID             uint                  `gorm:"primaryKey"`
	Email          string                `gorm:"size:255;not null;uniqueIndex:uni_newsletter_subscriptions_email"`
	FirstName      *string               `gorm:"size:255"`
	LastName       *string               `gorm:"size:255"`
	Status         string                `gorm:"size:20;not null;default:active;index"`
	Preferences    NewsletterPreferences `gorm:"type:jsonb;serializer:json"`
	SubscribedAt   *time.Time            `gorm:"index"`
	UnsubscribedAt *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type NewsletterDAO struct {
	Table[NewsletterSubscription]
}

func NewNewsletterDAO(db *gorm.DB) *NewsletterDAO {
	return &NewsletterDAO{
		Table: newTable[NewsletterSubscription](db, ErrSubscriptionNotFound),
	}
}

const subscriptionEmailIndex = "uni_newsletter_subscriptions_email"

func (d *NewsletterDAO) Insert(ctx context.Context, sub NewsletterSubscription) (NewsletterSubscription, error) {
	created, err := d.Table.Insert(ctx, sub)
	if err != nil {
		if isUniqueViolation(err, subscriptionEmailIndex) {
			return NewsletterSubscription{}, ErrSubscriptionEmailExists
		}

		return NewsletterSubscription{}, err
	}

	return created, nil
}

func (d *NewsletterDAO) Update(ctx context.Context, sub NewsletterSubscription, omit ...string) (NewsletterSubscription, error) {
	updated, err := d.Table.Update(ctx, sub, omit...)
	if err != nil {
		if isUniqueViolation(err, subscriptionEmailIndex) {
			return NewsletterSubscription{}, ErrSubscriptionEmailExists
		}

		return NewsletterSubscription{}, err
	}

	return updated, nil
}

func (d *NewsletterDAO) FindByEmail(ctx context.Context, email string) (NewsletterSubscription, error) {
	var sub NewsletterSubscription

	result := d.db.WithContext(ctx).Take(&sub, "LOWER(email) = LOWER(?)", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return NewsletterSubscription{}, ErrSubscriptionNotFound
		}

		return NewsletterSubscription{}, result.Error
	}

	return sub, nil
}
