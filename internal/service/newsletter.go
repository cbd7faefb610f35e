package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var (
	ErrSubscriptionNotFound    = repository.ErrSubscriptionNotFound
	ErrSubscriptionEmailExists = repository.ErrSubscriptionEmailExists
)

type NewsletterRepository interface {
	FindByID(ctx context.Context, id uint) (domain.NewsletterSubscription, error)
	FindByEmail(ctx context.Context, email string) (domain.NewsletterSubscription, error)
	Create(ctx context.Context, s domain.NewsletterSubscription) (domain.NewsletterSubscription, error)
	Update(ctx context.Context, s domain.NewsletterSubscription) (domain.NewsletterSubscription, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.NewsletterFilter, page domain.PageRequest) ([]domain.NewsletterSubscription, int64, error)
}

type NewsletterService struct {
	repo NewsletterRepository
	now  func() time.Time
}

func NewNewsletterService(repo NewsletterRepository) *NewsletterService {
	return &NewsletterService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *NewsletterService) List(ctx context.Context, filter domain.NewsletterFilter, page domain.PageRequest) ([]domain.NewsletterSubscription, domain.Pagination, error) {
	page = page.Normalize(false)

	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return rows, domain.NewPagination(page, total), nil
}

// Subscribe creates an active subscription. An email that is already on the
// list is a validation failure.
func (s *NewsletterService) Subscribe(ctx context.Context, sub domain.NewsletterSubscription, prefs *domain.NewsletterPreferences) (domain.NewsletterSubscription, error) {
	now := s.now()
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Status = domain.SubscriptionActive
	sub.SubscribedAt = &now
	sub.UnsubscribedAt = nil
	sub.Preferences = domain.DefaultPreferences()
	if prefs != nil {
		sub.Preferences = *prefs
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, ErrSubscriptionEmailExists) {
			return domain.NewsletterSubscription{}, fieldError("email", "this email is already subscribed")
		}

		return domain.NewsletterSubscription{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	sub, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return s.Update(ctx, sub.ID, func(sub *domain.NewsletterSubscription) error {
		sub.Status = domain.SubscriptionUnsubscribed
		return nil
	})
}

// Status looks a subscription up by email. found is false when the email is
// not on the list.
func (s *NewsletterService) Status(ctx context.Context, email string) (sub domain.NewsletterSubscription, found bool, err error) {
	sub, err = s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return domain.NewsletterSubscription{}, false, nil
		}

		return domain.NewsletterSubscription{}, false, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	return sub, true, nil
}

func (s *NewsletterService) Get(ctx context.Context, id uint) (domain.NewsletterSubscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sub, nil
}

// Update applies changes and keeps the subscribe and unsubscribe stamps in
// line with the status.
func (s *NewsletterService) Update(ctx context.Context, id uint, apply func(*domain.NewsletterSubscription) error) (domain.NewsletterSubscription, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	previous := sub.Status

	if err = apply(&sub); err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("apply -> %w", err)
	}

	if sub.Status != previous {
		now := s.now()
		switch sub.Status {
		case domain.SubscriptionUnsubscribed:
			sub.UnsubscribedAt = &now
		case domain.SubscriptionActive:
			sub.SubscribedAt = &now
			sub.UnsubscribedAt = nil
		}
	}

	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		if errors.Is(err, ErrSubscriptionEmailExists) {
			return domain.NewsletterSubscription{}, fieldError("email", "this email is already subscribed")
		}

		return domain.NewsletterSubscription{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *NewsletterService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
