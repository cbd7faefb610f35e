package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var (
	ErrSubscriptionNotFound    = dao.ErrSubscriptionNotFound
	ErrSubscriptionEmailExists = dao.ErrSubscriptionEmailExists
)

type NewsletterDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.NewsletterSubscription, error)
	FindByEmail(ctx context.Context, email string) (dao.NewsletterSubscription, error)
	Insert(ctx context.Context, s dao.NewsletterSubscription) (dao.NewsletterSubscription, error)
	Update(ctx context.Context, s dao.NewsletterSubscription, omit ...string) (dao.NewsletterSubscription, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.NewsletterSubscription, int64, error)
}

type NewsletterRepository struct {
	dao NewsletterDAO
}

func NewNewsletterRepository(dao NewsletterDAO) *NewsletterRepository {
	return &NewsletterRepository{
		dao: dao,
	}
}

func (r *NewsletterRepository) FindByID(ctx context.Context, id uint) (domain.NewsletterSubscription, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return subscriptionDaoToDomain(found), nil
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return subscriptionDaoToDomain(found), nil
}

func (r *NewsletterRepository) Create(ctx context.Context, s domain.NewsletterSubscription) (domain.NewsletterSubscription, error) {
	created, err := r.dao.Insert(ctx, subscriptionDomainToDao(s))
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return subscriptionDaoToDomain(created), nil
}

func (r *NewsletterRepository) Update(ctx context.Context, s domain.NewsletterSubscription) (domain.NewsletterSubscription, error) {
	updated, err := r.dao.Update(ctx, subscriptionDomainToDao(s))
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return subscriptionDaoToDomain(updated), nil
}

func (r *NewsletterRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NewsletterRepository) List(ctx context.Context, filter domain.NewsletterFilter, page domain.PageRequest) ([]domain.NewsletterSubscription, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("status", filter.Status),
		dao.Search(filter.Search, "email", "first_name", "last_name"),
		dao.OrderBy("created_at DESC", "id DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	out := make([]domain.NewsletterSubscription, len(rows))
	for i, row := range rows {
		out[i] = subscriptionDaoToDomain(row)
	}

	return out, total, nil
}

func subscriptionDomainToDao(s domain.NewsletterSubscription) dao.NewsletterSubscription {
	return dao.NewsletterSubscription{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Status:    s.Status,
		Preferences: dao.NewsletterPreferences{
			Events:       s.Preferences.Events,
			Publications: s.Preferences.Publications,
			Actualities:  s.Preferences.Actualities,
			General:      s.Preferences.General,
		},
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func subscriptionDaoToDomain(s dao.NewsletterSubscription) domain.NewsletterSubscription {
	return domain.NewsletterSubscription{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Status:    s.Status,
		Preferences: domain.NewsletterPreferences{
			Events:       s.Preferences.Events,
			Publications: s.Preferences.Publications,
			Actualities:  s.Preferences.Actualities,
			General:      s.Preferences.General,
		},
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
