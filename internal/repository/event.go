package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.Event, error)
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.Event, int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	row := eventDomainToDao(event)
	row.CurrentAttendees = 0

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	if _, err := r.dao.Update(ctx, eventDomainToDao(event)); err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	// Re-read so the returned counter reflects the stored value.
	return r.FindByID(ctx, event.ID)
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter, page domain.PageRequest) ([]domain.Event, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("status", filter.Status),
		dao.Eq("type", filter.Type),
		dao.Eq("category", filter.Category),
		dao.OrderBy("start_date ASC", "start_time ASC", "id ASC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = eventDaoToDomain(row)
	}

	return events, total, nil
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Content:              e.Content,
		Image:                e.Image,
		Type:                 e.Type,
		Status:               e.Status,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Location:             e.Location,
		Address:              e.Address,
		Price:                e.Price,
		Currency:             e.Currency,
		MaxAttendees:         e.MaxAttendees,
		CurrentAttendees:     e.CurrentAttendees,
		RegistrationRequired: e.RegistrationRequired,
		RegistrationDeadline: e.RegistrationDeadline,
		Speakers:             e.Speakers,
		Agenda:               e.Agenda,
		Tags:                 e.Tags,
		Category:             e.Category,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Content:              e.Content,
		Image:                e.Image,
		Type:                 e.Type,
		Status:               e.Status,
		StartDate:            e.StartDate,
		EndDate:              e.EndDate,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Location:             e.Location,
		Address:              e.Address,
		Price:                e.Price,
		Currency:             e.Currency,
		MaxAttendees:         e.MaxAttendees,
		CurrentAttendees:     e.CurrentAttendees,
		RegistrationRequired: e.RegistrationRequired,
		RegistrationDeadline: e.RegistrationDeadline,
		Speakers:             nonNil(e.Speakers),
		Agenda:               nonNil(e.Agenda),
		Tags:                 nonNil(e.Tags),
		Category:             e.Category,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// nonNil keeps list fields rendering as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
