package service

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.EventFilter, page domain.PageRequest) ([]domain.Event, int64, error)
}

type EventService struct {
	repo  EventRepository
	blobs BlobStore
}

func NewEventService(repo EventRepository, blobs BlobStore) *EventService {
	return &EventService{
		repo:  repo,
		blobs: blobs,
	}
}

func (s *EventService) List(ctx context.Context, filter domain.EventFilter, page domain.PageRequest) ([]domain.Event, domain.Pagination, error) {
	page = page.Normalize(false)

	events, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, domain.NewPagination(page, total), nil
}

func (s *EventService) Get(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) Create(ctx context.Context, event domain.Event, image *domain.Upload) (domain.Event, error) {
	path, err := storeUpload(ctx, s.blobs, NamespaceEvents, image, nil)
	if err != nil {
		return domain.Event{}, err
	}
	event.Image = path
	event.CurrentAttendees = 0
	applyEventDefaults(&event)

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		removeBlobs(ctx, s.blobs, path)
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update applies changes to the stored event. The attendee counter is not
// writable here.
func (s *EventService) Update(ctx context.Context, id uint, apply func(*domain.Event) error, image *domain.Upload) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	oldImage := event.Image

	if err = apply(&event); err != nil {
		return domain.Event{}, fmt.Errorf("apply -> %w", err)
	}
	applyEventDefaults(&event)

	if event.Image, err = storeUpload(ctx, s.blobs, NamespaceEvents, image, oldImage); err != nil {
		return domain.Event{}, err
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		removeBlobs(ctx, s.blobs, replaced(event.Image, oldImage))
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	removeBlobs(ctx, s.blobs, replaced(oldImage, updated.Image))

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	removeBlobs(ctx, s.blobs, event.Image)

	return nil
}

func applyEventDefaults(e *domain.Event) {
	if e.Type == "" {
		e.Type = domain.EventTypeOther
	}
	if e.Status == "" {
		e.Status = domain.EventStatusUpcoming
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
}
