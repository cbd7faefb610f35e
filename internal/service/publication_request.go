package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrPublicationRequestNotFound = repository.ErrPublicationRequestNotFound

type PublicationRequestRepository interface {
	PublicationRequestReader
	Create(ctx context.Context, r domain.PublicationRequest) (domain.PublicationRequest, error)
	Update(ctx context.Context, r domain.PublicationRequest) (domain.PublicationRequest, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.PublicationRequestFilter, page domain.PageRequest) ([]domain.PublicationRequest, int64, error)
}

type PublicationRequestFiles struct {
	Document *domain.Upload
	Image    *domain.Upload
}

type PublicationRequestService struct {
	repo  PublicationRequestRepository
	blobs BlobStore
	now   func() time.Time
}

func NewPublicationRequestService(repo PublicationRequestRepository, blobs BlobStore) *PublicationRequestService {
	return &PublicationRequestService{
		repo:  repo,
		blobs: blobs,
		now:   time.Now,
	}
}

func (s *PublicationRequestService) List(ctx context.Context, filter domain.PublicationRequestFilter, page domain.PageRequest) ([]domain.PublicationRequest, domain.Pagination, error) {
	page = page.Normalize(false)

	reqs, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}
	for i := range reqs {
		s.withURLs(&reqs[i])
	}

	return reqs, domain.NewPagination(page, total), nil
}

func (s *PublicationRequestService) Get(ctx context.Context, id uint) (domain.PublicationRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	s.withURLs(&r)

	return r, nil
}

// Create files a new submission. Status and submission date are always set
// by the server.
func (s *PublicationRequestService) Create(ctx context.Context, r domain.PublicationRequest, files PublicationRequestFiles) (domain.PublicationRequest, error) {
	now := s.now()
	r.Status = domain.PubRequestPending
	r.SubmissionDate = &now
	r.ReviewedAt = nil
	r.PublishedAt = nil
	if r.Type == "" {
		r.Type = domain.PublicationTypeArticle
	}

	var err error
	if r.DocumentFile, err = storeUpload(ctx, s.blobs, NamespaceRequestDocuments, files.Document, nil); err != nil {
		return domain.PublicationRequest{}, err
	}
	if r.DocumentImage, err = storeUpload(ctx, s.blobs, NamespaceRequestImages, files.Image, nil); err != nil {
		removeBlobs(ctx, s.blobs, r.DocumentFile)
		return domain.PublicationRequest{}, err
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		removeBlobs(ctx, s.blobs, r.DocumentFile, r.DocumentImage)
		return domain.PublicationRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	s.withURLs(&created)

	zap.L().Info("publication request submitted",
		zap.Uint("request_id", created.ID),
		zap.String("email", created.Email),
	)

	return created, nil
}

func (s *PublicationRequestService) Update(ctx context.Context, id uint, apply func(*domain.PublicationRequest) error, files PublicationRequestFiles) (domain.PublicationRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	oldFile, oldImage := r.DocumentFile, r.DocumentImage

	if err = apply(&r); err != nil {
		return domain.PublicationRequest{}, fmt.Errorf("apply -> %w", err)
	}

	if r.DocumentFile, err = storeUpload(ctx, s.blobs, NamespaceRequestDocuments, files.Document, oldFile); err != nil {
		return domain.PublicationRequest{}, err
	}
	if r.DocumentImage, err = storeUpload(ctx, s.blobs, NamespaceRequestImages, files.Image, oldImage); err != nil {
		removeBlobs(ctx, s.blobs, replaced(r.DocumentFile, oldFile))
		return domain.PublicationRequest{}, err
	}

	updated, err := s.repo.Update(ctx, r)
	if err != nil {
		removeBlobs(ctx, s.blobs, replaced(r.DocumentFile, oldFile), replaced(r.DocumentImage, oldImage))
		return domain.PublicationRequest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	removeBlobs(ctx, s.blobs, replaced(oldFile, updated.DocumentFile), replaced(oldImage, updated.DocumentImage))
	s.withURLs(&updated)

	return updated, nil
}

// UpdateStatus moves the request through review. Accepting or rejecting
// stamps reviewed_at, publishing stamps published_at.
func (s *PublicationRequestService) UpdateStatus(ctx context.Context, id uint, status string) (domain.PublicationRequest, error) {
	return s.Update(ctx, id, func(r *domain.PublicationRequest) error {
		now := s.now()
		r.Status = status

		switch status {
		case domain.PubRequestAccepted, domain.PubRequestRejected:
			r.ReviewedAt = &now
		case domain.PubRequestPublished:
			r.PublishedAt = &now
			if r.ReviewedAt == nil {
				r.ReviewedAt = &now
			}
		}

		return nil
	}, PublicationRequestFiles{})
}

func (s *PublicationRequestService) Delete(ctx context.Context, id uint) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	removeBlobs(ctx, s.blobs, r.DocumentFile, r.DocumentImage)

	return nil
}

func (s *PublicationRequestService) withURLs(r *domain.PublicationRequest) {
	if r.DocumentFile != nil && *r.DocumentFile != "" {
		url := s.blobs.URL(*r.DocumentFile)
		r.DocumentFileURL = &url
	}
	if r.DocumentImage != nil && *r.DocumentImage != "" {
		url := s.blobs.URL(*r.DocumentImage)
		r.DocumentImageURL = &url
	}
}
