package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrPublicationNotFound = repository.ErrPublicationNotFound

// FeedRequestPrefix marks feed ids that refer to publication requests.
const FeedRequestPrefix = "request_"

type PublicationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Publication, error)
	Create(ctx context.Context, p domain.Publication) (domain.Publication, error)
	Update(ctx context.Context, p domain.Publication) (domain.Publication, error)
	Delete(ctx context.Context, id uint) error
	All(ctx context.Context, filter domain.PublicationFilter) ([]domain.Publication, error)
	IncrementViews(ctx context.Context, id uint) error
}

type PublicationRequestReader interface {
	FindByID(ctx context.Context, id uint) (domain.PublicationRequest, error)
	All(ctx context.Context, filter domain.PublicationRequestFilter) ([]domain.PublicationRequest, error)
}

type PublicationFiles struct {
	Image *domain.Upload
	PDF   *domain.Upload
}

type PublicationService struct {
	repo     PublicationRepository
	requests PublicationRequestReader
	blobs    BlobStore
}

func NewPublicationService(repo PublicationRepository, requests PublicationRequestReader, blobs BlobStore) *PublicationService {
	return &PublicationService{
		repo:     repo,
		requests: requests,
		blobs:    blobs,
	}
}

// Feed lists curated publications together with accepted or published
// publication requests, newest first. Paging happens after the merge.
func (s *PublicationService) Feed(ctx context.Context, filter domain.PublicationFilter, page domain.PageRequest) ([]domain.FeedItem, domain.Pagination, error) {
	page = page.Normalize(false)
	if filter.Type == "all" {
		filter.Type = ""
	}

	pubs, err := s.repo.All(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.All -> %w", err)
	}

	items := make([]domain.FeedItem, 0, len(pubs))
	for _, p := range pubs {
		items = append(items, s.publicationItem(p))
	}

	// Requests are never featured and always shown as published.
	includeRequests := (filter.Featured == nil || !*filter.Featured) &&
		(filter.Status == "" || filter.Status == domain.ContentPublished)
	if includeRequests {
		reqs, err := s.requests.All(ctx, domain.PublicationRequestFilter{
			Type:     filter.Type,
			Statuses: []string{domain.PubRequestAccepted, domain.PubRequestPublished},
		})
		if err != nil {
			return nil, domain.Pagination{}, fmt.Errorf("s.requests.All -> %w", err)
		}
		for _, r := range reqs {
			items = append(items, s.requestItem(r))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PublicationDate != items[j].PublicationDate {
			return items[i].PublicationDate > items[j].PublicationDate
		}

		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	start := min(page.Offset(), len(items))
	end := min(start+page.PerPage, len(items))

	return items[start:end], domain.NewPagination(page, total), nil
}

// Get returns the publication and counts the view.
func (s *PublicationService) Get(ctx context.Context, id uint) (domain.Publication, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.IncrementViews -> %w", err)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return s.present(p), nil
}

// GetFromRequest renders a publication request as a feed item. Requests that
// are not accepted or published are reported as not found.
func (s *PublicationService) GetFromRequest(ctx context.Context, requestID uint) (domain.FeedItem, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return domain.FeedItem{}, fmt.Errorf("s.requests.FindByID -> %w", err)
	}
	if !r.Visible() {
		return domain.FeedItem{}, ErrPublicationRequestNotFound
	}

	return s.requestItem(r), nil
}

func (s *PublicationService) Create(ctx context.Context, p domain.Publication, files PublicationFiles) (domain.Publication, error) {
	if p.Type == "" {
		p.Type = domain.PublicationTypeArticle
	}
	if p.Status == "" {
		p.Status = domain.ContentDraft
	}

	var err error
	if p.Image, err = storeUpload(ctx, s.blobs, NamespacePublications, files.Image, nil); err != nil {
		return domain.Publication{}, err
	}
	if p.PDF, err = storeUpload(ctx, s.blobs, NamespacePublicationPDFs, files.PDF, nil); err != nil {
		removeBlobs(ctx, s.blobs, p.Image)
		return domain.Publication{}, err
	}
	if p.PDF != nil {
		p.PDFURL = nil
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		removeBlobs(ctx, s.blobs, p.Image, p.PDF)
		return domain.Publication{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.present(created), nil
}

func (s *PublicationService) Update(ctx context.Context, id uint, apply func(*domain.Publication) error, files PublicationFiles) (domain.Publication, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	oldImage, oldPDF, oldURL := p.Image, p.PDF, derefString(p.PDFURL)

	if err = apply(&p); err != nil {
		return domain.Publication{}, fmt.Errorf("apply -> %w", err)
	}
	// An explicit pdf_url replaces a stored pdf.
	if derefString(p.PDFURL) != oldURL {
		p.PDF = nil
	}

	if p.Image, err = storeUpload(ctx, s.blobs, NamespacePublications, files.Image, oldImage); err != nil {
		return domain.Publication{}, err
	}
	if p.PDF, err = storeUpload(ctx, s.blobs, NamespacePublicationPDFs, files.PDF, p.PDF); err != nil {
		removeBlobs(ctx, s.blobs, replaced(p.Image, oldImage))
		return domain.Publication{}, err
	}
	if files.PDF != nil {
		p.PDFURL = nil
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		removeBlobs(ctx, s.blobs, replaced(p.Image, oldImage), replaced(p.PDF, oldPDF))
		return domain.Publication{}, fmt.Errorf("s.repo.Update -> %w", err)
	}
	removeBlobs(ctx, s.blobs, replaced(oldImage, updated.Image), replaced(oldPDF, updated.PDF))

	return s.present(updated), nil
}

func (s *PublicationService) Delete(ctx context.Context, id uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}
	removeBlobs(ctx, s.blobs, p.Image, p.PDF)

	return nil
}

// present resolves a stored pdf into its public url.
func (s *PublicationService) present(p domain.Publication) domain.Publication {
	if url := s.urlOf(p.PDF); url != nil {
		p.PDFURL = url
	}

	return p
}

func (s *PublicationService) publicationItem(p domain.Publication) domain.FeedItem {
	p = s.present(p)

	return domain.FeedItem{
		ID:              fmt.Sprint(p.ID),
		Title:           p.Title,
		Abstract:        p.Abstract,
		Content:         p.Content,
		Image:           p.Image,
		Type:            p.Type,
		Authors:         p.Authors,
		Journal:         p.Journal,
		Publisher:       p.Publisher,
		PublicationDate: p.PublicationDate.Format(time.DateOnly),
		DOI:             p.DOI,
		ISBN:            p.ISBN,
		Citations:       p.Citations,
		Downloads:       p.Downloads,
		Views:           p.Views,
		PDFURL:          p.PDFURL,
		Domains:         p.Domains,
		Keywords:        p.Keywords,
		Status:          p.Status,
		Featured:        p.Featured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (s *PublicationService) requestItem(r domain.PublicationRequest) domain.FeedItem {
	id := r.ID
	fileURL := s.urlOf(r.DocumentFile)
	imageURL := s.urlOf(r.DocumentImage)

	return domain.FeedItem{
		ID:               FeedRequestPrefix + fmt.Sprint(r.ID),
		Title:            r.Title,
		Abstract:         r.Abstract,
		Content:          r.Abstract,
		Image:            imageURL,
		Type:             r.Type,
		Authors:          splitAuthors(r.Authors),
		PublicationDate:  requestPublicationDate(r),
		PDFURL:           fileURL,
		Domains:          r.Domains,
		Keywords:         splitList(derefString(r.Keywords)),
		Status:           domain.ContentPublished,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		IsFromRequest:    true,
		RequestID:        &id,
		DocumentFileURL:  fileURL,
		DocumentImageURL: imageURL,
	}
}

func (s *PublicationService) urlOf(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}

	url := s.blobs.URL(*path)

	return &url
}

func requestPublicationDate(r domain.PublicationRequest) string {
	for _, t := range []*time.Time{r.PublishedAt, r.ReviewedAt, r.SubmissionDate} {
		if t != nil {
			return t.Format(time.DateOnly)
		}
	}

	return r.CreatedAt.Format(time.DateOnly)
}

// splitAuthors turns "A, B" into numbered authors.
func splitAuthors(s string) []domain.Author {
	names := splitList(s)
	authors := make([]domain.Author, len(names))
	for i, name := range names {
		authors[i] = domain.Author{ID: i + 1, Name: name}
	}

	return authors
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
