package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository"
)

var ErrFinancingRequestNotFound = repository.ErrFinancingRequestNotFound

const (
	defaultCountry      = "RDC"
	defaultProjectTitle = "Demande de financement"
	defaultCurrency     = "USD"
	defaultReviewer     = "admin"
)

// subjectRules classify the free-text subject of the short contact form.
// The first matching rule wins.
var subjectRules = []struct {
	re          *regexp2.Regexp
	projectType string
}{
	{regexp2.MustCompile(`pr[eê]t|cr[eé]dit`, regexp2.IgnoreCase), domain.ProjectWorkingCapital},
	{regexp2.MustCompile(`subvention`, regexp2.IgnoreCase), domain.ProjectStartup},
	{regexp2.MustCompile(`capital|investissement`, regexp2.IgnoreCase), domain.ProjectExpansion},
	{regexp2.MustCompile(`bail|leasing|[eé]quipement`, regexp2.IgnoreCase), domain.ProjectEquipment},
}

// ClassifySubject maps a contact-form subject onto a project type.
func ClassifySubject(subject string) string {
	for _, rule := range subjectRules {
		if ok, err := rule.re.MatchString(subject); err == nil && ok {
			return rule.projectType
		}
	}

	return domain.ProjectOther
}

// FinancingIntake is a submission in either the short contact shape (name,
// email, phone, subject, message) or the structured shape carried by Request.
// Empty structured fields are filled from the contact fields.
type FinancingIntake struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string

	Request domain.FinancingRequest
}

type FinancingRepository interface {
	FindByID(ctx context.Context, id uint) (domain.FinancingRequest, error)
	Create(ctx context.Context, f domain.FinancingRequest) (domain.FinancingRequest, error)
	Update(ctx context.Context, f domain.FinancingRequest) (domain.FinancingRequest, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.FinancingFilter, page domain.PageRequest) ([]domain.FinancingRequest, int64, error)
}

type FinancingService struct {
	repo FinancingRepository
	now  func() time.Time
}

func NewFinancingService(repo FinancingRepository) *FinancingService {
	return &FinancingService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *FinancingService) List(ctx context.Context, filter domain.FinancingFilter, page domain.PageRequest) ([]domain.FinancingRequest, domain.Pagination, error) {
	page = page.Normalize(false)

	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return rows, domain.NewPagination(page, total), nil
}

func (s *FinancingService) Get(ctx context.Context, id uint) (domain.FinancingRequest, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return f, nil
}

func (s *FinancingService) Submit(ctx context.Context, intake FinancingIntake) (domain.FinancingRequest, error) {
	created, err := s.repo.Create(ctx, NormalizeIntake(intake))
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("financing request submitted",
		zap.Uint("request_id", created.ID),
		zap.String("project_type", created.ProjectType),
	)

	return created, nil
}

func (s *FinancingService) Update(ctx context.Context, id uint, apply func(*domain.FinancingRequest) error) (domain.FinancingRequest, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = apply(&f); err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("apply -> %w", err)
	}

	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		return domain.FinancingRequest{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// UpdateStatus records a review decision. reviewedBy defaults to "admin".
func (s *FinancingService) UpdateStatus(ctx context.Context, id uint, status string, notes *string, reviewedBy string) (domain.FinancingRequest, error) {
	if reviewedBy == "" {
		reviewedBy = defaultReviewer
	}

	return s.Update(ctx, id, func(f *domain.FinancingRequest) error {
		now := s.now()
		f.Status = status
		f.ReviewNotes = notes
		f.ReviewedBy = &reviewedBy
		f.ReviewedAt = &now

		return nil
	})
}

func (s *FinancingService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// NormalizeIntake fills the structured record from the contact fields and
// applies the intake defaults.
func NormalizeIntake(in FinancingIntake) domain.FinancingRequest {
	f := in.Request
	name := strings.TrimSpace(in.Name)

	first, last, _ := strings.Cut(name, " ")
	last = strings.TrimSpace(last)
	f.ContactFirstName = orDefault(f.ContactFirstName, first)
	f.ContactLastName = orDefault(f.ContactLastName, last)
	if f.ContactFirstName == "" && f.ContactLastName == "" {
		f.ContactFirstName = domain.Unspecified
		f.ContactLastName = domain.Unspecified
	}

	f.CompanyName = orDefault(f.CompanyName, orDefault(name, domain.Unspecified))
	f.Address = orDefault(f.Address, domain.Unspecified)
	f.City = orDefault(f.City, domain.Unspecified)
	f.Country = orDefault(f.Country, defaultCountry)

	f.Email = orDefault(f.Email, in.Email)
	f.ContactEmail = orDefault(f.ContactEmail, f.Email)
	f.Email = orDefault(f.Email, f.ContactEmail)
	f.Phone = orDefault(f.Phone, in.Phone)
	f.ContactPhone = orDefault(f.ContactPhone, f.Phone)

	f.ProjectTitle = orDefault(f.ProjectTitle, orDefault(in.Subject, defaultProjectTitle))
	f.ProjectDescription = orDefault(f.ProjectDescription, in.Message)
	if f.ProjectType == "" {
		f.ProjectType = ClassifySubject(in.Subject)
	}

	f.Currency = orDefault(f.Currency, defaultCurrency)
	if f.RequestedAmount < 0 {
		f.RequestedAmount = 0
	}
	f.Status = domain.FinancingSubmitted
	f.ReviewedAt = nil
	f.ReviewedBy = nil

	return f
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}

	return v
}
