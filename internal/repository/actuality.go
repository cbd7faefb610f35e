package repository

import (
	"context"
	"fmt"

	"github.com/webcms/cms-api/internal/domain"
	"github.com/webcms/cms-api/internal/repository/dao"
)

var ErrActualityNotFound = dao.ErrActualityNotFound

type ActualityDAO interface {
	FindByID(ctx context.Context, id uint, scopes ...dao.Scope) (dao.Actuality, error)
	Insert(ctx context.Context, a dao.Actuality) (dao.Actuality, error)
	Update(ctx context.Context, a dao.Actuality) (dao.Actuality, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, scopes ...dao.Scope) ([]dao.Actuality, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	Exists(ctx context.Context, ids []uint) (map[uint]bool, error)
}

type ActualityRepository struct {
	dao ActualityDAO
}

func NewActualityRepository(dao ActualityDAO) *ActualityRepository {
	return &ActualityRepository{
		dao: dao,
	}
}

func (r *ActualityRepository) FindByID(ctx context.Context, id uint) (domain.Actuality, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Actuality{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return actualityDaoToDomain(found), nil
}

func (r *ActualityRepository) Create(ctx context.Context, a domain.Actuality) (domain.Actuality, error) {
	created, err := r.dao.Insert(ctx, actualityDomainToDao(a))
	if err != nil {
		return domain.Actuality{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return actualityDaoToDomain(created), nil
}

func (r *ActualityRepository) Update(ctx context.Context, a domain.Actuality) (domain.Actuality, error) {
	updated, err := r.dao.Update(ctx, actualityDomainToDao(a))
	if err != nil {
		return domain.Actuality{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return actualityDaoToDomain(updated), nil
}

func (r *ActualityRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ActualityRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.dao.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementViews -> %w", err)
	}

	return nil
}

// MissingIDs returns the ids that do not belong to any stored actuality.
func (r *ActualityRepository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	exists, err := r.dao.Exists(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	var missing []uint
	for _, id := range ids {
		if !exists[id] {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func (r *ActualityRepository) List(ctx context.Context, filter domain.ActualityFilter, page domain.PageRequest) ([]domain.Actuality, int64, error) {
	rows, total, err := r.dao.List(ctx, page.Offset(), page.PerPage,
		dao.Eq("status", filter.Status),
		dao.Eq("category", filter.Category),
		dao.EqPtr("featured", filter.Featured),
		dao.OrderBy("publish_date DESC", "created_at DESC"),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	out := make([]domain.Actuality, len(rows))
	for i, row := range rows {
		out[i] = actualityDaoToDomain(row)
	}

	return out, total, nil
}

func actualityDomainToDao(a domain.Actuality) dao.Actuality {
	return dao.Actuality{
		ID:              a.ID,
		Title:           a.Title,
		Summary:         a.Summary,
		Content:         a.Content,
		Image:           a.Image,
		Category:        a.Category,
		Author:          a.Author,
		AuthorPhoto:     a.AuthorPhoto,
		PublishDate:     a.PublishDate,
		ReadTime:        a.ReadTime,
		Views:           a.Views,
		Featured:        a.Featured,
		Status:          a.Status,
		Tags:            a.Tags,
		LearningPoints:  a.LearningPoints,
		KeyPoints:       a.KeyPoints,
		RelatedArticles: a.RelatedArticles,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func actualityDaoToDomain(a dao.Actuality) domain.Actuality {
	return domain.Actuality{
		ID:              a.ID,
		Title:           a.Title,
		Summary:         a.Summary,
		Content:         a.Content,
		Image:           a.Image,
		Category:        a.Category,
		Author:          a.Author,
		AuthorPhoto:     a.AuthorPhoto,
		PublishDate:     a.PublishDate,
		ReadTime:        a.ReadTime,
		Views:           a.Views,
		Featured:        a.Featured,
		Status:          a.Status,
		Tags:            nonNil(a.Tags),
		LearningPoints:  nonNil(a.LearningPoints),
		KeyPoints:       nonNil(a.KeyPoints),
		RelatedArticles: nonNil(a.RelatedArticles),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
