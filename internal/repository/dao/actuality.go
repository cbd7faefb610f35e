package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrActualityNotFound = errors.New("actuality not found")

type Actuality struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Summary     string    `gorm:"type:text;not null"`
	Content     string    `gorm:"type:text;not null"`
	Image       *string   `gorm:"size:255"`
	Category    *string   `gorm:"size:255;index"`
	Author      string    `gorm:"size:255;not null"`
	AuthorPhoto *string   `gorm:"size:255"`
	PublishDate time.Time `gorm:"type:date;not null;index"`
	ReadTime    *int
	Views       int    `gorm:"not null;default:0"`
	Featured    bool   `gorm:"not null;default:false"`
	Status      string `gorm:"size:20;not null;default:draft;index"`

	Tags            []string `gorm:"type:jsonb;serializer:json"`
	LearningPoints  []string `gorm:"type:jsonb;serializer:json"`
	KeyPoints       []string `gorm:"type:jsonb;serializer:json"`
	RelatedArticles []uint   `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ActualityDAO struct {
	Table[Actuality]
}

func NewActualityDAO(db *gorm.DB) *ActualityDAO {
	return &ActualityDAO{
		Table: newTable[Actuality](db, ErrActualityNotFound),
	}
}

func (d *ActualityDAO) Update(ctx context.Context, a Actuality) (Actuality, error) {
	return d.Table.Update(ctx, a, "views")
}

func (d *ActualityDAO) IncrementViews(ctx context.Context, id uint) error {
	ok, err := d.Adjust(ctx, id, "views", 1)
	if err != nil {
		return err
	}
	if !ok {
		return ErrActualityNotFound
	}

	return nil
}

// Exists reports which of ids are present, for checking related_articles.
func (d *ActualityDAO) Exists(ctx context.Context, ids []uint) (map[uint]bool, error) {
	var found []uint

	result := d.db.WithContext(ctx).Model(&Actuality{}).Where("id IN ?", ids).Pluck("id", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}

	return exists, nil
}
