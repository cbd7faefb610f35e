package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGalleryPhotoNotFound = errors.New("gallery photo not found")

type GalleryPhoto struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null"`
	Description *string    `gorm:"type:text"`
	Image       string     `gorm:"size:255;not null"`
	Thumbnail   *string    `gorm:"size:255"`
	Category    *string    `gorm:"size:255;index"`
	Date        *time.Time `gorm:"type:date"`
	Author      *string    `gorm:"size:255"`
	Tags        []string   `gorm:"type:jsonb;serializer:json"`
	Featured    bool       `gorm:"not null;default:false"`
	Order       int        `gorm:"column:sort_order;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CategoryCount struct {
	Name  string
	Count int64
}

type GalleryDAO struct {
	Table[GalleryPhoto]
}

func NewGalleryDAO(db *gorm.DB) *GalleryDAO {
	return &GalleryDAO{
		Table: newTable[GalleryPhoto](db, ErrGalleryPhotoNotFound),
	}
}

func (d *GalleryDAO) Categories(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount

	result := d.db.WithContext(ctx).
		Model(&GalleryPhoto{}).
		Select("category AS name, COUNT(*) AS count").
		Where("category IS NOT NULL AND category <> ''").
		Group("category").
		Order("category").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
