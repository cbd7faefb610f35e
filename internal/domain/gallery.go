package domain

import "time"

type GalleryPhoto struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Image       string     `json:"image"`
	Thumbnail   *string    `json:"thumbnail"`
	Category    *string    `json:"category"`
	Date        *time.Time `json:"date"`
	Author      *string    `json:"author"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	Order       int        `json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GalleryFilter struct {
	Category string
	Featured *bool
}

type GalleryCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
