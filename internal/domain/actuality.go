package domain

import "time"

const (
	ContentDraft     = "draft"
	ContentPublished = "published"
	ContentArchived  = "archived"
)

var ContentStatuses = []string{ContentDraft, ContentPublished, ContentArchived}

type Actuality struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Author      string    `json:"author"`
	AuthorPhoto *string   `json:"author_photo"`
	PublishDate time.Time `json:"publish_date"`
	ReadTime    *int      `json:"read_time"`
	Views       int       `json:"views"`
	Featured    bool      `json:"featured"`
	Status      string    `json:"status"`

	Tags            []string `json:"tags"`
	LearningPoints  []string `json:"learning_points"`
	KeyPoints       []string `json:"key_points"`
	RelatedArticles []uint   `json:"related_articles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ActualityFilter struct {
	Status   string
	Category string
	Featured *bool
}
