package postservice

import (
	"database/sql"
	"time"

	"github.com/nvallin/folio/internal/common"
)

type Post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Slug is the URL identifier of the post and is unique across the table.
	Slug string `json:"slug"`
	// Content is stored in Markdown format.
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Published     bool       `json:"published"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m *PostModel
	c *common.Cache
}
