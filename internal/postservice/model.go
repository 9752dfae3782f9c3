package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// UniqueViolationError is a helper function to check if the error is a unique constraint error.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (title, slug, content, excerpt, published, featured_image, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	args := []any{
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Published,
		post.FeaturedImage,
		post.PublishedAt,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case UniqueViolationError(err, "posts_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT id, title, slug, content, excerpt, published, featured_image, created_at, updated_at, published_at
		FROM posts
		WHERE id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.Published, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt, &post.PublishedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// getPublishedBySlug only matches published rows so a draft slug behaves
// exactly like a missing one for public readers.
func (m *PostModel) getPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `
		SELECT id, title, slug, content, excerpt, published, featured_image, created_at, updated_at, published_at
		FROM posts
		WHERE slug = $1 AND published = true`

	row := m.db.QueryRowContext(ctx, query, slug)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.Published, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt, &post.PublishedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *PostModel) update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, slug = $2, content = $3, excerpt = $4, published = $5, featured_image = $6, published_at = $7, updated_at = now()
		WHERE id = $8
		RETURNING created_at, updated_at`

	args := []any{
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Published,
		post.FeaturedImage,
		post.PublishedAt,
		post.ID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case UniqueViolationError(err, "posts_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// listPublished orders live posts for display: newest publish first, creation
// time breaking ties.
func (m *PostModel) listPublished(ctx context.Context, limit, offset int) ([]Post, error) {
	query := `
		SELECT id, title, slug, content, excerpt, published, featured_image, created_at, updated_at, published_at
		FROM posts
		WHERE published = true
		ORDER BY published_at DESC, created_at DESC
		LIMIT $1 OFFSET $2`

	return m.list(ctx, query, limit, offset)
}

func (m *PostModel) listAll(ctx context.Context, limit, offset int) ([]Post, error) {
	query := `
		SELECT id, title, slug, content, excerpt, published, featured_image, created_at, updated_at, published_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return m.list(ctx, query, limit, offset)
}

func (m *PostModel) list(ctx context.Context, query string, limit, offset int) ([]Post, error) {
	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt, &post.Published, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt, &post.PublishedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
