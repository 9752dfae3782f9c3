package postservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/nvallin/folio/internal/common"
)

func NewPostService(db *sql.DB, cache *common.Cache) *PostService {
	return &PostService{m: newPostModel(db), c: cache}
}

type CreatePostRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Published     bool    `json:"published"`
	FeaturedImage *string `json:"featured_image"`
}

type UpdatePostRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Published     bool    `json:"published"`
	FeaturedImage *string `json:"featured_image"`
}

// CreatePost inserts a new post. The slug defaults to the slugified title
// when absent; a supplied slug is slugified as well so the stored value is
// always URL-safe. published_at is stamped only when the post is created
// already published.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	slug := req.Slug
	if slug == "" {
		slug = req.Title
	}
	slug = Slugify(slug)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		Title:         req.Title,
		Slug:          slug,
		Content:       sanitizeMarkdown(req.Content),
		Excerpt:       req.Excerpt,
		Published:     req.Published,
		FeaturedImage: req.FeaturedImage,
	}

	if post.Published {
		// truncated to what the timestamp column keeps, so the stamp
		// round-trips unchanged
		now := time.Now().UTC().Truncate(time.Microsecond)
		post.PublishedAt = &now
	}

	err := s.m.insert(ctx, &post)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return &post, nil
}

// UpdatePost applies the update policy to the stored row: created_at is never
// touched, updated_at is always refreshed, and published_at is stamped only
// on the first transition to published. The stored publish time wins over
// anything the caller sends.
func (s *PostService) UpdatePost(ctx context.Context, id int, req *UpdatePostRequest) (*Post, error) {
	// Unlike create, an update never derives the slug from the title. The
	// slug is the post's public URL; changing it must be deliberate.
	slug := Slugify(req.Slug)

	v := common.NewValidator()
	validateInt(v, id, "id")
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	stored, err := s.m.getById(ctx, id)
	if err != nil {
		return nil, err
	}

	post := Post{
		ID:            stored.ID,
		Title:         req.Title,
		Slug:          slug,
		Content:       sanitizeMarkdown(req.Content),
		Excerpt:       req.Excerpt,
		Published:     req.Published,
		FeaturedImage: req.FeaturedImage,
		PublishedAt:   stored.PublishedAt,
	}

	if post.Published && post.PublishedAt == nil {
		now := time.Now().UTC().Truncate(time.Microsecond)
		post.PublishedAt = &now
	}

	err = s.m.update(ctx, &post)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return &post, nil
}

// DeletePost hard-deletes a post. Deleting an id that does not exist is not
// an error for the caller.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.delete(ctx, id)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}

// GetPost returns a post by id regardless of its published state. This is the
// admin read path used to load drafts for editing.
func (s *PostService) GetPost(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getById(ctx, id)
}

// GetPublishedBySlug returns a published post by its slug. Drafts are
// indistinguishable from missing rows.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyPostBySlug(slug)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, post)

	return post, nil
}

// ListPublished returns live posts ordered by published_at then created_at
// descending. Default limit is 10 and default offset is 0.
func (s *PostService) ListPublished(ctx context.Context, limit, offset *int) ([]Post, error) {
	l, o := normalizePage(limit, offset)

	key := common.CacheKeyPublishedPosts(l, o)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.listPublished(ctx, l, o)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, posts)

	return posts, nil
}

// ListPosts returns every post, drafts included, newest first. Admin only.
func (s *PostService) ListPosts(ctx context.Context, limit, offset *int) ([]Post, error) {
	l, o := normalizePage(limit, offset)
	return s.m.listAll(ctx, l, o)
}

func normalizePage(limit, offset *int) (int, int) {
	l, o := 10, 0
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}
