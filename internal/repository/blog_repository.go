package repository

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateBlog = errors.New("blog with this title already exists")

const blogColumns = `id, title, slug, priority, category, content, image_url, image_alt,
	tags, created_at, updated_at`

// BlogRepository handles blog data access.
type BlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func scanBlog(row pgx.Row) (*model.Blog, error) {
	b := &model.Blog{}
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Priority, &b.Category, &b.Content,
		&b.ImageURL, &b.ImageAlt, &b.Tags, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID retrieves a blog post by ID.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
}

// GetBySlug retrieves a blog post by its URL slug.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE slug = $1`, slug))
}

// ListPaginated retrieves blog posts ordered by priority then recency.
func (r *BlogRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Blog, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+blogColumns+` FROM blogs
		 ORDER BY priority DESC, created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, total, rows.Err()
}

// Create inserts a new blog post.
func (r *BlogRepository) Create(ctx context.Context, b *model.Blog) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO blogs (title, slug, priority, category, content, image_url, image_alt, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		b.Title, b.Slug, b.Priority, b.Category, b.Content, b.ImageURL, b.ImageAlt, b.Tags,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBlog
		}
		return err
	}
	return nil
}

// Update modifies a blog post.
func (r *BlogRepository) Update(ctx context.Context, b *model.Blog) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blogs SET title=$1, slug=$2, priority=$3, category=$4, content=$5,
		   image_url=$6, image_alt=$7, tags=$8, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$9`,
		b.Title, b.Slug, b.Priority, b.Category, b.Content, b.ImageURL, b.ImageAlt, b.Tags, b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBlog
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a blog post by ID.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
