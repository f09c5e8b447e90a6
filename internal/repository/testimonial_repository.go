package repository

import (
	"context"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const testimonialColumns = `id, name, post, review, priority, image_url, image_alt,
	created_at, updated_at`

// TestimonialRepository handles testimonial data access.
type TestimonialRepository struct {
	pool *pgxpool.Pool
}

// NewTestimonialRepository creates a new TestimonialRepository.
func NewTestimonialRepository(pool *pgxpool.Pool) *TestimonialRepository {
	return &TestimonialRepository{pool: pool}
}

func scanTestimonial(row pgx.Row) (*model.Testimonial, error) {
	t := &model.Testimonial{}
	err := row.Scan(&t.ID, &t.Name, &t.Post, &t.Review, &t.Priority, &t.ImageURL, &t.ImageAlt,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByID retrieves a testimonial by ID.
func (r *TestimonialRepository) GetByID(ctx context.Context, id int64) (*model.Testimonial, error) {
	return scanTestimonial(r.pool.QueryRow(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
}

// List retrieves all testimonials ordered by priority.
func (r *TestimonialRepository) List(ctx context.Context) ([]model.Testimonial, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY priority DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, *t)
	}
	return testimonials, rows.Err()
}

// Create inserts a new testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO testimonials (name, post, review, priority, image_url, image_alt)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Post, t.Review, t.Priority, t.ImageURL, t.ImageAlt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies a testimonial.
func (r *TestimonialRepository) Update(ctx context.Context, t *model.Testimonial) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE testimonials SET name=$1, post=$2, review=$3, priority=$4, image_url=$5,
		   image_alt=$6, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$7`,
		t.Name, t.Post, t.Review, t.Priority, t.ImageURL, t.ImageAlt, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a testimonial by ID.
func (r *TestimonialRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
