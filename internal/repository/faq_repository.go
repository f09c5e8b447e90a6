package repository

import (
	"context"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const faqColumns = `f.id, f.ques, f.ans, f.country_id, COALESCE(c.name, ''), f.priority,
	f.created_at, f.updated_at`

// FaqRepository handles FAQ data access.
type FaqRepository struct {
	pool *pgxpool.Pool
}

// NewFaqRepository creates a new FaqRepository.
func NewFaqRepository(pool *pgxpool.Pool) *FaqRepository {
	return &FaqRepository{pool: pool}
}

func scanFaq(row pgx.Row) (*model.Faq, error) {
	f := &model.Faq{}
	err := row.Scan(&f.ID, &f.Ques, &f.Ans, &f.CountryID, &f.CountryName, &f.Priority,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// GetByID retrieves an FAQ entry by ID.
func (r *FaqRepository) GetByID(ctx context.Context, id int64) (*model.Faq, error) {
	return scanFaq(r.pool.QueryRow(ctx,
		`SELECT `+faqColumns+`
		 FROM faqs f LEFT JOIN countries c ON c.id = f.country_id
		 WHERE f.id = $1`, id))
}

// List retrieves FAQ entries, optionally scoped to a country.
func (r *FaqRepository) List(ctx context.Context, countryID *int64) ([]model.Faq, error) {
	query := `SELECT ` + faqColumns + `
		 FROM faqs f LEFT JOIN countries c ON c.id = f.country_id`
	var args []interface{}
	if countryID != nil {
		query += ` WHERE f.country_id = $1`
		args = append(args, *countryID)
	}
	query += ` ORDER BY f.priority DESC, f.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faqs []model.Faq
	for rows.Next() {
		f, err := scanFaq(rows)
		if err != nil {
			return nil, err
		}
		faqs = append(faqs, *f)
	}
	return faqs, rows.Err()
}

// Create inserts a new FAQ entry.
func (r *FaqRepository) Create(ctx context.Context, f *model.Faq) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO faqs (ques, ans, country_id, priority)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		f.Ques, f.Ans, f.CountryID, f.Priority,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// Update modifies an FAQ entry.
func (r *FaqRepository) Update(ctx context.Context, f *model.Faq) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE faqs SET ques=$1, ans=$2, country_id=$3, priority=$4, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$5`,
		f.Ques, f.Ans, f.CountryID, f.Priority, f.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an FAQ entry by ID.
func (r *FaqRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
