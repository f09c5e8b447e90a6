package repository

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateCountry = errors.New("country with this name already exists")

const countryColumns = `id, name, priority, image_url, image_alt,
	public_undergraduate, public_masters, private_undergraduate, private_masters,
	general_undergraduate, general_masters, general_mba, created_at, updated_at`

// CountryRepository handles country data access.
type CountryRepository struct {
	pool *pgxpool.Pool
}

// NewCountryRepository creates a new CountryRepository.
func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

func scanCountry(row pgx.Row) (*model.Country, error) {
	c := &model.Country{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Priority, &c.ImageURL, &c.ImageAlt,
		&c.PublicUG, &c.PublicMS, &c.PrivateUG, &c.PrivateMS,
		&c.GeneralUG, &c.GeneralMS, &c.GeneralMBA, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a country by ID.
func (r *CountryRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	return scanCountry(r.pool.QueryRow(ctx,
		`SELECT `+countryColumns+` FROM countries WHERE id = $1`, id))
}

// List retrieves all countries ordered by priority then name.
func (r *CountryRepository) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+countryColumns+` FROM countries ORDER BY priority DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []model.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, *c)
	}
	return countries, rows.Err()
}

// Create inserts a new country.
func (r *CountryRepository) Create(ctx context.Context, c *model.Country) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO countries (name, priority, image_url, image_alt,
		   public_undergraduate, public_masters, private_undergraduate, private_masters,
		   general_undergraduate, general_masters, general_mba)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Priority, c.ImageURL, c.ImageAlt,
		c.PublicUG, c.PublicMS, c.PrivateUG, c.PrivateMS,
		c.GeneralUG, c.GeneralMS, c.GeneralMBA,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCountry
		}
		return err
	}
	return nil
}

// Update modifies a country.
func (r *CountryRepository) Update(ctx context.Context, c *model.Country) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE countries SET name=$1, priority=$2, image_url=$3, image_alt=$4,
		   public_undergraduate=$5, public_masters=$6, private_undergraduate=$7, private_masters=$8,
		   general_undergraduate=$9, general_masters=$10, general_mba=$11, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$12`,
		c.Name, c.Priority, c.ImageURL, c.ImageAlt,
		c.PublicUG, c.PublicMS, c.PrivateUG, c.PrivateMS,
		c.GeneralUG, c.GeneralMS, c.GeneralMBA, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCountry
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a country by ID.
func (r *CountryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
