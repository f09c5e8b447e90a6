package repository

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateUniversity = errors.New("university with this name already exists")

const universityColumns = `u.id, u.name, u.slug, u.priority, u.country_id, c.name,
	u.admission_open, u.category, u.address, u.link, u.email, u.fb, u.insta, u.x,
	u.phone, u.syllabus, u.estd_date, u.dean_msg, u.scholarship, u.content,
	u.test, u.apply_fee, u.image_url, u.logo_url, u.image_alt, u.tags,
	u.created_at, u.updated_at`

// UniversityRepository handles university data access.
type UniversityRepository struct {
	pool *pgxpool.Pool
}

// NewUniversityRepository creates a new UniversityRepository.
func NewUniversityRepository(pool *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{pool: pool}
}

func scanUniversity(row pgx.Row) (*model.University, error) {
	u := &model.University{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Slug, &u.Priority, &u.CountryID, &u.CountryName,
		&u.AdmissionOpen, &u.Category, &u.Address, &u.Link, &u.Email, &u.Facebook, &u.Instagram, &u.X,
		&u.Phone, &u.Syllabus, &u.EstdDate, &u.DeanMsg, &u.Scholarship, &u.Content,
		&u.Test, &u.ApplyFee, &u.ImageURL, &u.LogoURL, &u.ImageAlt, &u.Tags,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a university with its country name.
func (r *UniversityRepository) GetByID(ctx context.Context, id int64) (*model.University, error) {
	return scanUniversity(r.pool.QueryRow(ctx,
		`SELECT `+universityColumns+`
		 FROM universities u JOIN countries c ON c.id = u.country_id
		 WHERE u.id = $1`, id))
}

// ListPaginated retrieves universities ordered by priority then name, with an
// optional country filter.
func (r *UniversityRepository) ListPaginated(ctx context.Context, countryID *int64, limit, offset int) ([]model.University, int, error) {
	countQuery := `SELECT COUNT(*) FROM universities`
	var countArgs []interface{}
	if countryID != nil {
		countQuery += ` WHERE country_id = $1`
		countArgs = append(countArgs, *countryID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + universityColumns + `
		 FROM universities u JOIN countries c ON c.id = u.country_id`
	var args []interface{}
	if countryID != nil {
		query += ` WHERE u.country_id = $1 ORDER BY u.priority DESC, u.name LIMIT $2 OFFSET $3`
		args = append(args, *countryID, limit, offset)
	} else {
		query += ` ORDER BY u.priority DESC, u.name LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var universities []model.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, 0, err
		}
		universities = append(universities, *u)
	}
	return universities, total, rows.Err()
}

// Create inserts a new university.
func (r *UniversityRepository) Create(ctx context.Context, u *model.University) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO universities (name, slug, priority, country_id, admission_open, category,
		   address, link, email, fb, insta, x, phone, syllabus, estd_date, dean_msg,
		   scholarship, content, test, apply_fee, image_url, logo_url, image_alt, tags)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Slug, u.Priority, u.CountryID, u.AdmissionOpen, u.Category,
		u.Address, u.Link, u.Email, u.Facebook, u.Instagram, u.X, u.Phone, u.Syllabus, u.EstdDate, u.DeanMsg,
		u.Scholarship, u.Content, u.Test, u.ApplyFee, u.ImageURL, u.LogoURL, u.ImageAlt, u.Tags,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUniversity
		}
		return err
	}
	return nil
}

// Update modifies a university.
func (r *UniversityRepository) Update(ctx context.Context, u *model.University) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE universities SET name=$1, slug=$2, priority=$3, country_id=$4, admission_open=$5,
		   category=$6, address=$7, link=$8, email=$9, fb=$10, insta=$11, x=$12, phone=$13,
		   syllabus=$14, estd_date=$15, dean_msg=$16, scholarship=$17, content=$18, test=$19,
		   apply_fee=$20, image_url=$21, logo_url=$22, image_alt=$23, tags=$24,
		   updated_at=CURRENT_TIMESTAMP
		 WHERE id=$25`,
		u.Name, u.Slug, u.Priority, u.CountryID, u.AdmissionOpen,
		u.Category, u.Address, u.Link, u.Email, u.Facebook, u.Instagram, u.X, u.Phone,
		u.Syllabus, u.EstdDate, u.DeanMsg, u.Scholarship, u.Content, u.Test,
		u.ApplyFee, u.ImageURL, u.LogoURL, u.ImageAlt, u.Tags, u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUniversity
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a university by ID.
func (r *UniversityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
