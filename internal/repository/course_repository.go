package repository

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateCourse = errors.New("course with this title already exists")

const courseColumns = `co.id, co.title, co.slug, co.priority, co.category,
	co.university_id, u.name, u.slug, co.qualification, co.earliest_intake,
	co.deadline, co.duration, co.entry_score, co.fee, co.scholarship, co.stream,
	co.overview, co.tags, co.created_at, co.updated_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Priority, &c.Category,
		&c.UniversityID, &c.UniversityName, &c.UniversitySlug, &c.Qualification, &c.EarliestIntake,
		&c.Deadline, &c.Duration, &c.EntryScore, &c.Fee, &c.Scholarship, &c.Stream,
		&c.Overview, &c.Tags, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a course with its university denormalized.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+`
		 FROM courses co JOIN universities u ON u.id = co.university_id
		 WHERE co.id = $1`, id))
}

// GetBySlug retrieves a course by its URL slug.
func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+`
		 FROM courses co JOIN universities u ON u.id = co.university_id
		 WHERE co.slug = $1`, slug))
}

// ListPaginated retrieves courses with an optional university filter.
func (r *CourseRepository) ListPaginated(ctx context.Context, universityID *int64, limit, offset int) ([]model.Course, int, error) {
	countQuery := `SELECT COUNT(*) FROM courses`
	var countArgs []interface{}
	if universityID != nil {
		countQuery += ` WHERE university_id = $1`
		countArgs = append(countArgs, *universityID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + courseColumns + `
		 FROM courses co JOIN universities u ON u.id = co.university_id`
	var args []interface{}
	if universityID != nil {
		query += ` WHERE co.university_id = $1 ORDER BY co.priority DESC, co.title LIMIT $2 OFFSET $3`
		args = append(args, *universityID, limit, offset)
	} else {
		query += ` ORDER BY co.priority DESC, co.title LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *c)
	}
	return courses, total, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, slug, priority, category, university_id, qualification,
		   earliest_intake, deadline, duration, entry_score, fee, scholarship, stream, overview, tags)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Slug, c.Priority, c.Category, c.UniversityID, c.Qualification,
		c.EarliestIntake, c.Deadline, c.Duration, c.EntryScore, c.Fee, c.Scholarship, c.Stream, c.Overview, c.Tags,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourse
		}
		return err
	}
	return nil
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE courses SET title=$1, slug=$2, priority=$3, category=$4, university_id=$5,
		   qualification=$6, earliest_intake=$7, deadline=$8, duration=$9, entry_score=$10,
		   fee=$11, scholarship=$12, stream=$13, overview=$14, tags=$15, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$16`,
		c.Title, c.Slug, c.Priority, c.Category, c.UniversityID,
		c.Qualification, c.EarliestIntake, c.Deadline, c.Duration, c.EntryScore,
		c.Fee, c.Scholarship, c.Stream, c.Overview, c.Tags, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a course by ID.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
