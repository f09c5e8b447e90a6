package repository

import (
	"context"
	"errors"
	"time"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateEmail = errors.New("principal with this email already exists")
	ErrDuplicateName  = errors.New("principal with this name already exists")
)

const principalColumns = `id, role, name, email, mobile, password_hash, refresh_token,
	password_reset_token, password_reset_expires,
	is_verified, mail_verification_token, category, gpa, dob, marital_status,
	work_exp, tests, link, counselor_id, created_at, updated_at`

// PrincipalRepository handles principal data access. Students, admins and
// superadmins share one table, distinguished by the role column.
type PrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository creates a new PrincipalRepository.
func NewPrincipalRepository(pool *pgxpool.Pool) *PrincipalRepository {
	return &PrincipalRepository{pool: pool}
}

func scanPrincipal(row pgx.Row) (*model.Principal, error) {
	p := &model.Principal{}
	err := row.Scan(
		&p.ID, &p.Role, &p.Name, &p.Email, &p.Mobile, &p.PasswordHash, &p.RefreshToken,
		&p.PasswordResetToken, &p.PasswordResetExpires,
		&p.IsVerified, &p.MailVerificationToken, &p.Category, &p.GPA, &p.DOB, &p.MaritalStatus,
		&p.WorkExp, &p.Tests, &p.Link, &p.CounselorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "principals_role_name_key" {
			return ErrDuplicateName
		}
		return ErrDuplicateEmail
	}
	return err
}

// Create inserts a new principal. The password must already be hashed.
func (r *PrincipalRepository) Create(ctx context.Context, p *model.Principal) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO principals (role, name, email, mobile, password_hash, is_verified,
		   mail_verification_token, category, tests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.Role, p.Name, p.Email, p.Mobile, p.PasswordHash, p.IsVerified,
		p.MailVerificationToken, p.Category, p.Tests,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapDuplicate(err)
	}
	return nil
}

// GetByID retrieves a principal by its unique id, regardless of role.
func (r *PrincipalRepository) GetByID(ctx context.Context, id int64) (*model.Principal, error) {
	return scanPrincipal(r.pool.QueryRow(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE id = $1`, id))
}

// GetByEmail retrieves a principal by email within one role. Login endpoints
// are role-scoped, so email uniqueness holds per role, not globally.
func (r *PrincipalRepository) GetByEmail(ctx context.Context, role model.Role, email string) (*model.Principal, error) {
	return scanPrincipal(r.pool.QueryRow(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE role = $1 AND email = $2`, role, email))
}

// GetByRefreshToken retrieves the principal holding the exact refresh token
// value, if any.
func (r *PrincipalRepository) GetByRefreshToken(ctx context.Context, token string) (*model.Principal, error) {
	return scanPrincipal(r.pool.QueryRow(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE refresh_token = $1 AND refresh_token <> ''`, token))
}

// GetByResetTokenHash retrieves the principal whose stored reset-token hash
// matches and whose expiry is still in the future. Expired and unknown hashes
// are indistinguishable to callers.
func (r *PrincipalRepository) GetByResetTokenHash(ctx context.Context, hash string) (*model.Principal, error) {
	return scanPrincipal(r.pool.QueryRow(ctx,
		`SELECT `+principalColumns+` FROM principals
		 WHERE password_reset_token = $1 AND password_reset_expires > now()`, hash))
}

// GetByVerificationTokenHash retrieves the student holding the given mail
// verification token hash.
func (r *PrincipalRepository) GetByVerificationTokenHash(ctx context.Context, hash string) (*model.Principal, error) {
	return scanPrincipal(r.pool.QueryRow(ctx,
		`SELECT `+principalColumns+` FROM principals
		 WHERE role = $1 AND mail_verification_token = $2`, model.RoleStudent, hash))
}

// ListByRole retrieves principals of one role with pagination, counselor name
// joined for students.
func (r *PrincipalRepository) ListByRole(ctx context.Context, role model.Role, limit, offset int) ([]model.Principal, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM principals WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.role, p.name, p.email, p.mobile, p.password_hash, p.refresh_token,
		   p.password_reset_token, p.password_reset_expires,
		   p.is_verified, p.mail_verification_token, p.category, p.gpa, p.dob, p.marital_status,
		   p.work_exp, p.tests, p.link, p.counselor_id, p.created_at, p.updated_at,
		   COALESCE(c.name, '')
		 FROM principals p
		 LEFT JOIN principals c ON c.id = p.counselor_id
		 WHERE p.role = $1
		 ORDER BY p.name LIMIT $2 OFFSET $3`, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var principals []model.Principal
	for rows.Next() {
		var p model.Principal
		if err := rows.Scan(
			&p.ID, &p.Role, &p.Name, &p.Email, &p.Mobile, &p.PasswordHash, &p.RefreshToken,
			&p.PasswordResetToken, &p.PasswordResetExpires,
			&p.IsVerified, &p.MailVerificationToken, &p.Category, &p.GPA, &p.DOB, &p.MaritalStatus,
			&p.WorkExp, &p.Tests, &p.Link, &p.CounselorID, &p.CreatedAt, &p.UpdatedAt,
			&p.CounselorName,
		); err != nil {
			return nil, 0, err
		}
		principals = append(principals, p)
	}
	return principals, total, rows.Err()
}

// ListByCounselor retrieves the students assigned to one counselor.
func (r *PrincipalRepository) ListByCounselor(ctx context.Context, counselorID int64) ([]model.Principal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+principalColumns+` FROM principals
		 WHERE role = $1 AND counselor_id = $2 ORDER BY name`, model.RoleStudent, counselorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Principal
	for rows.Next() {
		p, err := scanPrincipal(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *p)
	}
	return students, rows.Err()
}

// UpdateProfile writes the student self-service profile fields.
func (r *PrincipalRepository) UpdateProfile(ctx context.Context, p *model.Principal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE principals SET mobile = $1, dob = $2, marital_status = $3, work_exp = $4,
		   tests = $5, gpa = $6, link = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		p.Mobile, p.DOB, p.MaritalStatus, p.WorkExp, p.Tests, p.GPA, p.Link, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateAccount writes name/email/mobile for any principal.
func (r *PrincipalRepository) UpdateAccount(ctx context.Context, p *model.Principal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE principals SET name = $1, email = $2, mobile = $3, category = $4,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		p.Name, p.Email, p.Mobile, p.Category, p.ID)
	if err != nil {
		return mapDuplicate(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetRefreshToken overwrites the stored refresh token; a newer login
// invalidates the previous session by overwrite.
func (r *PrincipalRepository) SetRefreshToken(ctx context.Context, id int64, token string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET refresh_token = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		token, id)
	return err
}

// ClearRefreshTokenByValue blanks the refresh token wherever it matches the
// given value. Clearing a token nobody holds is a no-op, which keeps logout
// idempotent.
func (r *PrincipalRepository) ClearRefreshTokenByValue(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET refresh_token = '', updated_at = CURRENT_TIMESTAMP
		 WHERE refresh_token = $1`, token)
	return err
}

// SetPassword replaces the stored password hash.
func (r *PrincipalRepository) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE principals SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetResetToken stores the reset-token hash and its absolute expiry.
func (r *PrincipalRepository) SetResetToken(ctx context.Context, id int64, hash string, expires time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET password_reset_token = $1, password_reset_expires = $2,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`, hash, expires, id)
	return err
}

// ConsumeResetToken replaces the password and clears the one-shot reset
// fields in a single statement.
func (r *PrincipalRepository) ConsumeResetToken(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET password_hash = $1, password_reset_token = NULL,
		   password_reset_expires = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2`, passwordHash, id)
	return err
}

// SetVerificationToken stores a fresh mail-verification token hash.
func (r *PrincipalRepository) SetVerificationToken(ctx context.Context, id int64, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET mail_verification_token = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2`, hash, id)
	return err
}

// MarkVerified flips the student to verified and clears the one-shot token.
func (r *PrincipalRepository) MarkVerified(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE principals SET is_verified = TRUE, mail_verification_token = NULL,
		   updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`, id)
	return err
}

// AssignCounselor attaches an admin principal to a student.
func (r *PrincipalRepository) AssignCounselor(ctx context.Context, studentID, counselorID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE principals SET counselor_id = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND role = $3`, counselorID, studentID, model.RoleStudent)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a principal of the given role. Deleting an id that does not
// exist reports pgx.ErrNoRows so handlers can answer 404 uniformly.
func (r *PrincipalRepository) Delete(ctx context.Context, role model.Role, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM principals WHERE id = $1 AND role = $2`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Wishlist ──────────────────────────────────────────────────────────────

// InWishlist reports whether the student already bookmarked the university.
func (r *PrincipalRepository) InWishlist(ctx context.Context, studentID, universityID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlists WHERE student_id = $1 AND university_id = $2)`,
		studentID, universityID).Scan(&exists)
	return exists, err
}

// AddWishlist bookmarks a university for the student.
func (r *PrincipalRepository) AddWishlist(ctx context.Context, studentID, universityID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wishlists (student_id, university_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, studentID, universityID)
	return err
}

// RemoveWishlist drops a bookmark.
func (r *PrincipalRepository) RemoveWishlist(ctx context.Context, studentID, universityID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlists WHERE student_id = $1 AND university_id = $2`,
		studentID, universityID)
	return err
}

// GetWishlist lists the student's bookmarked universities.
func (r *PrincipalRepository) GetWishlist(ctx context.Context, studentID int64) ([]model.WishlistItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name FROM wishlists w
		 JOIN universities u ON u.id = w.university_id
		 WHERE w.student_id = $1 ORDER BY u.name`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var it model.WishlistItem
		if err := rows.Scan(&it.UniversityID, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ─── Applications ──────────────────────────────────────────────────────────

// HasApplied reports whether the student already applied to the university.
func (r *PrincipalRepository) HasApplied(ctx context.Context, studentID, universityID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND university_id = $2)`,
		studentID, universityID).Scan(&exists)
	return exists, err
}

// AddApplication records a new application with no status yet.
func (r *PrincipalRepository) AddApplication(ctx context.Context, studentID, universityID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO applications (student_id, university_id) VALUES ($1, $2)`,
		studentID, universityID)
	return err
}

// ListApplications lists the student's applications with university names.
func (r *PrincipalRepository) ListApplications(ctx context.Context, studentID int64) ([]model.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.university_id, u.name, a.status, a.created_at
		 FROM applications a
		 JOIN universities u ON u.id = a.university_id
		 WHERE a.student_id = $1 ORDER BY a.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.UniversityID, &a.Name, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// SetApplicationStatus updates one application's status (admin path).
func (r *PrincipalRepository) SetApplicationStatus(ctx context.Context, studentID, universityID int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE student_id = $2 AND university_id = $3`,
		status, studentID, universityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
