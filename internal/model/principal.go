package model

import "time"

// Role identifies the kind of principal. The value is fixed at creation and
// is never client-settable.
type Role string

const (
	RoleStudent    Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "super-admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin || r == RoleSuperadmin
}

// IsStaff reports whether r grants access to admin-gated routes.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Principal is any authenticated actor: a student, an admin or a superadmin.
// The three kinds share one table, tagged by Role; fields below the marker
// are populated for students only.
type Principal struct {
	ID           int64  `json:"id"`
	Role         Role   `json:"role"`
	Name         string `json:"user_name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile,omitempty"`
	PasswordHash string `json:"-"`

	// RefreshToken holds the single live refresh token, or "" when none.
	RefreshToken         string     `json:"-"`
	PasswordResetToken   *string    `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	// Student-only fields.
	IsVerified            bool       `json:"is_verified"`
	MailVerificationToken *string    `json:"-"`
	Category              string     `json:"category,omitempty"`
	GPA                   string     `json:"gpa,omitempty"`
	DOB                   *time.Time `json:"dob,omitempty"`
	MaritalStatus         string     `json:"marital_status,omitempty"`
	WorkExp               string     `json:"work_exp,omitempty"`
	Tests                 string     `json:"tests,omitempty"`
	Link                  string     `json:"link,omitempty"`
	CounselorID           *int64     `json:"counselor_id,omitempty"`
	CounselorName         string     `json:"counselor_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WishlistItem is a university the student bookmarked.
type WishlistItem struct {
	UniversityID int64  `json:"university_id"`
	Name         string `json:"name"`
}

// Application records a student's application to a university. Status is nil
// until a counselor sets it.
type Application struct {
	ID           int64     `json:"id"`
	UniversityID int64     `json:"university_id"`
	Name         string    `json:"name"`
	Status       *string   `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterStudentRequest is the payload for student self-registration.
type RegisterStudentRequest struct {
	UserName string `json:"user_name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Mobile   string `json:"mobile" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,strongpwd,max=128"`
	Category string `json:"category" binding:"omitempty,max=100"`
	Tests    string `json:"tests" binding:"omitempty,max=100"`
}

// LoginRequest is the payload for all three login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// CreateAccountRequest is the payload for superadmin-gated creation of admin
// and superadmin accounts.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Mobile   string `json:"mobile" binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,strongpwd,max=128"`
}

// UpdateAccountRequest updates an admin or superadmin account.
type UpdateAccountRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=100"`
	Email  string `json:"email" binding:"omitempty,email,max=255"`
	Mobile string `json:"mobile" binding:"omitempty,min=6,max=20"`
}

// UpdateProfileRequest is the student self-service profile update.
type UpdateProfileRequest struct {
	Mobile        string `json:"mobile" binding:"omitempty,min=6,max=20"`
	DOB           string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	MaritalStatus string `json:"marital_status" binding:"omitempty,max=50"`
	WorkExp       string `json:"work_exp" binding:"omitempty,max=255"`
	Tests         string `json:"tests" binding:"omitempty,max=100"`
	GPA           string `json:"gpa" binding:"omitempty,max=20"`
	Link          string `json:"link" binding:"omitempty,max=255"`
}

// UpdateStudentByAdminRequest is the admin-initiated student update.
type UpdateStudentByAdminRequest struct {
	UserName     string  `json:"user_name" binding:"omitempty,min=2,max=100"`
	Email        string  `json:"email" binding:"omitempty,email,max=255"`
	Category     string  `json:"category" binding:"omitempty,max=100"`
	UniversityID *int64  `json:"university_id"`
	Status       *string `json:"status" binding:"omitempty,max=50"`
}

// UpdatePasswordRequest changes the authenticated principal's password, or a
// named principal's when issued by staff.
type UpdatePasswordRequest struct {
	ID       *int64 `json:"id"`
	Password string `json:"password" binding:"required,strongpwd,max=128"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ResetPasswordRequest carries the replacement password; the one-shot token
// arrives in the URL.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,strongpwd,max=128"`
}

// AssignCounselorRequest attaches a counselor (an admin) to a student.
type AssignCounselorRequest struct {
	CounselorID int64 `json:"counselor" binding:"required"`
}

// WishlistRequest toggles a university in the student's wishlist.
type WishlistRequest struct {
	UniversityID int64 `json:"wishlist" binding:"required"`
}

// ApplyRequest records an application to a university.
type ApplyRequest struct {
	UniversityID int64 `json:"university" binding:"required"`
}
