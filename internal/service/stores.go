package service

import (
	"context"
	"time"

	"github.com/collegeabroad/backend/internal/model"
)

// PrincipalStore is the persistence surface the account-facing services need.
// It is satisfied by repository.PrincipalRepository; tests provide in-memory
// implementations.
type PrincipalStore interface {
	Create(ctx context.Context, p *model.Principal) error
	GetByID(ctx context.Context, id int64) (*model.Principal, error)
	GetByEmail(ctx context.Context, role model.Role, email string) (*model.Principal, error)
	GetByRefreshToken(ctx context.Context, token string) (*model.Principal, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*model.Principal, error)
	GetByVerificationTokenHash(ctx context.Context, hash string) (*model.Principal, error)
	ListByRole(ctx context.Context, role model.Role, limit, offset int) ([]model.Principal, int, error)
	ListByCounselor(ctx context.Context, counselorID int64) ([]model.Principal, error)
	UpdateProfile(ctx context.Context, p *model.Principal) error
	UpdateAccount(ctx context.Context, p *model.Principal) error
	SetRefreshToken(ctx context.Context, id int64, token string) error
	ClearRefreshTokenByValue(ctx context.Context, token string) error
	SetPassword(ctx context.Context, id int64, passwordHash string) error
	SetResetToken(ctx context.Context, id int64, hash string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, id int64, passwordHash string) error
	SetVerificationToken(ctx context.Context, id int64, hash string) error
	MarkVerified(ctx context.Context, id int64) error
	AssignCounselor(ctx context.Context, studentID, counselorID int64) error
	Delete(ctx context.Context, role model.Role, id int64) error
	InWishlist(ctx context.Context, studentID, universityID int64) (bool, error)
	AddWishlist(ctx context.Context, studentID, universityID int64) error
	RemoveWishlist(ctx context.Context, studentID, universityID int64) error
	GetWishlist(ctx context.Context, studentID int64) ([]model.WishlistItem, error)
	HasApplied(ctx context.Context, studentID, universityID int64) (bool, error)
	AddApplication(ctx context.Context, studentID, universityID int64) error
	ListApplications(ctx context.Context, studentID int64) ([]model.Application, error)
	SetApplicationStatus(ctx context.Context, studentID, universityID int64, status string) error
}

// Mailer delivers transactional email. Satisfied by mail.Mailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
