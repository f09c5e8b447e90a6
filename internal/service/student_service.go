package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Student-specific errors.
var (
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrAlreadyApplied   = errors.New("already applied to this university")
	ErrCounselorInvalid = errors.New("counselor does not exist or is not an admin")
)

// StudentService handles student accounts, profiles, wishlists and
// applications.
type StudentService struct {
	store  PrincipalStore
	auth   *AuthService
	mailer Mailer
	log    zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(store PrincipalStore, auth *AuthService, mailer Mailer, log zerolog.Logger) *StudentService {
	return &StudentService{
		store:  store,
		auth:   auth,
		mailer: mailer,
		log:    log.With().Str("service", "student").Logger(),
	}
}

// Register creates an unverified student account and mails the verification
// link.
func (s *StudentService) Register(ctx context.Context, req *model.RegisterStudentRequest) (*model.Principal, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Principal{
		Role:         model.RoleStudent,
		Name:         req.UserName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Category:     req.Category,
		Tests:        req.Tests,
	}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	if err := s.auth.SendVerification(ctx, p); err != nil {
		// The account exists; login retries the mail later.
		s.log.Error().Err(err).Int64("principal_id", p.ID).Msg("verification mail failed")
	}

	s.log.Info().Int64("principal_id", p.ID).Msg("student registered")
	return p, nil
}

// FindOrCreateGoogleStudent resolves an OAuth login: an existing student with
// the Google account's email is returned verified; otherwise a new verified
// student is created with an unusable random password.
func (s *StudentService) FindOrCreateGoogleStudent(ctx context.Context, email, name string) (*model.Principal, error) {
	p, err := s.store.GetByEmail(ctx, model.RoleStudent, email)
	if err == nil {
		if !p.IsVerified {
			// Google has already proven ownership of this address.
			if err := s.store.MarkVerified(ctx, p.ID); err != nil {
				return nil, fmt.Errorf("mark verified: %w", err)
			}
			p.IsVerified = true
		}
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lookup student: %w", err)
	}

	random, _, err := newOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder password: %w", err)
	}
	hash, err := s.auth.HashPassword(random)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	p = &model.Principal{
		Role:         model.RoleStudent,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsVerified:   true,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create google student: %w", err)
	}

	s.log.Info().Int64("principal_id", p.ID).Msg("student created via google oauth")
	return p, nil
}

// GetByID retrieves a student.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*model.Principal, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if p.Role != model.RoleStudent {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

// List retrieves students with pagination.
func (s *StudentService) List(ctx context.Context, page, perPage int) ([]model.Principal, *response.Pagination, error) {
	limit, offset, page, perPage := clampPage(page, perPage)

	students, total, err := s.store.ListByRole(ctx, model.RoleStudent, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Principal{}
	}

	return students, buildPagination(page, perPage, total), nil
}

// ListByCounselor retrieves the students assigned to one counselor.
func (s *StudentService) ListByCounselor(ctx context.Context, counselorID int64) ([]model.Principal, error) {
	students, err := s.store.ListByCounselor(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Principal{}
	}
	return students, nil
}

// UpdateProfile applies a student's self-service profile changes. Zero-value
// fields leave the stored value untouched.
func (s *StudentService) UpdateProfile(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.Principal, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Mobile != "" {
		p.Mobile = req.Mobile
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, fmt.Errorf("parse dob: %w", err)
		}
		p.DOB = &dob
	}
	if req.MaritalStatus != "" {
		p.MaritalStatus = req.MaritalStatus
	}
	if req.WorkExp != "" {
		p.WorkExp = req.WorkExp
	}
	if req.Tests != "" {
		p.Tests = req.Tests
	}
	if req.GPA != "" {
		p.GPA = req.GPA
	}
	if req.Link != "" {
		p.Link = req.Link
	}

	if err := s.store.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateByAdmin applies a staff-initiated student update, including setting
// the status of an existing application.
func (s *StudentService) UpdateByAdmin(ctx context.Context, id int64, req *model.UpdateStudentByAdminRequest) (*model.Principal, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserName != "" {
		p.Name = req.UserName
	}
	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if err := s.store.UpdateAccount(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if req.UniversityID != nil && req.Status != nil {
		if err := s.store.SetApplicationStatus(ctx, id, *req.UniversityID, *req.Status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	return p, nil
}

// AssignCounselor attaches an admin as the student's counselor and notifies
// the counselor by mail.
func (s *StudentService) AssignCounselor(ctx context.Context, studentID, counselorID int64) error {
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	counselor, err := s.store.GetByID(ctx, counselorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCounselorInvalid
		}
		return err
	}
	if counselor.Role != model.RoleAdmin {
		return ErrCounselorInvalid
	}

	if err := s.store.AssignCounselor(ctx, studentID, counselorID); err != nil {
		return err
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Student %s (%s) has been assigned to you.</p>`, counselor.Name, student.Name, student.Email)
	if err := s.mailer.Send(ctx, counselor.Email, "New student assigned", body); err != nil {
		s.log.Error().Err(err).Int64("counselor_id", counselorID).Msg("counselor notification failed")
	}

	s.log.Info().Int64("student_id", studentID).Int64("counselor_id", counselorID).Msg("counselor assigned")
	return nil
}

// Delete removes a student account.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, model.RoleStudent, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPrincipalNotFound
		}
		return err
	}
	return nil
}

// ToggleWishlist adds the university to the student's wishlist, or removes it
// when already present. It reports whether the university ended up listed.
func (s *StudentService) ToggleWishlist(ctx context.Context, studentID, universityID int64) (bool, error) {
	listed, err := s.store.InWishlist(ctx, studentID, universityID)
	if err != nil {
		return false, err
	}
	if listed {
		if err := s.store.RemoveWishlist(ctx, studentID, universityID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.store.AddWishlist(ctx, studentID, universityID); err != nil {
		return false, err
	}
	return true, nil
}

// GetWishlist retrieves the student's wishlist.
func (s *StudentService) GetWishlist(ctx context.Context, studentID int64) ([]model.WishlistItem, error) {
	items, err := s.store.GetWishlist(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.WishlistItem{}
	}
	return items, nil
}

// Apply records an application to a university. Each student applies to a
// given university at most once.
func (s *StudentService) Apply(ctx context.Context, studentID, universityID int64) error {
	applied, err := s.store.HasApplied(ctx, studentID, universityID)
	if err != nil {
		return err
	}
	if applied {
		return ErrAlreadyApplied
	}
	return s.store.AddApplication(ctx, studentID, universityID)
}

// ListApplications retrieves the student's applications.
func (s *StudentService) ListApplications(ctx context.Context, studentID int64) ([]model.Application, error) {
	apps, err := s.store.ListApplications(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}
