package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// ErrDuplicateName reports a name collision among staff accounts.
var ErrDuplicateName = errors.New("name is already taken")

// AccountService manages admin and superadmin accounts. Staff are created
// pre-verified; only students go through the email confirmation flow.
type AccountService struct {
	store PrincipalStore
	auth  *AuthService
	log   zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(store PrincipalStore, auth *AuthService, log zerolog.Logger) *AccountService {
	return &AccountService{
		store: store,
		auth:  auth,
		log:   log.With().Str("service", "account").Logger(),
	}
}

// Create inserts a staff account with the given role.
func (s *AccountService) Create(ctx context.Context, role model.Role, req *model.CreateAccountRequest) (*model.Principal, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Principal{
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		IsVerified:   true,
	}
	if err := s.store.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info().Int64("principal_id", p.ID).Str("role", string(role)).Msg("staff account created")
	return p, nil
}

// GetByID retrieves a staff account, checking the role matches.
func (s *AccountService) GetByID(ctx context.Context, role model.Role, id int64) (*model.Principal, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	if p.Role != role {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

// List retrieves staff accounts of one role with pagination.
func (s *AccountService) List(ctx context.Context, role model.Role, page, perPage int) ([]model.Principal, *response.Pagination, error) {
	limit, offset, page, perPage := clampPage(page, perPage)

	accounts, total, err := s.store.ListByRole(ctx, role, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if accounts == nil {
		accounts = []model.Principal{}
	}

	return accounts, buildPagination(page, perPage, total), nil
}

// Update modifies a staff account's contact details.
func (s *AccountService) Update(ctx context.Context, role model.Role, id int64, req *model.UpdateAccountRequest) (*model.Principal, error) {
	p, err := s.GetByID(ctx, role, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Mobile != "" {
		p.Mobile = req.Mobile
	}

	if err := s.store.UpdateAccount(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a staff account.
func (s *AccountService) Delete(ctx context.Context, role model.Role, id int64) error {
	if err := s.store.Delete(ctx, role, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPrincipalNotFound
		}
		return err
	}
	return nil
}
