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

var ErrDuplicateUniversity = errors.New("university with this slug already exists")

// UniversityService handles the university catalog.
type UniversityService struct {
	repo  *repository.UniversityRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewUniversityService creates a new UniversityService.
func NewUniversityService(repo *repository.UniversityRepository, cache CacheInvalidator, log zerolog.Logger) *UniversityService {
	return &UniversityService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "university").Logger(),
	}
}

func (s *UniversityService) GetByID(ctx context.Context, id int64) (*model.University, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// List retrieves universities with pagination and an optional country filter.
func (s *UniversityService) List(ctx context.Context, countryID *int64, page, perPage int) ([]model.University, *response.Pagination, error) {
	limit, offset, page, perPage := clampPage(page, perPage)

	universities, total, err := s.repo.ListPaginated(ctx, countryID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if universities == nil {
		universities = []model.University{}
	}

	return universities, buildPagination(page, perPage, total), nil
}

func (s *UniversityService) Create(ctx context.Context, req *model.UniversityRequest) (*model.University, error) {
	u, err := universityFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateUniversity) {
			return nil, ErrDuplicateUniversity
		}
		return nil, err
	}
	s.invalidate(ctx)
	return u, nil
}

func (s *UniversityService) Update(ctx context.Context, id int64, req *model.UniversityRequest) (*model.University, error) {
	u, err := universityFromRequest(req)
	if err != nil {
		return nil, err
	}
	u.ID = id
	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateUniversity):
			return nil, ErrDuplicateUniversity
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *UniversityService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *UniversityService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "universities"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}

func universityFromRequest(req *model.UniversityRequest) (*model.University, error) {
	u := &model.University{
		Name:          req.Name,
		Slug:          req.Slug,
		Priority:      req.Priority,
		CountryID:     req.CountryID,
		AdmissionOpen: req.AdmissionOpen,
		Category:      req.Category,
		Address:       req.Address,
		Link:          req.Link,
		Email:         req.Email,
		Facebook:      req.Facebook,
		Instagram:     req.Instagram,
		X:             req.X,
		Phone:         req.Phone,
		Syllabus:      req.Syllabus,
		DeanMsg:       req.DeanMsg,
		Scholarship:   req.Scholarship,
		Content:       req.Content,
		Test:          req.Test,
		ApplyFee:      req.ApplyFee,
		ImageURL:      req.ImageURL,
		LogoURL:       req.LogoURL,
		ImageAlt:      req.ImageAlt,
		Tags:          req.Tags,
	}
	if req.EstdDate != "" {
		estd, err := time.Parse("2006-01-02", req.EstdDate)
		if err != nil {
			return nil, fmt.Errorf("parse estd_date: %w", err)
		}
		u.EstdDate = &estd
	}
	return u, nil
}
