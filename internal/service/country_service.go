package service

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var ErrDuplicateCountry = errors.New("country with this name already exists")

// CountryService handles the destination-country catalog. The list is small
// and unpaginated.
type CountryService struct {
	repo  *repository.CountryRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewCountryService creates a new CountryService.
func NewCountryService(repo *repository.CountryRepository, cache CacheInvalidator, log zerolog.Logger) *CountryService {
	return &CountryService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "country").Logger(),
	}
}

func (s *CountryService) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CountryService) List(ctx context.Context) ([]model.Country, error) {
	countries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if countries == nil {
		countries = []model.Country{}
	}
	return countries, nil
}

func (s *CountryService) Create(ctx context.Context, req *model.CountryRequest) (*model.Country, error) {
	c := countryFromRequest(req)
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateCountry) {
			return nil, ErrDuplicateCountry
		}
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CountryService) Update(ctx context.Context, id int64, req *model.CountryRequest) (*model.Country, error) {
	c := countryFromRequest(req)
	c.ID = id
	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateCountry):
			return nil, ErrDuplicateCountry
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *CountryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CountryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "countries"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}

func countryFromRequest(req *model.CountryRequest) *model.Country {
	return &model.Country{
		Name:       req.Name,
		Priority:   req.Priority,
		ImageURL:   req.ImageURL,
		ImageAlt:   req.ImageAlt,
		PublicUG:   req.PublicUG,
		PublicMS:   req.PublicMS,
		PrivateUG:  req.PrivateUG,
		PrivateMS:  req.PrivateMS,
		GeneralUG:  req.GeneralUG,
		GeneralMS:  req.GeneralMS,
		GeneralMBA: req.GeneralMBA,
	}
}
