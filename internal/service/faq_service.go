package service

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// FaqService handles the FAQ catalog.
type FaqService struct {
	repo  *repository.FaqRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewFaqService creates a new FaqService.
func NewFaqService(repo *repository.FaqRepository, cache CacheInvalidator, log zerolog.Logger) *FaqService {
	return &FaqService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "faq").Logger(),
	}
}

func (s *FaqService) GetByID(ctx context.Context, id int64) (*model.Faq, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List retrieves FAQs, optionally scoped to one country.
func (s *FaqService) List(ctx context.Context, countryID *int64) ([]model.Faq, error) {
	faqs, err := s.repo.List(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if faqs == nil {
		faqs = []model.Faq{}
	}
	return faqs, nil
}

func (s *FaqService) Create(ctx context.Context, req *model.FaqRequest) (*model.Faq, error) {
	f := &model.Faq{
		Ques:      req.Ques,
		Ans:       req.Ans,
		CountryID: req.CountryID,
		Priority:  req.Priority,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return f, nil
}

func (s *FaqService) Update(ctx context.Context, id int64, req *model.FaqRequest) (*model.Faq, error) {
	f := &model.Faq{
		ID:        id,
		Ques:      req.Ques,
		Ans:       req.Ans,
		CountryID: req.CountryID,
		Priority:  req.Priority,
	}
	if err := s.repo.Update(ctx, f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *FaqService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FaqService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "faqs"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}
