package service

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TestimonialService handles published client reviews.
type TestimonialService struct {
	repo  *repository.TestimonialRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(repo *repository.TestimonialRepository, cache CacheInvalidator, log zerolog.Logger) *TestimonialService {
	return &TestimonialService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "testimonial").Logger(),
	}
}

func (s *TestimonialService) GetByID(ctx context.Context, id int64) (*model.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) List(ctx context.Context) ([]model.Testimonial, error) {
	testimonials, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}
	return testimonials, nil
}

func (s *TestimonialService) Create(ctx context.Context, req *model.TestimonialRequest) (*model.Testimonial, error) {
	t := testimonialFromRequest(req)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

func (s *TestimonialService) Update(ctx context.Context, id int64, req *model.TestimonialRequest) (*model.Testimonial, error) {
	t := testimonialFromRequest(req)
	t.ID = id
	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *TestimonialService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TestimonialService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "testimonials"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}

func testimonialFromRequest(req *model.TestimonialRequest) *model.Testimonial {
	return &model.Testimonial{
		Name:     req.Name,
		Post:     req.Post,
		Review:   req.Review,
		Priority: req.Priority,
		ImageURL: req.ImageURL,
		ImageAlt: req.ImageAlt,
	}
}
