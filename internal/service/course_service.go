package service

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var ErrDuplicateCourse = errors.New("course with this slug already exists")

// CourseService handles the course catalog.
type CourseService struct {
	repo  *repository.CourseRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo *repository.CourseRepository, cache CacheInvalidator, log zerolog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "course").Logger(),
	}
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves courses with pagination and an optional university filter.
func (s *CourseService) List(ctx context.Context, universityID *int64, page, perPage int) ([]model.Course, *response.Pagination, error) {
	limit, offset, page, perPage := clampPage(page, perPage)

	courses, total, err := s.repo.ListPaginated(ctx, universityID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	return courses, buildPagination(page, perPage, total), nil
}

func (s *CourseService) Create(ctx context.Context, req *model.CourseRequest) (*model.Course, error) {
	c := courseFromRequest(req)
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourse) {
			return nil, ErrDuplicateCourse
		}
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id int64, req *model.CourseRequest) (*model.Course, error) {
	c := courseFromRequest(req)
	c.ID = id
	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateCourse):
			return nil, ErrDuplicateCourse
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "courses"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}

func courseFromRequest(req *model.CourseRequest) *model.Course {
	return &model.Course{
		Title:          req.Title,
		Slug:           req.Slug,
		Priority:       req.Priority,
		Category:       req.Category,
		UniversityID:   req.UniversityID,
		Qualification:  req.Qualification,
		EarliestIntake: req.EarliestIntake,
		Deadline:       req.Deadline,
		Duration:       req.Duration,
		EntryScore:     req.EntryScore,
		Fee:            req.Fee,
		Scholarship:    req.Scholarship,
		Stream:         req.Stream,
		Overview:       req.Overview,
		Tags:           req.Tags,
	}
}
