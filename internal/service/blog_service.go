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

var ErrDuplicateBlog = errors.New("blog with this slug already exists")

// BlogService handles published articles.
type BlogService struct {
	repo  *repository.BlogRepository
	cache CacheInvalidator
	log   zerolog.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(repo *repository.BlogRepository, cache CacheInvalidator, log zerolog.Logger) *BlogService {
	return &BlogService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("service", "blog").Logger(),
	}
}

func (s *BlogService) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BlogService) List(ctx context.Context, page, perPage int) ([]model.Blog, *response.Pagination, error) {
	limit, offset, page, perPage := clampPage(page, perPage)

	blogs, total, err := s.repo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}

	return blogs, buildPagination(page, perPage, total), nil
}

func (s *BlogService) Create(ctx context.Context, req *model.BlogRequest) (*model.Blog, error) {
	b := blogFromRequest(req)
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateBlog) {
			return nil, ErrDuplicateBlog
		}
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *BlogService) Update(ctx context.Context, id int64, req *model.BlogRequest) (*model.Blog, error) {
	b := blogFromRequest(req)
	b.ID = id
	if err := s.repo.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicateBlog):
			return nil, ErrDuplicateBlog
		}
		return nil, err
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, id)
}

func (s *BlogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *BlogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "blogs"); err != nil {
		s.log.Error().Err(err).Msg("cache invalidation failed")
	}
}

func blogFromRequest(req *model.BlogRequest) *model.Blog {
	return &model.Blog{
		Title:    req.Title,
		Slug:     req.Slug,
		Priority: req.Priority,
		Category: req.Category,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		ImageAlt: req.ImageAlt,
		Tags:     req.Tags,
	}
}
