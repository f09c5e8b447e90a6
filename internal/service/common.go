package service

import (
	"context"
	"errors"

	"github.com/collegeabroad/backend/internal/response"
)

// CacheInvalidator drops cached public responses for a catalog resource after
// a mutation. Satisfied by middleware.ResponseCache.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, resource string) error
}

// ErrNotFound reports that a requested resource does not exist. Handlers map
// it to HTTP 404.
var ErrNotFound = errors.New("resource not found")

// clampPage normalizes pagination input and returns the SQL limit/offset.
func clampPage(page, perPage int) (limit, offset, normPage, normPerPage int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return perPage, (page - 1) * perPage, page, perPage
}

func buildPagination(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
