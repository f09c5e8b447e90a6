package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampPage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                 string
		page, perPage        int
		limit, offset, nPage int
	}{
		{"defaults", 0, 0, 10, 0, 1},
		{"negative page", -3, 5, 5, 0, 1},
		{"second page", 2, 10, 10, 10, 2},
		{"per page capped", 1, 500, 100, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			limit, offset, page, perPage := clampPage(tc.page, tc.perPage)
			require.Equal(t, tc.limit, limit)
			require.Equal(t, tc.offset, offset)
			require.Equal(t, tc.nPage, page)
			require.Equal(t, tc.limit, perPage)
		})
	}
}

func TestBuildPagination(t *testing.T) {
	t.Parallel()

	p := buildPagination(2, 10, 25)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 10, p.PerPage)
	require.Equal(t, 25, p.TotalItems)
	require.Equal(t, 3, p.TotalPages)
}
