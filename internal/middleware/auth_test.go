package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeLookup resolves principals from a fixed map.
type fakeLookup struct {
	byID map[int64]*model.Principal
}

func (f *fakeLookup) GetByID(_ context.Context, id int64) (*model.Principal, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

// nullStore satisfies service.PrincipalStore for token-only AuthService use.
type nullStore struct{ service.PrincipalStore }

type nullMailer struct{}

func (nullMailer) Send(context.Context, string, string, string) error { return nil }

func newTestAuthService() *service.AuthService {
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		RefreshExpiry: 72 * time.Hour,
	}
	return service.NewAuthService(cfg, nullStore{}, nullMailer{}, zerolog.Nop())
}

func authRig(t *testing.T, lookup PrincipalLookup, extra ...gin.HandlerFunc) (*service.AuthService, *gin.Engine) {
	t.Helper()
	auth := newTestAuthService()
	r := gin.New()
	chain := append([]gin.HandlerFunc{RequireAuth(auth, lookup, zerolog.Nop())}, extra...)
	chain = append(chain, func(c *gin.Context) {
		p := GetPrincipal(c)
		require.NotNil(t, p)
		c.JSON(http.StatusOK, gin.H{"id": p.ID})
	})
	r.GET("/protected", chain...)
	return auth, r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Message
}

func TestRequireAuth(t *testing.T) {
	student := &model.Principal{ID: 1, Role: model.RoleStudent, Name: "S", Email: "s@test"}
	lookup := &fakeLookup{byID: map[int64]*model.Principal{1: student}}

	t.Run("missing header", func(t *testing.T) {
		_, r := authRig(t, lookup)
		w := do(r, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Authorization header is missing", errorMessage(t, w))
	})

	t.Run("malformed header is a bad credential", func(t *testing.T) {
		_, r := authRig(t, lookup)
		for _, header := range []string{"Token abc", "Bearer"} {
			w := do(r, header)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, "Token is invalid or expired", errorMessage(t, w))
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		_, r := authRig(t, lookup)
		w := do(r, "Bearer not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Token is invalid or expired", errorMessage(t, w))
	})

	t.Run("token for a deleted account", func(t *testing.T) {
		auth, r := authRig(t, lookup)
		token, err := auth.IssueAccessToken(999, model.RoleStudent)
		require.NoError(t, err)
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "User not found", errorMessage(t, w))
	})

	t.Run("role claim mismatch", func(t *testing.T) {
		auth, r := authRig(t, lookup)
		// Claims say admin; the stored account is a student.
		token, err := auth.IssueAccessToken(1, model.RoleAdmin)
		require.NoError(t, err)
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Token is invalid or expired", errorMessage(t, w))
	})

	t.Run("valid token passes and lowercase scheme works", func(t *testing.T) {
		auth, r := authRig(t, lookup)
		token, err := auth.IssueAccessToken(1, model.RoleStudent)
		require.NoError(t, err)

		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)

		w = do(r, "bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	student := &model.Principal{ID: 1, Role: model.RoleStudent}
	admin := &model.Principal{ID: 2, Role: model.RoleAdmin}
	superadmin := &model.Principal{ID: 3, Role: model.RoleSuperadmin}
	lookup := &fakeLookup{byID: map[int64]*model.Principal{1: student, 2: admin, 3: superadmin}}

	t.Run("student forbidden", func(t *testing.T) {
		auth, r := authRig(t, lookup, RequireStaff())
		token, err := auth.IssueAccessToken(1, model.RoleStudent)
		require.NoError(t, err)
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "Access denied. Only Admin or Super Admin allowed.", errorMessage(t, w))
	})

	t.Run("admin and superadmin pass", func(t *testing.T) {
		auth, r := authRig(t, lookup, RequireStaff())
		for _, id := range []int64{2, 3} {
			token, err := auth.IssueAccessToken(id, lookup.byID[id].Role)
			require.NoError(t, err)
			w := do(r, "Bearer "+token)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("absent principal forbidden", func(t *testing.T) {
		r := gin.New()
		r.GET("/protected", RequireStaff(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := do(r, "")
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "Access denied. Only Admin or Super Admin allowed.", errorMessage(t, w))
	})
}

func TestRequireSuperadmin(t *testing.T) {
	admin := &model.Principal{ID: 2, Role: model.RoleAdmin}
	superadmin := &model.Principal{ID: 3, Role: model.RoleSuperadmin}
	lookup := &fakeLookup{byID: map[int64]*model.Principal{2: admin, 3: superadmin}}

	t.Run("admin forbidden", func(t *testing.T) {
		auth, r := authRig(t, lookup, RequireSuperadmin())
		token, err := auth.IssueAccessToken(2, model.RoleAdmin)
		require.NoError(t, err)
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "Only Super Admin allowed.", errorMessage(t, w))
	})

	t.Run("superadmin passes", func(t *testing.T) {
		auth, r := authRig(t, lookup, RequireSuperadmin())
		token, err := auth.IssueAccessToken(3, model.RoleSuperadmin)
		require.NoError(t, err)
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("absent principal forbidden", func(t *testing.T) {
		r := gin.New()
		r.GET("/protected", RequireSuperadmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := do(r, "")
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "Only Super Admin allowed.", errorMessage(t, w))
	})
}
