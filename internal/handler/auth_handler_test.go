package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// loginStore backs a single principal; only the login path's methods are
// implemented.
type loginStore struct {
	service.PrincipalStore
	principal    *model.Principal
	refreshToken string
}

func (s *loginStore) GetByEmail(_ context.Context, role model.Role, email string) (*model.Principal, error) {
	if s.principal.Role == role && s.principal.Email == email {
		cp := *s.principal
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *loginStore) SetRefreshToken(_ context.Context, id int64, token string) error {
	s.refreshToken = token
	return nil
}

type silentMailer struct{}

func (silentMailer) Send(context.Context, string, string, string) error { return nil }

func TestLoginResponseCarriesTokenPair(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		RefreshExpiry: 72 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret!1"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &loginStore{principal: &model.Principal{
		ID:           7,
		Role:         model.RoleStudent,
		Name:         "S",
		Email:        "s@test",
		PasswordHash: string(hash),
		IsVerified:   true,
	}}
	auth := service.NewAuthService(cfg, store, silentMailer{}, zerolog.Nop())
	h := NewAuthHandler(cfg, auth)

	r := gin.New()
	r.POST("/login", h.Login(model.RoleStudent))

	payload, _ := json.Marshal(map[string]string{"email": "s@test", "password": "Secret!1"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token"`
			User         struct {
				ID    int64  `json:"id"`
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)
	require.NotEmpty(t, body.Data.RefreshToken)
	require.Equal(t, int64(7), body.Data.User.ID)

	// The body's refresh token is the one persisted and set as the cookie.
	require.Equal(t, store.refreshToken, body.Data.RefreshToken)
	cookieToken := ""
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookieName {
			cookieToken = c.Value
		}
	}
	require.Equal(t, body.Data.RefreshToken, cookieToken)
}
