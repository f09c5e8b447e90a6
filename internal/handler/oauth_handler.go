package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// oauthStateCookie holds the CSRF state between the redirect to Google and
// the callback.
const oauthStateCookie = "oauthState"

// OAuthHandler drives the Google login flow for students.
type OAuthHandler struct {
	cfg      *config.Config
	oauth    *service.GoogleOAuthService
	students *service.StudentService
	auth     *service.AuthService
}

// NewOAuthHandler creates a new OAuthHandler.
func NewOAuthHandler(cfg *config.Config, oauth *service.GoogleOAuthService, students *service.StudentService, auth *service.AuthService) *OAuthHandler {
	return &OAuthHandler{cfg: cfg, oauth: oauth, students: students, auth: auth}
}

// Login godoc
// GET /api/user/google/login
// Sends the browser to the Google consent screen.
func (h *OAuthHandler) Login(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	state := hex.EncodeToString(buf)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cfg.GinMode == "release", true)
	c.Redirect(http.StatusFound, h.oauth.AuthURL(state))
}

// Callback godoc
// GET /api/user/google/callback
// Verifies the CSRF state, resolves the Google profile to a student account
// and issues the normal token pair.
func (h *OAuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.GinMode == "release", true)

	code := c.Query("code")
	if code == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	profile, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	p, err := h.students.FindOrCreateGoogleStudent(c.Request.Context(), profile.Email, profile.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	access, err := h.auth.IssueAccessToken(p.ID, p.Role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	refresh, err := h.auth.IssueRefreshToken(p.ID, p.Role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.auth.PersistRefreshToken(c.Request.Context(), p.ID, refresh); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, refresh, int(h.cfg.RefreshExpiry.Seconds()), "/", "", h.cfg.GinMode == "release", true)

	response.Success(c, http.StatusOK, gin.H{
		"token":         access,
		"refresh_token": refresh,
		"user":          p,
	})
}
