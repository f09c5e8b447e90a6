package handler

import (
	"errors"
	"net/http"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/middleware"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// refreshCookieName is the cookie carrying the long-lived refresh token.
const refreshCookieName = "refreshToken"

// AuthHandler handles login, token refresh, logout and the password and
// email-verification flows. One handler serves all three roles; the route
// group fixes the role.
type AuthHandler struct {
	cfg  *config.Config
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, auth: auth}
}

// Login godoc
// POST /api/{user|admin|superadmin}/login
// Verifies credentials, sets the refresh cookie, returns the access token.
func (h *AuthHandler) Login(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.LoginRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}

		p, access, refresh, err := h.auth.Login(c.Request.Context(), role, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrPrincipalNotFound):
				response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			case errors.Is(err, service.ErrInvalidCredentials):
				response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			case errors.Is(err, service.ErrEmailNotVerified):
				response.Fail(c, http.StatusBadRequest, response.ErrEmailNotVerified)
			default:
				response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return
		}

		// The refresh token travels both ways: the cookie serves browser
		// clients, the body serves clients that cannot read cookies.
		h.setRefreshCookie(c, refresh)
		response.Success(c, http.StatusOK, gin.H{
			"token":         access,
			"refresh_token": refresh,
			"user":          p,
		})
	}
}

// Refresh godoc
// GET /api/{user|admin|superadmin}/refresh-token
// Issues a new access token from the refresh cookie. The cookie and the
// stored refresh token are untouched.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookieName)
	if err != nil || refresh == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrCookieMissing)
		return
	}

	access, err := h.auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			response.Fail(c, http.StatusUnauthorized, response.ErrRefreshInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": access})
}

// Logout godoc
// GET /api/{user|admin|superadmin}/logout
// Clears the stored refresh token and expires the cookie. Succeeds whether
// or not a live session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	refresh, _ := c.Cookie(refreshCookieName)

	if err := h.auth.Logout(c.Request.Context(), refresh); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{})
}

// ForgotPassword godoc
// POST /api/{user|admin|superadmin}/forgot-password-token
// Mails a one-shot reset link. The raw token never appears in the response.
func (h *AuthHandler) ForgotPassword(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.ForgotPasswordRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}

		if err := h.auth.ForgotPassword(c.Request.Context(), role, req.Email); err != nil {
			if errors.Is(err, service.ErrPrincipalNotFound) {
				response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
				return
			}
			response.Fail(c, http.StatusInternalServerError, response.ErrMailDelivery)
			return
		}

		response.Success(c, http.StatusOK, gin.H{})
	}
}

// ResetPassword godoc
// PUT /api/{user|admin|superadmin}/reset-password/:token
// Consumes the emailed reset token and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			response.Fail(c, http.StatusBadRequest, response.ErrResetTokenInvalid)
		case errors.Is(err, service.ErrWeakPassword):
			response.Fail(c, http.StatusBadRequest, response.ErrWeakPassword)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// UpdatePassword godoc
// PUT /api/{user|admin|superadmin}/password
// Changes the caller's password, or a named principal's when the caller is
// staff.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdatePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	targetID := p.ID
	if req.ID != nil && *req.ID != p.ID {
		if !p.Role.IsStaff() {
			response.Fail(c, http.StatusForbidden, response.ErrAdminOnly)
			return
		}
		targetID = *req.ID
	}

	if err := h.auth.UpdatePassword(c.Request.Context(), targetID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			response.Fail(c, http.StatusBadRequest, response.ErrWeakPassword)
		case errors.Is(err, service.ErrPrincipalNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// VerifyEmail godoc
// GET /api/user/verify-email/:token
// Marks the account verified and sends the browser to the frontend
// confirmation page.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	_, err := h.auth.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrVerifyTokenInvalid) {
			response.Fail(c, http.StatusBadRequest, response.ErrVerifyTokenInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Redirect(http.StatusFound, h.cfg.FrontendURL+"email-verified")
}

// Me godoc
// GET /api/{user|admin|superadmin}/me
// Returns the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, int(h.cfg.RefreshExpiry.Seconds()), "/", "", h.cfg.GinMode == "release", true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.cfg.GinMode == "release", true)
}
