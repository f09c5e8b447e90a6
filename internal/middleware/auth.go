package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	// ContextKeyPrincipal is the Gin context key for the resolved principal.
	ContextKeyPrincipal = "principal"
)

// PrincipalLookup resolves an authenticated account by ID.
type PrincipalLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Principal, error)
}

// RequireAuth validates the access token from the Authorization header and
// loads the principal it names. The role claim selects it without probing;
// one lookup by primary key resolves any of the three roles.
func RequireAuth(auth *service.AuthService, store PrincipalLookup, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug().Str("path", c.Request.URL.Path).Msg("authorization header missing")
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		// A header in the wrong shape is a bad credential, not a missing one.
		tokenStr := bearerToken(authHeader)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		id, err := claims.SubjectID()
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		p, err := store.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrUserNotFound)
				return
			}
			log.Error().Err(err).Int64("principal_id", id).Msg("principal lookup failed")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		// The token's role claim must still match the stored account.
		if p.Role != claims.Role {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyPrincipal, p)
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from the Gin context.
func GetPrincipal(c *gin.Context) *model.Principal {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil
	}
	p, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
