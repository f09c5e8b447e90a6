package middleware

import (
	"net/http"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireStaff allows admins and superadmins through. An absent principal
// is treated the same as an insufficient role.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil || !p.Role.IsStaff() {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// RequireSuperadmin allows superadmins only.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil || p.Role != model.RoleSuperadmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrSuperadminOnly)
			return
		}
		c.Next()
	}
}
