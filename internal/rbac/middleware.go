package rbac

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/shared/response"
)

// Authorize checks the caller's role (set by the auth middleware) against
// the seeded policy table.
func Authorize(enforcer *casbin.Enforcer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "No role associated with this token", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, obj, act)
		if err != nil {
			zap.L().Named("rbac").Error("enforce failed",
				zap.String("role", role),
				zap.String("obj", obj),
				zap.String("act", act),
				zap.Error(err),
			)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
