package leaverule

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/djval79/careflow-sub001/internal/middleware"
	"github.com/djval79/careflow-sub001/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	jwtSecret string,
) {
	rules := r.Group("/leave-rules")
	rules.Use(middleware.AuthMiddleware(jwtSecret))
	{
		rules.GET("", rbac.Authorize(enforcer, "leave_rule", "read"), handler.GetAll)
		rules.GET("/:id", rbac.Authorize(enforcer, "leave_rule", "read"), handler.GetById)
		rules.POST("", rbac.Authorize(enforcer, "leave_rule", "manage"), handler.Create)
		rules.PUT("/:id", rbac.Authorize(enforcer, "leave_rule", "manage"), handler.Update)
		rules.DELETE("/:id", rbac.Authorize(enforcer, "leave_rule", "manage"), handler.Delete)
	}
}
