package deadletter

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
	sync := r.Group("/sync")
	sync.Use(middleware.AuthMiddleware(jwtSecret))
	{
		sync.POST("/retries", rbac.Authorize(enforcer, "sync", "retry"), handler.RetryFailedSyncs)
		sync.GET("/failures", rbac.Authorize(enforcer, "sync", "inspect"), handler.ListFailures)
	}
}
