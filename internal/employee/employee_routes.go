package employee

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/djval79/careflow-sub001/internal/middleware"
	"github.com/djval79/careflow-sub001/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
	jwtSecret string,
	webhookSecret string,
) {
	webhooks := r.Group("/webhooks")
	webhooks.Use(middleware.RateLimitByIP(rate.Limit(10), 20))
	webhooks.Use(middleware.VerifyWebhookSignature(webhookSecret))
	if rdb != nil {
		webhooks.Use(middleware.Idempotency(rdb))
	}
	{
		webhooks.POST("/employee-sync", handler.SyncWebhook)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(jwtSecret))
	{
		employees.GET("", rbac.Authorize(enforcer, "employee", "read"), handler.GetAll)
	}
}
