package leave

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/djval79/careflow-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	jwtSecret string,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(jwtSecret))
	requests.Use(middleware.RateLimitByUser(rate.Limit(5), 10))
	{
		requests.POST("", handler.Submit)
		requests.GET("", handler.GetAll)
		requests.GET("/:id", handler.GetById)
	}
}
