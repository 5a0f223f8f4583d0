package employee

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/deadletter"
	"github.com/djval79/careflow-sub001/internal/shared/apperror"
	"github.com/djval79/careflow-sub001/internal/shared/response"
)

type Handler struct {
	service  SyncService
	recorder *deadletter.Recorder
	rdb      *redis.Client
	logger   *zap.Logger
}

func NewHandler(service SyncService, recorder *deadletter.Recorder, logger ...*zap.Logger) *Handler {
	return NewHandlerWithRedis(service, recorder, nil, logger...)
}

func NewHandlerWithRedis(
	service SyncService,
	recorder *deadletter.Recorder,
	rdb *redis.Client,
	logger ...*zap.Logger,
) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, recorder: recorder, rdb: rdb, logger: l}
}

// SyncWebhook ingests one employee payload from the external HR system.
// Validation failures are rejected with no side effects; failures past
// validation are recorded to the dead-letter queue for the sweeper.
func (h *Handler) SyncWebhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unable to read request body"})
		return
	}

	payload, err := ParsePayload(raw)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("sync payload rejected", zap.String("message", httpErr.Message))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": httpErr.Message})
		return
	}

	if err := h.service.Process(c.Request.Context(), payload); err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Error("sync processing failed",
			zap.String("action", payload.Action),
			zap.Int64("external_id", payload.Employee.ExternalID),
			zap.String("code", httpErr.Code),
			zap.Error(err),
		)

		// best-effort: a dead-letter outage must not change the response
		h.recorder.Record(c.Request.Context(), raw, err.Error())

		c.JSON(httpErr.Status, gin.H{"success": false, "error": httpErr.Message})
		return
	}

	message := "employee sync processed"
	h.completeIdempotency(c, message)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func (h *Handler) completeIdempotency(c *gin.Context, message string) {
	if h.rdb == nil {
		return
	}

	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" {
		return
	}

	ctx := c.Request.Context()
	if err := h.rdb.Set(ctx, cacheKey, message, 24*time.Hour).Err(); err != nil {
		h.logger.Warn("store idempotency result failed", zap.Error(err))
	}
	if lockKey != "" {
		if err := h.rdb.Del(ctx, lockKey).Err(); err != nil {
			h.logger.Warn("release idempotency lock failed", zap.Error(err))
		}
	}
}

// GetAll lists the synced employees for the caller's company.
func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
