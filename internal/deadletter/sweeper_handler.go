package deadletter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	sweeper *Sweeper
	repo    Repository
	logger  *zap.Logger
}

func NewHandler(sweeper *Sweeper, repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("deadletter.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deadletter.handler")
	}
	return &Handler{sweeper: sweeper, repo: repo, logger: l}
}

// RetryFailedSyncs triggers one sweep. The body is empty; the contract is
// {success, message} on success and {success:false, error} with 500 when
// the candidate fetch fails.
func (h *Handler) RetryFailedSyncs(c *gin.Context) {
	result, err := h.sweeper.Sweep(c.Request.Context())
	if err != nil {
		h.logger.Error("retry sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message(),
	})
}

// ListFailures exposes the dead-letter queue for inspection.
func (h *Handler) ListFailures(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context(), 100)
	if err != nil {
		h.logger.Error("list failed syncs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rows,
	})
}
