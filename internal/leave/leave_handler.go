package leave

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/shared/apperror"
	"github.com/djval79/careflow-sub001/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit resolves the draft through the rule evaluator and answers with
// the external contract of this endpoint: {data, status, ruleApplied} on
// success, {error:{message}} with 400 on any failure.
func (h *Handler) Submit(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var env SubmitLeaveEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), companyID, actorID, env.LeaveRequest)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("http submit leave failed",
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": httpErr.Message}})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
