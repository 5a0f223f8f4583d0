package deadletter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandler_RetryFailedSyncs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return []FailedSync{failedSync(0), failedSync(2)}, nil
		},
		updateFn: func(ctx context.Context, fs *FailedSync) error { return nil },
	}
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error {
		return errors.New("still broken")
	}}

	h := NewHandler(NewSweeper(repo, processor, nil), repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sync/retries", nil)
	h.RetryFailedSyncs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
	assert.Contains(t, w.Body.String(), "processed 2 failed syncs: 0 resolved, 1 retried, 1 escalated")
}

func TestHandler_RetryFailedSyncs_FetchFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return nil, errors.New("connection refused")
		},
	}

	h := NewHandler(NewSweeper(repo, &fakeProcessor{}, nil), repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sync/retries", nil)
	h.RetryFailedSyncs(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":false")
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestHandler_ListFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, limit int) ([]FailedSync, error) {
			assert.Equal(t, 100, limit)
			return []FailedSync{failedSync(1)}, nil
		},
	}

	h := NewHandler(NewSweeper(repo, &fakeProcessor{}, nil), repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sync/failures", nil)
	h.ListFailures(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
	assert.Contains(t, w.Body.String(), StatusPendingRetry)
}
