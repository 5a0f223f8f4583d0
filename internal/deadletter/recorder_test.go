package deadletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Record(t *testing.T) {
	var saved FailedSync
	repo := &fakeRepo{createFn: func(ctx context.Context, fs *FailedSync) error {
		saved = *fs
		return nil
	}}

	recorder := NewRecorder(repo)

	ok := recorder.Record(context.Background(), []byte(`{"action":"employee.created"}`), "db timeout")
	assert.True(t, ok)
	assert.Equal(t, StatusPendingRetry, saved.Status)
	assert.Equal(t, 0, saved.Retries)
	assert.Equal(t, "db timeout", saved.ErrorMessage)
	assert.JSONEq(t, `{"action":"employee.created"}`, string(saved.Payload))
}

func TestRecorder_InsertFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{createFn: func(ctx context.Context, fs *FailedSync) error {
		return errors.New("dead-letter table unavailable")
	}}

	recorder := NewRecorder(repo)

	// must not panic or error; the caller treats recording as optional
	ok := recorder.Record(context.Background(), []byte(`{}`), "boom")
	assert.False(t, ok)
}
