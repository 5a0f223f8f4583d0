package deadletter

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/djval79/careflow-sub001/internal/audit"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, fs *FailedSync) error
	findRetryableFn func(ctx context.Context) ([]FailedSync, error)
	findAllFn       func(ctx context.Context, limit int) ([]FailedSync, error)
	updateFn        func(ctx context.Context, fs *FailedSync) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, fs *FailedSync) error {
	return f.createFn(ctx, fs)
}
func (f *fakeRepo) FindRetryable(ctx context.Context) ([]FailedSync, error) {
	return f.findRetryableFn(ctx)
}
func (f *fakeRepo) FindAll(ctx context.Context, limit int) ([]FailedSync, error) {
	return f.findAllFn(ctx, limit)
}
func (f *fakeRepo) Update(ctx context.Context, fs *FailedSync) error {
	return f.updateFn(ctx, fs)
}

type fakeProcessor struct {
	processFn func(ctx context.Context, payload []byte) error
}

func (f *fakeProcessor) ProcessRaw(ctx context.Context, payload []byte) error {
	return f.processFn(ctx, payload)
}

type fakeAuditRepo struct {
	recordFn func(ctx context.Context, entry *audit.Entry) error
}

func (f *fakeAuditRepo) WithTx(tx *sql.Tx) audit.Repository { return f }
func (f *fakeAuditRepo) Record(ctx context.Context, entry *audit.Entry) error {
	return f.recordFn(ctx, entry)
}

func failedSync(retries int) FailedSync {
	return FailedSync{
		ID:           uuid.New(),
		Payload:      datatypes.JSON(`{"action":"employee.created"}`),
		ErrorMessage: "db timeout",
		Retries:      retries,
		Status:       StatusPendingRetry,
	}
}

func TestSweeper_SuccessResolves(t *testing.T) {
	row := failedSync(1)

	var updated FailedSync
	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return []FailedSync{row}, nil
		},
		updateFn: func(ctx context.Context, fs *FailedSync) error { updated = *fs; return nil },
	}
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error { return nil }}

	sweeper := NewSweeper(repo, processor, nil)

	result, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, SweepResult{Processed: 1, Resolved: 1}, result)
	assert.Equal(t, StatusResolved, updated.Status)
	assert.Equal(t, 1, updated.Retries, "a successful retry does not touch the counter")
}

func TestSweeper_FailureIncrementsRetries(t *testing.T) {
	row := failedSync(0)

	var updated FailedSync
	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return []FailedSync{row}, nil
		},
		updateFn: func(ctx context.Context, fs *FailedSync) error { updated = *fs; return nil },
	}
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error {
		return errors.New("still broken")
	}}

	sweeper := NewSweeper(repo, processor, nil)

	result, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, SweepResult{Processed: 1, Retried: 1}, result)
	assert.Equal(t, 1, updated.Retries)
	assert.Equal(t, StatusPendingRetry, updated.Status)
	assert.Equal(t, "still broken", updated.ErrorMessage)
}

func TestSweeper_CeilingEscalatesToManualReview(t *testing.T) {
	tenantID := uuid.New().String()
	row := failedSync(2)
	row.Payload = datatypes.JSON(`{"action":"employee.created","tenant_id":"` + tenantID + `"}`)

	var updated FailedSync
	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return []FailedSync{row}, nil
		},
		updateFn: func(ctx context.Context, fs *FailedSync) error { updated = *fs; return nil },
	}
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error {
		return errors.New("still broken")
	}}

	var audited *audit.Entry
	auditor := &fakeAuditRepo{recordFn: func(ctx context.Context, entry *audit.Entry) error {
		audited = entry
		return nil
	}}

	sweeper := NewSweeper(repo, processor, auditor)

	result, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, SweepResult{Processed: 1, Escalated: 1}, result)
	assert.Equal(t, 3, updated.Retries)
	assert.Equal(t, StatusManualReviewRequired, updated.Status)

	assert.NotNil(t, audited)
	assert.Equal(t, "sync.escalated", audited.Action)
	assert.Equal(t, tenantID, audited.CompanyID.String())
	assert.Equal(t, row.ID.String(), audited.EntityID)
}

func TestSweeper_RowFailuresAreIsolated(t *testing.T) {
	rows := []FailedSync{failedSync(0), failedSync(0), failedSync(0)}

	var updates []FailedSync
	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) { return rows, nil },
		updateFn: func(ctx context.Context, fs *FailedSync) error {
			updates = append(updates, *fs)
			if len(updates) == 1 {
				return errors.New("update lost")
			}
			return nil
		},
	}

	calls := 0
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error {
		calls++
		if calls == 2 {
			return errors.New("still broken")
		}
		return nil
	}}

	sweeper := NewSweeper(repo, processor, nil)

	result, err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, calls, "a failed update must not stop the sweep")
	assert.Equal(t, SweepResult{Processed: 3, Resolved: 2, Retried: 1}, result)
}

func TestSweeper_FetchFailureAbortsSweep(t *testing.T) {
	repo := &fakeRepo{
		findRetryableFn: func(ctx context.Context) ([]FailedSync, error) {
			return nil, errors.New("connection refused")
		},
	}
	processor := &fakeProcessor{processFn: func(ctx context.Context, payload []byte) error {
		t.Fatal("nothing should be processed when the fetch fails")
		return nil
	}}

	sweeper := NewSweeper(repo, processor, nil)

	_, err := sweeper.Sweep(context.Background())
	assert.Error(t, err)
}

func TestSweepResult_Message(t *testing.T) {
	msg := SweepResult{Processed: 4, Resolved: 2, Retried: 1, Escalated: 1}.Message()
	assert.Equal(t, "processed 4 failed syncs: 2 resolved, 1 retried, 1 escalated", msg)
}
