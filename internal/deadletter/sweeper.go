package deadletter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/audit"
)

// Processor re-drives a stored payload through the sync pipeline. The
// employee sync service satisfies this.
type Processor interface {
	ProcessRaw(ctx context.Context, payload []byte) error
}

// SweepResult summarises one sweep over the retryable set.
type SweepResult struct {
	Processed int
	Resolved  int
	Retried   int
	Escalated int
}

func (r SweepResult) Message() string {
	return fmt.Sprintf("processed %d failed syncs: %d resolved, %d retried, %d escalated",
		r.Processed, r.Resolved, r.Retried, r.Escalated)
}

// Sweeper re-drives queued sync failures. Rows are processed sequentially
// and independently; one row's failure never aborts the rest. Only an
// error fetching the candidate set fails the whole sweep.
type Sweeper struct {
	repo      Repository
	processor Processor
	auditor   audit.Repository
	logger    *zap.Logger
}

func NewSweeper(repo Repository, processor Processor, auditor audit.Repository, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("deadletter.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deadletter.sweeper")
	}
	return &Sweeper{repo: repo, processor: processor, auditor: auditor, logger: l}
}

func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	rows, err := s.repo.FindRetryable(ctx)
	if err != nil {
		s.logger.Error("fetch retryable syncs failed", zap.Error(err))
		return SweepResult{}, err
	}

	result := SweepResult{Processed: len(rows)}
	s.logger.Info("sweep started", zap.Int("candidates", len(rows)))

	for i := range rows {
		row := &rows[i]

		if err := s.processor.ProcessRaw(ctx, row.Payload); err != nil {
			row.Retries++
			row.ErrorMessage = err.Error()
			// compound transition: the increment that reaches the
			// ceiling also escalates
			if row.Retries >= MaxRetries {
				row.Status = StatusManualReviewRequired
				result.Escalated++
				s.logger.Warn("failed sync escalated to manual review",
					zap.String("failed_sync_id", row.ID.String()),
					zap.Int("retries", row.Retries),
				)
				s.auditEscalation(ctx, row, err)
			} else {
				result.Retried++
				s.logger.Warn("failed sync retry unsuccessful",
					zap.String("failed_sync_id", row.ID.String()),
					zap.Int("retries", row.Retries),
					zap.Error(err),
				)
			}
		} else {
			row.Status = StatusResolved
			result.Resolved++
			s.logger.Info("failed sync resolved",
				zap.String("failed_sync_id", row.ID.String()),
			)
		}

		if err := s.repo.Update(ctx, row); err != nil {
			// state update failures are isolated too; the row will be
			// picked up again on the next sweep
			s.logger.Error("update failed sync state failed",
				zap.String("failed_sync_id", row.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("sweep finished",
		zap.Int("processed", result.Processed),
		zap.Int("resolved", result.Resolved),
		zap.Int("retried", result.Retried),
		zap.Int("escalated", result.Escalated),
	)
	return result, nil
}

// auditEscalation best-effort records the hand-off to manual review. The
// tenant comes out of the stored payload; a payload with no usable
// tenant_id is still escalated, just without an audit row.
func (s *Sweeper) auditEscalation(ctx context.Context, row *FailedSync, cause error) {
	if s.auditor == nil {
		return
	}

	var envelope struct {
		TenantID string `json:"tenant_id"`
	}
	if err := json.Unmarshal(row.Payload, &envelope); err != nil {
		return
	}
	companyID, err := uuid.Parse(envelope.TenantID)
	if err != nil {
		return
	}

	entry := audit.NewEntry(companyID, "sync.escalated", "failed_sync", row.ID.String(), "", map[string]any{
		"retries": row.Retries,
		"error":   cause.Error(),
	})
	if err := s.auditor.Record(ctx, entry); err != nil {
		s.logger.Error("record escalation audit failed",
			zap.String("failed_sync_id", row.ID.String()),
			zap.Error(err),
		)
	}
}
