package deadletter

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Recorder appends failed sync payloads for the sweeper. Recording is
// best-effort: Record returns whether the entry landed and never an
// error, so a dead-letter outage cannot abort the sync path that calls it.
type Recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) *Recorder {
	l := zap.L().Named("deadletter.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("deadletter.recorder")
	}
	return &Recorder{repo: repo, logger: l}
}

func (r *Recorder) Record(ctx context.Context, payload json.RawMessage, errorMessage string) bool {
	fs := &FailedSync{
		ID:           uuid.New(),
		Payload:      datatypes.JSON(payload),
		ErrorMessage: errorMessage,
		Retries:      0,
		Status:       StatusPendingRetry,
	}

	if err := r.repo.Create(ctx, fs); err != nil {
		// a lost dead-letter entry is an accepted failure mode
		r.logger.Error("dead-letter insert failed",
			zap.String("error_message", errorMessage),
			zap.Error(err),
		)
		return false
	}

	r.logger.Info("sync failure recorded",
		zap.String("failed_sync_id", fs.ID.String()),
		zap.String("error_message", errorMessage),
	)
	return true
}
