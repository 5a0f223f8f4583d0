package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/djval79/careflow-sub001/internal/events"
	"github.com/djval79/careflow-sub001/internal/leave"
)

// ConsumeEmployeeSynced provisions default leave entitlements for every
// employee that arrives through the sync pipeline for the first time.
// Provisioning is idempotent per entitlement, so a failed delivery is
// simply left uncommitted and retried on redelivery.
func ConsumeEmployeeSynced(
	ctx context.Context,
	reader *kafkago.Reader,
	leaveService leave.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_synced")
	log.Info("employee synced consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee synced consumer stopped")
				return
			}
			log.Error("fetch employee synced message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeSyncedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_synced event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := leaveService.ProvisionDefaultEntitlements(ctx, event.CompanyID, event.EmployeeID); err != nil {
			log.Error("provision default entitlements failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee synced message failed", zap.Error(err))
			continue
		}

		log.Info("entitlements provisioned from employee_synced event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
