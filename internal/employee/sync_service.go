package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	employeeerrors "github.com/djval79/careflow-sub001/internal/employee/errors"
	"github.com/djval79/careflow-sub001/internal/events"
	"github.com/djval79/careflow-sub001/internal/messaging/kafka"
	"github.com/djval79/careflow-sub001/internal/rolemap"
	"github.com/djval79/careflow-sub001/internal/shared/contextutil"
)

//go:generate mockgen -source=sync_service.go -destination=mock/sync_service_mock.go -package=mock
type SyncService interface {
	// Process applies create/update/delete semantics idempotently keyed
	// by the external employee id.
	Process(ctx context.Context, payload SyncPayload) error
	// ProcessRaw re-validates and processes a stored payload snapshot;
	// this is the entry point the retry sweeper uses.
	ProcessRaw(ctx context.Context, raw []byte) error
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
}

type syncService struct {
	db        *sql.DB
	repo      Repository
	roleCache *rolemap.Cache
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewSyncService(
	db *sql.DB,
	repo Repository,
	roleCache *rolemap.Cache,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) SyncService {
	l := zap.L().Named("employee.sync")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.sync")
	}
	return &syncService{
		db:        db,
		repo:      repo,
		roleCache: roleCache,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *syncService) ProcessRaw(ctx context.Context, raw []byte) error {
	payload, err := ParsePayload(raw)
	if err != nil {
		return err
	}
	return s.Process(ctx, payload)
}

func (s *syncService) Process(ctx context.Context, payload SyncPayload) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("process sync",
		zap.String("request_id", rid),
		zap.String("action", payload.Action),
		zap.Int64("external_id", payload.Employee.ExternalID),
		zap.String("tenant_id", payload.TenantID),
	)

	companyUUID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return employeeerrors.ErrInvalidTenantID
	}

	switch payload.Action {
	case ActionCreated, ActionUpdated:
		return s.upsertEmployee(ctx, companyUUID, payload)
	case ActionDeleted:
		return s.deactivateEmployee(ctx, payload)
	default:
		s.logger.Warn("unknown sync action", zap.String("action", payload.Action))
		return employeeerrors.ErrUnknownAction
	}
}

func (s *syncService) upsertEmployee(ctx context.Context, companyUUID uuid.UUID, payload SyncPayload) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("sync begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByExternalID(ctx, payload.TenantID, payload.Employee.ExternalID)
	if err != nil {
		s.logger.Error("sync lookup failed", zap.Error(err))
		return err
	}

	empl := s.mapEmployee(ctx, companyUUID, payload.Employee)
	firstSync := existing == nil
	if !firstSync {
		empl.ID = existing.ID
	}

	if err := qtx.Upsert(ctx, empl); err != nil {
		s.logger.Error("sync upsert failed",
			zap.Int64("external_id", payload.Employee.ExternalID),
			zap.Error(err),
		)
		return err
	}

	// only first appearance emits; downstream provisioning does not care
	// about subsequent updates
	if firstSync && s.outbox != nil {
		event := events.EmployeeSyncedEvent{
			EventType:  "employee_synced",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			ExternalID: empl.ExternalID,
			CompanyID:  payload.TenantID,
			OccurredAt: time.Now().UTC(),
		}
		raw, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal employee_synced event failed", zap.Error(err))
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeSyncedTopic,
			Payload:       raw,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("sync outbox persist failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("sync commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("employee synced",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.Int64("external_id", empl.ExternalID),
		zap.Bool("created", firstSync),
	)
	return nil
}

func (s *syncService) deactivateEmployee(ctx context.Context, payload SyncPayload) error {
	// soft delete: the row stays so a later employee.updated still lands
	rows, err := s.repo.SetStatusByExternalID(ctx, payload.TenantID, payload.Employee.ExternalID, StatusInactive)
	if err != nil {
		s.logger.Error("sync deactivate failed",
			zap.Int64("external_id", payload.Employee.ExternalID),
			zap.Error(err),
		)
		return err
	}
	if rows == 0 {
		s.logger.Warn("sync deactivate matched no employee",
			zap.Int64("external_id", payload.Employee.ExternalID),
			zap.String("tenant_id", payload.TenantID),
		)
		return nil
	}

	s.logger.Info("employee deactivated",
		zap.Int64("external_id", payload.Employee.ExternalID),
	)
	return nil
}

func (s *syncService) mapEmployee(ctx context.Context, companyUUID uuid.UUID, src SyncEmployee) *Employee {
	firstName, lastName := splitFullName(src.FullName)

	empl := &Employee{
		ID:                uuid.New(),
		CompanyID:         companyUUID,
		ExternalID:        src.ExternalID,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             src.Email,
		Phone:             src.Phone,
		Role:              s.roleCache.Resolve(ctx, src.Role, time.Now().UTC()),
		Status:            mapStatus(src.Status),
		RightToWorkStatus: CompliancePending,
		DBSStatus:         CompliancePending,
	}

	if src.Compliance != nil {
		if src.Compliance.RightToWorkStatus != "" {
			empl.RightToWorkStatus = src.Compliance.RightToWorkStatus
		}
		if src.Compliance.DBSStatus != "" {
			empl.DBSStatus = src.Compliance.DBSStatus
		}
	}

	return empl
}

func (s *syncService) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, empl := range employees {
		resp[i] = mapToResponse(empl)
	}
	return resp, nil
}

// splitFullName takes the first whitespace-delimited token as the first
// name; the remainder, joined, is the last name ("" when absent).
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func mapStatus(external string) string {
	if external == "Active" {
		return StatusActive
	}
	return StatusInactive
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                empl.ID.String(),
		CompanyID:         empl.CompanyID.String(),
		ExternalID:        empl.ExternalID,
		FirstName:         empl.FirstName,
		LastName:          empl.LastName,
		Email:             empl.Email,
		Phone:             empl.Phone,
		Role:              empl.Role,
		Status:            empl.Status,
		RightToWorkStatus: empl.RightToWorkStatus,
		DBSStatus:         empl.DBSStatus,
	}
}
