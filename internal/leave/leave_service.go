package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/djval79/careflow-sub001/internal/audit"
	leaveerrors "github.com/djval79/careflow-sub001/internal/leave/errors"
	"github.com/djval79/careflow-sub001/internal/leaverule"
	ruleerrors "github.com/djval79/careflow-sub001/internal/leaverule/errors"
	"github.com/djval79/careflow-sub001/internal/shared/contextutil"
)

// Default allowances provisioned when an employee first syncs in.
var defaultEntitlements = []struct {
	LeaveType string
	TotalDays int
}{
	{LeaveType: "annual", TotalDays: 28},
	{LeaveType: "sick", TotalDays: 10},
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (SubmissionResult, error)
	GetAll(ctx context.Context, companyID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error)
	ProvisionDefaultEntitlements(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	ruleRepo leaverule.Repository
	auditor  audit.Repository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ruleRepo leaverule.Repository,
	auditor audit.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, ruleRepo: ruleRepo, auditor: auditor, logger: l}
}

// Submit evaluates the active approval rules for the draft and persists
// the request with the resolved status, then records an audit entry. A
// rule-fetch failure aborts the submission; it is not treated as an
// empty rule set.
func (s *service) Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (SubmissionResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave request",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	companyUUID, employeeUUID, actorUUID, startDate, endDate, err := validateSubmitRequest(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return SubmissionResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return SubmissionResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("submit leave employee check failed", zap.Error(err))
		return SubmissionResult{}, err
	}
	if !belongs {
		return SubmissionResult{}, leaveerrors.ErrEmployeeNotInCompany
	}

	rules, err := s.ruleRepo.WithTx(tx).FindActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("submit leave rule fetch failed", zap.Error(err))
		return SubmissionResult{}, ruleerrors.ErrRuleFetchFailed
	}

	// inclusive day count between the two dates
	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	outcome := leaverule.Evaluate(rules, leaverule.Draft{
		LeaveType: req.LeaveType,
		TotalDays: totalDays,
	})

	now := time.Now().UTC()
	request := &LeaveRequest{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveType:   req.LeaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      outcome.Status,
		RequestedBy: actorUUID,
		SubmittedAt: now,
	}
	if outcome.Matched {
		name := outcome.RuleName
		request.RuleApplied = &name
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return SubmissionResult{}, err
	}

	// audit only after the insert succeeded
	entry := audit.NewEntry(companyUUID, "leave_request.submitted", "leave_request", request.ID.String(), actorID, map[string]any{
		"status":       outcome.Status,
		"rule_applied": outcome.RuleName,
		"total_days":   totalDays,
	})
	if err := s.auditor.WithTx(tx).Record(ctx, entry); err != nil {
		s.logger.Error("submit leave audit record failed", zap.Error(err))
		return SubmissionResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return SubmissionResult{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", request.ID.String()),
		zap.String("status", outcome.Status),
		zap.String("rule_applied", outcome.RuleName),
	)

	return SubmissionResult{
		Data:        mapToResponse(*request),
		Status:      outcome.Status,
		RuleApplied: outcome.RuleName,
	}, nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, req := range requests {
		resp[i] = mapToResponse(req)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveRequestResponse, error) {
	req, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	return mapToResponse(*req), nil
}

// ProvisionDefaultEntitlements creates the default allowance rows for a
// newly synced employee. Called by the employee.synced consumer. Each
// entitlement is inserted independently and a unique violation on one is
// skipped, so a redelivered event after a partial failure fills in
// whatever rows are still missing.
func (s *service) ProvisionDefaultEntitlements(ctx context.Context, companyID, employeeID string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return leaveerrors.ErrInvalidEmployeeID
	}

	year := time.Now().UTC().Year()
	for _, def := range defaultEntitlements {
		ent := &LeaveEntitlement{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			LeaveType:  def.LeaveType,
			TotalDays:  def.TotalDays,
			Year:       year,
		}
		if err := s.repo.CreateEntitlement(ctx, ent); err != nil {
			if isDuplicateEntitlement(err) {
				s.logger.Debug("entitlement already provisioned, skipping",
					zap.String("employee_id", employeeID),
					zap.String("leave_type", def.LeaveType),
				)
				continue
			}
			return err
		}
	}

	s.logger.Info("default entitlements provisioned",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func isDuplicateEntitlement(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_entitlement_employee_type_year"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_entitlement_employee_type_year")
}

func validateSubmitRequest(companyID, actorID string, req SubmitLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return companyUUID, employeeUUID, actorUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(req LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:          req.ID.String(),
		CompanyID:   req.CompanyID.String(),
		EmployeeID:  req.EmployeeID.String(),
		LeaveType:   req.LeaveType,
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		TotalDays:   req.TotalDays,
		Reason:      req.Reason,
		Status:      req.Status,
		RuleApplied: req.RuleApplied,
		RequestedBy: req.RequestedBy.String(),
		SubmittedAt: req.SubmittedAt.Format(time.RFC3339),
	}
}
