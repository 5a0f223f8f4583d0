package leaverule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ruleerrors "github.com/djval79/careflow-sub001/internal/leaverule/errors"
)

//go:generate mockgen -source=rule_service.go -destination=mock/rule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateRuleRequest) (RuleResponse, error)
	GetAll(ctx context.Context, companyID string) ([]RuleResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RuleResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateRuleRequest) (RuleResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leaverule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateRuleRequest) (RuleResponse, error) {
	s.logger.Debug("create rule requested",
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
		zap.Int("priority", req.Priority),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RuleResponse{}, ruleerrors.ErrInvalidCompanyID
	}
	if err := validateRuleBounds(req.Priority, req.MinDurationDays, req.MaxDurationDays); err != nil {
		s.logger.Warn("create rule validation failed", zap.Error(err))
		return RuleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create rule begin tx failed", zap.Error(err))
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule := &LeaveApprovalRule{
		ID:                      uuid.New(),
		CompanyID:               companyUUID,
		Name:                    req.Name,
		LeaveType:               req.LeaveType,
		MinDurationDays:         req.MinDurationDays,
		MaxDurationDays:         req.MaxDurationDays,
		MinDaysNotice:           req.MinDaysNotice,
		RequiresManagerApproval: req.RequiresManagerApproval,
		AutoApprove:             req.AutoApprove,
		IsActive:                active,
		Priority:                req.Priority,
	}

	if err := qtx.Create(ctx, rule); err != nil {
		s.logger.Error("create rule persist failed", zap.Error(err))
		return RuleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create rule commit failed", zap.Error(err))
		return RuleResponse{}, err
	}
	s.logger.Info("create rule success",
		zap.String("rule_id", rule.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapRuleToResponse(*rule), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RuleResponse, error) {
	rules, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = mapRuleToResponse(rule)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RuleResponse, error) {
	rule, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RuleResponse{}, ruleerrors.ErrRuleNotFound
		}
		return RuleResponse{}, err
	}
	return mapRuleToResponse(*rule), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateRuleRequest) (RuleResponse, error) {
	s.logger.Debug("update rule requested",
		zap.String("rule_id", id),
		zap.String("company_id", companyID),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return RuleResponse{}, ruleerrors.ErrInvalidCompanyID
	}
	if err := validateRuleBounds(req.Priority, req.MinDurationDays, req.MaxDurationDays); err != nil {
		return RuleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update rule begin tx failed", zap.Error(err))
		return RuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rule, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RuleResponse{}, ruleerrors.ErrRuleNotFound
		}
		return RuleResponse{}, err
	}

	rule.Name = req.Name
	rule.LeaveType = req.LeaveType
	rule.MinDurationDays = req.MinDurationDays
	rule.MaxDurationDays = req.MaxDurationDays
	rule.MinDaysNotice = req.MinDaysNotice
	rule.RequiresManagerApproval = req.RequiresManagerApproval
	rule.AutoApprove = req.AutoApprove
	rule.IsActive = req.IsActive
	rule.Priority = req.Priority

	if err := qtx.Update(ctx, rule); err != nil {
		s.logger.Error("update rule persist failed", zap.String("rule_id", id), zap.Error(err))
		return RuleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update rule commit failed", zap.String("rule_id", id), zap.Error(err))
		return RuleResponse{}, err
	}
	s.logger.Info("update rule success", zap.String("rule_id", id))

	return mapRuleToResponse(*rule), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func validateRuleBounds(priority int, minDays, maxDays *int) error {
	if priority <= 0 {
		return ruleerrors.ErrInvalidPriority
	}
	if minDays != nil && maxDays != nil && *minDays > *maxDays {
		return ruleerrors.ErrInvalidDayBounds
	}
	return nil
}

func mapRuleToResponse(rule LeaveApprovalRule) RuleResponse {
	return RuleResponse{
		ID:                      rule.ID.String(),
		CompanyID:               rule.CompanyID.String(),
		Name:                    rule.Name,
		LeaveType:               rule.LeaveType,
		MinDurationDays:         rule.MinDurationDays,
		MaxDurationDays:         rule.MaxDurationDays,
		MinDaysNotice:           rule.MinDaysNotice,
		RequiresManagerApproval: rule.RequiresManagerApproval,
		AutoApprove:             rule.AutoApprove,
		IsActive:                rule.IsActive,
		Priority:                rule.Priority,
	}
}
