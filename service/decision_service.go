// api/service/decision_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/pdp/engine"
	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
	"github.com/cobaltsec/aegis/api/util"
)

// IDecisionService defines the decision surface of the engine.
type IDecisionService interface {
	CheckPermission(ctx context.Context, req pdp_model.CheckRequest) (pdp_model.CheckResult, error)
	GetEffectivePermissions(ctx context.Context, principalID string) ([]string, error)
}

// DecisionService fronts the decision engine: it validates requests,
// forwards them, alerts on high-risk denials and keeps the decision cache
// coherent with grant and policy mutations.
type DecisionService struct {
	engine          *engine.Engine
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	alertThreshold  float64
}

var _ IDecisionService = &DecisionService{}

func NewDecisionService(
	eng *engine.Engine,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	alertThreshold float64,
) *DecisionService {
	if alertThreshold <= 0 {
		alertThreshold = 0.9
	}
	service := &DecisionService{
		engine:          eng,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		alertThreshold:  alertThreshold,
	}

	eventBus.Subscribe("grant.created", service.handleGrantChanged)
	eventBus.Subscribe("grant.revoked", service.handleGrantChanged)
	eventBus.Subscribe("policy.reloaded", service.handlePolicyReloaded)

	return service
}

func (s *DecisionService) handleGrantChanged(ctx context.Context, event util.Event) error {
	g, ok := event.Payload.(model.Grant)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	s.engine.Cache().InvalidatePrincipal(g.PrincipalID)
	logger.Debug("Decision cache invalidated after grant change",
		zap.String("principalID", g.PrincipalID),
		zap.String("event", event.Type))
	return nil
}

func (s *DecisionService) handlePolicyReloaded(ctx context.Context, event util.Event) error {
	s.engine.Cache().Purge()
	logger.Info("Decision cache purged after policy reload")
	return nil
}

func (s *DecisionService) CheckPermission(ctx context.Context, req pdp_model.CheckRequest) (pdp_model.CheckResult, error) {
	if err := s.validationUtil.ValidateCheckRequest(req); err != nil {
		return pdp_model.CheckResult{}, fmt.Errorf("%w: %v", aegis_errors.ErrInvalidRequest, err)
	}

	res, err := s.engine.CheckPermission(ctx, req)
	if err != nil {
		logger.Error("Decision evaluation failed",
			zap.Error(err),
			zap.String("principalID", req.PrincipalID))
		return res, err
	}

	if !res.Allowed && res.RiskScore >= s.alertThreshold {
		if nerr := s.notificationSvc.NotifySecurityAlert(ctx, req.PrincipalID, req.Resource.Ref(), res.RiskScore, res.Anomalies); nerr != nil {
			logger.Warn("Failed to raise security alert", zap.Error(nerr))
		}
	}
	return res, nil
}

func (s *DecisionService) GetEffectivePermissions(ctx context.Context, principalID string) ([]string, error) {
	if principalID == "" {
		return nil, fmt.Errorf("%w: principal_id cannot be empty", aegis_errors.ErrInvalidRequest)
	}
	perms, err := s.engine.EffectivePermissions(ctx, principalID)
	if err != nil {
		logger.Error("Failed to list effective permissions",
			zap.Error(err),
			zap.String("principalID", principalID))
		return nil, err
	}
	return perms, nil
}
