// api/service/policy_admin_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/partition"
	"github.com/cobaltsec/aegis/api/policy"
	"github.com/cobaltsec/aegis/api/util"
)

// IPolicyAdminService manages the versioned role and routing tables.
type IPolicyAdminService interface {
	Roles(ctx context.Context) (int64, []model.Role)
	Reload(ctx context.Context) (int64, error)
}

// PolicyAdminService reloads the role and routing tables from configuration
// and swaps them atomically. A failed reload keeps the previous tables.
type PolicyAdminService struct {
	policies        *policy.Store
	table           *partition.Table
	eventBus        *util.EventBus
	notificationSvc *util.NotificationService
}

var _ IPolicyAdminService = &PolicyAdminService{}

func NewPolicyAdminService(
	policies *policy.Store,
	table *partition.Table,
	eventBus *util.EventBus,
	notificationSvc *util.NotificationService,
) *PolicyAdminService {
	return &PolicyAdminService{
		policies:        policies,
		table:           table,
		eventBus:        eventBus,
		notificationSvc: notificationSvc,
	}
}

func (s *PolicyAdminService) Roles(ctx context.Context) (int64, []model.Role) {
	return s.policies.Version(), s.policies.Roles()
}

// Reload re-reads the tables from configuration. On a ConfigError the old
// tables stay live and the error is returned for the caller to report.
func (s *PolicyAdminService) Reload(ctx context.Context) (int64, error) {
	tables, err := policy.Load()
	if err != nil {
		logger.Error("Policy reload rejected; keeping previous tables", zap.Error(err))
		return s.policies.Version(), err
	}

	version := s.policies.Swap(tables.Roles)
	s.table.Swap(tables.Partitions, tables.ModulePartitions, tables.ResourceModules, tables.DefaultPartition)

	s.eventBus.Publish(ctx, "policy.reloaded", version)
	if nerr := s.notificationSvc.NotifyPolicyReload(ctx, version); nerr != nil {
		logger.Warn("Failed to send reload notification", zap.Error(nerr))
	}

	logger.Info("Policy tables reloaded",
		zap.Int64("version", version),
		zap.Int("roles", len(tables.Roles)),
		zap.Int("partitions", len(tables.Partitions)))
	return version, nil
}
