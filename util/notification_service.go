// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
)

type NotificationService struct {
	// Hook for a message queue or alerting client.
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyGrantChange(ctx context.Context, changeType string, g model.Grant) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: Object grant created",
			zap.String("grantID", g.ID),
			zap.String("principalID", g.PrincipalID),
			zap.String("permission", g.PermissionRef()),
			zap.String("object", g.ObjectRef()))
	case "revoked":
		logger.Info("NOTIFICATION: Object grant revoked",
			zap.String("principalID", g.PrincipalID),
			zap.String("permission", g.PermissionRef()),
			zap.String("object", g.ObjectRef()))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

// NotifySecurityAlert raises an operator alert for high-risk denials. The
// delivery channel is the log until an alerting backend is wired in.
func (n *NotificationService) NotifySecurityAlert(ctx context.Context, principalID, resource string, riskScore float64, anomalies []string) error {
	logger.Warn("SECURITY ALERT: High-risk access attempt",
		zap.String("principalID", principalID),
		zap.String("resource", resource),
		zap.Float64("riskScore", riskScore),
		zap.Strings("anomalies", anomalies))
	return nil
}

func (n *NotificationService) NotifyPolicyReload(ctx context.Context, version int64) error {
	logger.Info("NOTIFICATION: Policy tables reloaded",
		zap.Int64("version", version))
	return nil
}
