// api/service/grant_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/grant"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/util"
)

// IGrantService defines the object-grant admin surface.
type IGrantService interface {
	GrantObjectPermission(ctx context.Context, req model.GrantRequest, grantedBy string) (*model.Grant, error)
	RevokeObjectPermission(ctx context.Context, req model.RevokeRequest, revokedBy string) error
	BulkGrant(ctx context.Context, reqs []model.GrantRequest, grantedBy string) (*model.BulkGrantResult, error)
	ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error)
}

// GrantMirror reflects grants into the directory graph. It is optional;
// deployments without Neo4j pass nil and keep the grant store authoritative.
type GrantMirror interface {
	MirrorGrant(ctx context.Context, g model.Grant) error
	RemoveGrantMirror(ctx context.Context, principalID string, module model.Module, action model.Action, objectType, objectID string) error
}

// GrantService handles business logic for object-grant operations.
type GrantService struct {
	store           grant.Store
	mirror          GrantMirror
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IGrantService = &GrantService{}

func NewGrantService(
	store grant.Store,
	mirror GrantMirror,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *GrantService {
	return &GrantService{
		store:           store,
		mirror:          mirror,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}
}

// GrantObjectPermission validates and persists one grant, mirrors it into
// the directory graph and publishes grant.created.
func (s *GrantService) GrantObjectPermission(ctx context.Context, req model.GrantRequest, grantedBy string) (*model.Grant, error) {
	if err := s.validationUtil.ValidateGrantRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", aegis_errors.ErrInvalidRequest, err)
	}

	g := model.Grant{
		ID:          uuid.New().String(),
		PrincipalID: req.PrincipalID,
		Module:      req.Module,
		Action:      req.Action,
		ObjectType:  req.ObjectType,
		ObjectID:    req.ObjectID,
		GrantedBy:   grantedBy,
		GrantedAt:   time.Now().UTC(),
		ExpiresAt:   req.ExpiresAt,
	}

	if err := s.store.Put(ctx, g); err != nil {
		logger.Error("Failed to persist grant",
			zap.Error(err),
			zap.String("principalID", g.PrincipalID),
			zap.String("permission", g.PermissionRef()))
		return nil, fmt.Errorf("failed to persist grant: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorGrant(ctx, g); err != nil {
			logger.Warn("Failed to mirror grant into directory graph",
				zap.Error(err),
				zap.String("grantID", g.ID))
		}
	}

	s.eventBus.Publish(ctx, "grant.created", g)
	if err := s.notificationSvc.NotifyGrantChange(ctx, "created", g); err != nil {
		logger.Warn("Failed to send grant notification", zap.Error(err))
	}

	logger.Info("Object grant created",
		zap.String("grantID", g.ID),
		zap.String("principalID", g.PrincipalID),
		zap.String("permission", g.PermissionRef()),
		zap.String("object", g.ObjectRef()),
		zap.Bool("temporary", g.ExpiresAt != nil))
	return &g, nil
}

// RevokeObjectPermission removes a grant. Revoking an absent grant is a
// no-op success so retries stay idempotent.
func (s *GrantService) RevokeObjectPermission(ctx context.Context, req model.RevokeRequest, revokedBy string) error {
	if err := s.validationUtil.ValidateRevokeRequest(req); err != nil {
		return fmt.Errorf("%w: %v", aegis_errors.ErrInvalidRequest, err)
	}

	permRef := model.PermissionRef(req.Module, req.Action)
	objectRef := model.ObjectRef(req.ObjectType, req.ObjectID)
	if err := s.store.Delete(ctx, req.PrincipalID, permRef, objectRef); err != nil {
		logger.Error("Failed to revoke grant",
			zap.Error(err),
			zap.String("principalID", req.PrincipalID),
			zap.String("permission", permRef))
		return fmt.Errorf("failed to revoke grant: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.RemoveGrantMirror(ctx, req.PrincipalID, req.Module, req.Action, req.ObjectType, req.ObjectID); err != nil {
			logger.Warn("Failed to remove grant mirror",
				zap.Error(err),
				zap.String("principalID", req.PrincipalID))
		}
	}

	revoked := model.Grant{
		PrincipalID: req.PrincipalID,
		Module:      req.Module,
		Action:      req.Action,
		ObjectType:  req.ObjectType,
		ObjectID:    req.ObjectID,
		GrantedBy:   revokedBy,
	}
	s.eventBus.Publish(ctx, "grant.revoked", revoked)
	if err := s.notificationSvc.NotifyGrantChange(ctx, "revoked", revoked); err != nil {
		logger.Warn("Failed to send revocation notification", zap.Error(err))
	}

	logger.Info("Object grant revoked",
		zap.String("principalID", req.PrincipalID),
		zap.String("permission", permRef),
		zap.String("object", objectRef))
	return nil
}

// BulkGrant creates many grants in parallel with bounded concurrency.
// Failures are collected per item; the call is not atomic.
func (s *GrantService) BulkGrant(ctx context.Context, reqs []model.GrantRequest, grantedBy string) (*model.BulkGrantResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, 10)

	result := &model.BulkGrantResult{}
	var mu sync.Mutex

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			created, err := s.GrantObjectPermission(ctx, req, grantedBy)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures = append(result.Failures, model.GrantFailure{Index: i, Error: err.Error()})
				return nil
			}
			result.Granted = append(result.Granted, *created)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Bulk grant aborted", zap.Error(err))
		return nil, fmt.Errorf("bulk grant aborted: %w", err)
	}

	logger.Info("Bulk grant completed",
		zap.Int("granted", len(result.Granted)),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

func (s *GrantService) ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error) {
	if principalID == "" {
		return nil, fmt.Errorf("%w: principal_id cannot be empty", aegis_errors.ErrInvalidRequest)
	}
	grants, err := s.store.ListForPrincipal(ctx, principalID)
	if err != nil {
		logger.Error("Failed to list grants",
			zap.Error(err),
			zap.String("principalID", principalID))
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return grants, nil
}
