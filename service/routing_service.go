// api/service/routing_service.go
package service

import (
	"context"
	"fmt"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/partition"
	"github.com/cobaltsec/aegis/api/util"
)

// IRoutingService defines the partition routing surface.
type IRoutingService interface {
	RouteAccess(ctx context.Context, req model.RouteRequest) (model.RouteDecision, error)
	RoutingHistory(ctx context.Context, principalID string, limit int) ([]model.RoutingRecord, error)
}

// RoutingService fronts the partition router.
type RoutingService struct {
	router         *partition.Router
	validationUtil *util.ValidationUtil
}

var _ IRoutingService = &RoutingService{}

func NewRoutingService(router *partition.Router, validationUtil *util.ValidationUtil) *RoutingService {
	return &RoutingService{router: router, validationUtil: validationUtil}
}

func (s *RoutingService) RouteAccess(ctx context.Context, req model.RouteRequest) (model.RouteDecision, error) {
	if err := s.validationUtil.ValidateRouteRequest(req); err != nil {
		return model.RouteDecision{}, fmt.Errorf("%w: %v", aegis_errors.ErrInvalidRequest, err)
	}
	return s.router.RouteAccess(ctx, req.ResourceType, req.Operation, req.PrincipalID), nil
}

func (s *RoutingService) RoutingHistory(ctx context.Context, principalID string, limit int) ([]model.RoutingRecord, error) {
	if principalID == "" {
		return nil, fmt.Errorf("%w: principal_id cannot be empty", aegis_errors.ErrInvalidRequest)
	}
	return s.router.History().Recent(principalID, limit), nil
}
