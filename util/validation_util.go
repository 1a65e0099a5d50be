// api/util/validation_util.go

package util

import (
	"fmt"
	"time"

	"github.com/cobaltsec/aegis/api/model"
	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateCheckRequest(req pdp_model.CheckRequest) error {
	if req.PrincipalID == "" {
		return fmt.Errorf("principal_id cannot be empty")
	}
	if req.Resource.Type == "" {
		return fmt.Errorf("resource type cannot be empty")
	}
	if !req.Action.Valid() {
		return fmt.Errorf("unknown action %q", req.Action)
	}
	return nil
}

func (v *ValidationUtil) ValidateGrantRequest(req model.GrantRequest) error {
	if req.PrincipalID == "" {
		return fmt.Errorf("principal_id cannot be empty")
	}
	if !req.Module.Valid() {
		return fmt.Errorf("unknown module %q", req.Module)
	}
	if !req.Action.Valid() {
		return fmt.Errorf("unknown action %q", req.Action)
	}
	if req.ObjectType == "" || req.ObjectID == "" {
		return fmt.Errorf("grant must reference a concrete object")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return fmt.Errorf("expires_at must be in the future")
	}
	return nil
}

func (v *ValidationUtil) ValidateRevokeRequest(req model.RevokeRequest) error {
	if req.PrincipalID == "" {
		return fmt.Errorf("principal_id cannot be empty")
	}
	if !req.Module.Valid() {
		return fmt.Errorf("unknown module %q", req.Module)
	}
	if !req.Action.Valid() {
		return fmt.Errorf("unknown action %q", req.Action)
	}
	if req.ObjectType == "" || req.ObjectID == "" {
		return fmt.Errorf("revocation must reference a concrete object")
	}
	return nil
}

func (v *ValidationUtil) ValidateRouteRequest(req model.RouteRequest) error {
	if req.PrincipalID == "" {
		return fmt.Errorf("principal_id cannot be empty")
	}
	if req.ResourceType == "" {
		return fmt.Errorf("resource_type cannot be empty")
	}
	if !req.Operation.Valid() {
		return fmt.Errorf("operation must be %q or %q", model.OpRead, model.OpWrite)
	}
	return nil
}
