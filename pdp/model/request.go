package model

import (
	"time"

	"github.com/cobaltsec/aegis/api/model"
)

// Resource identifies what a check is about. ID may be empty for type-level
// checks; object grants only apply when it is set.
type Resource struct {
	Type string `json:"type" binding:"required"`
	ID   string `json:"id,omitempty"`
}

// Ref renders the resource for cache keys, history and audit entries.
func (r Resource) Ref() string {
	if r.ID == "" {
		return r.Type
	}
	return model.ObjectRef(r.Type, r.ID)
}

// CheckRequest is one access question. Timestamp is optional; the engine
// fills it with the current time when zero. ForceCheck bypasses the decision
// cache for this caller without disturbing it for others.
type CheckRequest struct {
	PrincipalID string            `json:"principal_id" binding:"required"`
	Resource    Resource          `json:"resource" binding:"required"`
	Action      model.Action      `json:"action" binding:"required"`
	Env         map[string]string `json:"env,omitempty"`
	ForceCheck  bool              `json:"force_check,omitempty"`
	Timestamp   time.Time         `json:"timestamp,omitempty"`
}
