// api/model/grant.go
package model

import "time"

// Grant is a per-object permission handed to a single principal, optionally
// expiring. Expired grants are inert but are not swept; they stay until
// revoked or overwritten.
type Grant struct {
	ID          string     `json:"id"`
	PrincipalID string     `json:"principal_id"`
	Module      Module     `json:"module"`
	Action      Action     `json:"action"`
	ObjectType  string     `json:"object_type"`
	ObjectID    string     `json:"object_id"`
	GrantedBy   string     `json:"granted_by,omitempty"`
	GrantedAt   time.Time  `json:"granted_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (g Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}

func (g Grant) PermissionRef() string {
	return PermissionRef(g.Module, g.Action)
}

func (g Grant) ObjectRef() string {
	return ObjectRef(g.ObjectType, g.ObjectID)
}

// ObjectRef renders the canonical "type:id" reference for a concrete object.
func ObjectRef(objectType, objectID string) string {
	return objectType + ":" + objectID
}

type GrantRequest struct {
	PrincipalID string     `json:"principal_id" binding:"required"`
	Module      Module     `json:"module" binding:"required"`
	Action      Action     `json:"action" binding:"required"`
	ObjectType  string     `json:"object_type" binding:"required"`
	ObjectID    string     `json:"object_id" binding:"required"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type RevokeRequest struct {
	PrincipalID string `json:"principal_id" binding:"required"`
	Module      Module `json:"module" binding:"required"`
	Action      Action `json:"action" binding:"required"`
	ObjectType  string `json:"object_type" binding:"required"`
	ObjectID    string `json:"object_id" binding:"required"`
}

type BulkGrantRequest struct {
	Grants []GrantRequest `json:"grants" binding:"required"`
}

// BulkGrantResult reports per-item outcomes; a bulk call is not atomic.
type BulkGrantResult struct {
	Granted  []Grant        `json:"granted"`
	Failures []GrantFailure `json:"failures,omitempty"`
}

type GrantFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}
