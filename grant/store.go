// api/grant/store.go
package grant

import (
	"context"

	"github.com/cobaltsec/aegis/api/model"
)

// Store persists per-object grants. Reads re-validate expiry: an expired
// grant is reported as absent. Nothing sweeps expired rows; they linger
// until overwritten or revoked.
type Store interface {
	Put(ctx context.Context, g model.Grant) error
	Delete(ctx context.Context, principalID, permRef, objectRef string) error
	Find(ctx context.Context, principalID, permRef, objectRef string) (*model.Grant, error)
	ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error)
}

func fieldKey(permRef, objectRef string) string {
	return permRef + "|" + objectRef
}
