// api/grant/redis_store.go
package grant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cobaltsec/aegis/api/db"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
)

// RedisStore keeps one hash per principal, field per grant, sealed JSON
// values. Transient failures are retried with backoff before surfacing as a
// StoreUnavailableError, which the engine degrades on.
type RedisStore struct {
	client  *redis.Client
	retries int
	backoff time.Duration
	now     func() time.Time
}

func NewRedisStore(client *redis.Client, retries int, backoff time.Duration) *RedisStore {
	if retries <= 0 {
		retries = 3
	}
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}
	return &RedisStore{client: client, retries: retries, backoff: backoff, now: time.Now}
}

func grantKey(principalID string) string {
	return fmt.Sprintf("grants:%s", principalID)
}

func (s *RedisStore) Put(ctx context.Context, g model.Grant) error {
	value, err := db.SealJSON(g)
	if err != nil {
		return err
	}
	return s.withRetry(ctx, func() error {
		return s.client.HSet(ctx, grantKey(g.PrincipalID), fieldKey(g.PermissionRef(), g.ObjectRef()), value).Err()
	})
}

func (s *RedisStore) Delete(ctx context.Context, principalID, permRef, objectRef string) error {
	return s.withRetry(ctx, func() error {
		return s.client.HDel(ctx, grantKey(principalID), fieldKey(permRef, objectRef)).Err()
	})
}

func (s *RedisStore) Find(ctx context.Context, principalID, permRef, objectRef string) (*model.Grant, error) {
	var raw string
	err := s.withRetry(ctx, func() error {
		var herr error
		raw, herr = s.client.HGet(ctx, grantKey(principalID), fieldKey(permRef, objectRef)).Result()
		if errors.Is(herr, redis.Nil) {
			raw = ""
			return nil
		}
		return herr
	})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var g model.Grant
	if err := db.OpenJSON(raw, &g); err != nil {
		return nil, err
	}
	if g.Expired(s.now()) {
		return nil, nil
	}
	return &g, nil
}

func (s *RedisStore) ListForPrincipal(ctx context.Context, principalID string) ([]model.Grant, error) {
	var fields map[string]string
	err := s.withRetry(ctx, func() error {
		var herr error
		fields, herr = s.client.HGetAll(ctx, grantKey(principalID)).Result()
		return herr
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]model.Grant, 0, len(fields))
	for _, raw := range fields {
		var g model.Grant
		if err := db.OpenJSON(raw, &g); err != nil {
			return nil, err
		}
		if g.Expired(now) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *RedisStore) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < s.retries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return aegis_errors.NewStoreUnavailable("grants", err)
		case <-time.After(s.backoff * time.Duration(1<<attempt)):
		}
	}
	return aegis_errors.NewStoreUnavailable("grants", err)
}
