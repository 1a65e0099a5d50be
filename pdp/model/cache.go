package model

import (
	"strings"
	"time"

	"github.com/cobaltsec/aegis/api/model"
)

// CacheKey is the structured decision-cache key. The cache indexes by the
// struct itself, so free-form principal IDs and object refs can never bleed
// into neighbouring fields the way concatenated string keys allow.
type CacheKey struct {
	PrincipalID string
	Module      model.Module
	Action      model.Action
	ObjectRef   string
}

// String renders the key for single-flight grouping and log fields.
func (k CacheKey) String() string {
	return strings.Join([]string{"decision", k.PrincipalID, string(k.Module), string(k.Action), k.ObjectRef}, "|")
}

type CacheEntry struct {
	Decision  CheckResult
	ExpiresAt time.Time
}

func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
