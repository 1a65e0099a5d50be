// api/partition/router_test.go
package partition

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltsec/aegis/api/audit"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/policy"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "aegis-partition-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	defer logger.Sync()
	m.Run()
}

type stubDirectory struct {
	principals map[string]model.Principal
	err        error
}

func (d *stubDirectory) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.principals[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

type routerAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (a *routerAudit) Log(ctx context.Context, entry audit.Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *routerAudit) Query(ctx context.Context, filter audit.Filter) ([]audit.Entry, error) {
	return nil, nil
}

func (a *routerAudit) Close(ctx context.Context) error { return nil }

func routerPolicies() *policy.Store {
	s := policy.NewStore()
	s.Swap(map[string]model.Role{
		"finance_analyst": {
			Name:   "finance_analyst",
			Active: true,
			Partitions: map[string][]model.Operation{
				"public_data":  {model.OpRead, model.OpWrite},
				"finance_data": {model.OpRead},
			},
		},
		"finance_controller": {
			Name:            "finance_controller",
			Active:          true,
			SensitiveWriter: true,
			Partitions: map[string][]model.Operation{
				"finance_data": {model.OpRead, model.OpWrite},
			},
		},
		"intern": {
			Name:   "intern",
			Active: true,
			Partitions: map[string][]model.Operation{
				"finance_data": {model.OpRead, model.OpWrite},
			},
		},
	})
	return s
}

func newTestRouter(directory Directory) (*Router, *routerAudit) {
	auditSvc := &routerAudit{}
	r := NewRouter(testTable(), routerPolicies(), directory, NewHistory(20), auditSvc, Options{})
	r.now = func() time.Time { return time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC) }
	return r, auditSvc
}

func testDirectory() *stubDirectory {
	return &stubDirectory{principals: map[string]model.Principal{
		"alice":  {ID: "alice", Active: true, Roles: []string{"finance_analyst"}},
		"carol":  {ID: "carol", Active: true, Roles: []string{"finance_controller"}},
		"ivan":   {ID: "ivan", Active: true, Roles: []string{"intern"}},
		"former": {ID: "former", Active: false, Roles: []string{"finance_analyst"}},
	}}
}

func TestRouteAccessReadAllowed(t *testing.T) {
	r, auditSvc := newTestRouter(testDirectory())

	dec := r.RouteAccess(context.Background(), "invoice", model.OpRead, "alice")
	assert.True(t, dec.Allowed)
	assert.Equal(t, "finance_data", dec.Partition)
	assert.Equal(t, model.TierRestricted, dec.Tier)
	// RESTRICTED tier 0.4 + read 0.1 during business hours.
	assert.InDelta(t, 0.5, dec.RiskScore, 1e-9)

	require.Len(t, auditSvc.entries, 1)
	assert.Equal(t, audit.SourceRouter, auditSvc.entries[0].Source)
	assert.Equal(t, "finance_data", auditSvc.entries[0].Partition)
}

func TestRouteAccessDeniesUngrantedOperation(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	// finance_analyst only reads finance_data.
	dec := r.RouteAccess(context.Background(), "invoice", model.OpWrite, "alice")
	assert.False(t, dec.Allowed)
	assert.Equal(t, "operation not granted on partition", dec.Reason)
	assert.Zero(t, dec.RiskScore, "denied before the risk gate")
}

func TestRouteAccessSensitiveWriteGate(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	// intern holds write on finance_data but not the sensitive-writer flag.
	dec := r.RouteAccess(context.Background(), "invoice", model.OpWrite, "ivan")
	assert.False(t, dec.Allowed)
	assert.Equal(t, "sensitive write requires a sensitive-writer role", dec.Reason)

	// finance_controller carries the flag; RESTRICTED 0.4 + write 0.3 = 0.7
	// stays under the deny threshold.
	dec = r.RouteAccess(context.Background(), "invoice", model.OpWrite, "carol")
	assert.True(t, dec.Allowed)
	assert.InDelta(t, 0.7, dec.RiskScore, 1e-9)
}

func TestRouteAccessRiskThreshold(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	// Seed enough retained traffic and denials to trip the volume and
	// failure signals: 0.4 + 0.1 + 0.1 + 0.3 = 0.9 > 0.8.
	for i := 0; i < 11; i++ {
		r.history.Record("alice", model.RoutingRecord{Partition: "finance_data", Allowed: i >= 4})
	}

	dec := r.RouteAccess(context.Background(), "invoice", model.OpRead, "alice")
	assert.False(t, dec.Allowed)
	assert.Equal(t, "routing risk threshold exceeded", dec.Reason)
	assert.InDelta(t, 0.9, dec.RiskScore, 1e-9)
}

func TestRouteAccessOffHoursSignal(t *testing.T) {
	r, _ := newTestRouter(testDirectory())
	r.now = func() time.Time { return time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC) }

	dec := r.RouteAccess(context.Background(), "invoice", model.OpRead, "alice")
	// 0.4 + 0.1 + 0.2 off-hours.
	assert.InDelta(t, 0.7, dec.RiskScore, 1e-9)
	assert.True(t, dec.Allowed)
}

func TestRouteAccessUnmappedTypeDefaultsToPublic(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	dec := r.RouteAccess(context.Background(), "cafeteria_menu", model.OpRead, "alice")
	assert.True(t, dec.Allowed)
	assert.Equal(t, "public_data", dec.Partition)
	assert.Equal(t, model.TierPublic, dec.Tier)
	// PUBLIC 0.1 + read 0.1.
	assert.InDelta(t, 0.2, dec.RiskScore, 1e-9)
}

func TestRouteAccessInactivePrincipalDenied(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	dec := r.RouteAccess(context.Background(), "invoice", model.OpRead, "former")
	assert.False(t, dec.Allowed)
	assert.Equal(t, "principal not found or inactive", dec.Reason)

	dec = r.RouteAccess(context.Background(), "invoice", model.OpRead, "ghost")
	assert.False(t, dec.Allowed)
}

func TestRouteAccessDirectoryUnavailable(t *testing.T) {
	r, _ := newTestRouter(&stubDirectory{err: errors.New("connection refused")})

	// Writes and reads of mapped types need verified roles.
	dec := r.RouteAccess(context.Background(), "invoice", model.OpWrite, "alice")
	assert.False(t, dec.Allowed)
	assert.Equal(t, "directory unavailable", dec.Reason)

	dec = r.RouteAccess(context.Background(), "invoice", model.OpRead, "alice")
	assert.False(t, dec.Allowed)

	// A read of an unmapped type continues role-less against the default
	// partition's risk gate.
	dec = r.RouteAccess(context.Background(), "cafeteria_menu", model.OpRead, "alice")
	assert.True(t, dec.Allowed)
	assert.Equal(t, "public_data", dec.Partition)
}

func TestRouteAccessRecordsHistory(t *testing.T) {
	r, _ := newTestRouter(testDirectory())

	r.RouteAccess(context.Background(), "invoice", model.OpRead, "alice")
	r.RouteAccess(context.Background(), "invoice", model.OpWrite, "alice")

	recent := r.History().Recent("alice", 0)
	require.Len(t, recent, 2)
	assert.Equal(t, model.OpWrite, recent[0].Operation)
	assert.False(t, recent[0].Allowed)
	assert.Equal(t, model.OpRead, recent[1].Operation)
	assert.True(t, recent[1].Allowed)
}
