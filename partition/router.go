// api/partition/router.go
package partition

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/cobaltsec/aegis/api/audit"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/policy"
)

// Directory resolves principals to their roles and flags.
type Directory interface {
	GetPrincipal(ctx context.Context, id string) (*model.Principal, error)
}

// Weights are the additive signals of the routing risk score.
type Weights struct {
	Tier     map[model.Tier]float64
	Read     float64
	Write    float64
	OffHours float64
	Volume   float64
	Failures float64
}

func DefaultWeights() Weights {
	return Weights{
		Tier: map[model.Tier]float64{
			model.TierPublic:     0.1,
			model.TierInternal:   0.2,
			model.TierRestricted: 0.4,
			model.TierCritical:   0.5,
		},
		Read:     0.1,
		Write:    0.3,
		OffHours: 0.2,
		Volume:   0.1,
		Failures: 0.3,
	}
}

type Options struct {
	DenyThreshold    float64
	VolumeThreshold  int
	FailureThreshold int
	BusinessStart    int
	BusinessEnd      int
	Weights          Weights
}

// Router decides which data partition a request may touch. Each decision
// walks four gates: the routing table, the role operation union, the
// sensitive-write flag, and the routing risk score. Every outcome lands in
// the rolling history and the audit log.
type Router struct {
	table     *Table
	policies  *policy.Store
	directory Directory
	history   *History
	auditSvc  audit.Service
	opts      Options
	now       func() time.Time
}

func NewRouter(
	table *Table,
	policies *policy.Store,
	directory Directory,
	history *History,
	auditSvc audit.Service,
	opts Options,
) *Router {
	if opts.DenyThreshold <= 0 {
		opts.DenyThreshold = 0.8
	}
	if opts.VolumeThreshold <= 0 {
		opts.VolumeThreshold = 10
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 3
	}
	if opts.BusinessEnd <= 0 {
		opts.BusinessStart = 6
		opts.BusinessEnd = 22
	}
	if opts.Weights.Tier == nil {
		opts.Weights = DefaultWeights()
	}
	return &Router{
		table:     table,
		policies:  policies,
		directory: directory,
		history:   history,
		auditSvc:  auditSvc,
		opts:      opts,
		now:       time.Now,
	}
}

// History exposes the rolling history for the query surface.
func (r *Router) History() *History {
	return r.history
}

// RouteAccess resolves the partition for one access and decides whether the
// principal may use it. It never returns an error; failures fold into a
// conservative decision.
func (r *Router) RouteAccess(ctx context.Context, resourceType string, operation model.Operation, principalID string) model.RouteDecision {
	at := r.now()
	part, mapped := r.table.ResolvePartition(resourceType)
	dec := model.RouteDecision{Partition: part.Name, Tier: part.Tier}

	var roles []string
	rolesKnown := false
	principal, err := r.directory.GetPrincipal(ctx, principalID)
	switch {
	case err != nil:
		logger.Warn("Directory unavailable during routing",
			zap.String("principalID", principalID),
			zap.Error(err))
		if operation == model.OpWrite || mapped {
			// Roles cannot be verified; only the read-of-unmapped-type path
			// is allowed to continue without them.
			dec.Reason = "directory unavailable"
			return r.finish(ctx, principalID, resourceType, operation, dec, at)
		}
	case principal == nil || !principal.Active:
		dec.Reason = "principal not found or inactive"
		return r.finish(ctx, principalID, resourceType, operation, dec, at)
	default:
		roles = principal.Roles
		rolesKnown = true
	}

	if rolesKnown {
		ops := r.policies.PartitionOps(roles, part.Name)
		if !ops[operation] {
			dec.Reason = "operation not granted on partition"
			return r.finish(ctx, principalID, resourceType, operation, dec, at)
		}
		if operation == model.OpWrite && part.Tier.Sensitive() && !r.policies.HasSensitiveWriter(roles) {
			dec.Reason = "sensitive write requires a sensitive-writer role"
			return r.finish(ctx, principalID, resourceType, operation, dec, at)
		}
	}

	score, signals := r.riskScore(principalID, part.Tier, operation, at)
	dec.RiskScore = score
	if score > r.opts.DenyThreshold {
		dec.Reason = "routing risk threshold exceeded"
		return r.finishWithSignals(ctx, principalID, resourceType, operation, dec, at, signals)
	}

	dec.Allowed = true
	return r.finishWithSignals(ctx, principalID, resourceType, operation, dec, at, signals)
}

// riskScore computes the routing-specific score: partition sensitivity,
// operation class, off-hours access, request volume and recent denials.
func (r *Router) riskScore(principalID string, tier model.Tier, operation model.Operation, at time.Time) (float64, []string) {
	w := r.opts.Weights
	score := w.Tier[tier]
	var signals []string

	if operation == model.OpWrite {
		score += w.Write
	} else {
		score += w.Read
	}

	hour := at.Hour()
	if hour < r.opts.BusinessStart || hour > r.opts.BusinessEnd {
		score += w.OffHours
		signals = append(signals, "off-hours access")
	}

	total, denied := r.history.Stats(principalID)
	if total > r.opts.VolumeThreshold {
		score += w.Volume
		signals = append(signals, "elevated request volume")
	}
	if denied > r.opts.FailureThreshold {
		score += w.Failures
		signals = append(signals, "recent routing denials")
	}

	if score > 1 {
		score = 1
	}
	return score, signals
}

func (r *Router) finish(ctx context.Context, principalID, resourceType string, operation model.Operation, dec model.RouteDecision, at time.Time) model.RouteDecision {
	return r.finishWithSignals(ctx, principalID, resourceType, operation, dec, at, nil)
}

func (r *Router) finishWithSignals(ctx context.Context, principalID, resourceType string, operation model.Operation, dec model.RouteDecision, at time.Time, signals []string) model.RouteDecision {
	r.history.Record(principalID, model.RoutingRecord{
		Partition: dec.Partition,
		Operation: operation,
		Allowed:   dec.Allowed,
		RiskScore: dec.RiskScore,
		At:        at,
	})

	details, _ := json.Marshal(map[string]interface{}{
		"reason":        dec.Reason,
		"table_version": r.table.Version(),
	})
	r.auditSvc.Log(ctx, audit.Entry{
		Timestamp:   at,
		PrincipalID: principalID,
		Resource:    resourceType,
		Action:      string(operation),
		Allowed:     dec.Allowed,
		RiskScore:   dec.RiskScore,
		Anomalies:   signals,
		Source:      audit.SourceRouter,
		Partition:   dec.Partition,
		Operation:   string(operation),
		Details:     details,
	})
	return dec
}
