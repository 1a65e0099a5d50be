// api/pdp/engine/engine.go
package engine

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cobaltsec/aegis/api/audit"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/grant"
	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/model"
	pdp_model "github.com/cobaltsec/aegis/api/pdp/model"
	"github.com/cobaltsec/aegis/api/policy"
	"github.com/cobaltsec/aegis/api/risk"
)

// Directory resolves principals to their roles and flags.
type Directory interface {
	GetPrincipal(ctx context.Context, id string) (*model.Principal, error)
}

// ModuleResolver maps a resource type onto its owning module.
type ModuleResolver interface {
	ResolveModule(resourceType string) (model.Module, bool)
}

type Options struct {
	RiskThreshold float64
	CacheTTL      time.Duration
	CacheWait     time.Duration
	HistoryLimit  int
	HistoryWindow time.Duration
}

// Engine runs the decision pipeline: static role check, object grant check,
// risk scoring, final combination, history, audit, cache.
type Engine struct {
	directory Directory
	policies  *policy.Store
	grants    grant.Store
	scorer    risk.Scorer
	history   risk.HistoryStore
	auditSvc  audit.Service
	resolver  ModuleResolver
	cache     *DecisionCache
	opts      Options
	now       func() time.Time
}

func New(
	directory Directory,
	policies *policy.Store,
	grants grant.Store,
	scorer risk.Scorer,
	history risk.HistoryStore,
	auditSvc audit.Service,
	resolver ModuleResolver,
	opts Options,
) *Engine {
	if opts.RiskThreshold <= 0 {
		opts.RiskThreshold = 0.7
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 30 * 24 * time.Hour
	}
	return &Engine{
		directory: directory,
		policies:  policies,
		grants:    grants,
		scorer:    scorer,
		history:   history,
		auditSvc:  auditSvc,
		resolver:  resolver,
		cache:     NewDecisionCache(opts.CacheTTL, opts.CacheWait),
		opts:      opts,
		now:       time.Now,
	}
}

// Cache exposes the decision cache for invalidation hooks.
func (e *Engine) Cache() *DecisionCache {
	return e.cache
}

// CheckPermission answers one access question. Identical concurrent
// questions share a single evaluation; results live in the cache for the
// configured TTL. The caller never sees raw store errors; degraded
// evaluations surface as anomalies on a conservative result.
func (e *Engine) CheckPermission(ctx context.Context, req pdp_model.CheckRequest) (pdp_model.CheckResult, error) {
	at := req.Timestamp
	if at.IsZero() {
		at = e.now()
	}
	module, _ := e.resolver.ResolveModule(req.Resource.Type)
	key := pdp_model.CacheKey{
		PrincipalID: req.PrincipalID,
		Module:      module,
		Action:      req.Action,
		ObjectRef:   req.Resource.Ref(),
	}

	compute := func(cctx context.Context) (pdp_model.CheckResult, error) {
		return e.evaluate(cctx, req, module, at), nil
	}

	if req.ForceCheck {
		return e.cache.ForceCompute(ctx, key, compute)
	}

	res, err := e.cache.GetOrCompute(ctx, key, compute)
	if err != nil {
		return res, err
	}
	if res.Cached {
		// Served from cache: the evaluation already audited once when it was
		// computed; hits get their own entry marked as cached.
		e.auditDecision(ctx, req, module, res, at)
	}
	return res, nil
}

// evaluate runs the full pipeline once. It never returns an error; failures
// fold into a conservative result with anomalies, and every path audits.
func (e *Engine) evaluate(ctx context.Context, req pdp_model.CheckRequest, module model.Module, at time.Time) pdp_model.CheckResult {
	res := pdp_model.CheckResult{Anomalies: []string{}, Recommendations: []string{}}

	var roles []string
	superuser := false
	active := false

	principal, err := e.directory.GetPrincipal(ctx, req.PrincipalID)
	switch {
	case err != nil:
		res.Anomalies = append(res.Anomalies, "Directory unavailable; degraded evaluation")
		res.Reason = "directory unavailable"
		logger.Warn("Principal directory unavailable during evaluation",
			zap.String("principalID", req.PrincipalID),
			zap.Error(err))
	case principal == nil:
		res.Anomalies = append(res.Anomalies, "Principal not known to the directory")
		res.Reason = "principal not found"
	case !principal.Active:
		res.Reason = "principal inactive"
	default:
		roles = principal.Roles
		superuser = principal.Superuser
		active = true
	}

	staticAllowed := false
	if superuser {
		// Superusers skip the static matrix but are still risk-scored and
		// audited below.
		staticAllowed = true
	} else if active && module != "" {
		staticAllowed = e.policies.AnyRoleHasPermission(roles, module, req.Action)
	}
	if !staticAllowed && active && !superuser {
		granted, gerr := e.grantAllows(ctx, req, module, at)
		switch {
		case gerr != nil:
			res.Anomalies = append(res.Anomalies, "Grant store unavailable; degraded evaluation")
			logger.Warn("Grant store unavailable; evaluating static-only",
				zap.String("principalID", req.PrincipalID),
				zap.Error(gerr))
			if req.Action.IsWrite() {
				res.Reason = "grant store unavailable"
			}
		case granted:
			staticAllowed = true
		}
	}
	if module == "" && !superuser {
		res.Anomalies = append(res.Anomalies, "Resource type is not mapped to a module")
	}

	if !staticAllowed {
		if res.Reason == "" {
			res.Reason = "denied by policy"
		}
		res.Allowed = false
		res.RiskScore = 0
		e.recordHistory(req, false, at)
		e.auditDecision(ctx, req, module, res, at)
		return res
	}

	if ctx.Err() != nil {
		// Caller is gone. Audit the static verdict without spending the risk
		// budget; the conservative answer is deny.
		res.Allowed = false
		res.Reason = "evaluation canceled before risk scoring"
		res.Anomalies = append(res.Anomalies, "Evaluation canceled before risk scoring")
		e.auditDecision(ctx, req, module, res, at)
		return res
	}

	access := risk.AccessContext{
		PrincipalID: req.PrincipalID,
		Roles:       roles,
		Resource:    req.Resource.Ref(),
		Action:      string(req.Action),
		At:          at,
		Env:         req.Env,
		History:     e.history.Recent(req.PrincipalID, e.opts.HistoryLimit, at.Add(-e.opts.HistoryWindow)),
	}
	assessment, serr := e.scorer.Score(ctx, access)
	if serr != nil {
		// The fallback chain itself failed; never fail open.
		assessment = risk.Assessment{
			Score:     1.0,
			Anomalies: []string{"Risk scoring unavailable"},
		}
		logger.Error("Risk scoring failed with no usable fallback",
			zap.String("principalID", req.PrincipalID),
			zap.Error(serr))
	}

	res.RiskScore = assessment.Score
	res.Anomalies = append(res.Anomalies, assessment.Anomalies...)
	res.Recommendations = append(res.Recommendations, assessment.Recommendations...)

	riskAllowed := assessment.Score < e.opts.RiskThreshold
	res.Allowed = staticAllowed && riskAllowed
	if !res.Allowed && res.Reason == "" {
		res.Reason = "risk threshold exceeded"
	}

	e.recordHistory(req, res.Allowed, at)
	e.auditDecision(ctx, req, module, res, at)
	return res
}

// grantAllows consults the object-grant store. With an unmapped resource
// type the module is unknown, so the principal's grants are scanned for an
// exact action and object match instead.
func (e *Engine) grantAllows(ctx context.Context, req pdp_model.CheckRequest, module model.Module, at time.Time) (bool, error) {
	if req.Resource.ID == "" {
		return false, nil
	}
	objectRef := model.ObjectRef(req.Resource.Type, req.Resource.ID)
	if module != "" {
		g, err := e.grants.Find(ctx, req.PrincipalID, model.PermissionRef(module, req.Action), objectRef)
		if err != nil {
			return false, err
		}
		return g != nil && !g.Expired(at), nil
	}

	grants, err := e.grants.ListForPrincipal(ctx, req.PrincipalID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if g.Action == req.Action && g.ObjectRef() == objectRef && !g.Expired(at) {
			return true, nil
		}
	}
	return false, nil
}

// EffectivePermissions lists every module.action the principal's roles
// confer plus module.action:object entries for live grants, sorted.
func (e *Engine) EffectivePermissions(ctx context.Context, principalID string) ([]string, error) {
	principal, err := e.directory.GetPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, aegis_errors.ErrPrincipalNotFound
	}
	if !principal.Active {
		return []string{}, nil
	}

	perms := make(map[string]struct{})
	if principal.Superuser {
		for _, m := range model.AllModules {
			for _, a := range model.AllActions {
				perms[model.PermissionRef(m, a)] = struct{}{}
			}
		}
	} else {
		for module, actions := range e.policies.EffectiveModuleActions(principal.Roles) {
			for _, a := range actions {
				perms[model.PermissionRef(module, a)] = struct{}{}
			}
		}
	}

	grants, err := e.grants.ListForPrincipal(ctx, principalID)
	if err != nil {
		return nil, err
	}
	for _, g := range grants {
		perms[g.PermissionRef()+":"+g.ObjectRef()] = struct{}{}
	}

	out := make([]string, 0, len(perms))
	for p := range perms {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (e *Engine) recordHistory(req pdp_model.CheckRequest, granted bool, at time.Time) {
	e.history.Record(req.PrincipalID, risk.HistoryEntry{
		Resource: req.Resource.Ref(),
		Action:   string(req.Action),
		Granted:  granted,
		At:       at,
	})
}

func (e *Engine) auditDecision(ctx context.Context, req pdp_model.CheckRequest, module model.Module, res pdp_model.CheckResult, at time.Time) {
	details, _ := json.Marshal(map[string]string{
		"module": string(module),
		"reason": res.Reason,
	})
	e.auditSvc.Log(ctx, audit.Entry{
		Timestamp:   at,
		PrincipalID: req.PrincipalID,
		Resource:    req.Resource.Ref(),
		Action:      string(req.Action),
		Allowed:     res.Allowed,
		RiskScore:   res.RiskScore,
		Anomalies:   res.Anomalies,
		Cached:      res.Cached,
		Source:      audit.SourceEngine,
		Details:     details,
	})
}
