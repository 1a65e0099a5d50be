// api/model/enums.go
package model

// Module is a closed enumeration of the platform's business modules. Role
// tables referring to anything outside this set are rejected at load time.
type Module string

const (
	ModuleHRManagement        Module = "hr_management"
	ModuleProjectsEngineering Module = "projects_engineering"
	ModuleContractsLegal      Module = "contracts_legal"
	ModuleFinanceEstimation   Module = "finance_estimation"
	ModuleReportingDashboards Module = "reporting_dashboards"
	ModuleHSECompliance       Module = "hse_compliance"
	ModuleSupplyChain         Module = "supply_chain"
	ModuleSalesEngagement     Module = "sales_engagement"
	ModuleRTOAPCConsulting    Module = "rto_apc_consulting"
	ModuleUserManagement      Module = "user_management"
	ModuleSystemSettings      Module = "system_settings"
	ModuleAIServices          Module = "ai_services"
)

var AllModules = []Module{
	ModuleHRManagement,
	ModuleProjectsEngineering,
	ModuleContractsLegal,
	ModuleFinanceEstimation,
	ModuleReportingDashboards,
	ModuleHSECompliance,
	ModuleSupplyChain,
	ModuleSalesEngagement,
	ModuleRTOAPCConsulting,
	ModuleUserManagement,
	ModuleSystemSettings,
	ModuleAIServices,
}

var validModules = func() map[Module]struct{} {
	m := make(map[Module]struct{}, len(AllModules))
	for _, mod := range AllModules {
		m[mod] = struct{}{}
	}
	return m
}()

func (m Module) Valid() bool {
	_, ok := validModules[m]
	return ok
}

// Action is a closed enumeration of the operations a role may hold on a
// module. ActionManageAll implies every other action on that module.
type Action string

const (
	ActionView      Action = "view"
	ActionCreate    Action = "create"
	ActionEdit      Action = "edit"
	ActionDelete    Action = "delete"
	ActionApprove   Action = "approve"
	ActionUse       Action = "use"
	ActionConfigure Action = "configure"
	ActionManageAll Action = "manage_all"
)

var AllActions = []Action{
	ActionView,
	ActionCreate,
	ActionEdit,
	ActionDelete,
	ActionApprove,
	ActionUse,
	ActionConfigure,
	ActionManageAll,
}

var validActions = func() map[Action]struct{} {
	m := make(map[Action]struct{}, len(AllActions))
	for _, a := range AllActions {
		m[a] = struct{}{}
	}
	return m
}()

func (a Action) Valid() bool {
	_, ok := validActions[a]
	return ok
}

// IsWrite reports whether the action mutates state. Write-class actions are
// denied outright when the grant store is degraded.
func (a Action) IsWrite() bool {
	switch a {
	case ActionView, ActionUse:
		return false
	default:
		return true
	}
}

// Operation is the partition-level access class an action maps onto.
type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
)

func (o Operation) Valid() bool {
	return o == OpRead || o == OpWrite
}

// Operation maps the module-level action to its partition operation.
func (a Action) Operation() Operation {
	if a.IsWrite() {
		return OpWrite
	}
	return OpRead
}
