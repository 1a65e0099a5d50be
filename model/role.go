// api/model/role.go
package model

// Role is one row of the static permission matrix: the modules it can act
// on, the partitions it can reach, and whether it may write to sensitive
// partitions. Roles are defined in configuration, not mutated at runtime.
type Role struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Active          bool                   `json:"active"`
	SensitiveWriter bool                   `json:"sensitive_writer"`
	Modules         map[Module][]Action    `json:"modules"`
	Partitions      map[string][]Operation `json:"partitions"`
}

// HasModuleAction reports whether the role grants the action on the module.
// manage_all covers every action; an inactive role grants nothing.
func (r Role) HasModuleAction(module Module, action Action) bool {
	if !r.Active {
		return false
	}
	for _, a := range r.Modules[module] {
		if a == ActionManageAll || a == action {
			return true
		}
	}
	return false
}

// PartitionOps returns the operations the role holds on a partition.
func (r Role) PartitionOps(partition string) []Operation {
	if !r.Active {
		return nil
	}
	return r.Partitions[partition]
}

// PermissionRef is the canonical "module.action" rendering used by grant
// lookups, cache keys and the effective-permission listing.
func PermissionRef(module Module, action Action) string {
	return string(module) + "." + string(action)
}
