// api/policy/store.go
package policy

import (
	"sort"
	"sync"

	"github.com/cobaltsec/aegis/api/model"
)

// Snapshot is one immutable version of the role table. Reloads build a new
// snapshot and swap it in whole; readers never see a half-applied table.
type Snapshot struct {
	Version int64
	Roles   map[string]model.Role
}

// Store holds the current role table. All lookups run under a read lock;
// only Swap takes the write lock.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore() *Store {
	return &Store{snap: &Snapshot{Roles: map[string]model.Role{}}}
}

// Swap replaces the role table and bumps the version.
func (s *Store) Swap(roles map[string]model.Role) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &Snapshot{Version: s.snap.Version + 1, Roles: roles}
	return s.snap.Version
}

func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Version
}

func (s *Store) Role(name string) (model.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.snap.Roles[name]
	return role, ok
}

// Roles returns the table sorted by role name.
func (s *Store) Roles() []model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]model.Role, 0, len(s.snap.Roles))
	for _, role := range s.snap.Roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles
}

// HasPermission reports whether the named role grants the action on the
// module. Unknown and inactive roles grant nothing.
func (s *Store) HasPermission(roleName string, module model.Module, action model.Action) bool {
	role, ok := s.Role(roleName)
	if !ok {
		return false
	}
	return role.HasModuleAction(module, action)
}

// AnyRoleHasPermission checks the action across a principal's role set.
func (s *Store) AnyRoleHasPermission(roleNames []string, module model.Module, action model.Action) bool {
	for _, name := range roleNames {
		if s.HasPermission(name, module, action) {
			return true
		}
	}
	return false
}

// EffectiveModuleActions expands a role set into the concrete actions it
// confers per module, with manage_all expanded to the full action set.
func (s *Store) EffectiveModuleActions(roleNames []string) map[model.Module][]model.Action {
	s.mu.RLock()
	defer s.mu.RUnlock()

	held := make(map[model.Module]map[model.Action]struct{})
	for _, name := range roleNames {
		role, ok := s.snap.Roles[name]
		if !ok || !role.Active {
			continue
		}
		for module, actions := range role.Modules {
			set := held[module]
			if set == nil {
				set = make(map[model.Action]struct{})
				held[module] = set
			}
			for _, action := range actions {
				if action == model.ActionManageAll {
					for _, a := range model.AllActions {
						set[a] = struct{}{}
					}
					break
				}
				set[action] = struct{}{}
			}
		}
	}

	out := make(map[model.Module][]model.Action, len(held))
	for module, set := range held {
		actions := make([]model.Action, 0, len(set))
		for a := range set {
			actions = append(actions, a)
		}
		sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
		out[module] = actions
	}
	return out
}

// PartitionOps unions the partition operations a role set holds.
func (s *Store) PartitionOps(roleNames []string, partitionName string) map[model.Operation]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ops := make(map[model.Operation]bool, 2)
	for _, name := range roleNames {
		role, ok := s.snap.Roles[name]
		if !ok {
			continue
		}
		for _, op := range role.PartitionOps(partitionName) {
			ops[op] = true
		}
	}
	return ops
}

// HasSensitiveWriter reports whether any active role in the set carries the
// sensitive-writer flag.
func (s *Store) HasSensitiveWriter(roleNames []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range roleNames {
		role, ok := s.snap.Roles[name]
		if ok && role.Active && role.SensitiveWriter {
			return true
		}
	}
	return false
}
