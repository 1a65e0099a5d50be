// api/policy/loader.go
package policy

import (
	"fmt"

	"github.com/cobaltsec/aegis/api/config"
	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
)

// RoleConfig mirrors one `policy.roles` entry in the config file. Module,
// action, partition and operation names are free-form here and validated
// into the closed enums before anything reaches the store.
type RoleConfig struct {
	Name            string              `mapstructure:"name"`
	Description     string              `mapstructure:"description"`
	Active          bool                `mapstructure:"active"`
	SensitiveWriter bool                `mapstructure:"sensitive_writer"`
	Modules         map[string][]string `mapstructure:"modules"`
	Partitions      map[string][]string `mapstructure:"partitions"`
}

// PartitionConfig mirrors one `partitions` entry.
type PartitionConfig struct {
	Name        string `mapstructure:"name"`
	Tier        string `mapstructure:"tier"`
	Description string `mapstructure:"description"`
}

// TableConfig is everything the loader validates, as read from the file.
type TableConfig struct {
	Partitions       []PartitionConfig
	ModulePartitions map[string]string
	ResourceModules  map[string]string
	Roles            []RoleConfig
	DefaultPartition string
}

// Tables is the validated result of one load: everything the policy store
// and the partition router need, built together so the partition names in
// role grants are checked against the partition table they ship with.
type Tables struct {
	Roles      map[string]model.Role
	Partitions map[string]model.Partition
	// ModulePartitions routes a module to its partition name.
	ModulePartitions map[model.Module]string
	// ResourceModules maps a resource type to its owning module.
	ResourceModules  map[string]model.Module
	DefaultPartition string
}

// Load reads the role, partition and routing tables from the live
// configuration and validates them. Any unknown module, action, tier,
// partition or operation name is a ConfigError; at startup the caller
// treats that as fatal, on hot reload it keeps the previous tables.
func Load() (*Tables, error) {
	cfg := TableConfig{
		ModulePartitions: map[string]string{},
		ResourceModules:  map[string]string{},
		DefaultPartition: config.GetString("routing.default_partition"),
	}
	if err := config.UnmarshalKey("partitions", &cfg.Partitions); err != nil {
		return nil, aegis_errors.NewConfigError("partitions", err.Error())
	}
	if err := config.UnmarshalKey("routing.modules", &cfg.ModulePartitions); err != nil {
		return nil, aegis_errors.NewConfigError("routing.modules", err.Error())
	}
	if err := config.UnmarshalKey("routing.resources", &cfg.ResourceModules); err != nil {
		return nil, aegis_errors.NewConfigError("routing.resources", err.Error())
	}
	if err := config.UnmarshalKey("policy.roles", &cfg.Roles); err != nil {
		return nil, aegis_errors.NewConfigError("policy.roles", err.Error())
	}
	return BuildTables(cfg)
}

// BuildTables validates a raw table configuration into closed-enum tables.
func BuildTables(cfg TableConfig) (*Tables, error) {
	t := &Tables{
		Roles:            make(map[string]model.Role),
		Partitions:       make(map[string]model.Partition),
		ModulePartitions: make(map[model.Module]string),
		ResourceModules:  make(map[string]model.Module),
		DefaultPartition: cfg.DefaultPartition,
	}

	for _, p := range cfg.Partitions {
		if p.Name == "" {
			return nil, aegis_errors.NewConfigError("partitions", "partition with empty name")
		}
		tier := model.Tier(p.Tier)
		if !tier.Valid() {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("partitions.%s", p.Name),
				fmt.Sprintf("unknown sensitivity tier %q", p.Tier))
		}
		if _, dup := t.Partitions[p.Name]; dup {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("partitions.%s", p.Name), "duplicate partition name")
		}
		t.Partitions[p.Name] = model.Partition{Name: p.Name, Tier: tier, Description: p.Description}
	}
	if _, ok := t.Partitions[t.DefaultPartition]; !ok {
		return nil, aegis_errors.NewConfigError(
			"routing.default_partition",
			fmt.Sprintf("default partition %q is not defined", t.DefaultPartition))
	}

	for moduleName, partitionName := range cfg.ModulePartitions {
		module := model.Module(moduleName)
		if !module.Valid() {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("routing.modules.%s", moduleName), "unknown module")
		}
		if _, ok := t.Partitions[partitionName]; !ok {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("routing.modules.%s", moduleName),
				fmt.Sprintf("unknown partition %q", partitionName))
		}
		t.ModulePartitions[module] = partitionName
	}

	for resourceType, moduleName := range cfg.ResourceModules {
		module := model.Module(moduleName)
		if !module.Valid() {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("routing.resources.%s", resourceType),
				fmt.Sprintf("unknown module %q", moduleName))
		}
		t.ResourceModules[resourceType] = module
	}

	for _, rc := range cfg.Roles {
		role, err := validateRole(rc, t.Partitions)
		if err != nil {
			return nil, err
		}
		if _, dup := t.Roles[role.Name]; dup {
			return nil, aegis_errors.NewConfigError(
				fmt.Sprintf("policy.roles.%s", role.Name), "duplicate role name")
		}
		t.Roles[role.Name] = role
	}

	return t, nil
}

func validateRole(rc RoleConfig, partitions map[string]model.Partition) (model.Role, error) {
	if rc.Name == "" {
		return model.Role{}, aegis_errors.NewConfigError("policy.roles", "role with empty name")
	}

	role := model.Role{
		Name:            rc.Name,
		Description:     rc.Description,
		Active:          rc.Active,
		SensitiveWriter: rc.SensitiveWriter,
		Modules:         make(map[model.Module][]model.Action, len(rc.Modules)),
		Partitions:      make(map[string][]model.Operation, len(rc.Partitions)),
	}

	for moduleName, actionNames := range rc.Modules {
		module := model.Module(moduleName)
		if !module.Valid() {
			return model.Role{}, aegis_errors.NewConfigError(
				fmt.Sprintf("policy.roles.%s.modules", rc.Name),
				fmt.Sprintf("unknown module %q", moduleName))
		}
		actions := make([]model.Action, 0, len(actionNames))
		for _, actionName := range actionNames {
			action := model.Action(actionName)
			if !action.Valid() {
				return model.Role{}, aegis_errors.NewConfigError(
					fmt.Sprintf("policy.roles.%s.modules.%s", rc.Name, moduleName),
					fmt.Sprintf("unknown action %q", actionName))
			}
			actions = append(actions, action)
		}
		role.Modules[module] = actions
	}

	for partitionName, opNames := range rc.Partitions {
		if _, ok := partitions[partitionName]; !ok {
			return model.Role{}, aegis_errors.NewConfigError(
				fmt.Sprintf("policy.roles.%s.partitions", rc.Name),
				fmt.Sprintf("unknown partition %q", partitionName))
		}
		ops := make([]model.Operation, 0, len(opNames))
		for _, opName := range opNames {
			op := model.Operation(opName)
			if !op.Valid() {
				return model.Role{}, aegis_errors.NewConfigError(
					fmt.Sprintf("policy.roles.%s.partitions.%s", rc.Name, partitionName),
					fmt.Sprintf("unknown operation %q", opName))
			}
			ops = append(ops, op)
		}
		role.Partitions[partitionName] = ops
	}

	return role, nil
}
