// api/policy/loader_test.go
package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aegis_errors "github.com/cobaltsec/aegis/api/errors"
	"github.com/cobaltsec/aegis/api/model"
	"github.com/cobaltsec/aegis/api/policy"
)

func validTableConfig() policy.TableConfig {
	return policy.TableConfig{
		Partitions: []policy.PartitionConfig{
			{Name: "public_data", Tier: "PUBLIC"},
			{Name: "finance_data", Tier: "RESTRICTED"},
		},
		ModulePartitions: map[string]string{
			"finance_estimation": "finance_data",
		},
		ResourceModules: map[string]string{
			"invoice": "finance_estimation",
		},
		Roles: []policy.RoleConfig{
			{
				Name:   "finance_analyst",
				Active: true,
				Modules: map[string][]string{
					"finance_estimation": {"view", "create"},
				},
				Partitions: map[string][]string{
					"finance_data": {"read"},
				},
			},
		},
		DefaultPartition: "public_data",
	}
}

func TestBuildTablesValid(t *testing.T) {
	tables, err := policy.BuildTables(validTableConfig())
	require.NoError(t, err)

	assert.Equal(t, model.TierRestricted, tables.Partitions["finance_data"].Tier)
	assert.Equal(t, "finance_data", tables.ModulePartitions[model.ModuleFinanceEstimation])
	assert.Equal(t, model.ModuleFinanceEstimation, tables.ResourceModules["invoice"])
	assert.Equal(t, "public_data", tables.DefaultPartition)

	role := tables.Roles["finance_analyst"]
	assert.True(t, role.HasModuleAction(model.ModuleFinanceEstimation, model.ActionView))
}

func TestBuildTablesRejectsUnknownNames(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*policy.TableConfig)
	}{
		{"unknown tier", func(c *policy.TableConfig) {
			c.Partitions[1].Tier = "TOP_SECRET"
		}},
		{"unknown module in routing", func(c *policy.TableConfig) {
			c.ModulePartitions["accounting"] = "finance_data"
		}},
		{"unknown partition in routing", func(c *policy.TableConfig) {
			c.ModulePartitions["finance_estimation"] = "no_such_partition"
		}},
		{"unknown module in resource map", func(c *policy.TableConfig) {
			c.ResourceModules["invoice"] = "accounting"
		}},
		{"unknown module in role", func(c *policy.TableConfig) {
			c.Roles[0].Modules["accounting"] = []string{"view"}
		}},
		{"unknown action in role", func(c *policy.TableConfig) {
			c.Roles[0].Modules["finance_estimation"] = []string{"transmogrify"}
		}},
		{"unknown partition in role", func(c *policy.TableConfig) {
			c.Roles[0].Partitions["no_such_partition"] = []string{"read"}
		}},
		{"unknown operation in role", func(c *policy.TableConfig) {
			c.Roles[0].Partitions["finance_data"] = []string{"append"}
		}},
		{"undefined default partition", func(c *policy.TableConfig) {
			c.DefaultPartition = "no_such_partition"
		}},
		{"empty role name", func(c *policy.TableConfig) {
			c.Roles[0].Name = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTableConfig()
			tc.mutate(&cfg)

			_, err := policy.BuildTables(cfg)
			require.Error(t, err)

			var ce *aegis_errors.ConfigError
			assert.ErrorAs(t, err, &ce)
		})
	}
}

func TestBuildTablesRejectsDuplicates(t *testing.T) {
	cfg := validTableConfig()
	cfg.Partitions = append(cfg.Partitions, policy.PartitionConfig{Name: "finance_data", Tier: "CRITICAL"})
	_, err := policy.BuildTables(cfg)
	assert.Error(t, err)

	cfg = validTableConfig()
	cfg.Roles = append(cfg.Roles, policy.RoleConfig{Name: "finance_analyst", Active: true})
	_, err = policy.BuildTables(cfg)
	assert.Error(t, err)
}
