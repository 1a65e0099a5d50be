// api/partition/table.go
package partition

import (
	"sync"

	"github.com/cobaltsec/aegis/api/model"
)

// Table is the versioned routing table: resource type to owning module,
// module to partition, and the partition catalog. Reloads swap the whole
// table; readers never see a partial mapping.
type Table struct {
	mu sync.RWMutex

	version          int64
	partitions       map[string]model.Partition
	modulePartitions map[model.Module]string
	resourceModules  map[string]model.Module
	defaultPartition string
}

func NewTable() *Table {
	return &Table{
		partitions:       map[string]model.Partition{},
		modulePartitions: map[model.Module]string{},
		resourceModules:  map[string]model.Module{},
		defaultPartition: "public_data",
	}
}

// Swap replaces the table contents and bumps the version.
func (t *Table) Swap(
	partitions map[string]model.Partition,
	modulePartitions map[model.Module]string,
	resourceModules map[string]model.Module,
	defaultPartition string,
) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.version++
	t.partitions = partitions
	t.modulePartitions = modulePartitions
	t.resourceModules = resourceModules
	t.defaultPartition = defaultPartition
	return t.version
}

func (t *Table) Version() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// ResolveModule maps a resource type onto its owning module. The second
// return is false for unmapped types.
func (t *Table) ResolveModule(resourceType string) (model.Module, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	module, ok := t.resourceModules[resourceType]
	return module, ok
}

// ResolvePartition routes a resource type to its partition. Unmapped types
// land on the default partition; that is fail-open for routing only, the
// access checks still run against the resolved partition.
func (t *Table) ResolvePartition(resourceType string) (model.Partition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if module, ok := t.resourceModules[resourceType]; ok {
		if name, ok := t.modulePartitions[module]; ok {
			if p, ok := t.partitions[name]; ok {
				return p, true
			}
		}
	}
	return t.partitions[t.defaultPartition], false
}

// Partition looks up a partition by name.
func (t *Table) Partition(name string) (model.Partition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.partitions[name]
	return p, ok
}

// Partitions returns the partition catalog.
func (t *Table) Partitions() []model.Partition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]model.Partition, 0, len(t.partitions))
	for _, p := range t.partitions {
		out = append(out, p)
	}
	return out
}
