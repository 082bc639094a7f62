package class

import (
	"maps"
	"slices"
)

// Registry is the per-class bookkeeping of live instances.
//
// Ids start at 1, strictly increase and are never reused, even after removal.
type Registry struct {
	next  uint64
	items map[uint64]*Instance
}

func newRegistry() *Registry {
	return &Registry{items: map[uint64]*Instance{}}
}

func (r *Registry) assignID() uint64 {
	r.next++
	return r.next
}

func (r *Registry) register(id uint64, inst *Instance) {
	r.items[id] = inst
}

// Lookup returns the instance registered under id.
func (r *Registry) Lookup(id uint64) (*Instance, bool) {
	inst, ok := r.items[id]
	return inst, ok
}

// Remove drops id and reports whether it was present.
func (r *Registry) Remove(id uint64) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

// All returns a copy of the id -> instance mapping.
func (r *Registry) All() map[uint64]*Instance {
	return maps.Clone(r.items)
}

// IDs returns the live ids in ascending order.
func (r *Registry) IDs() []uint64 {
	ids := make([]uint64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of live instances.
func (r *Registry) Len() int { return len(r.items) }

// LastID returns the most recently assigned id (0 before the first assignment).
func (r *Registry) LastID() uint64 { return r.next }
