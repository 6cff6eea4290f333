package ecs

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// World aggregates its top-level state: the component registry, the
// resource registry, and the
// archetype table, plus the entity-id allocator. It is the structural
// edit surface: creating entities, adding components to them, and
// removing entities all go through a World.
type World struct {
	components *componentRegistry
	resources  *resourceRegistry
	archetypes *archetypeTable
	nextID     uint64
}

// NewWorld returns an empty World with fresh, empty registries.
func NewWorld() *World {
	return &World{
		components: newComponentRegistry(),
		resources:  newResourceRegistry(),
		archetypes: newArchetypeTable(),
		nextID:     uint64(invalidEntity) + 1,
	}
}

func (w *World) allocEntity() Entity {
	id := Entity(w.nextID)
	w.nextID++
	return id
}

// Components returns the world's component registry, for direct use by
// Join/System/Executor machinery.
func (w *World) Components() *componentRegistry { return w.components }

// Resources returns the world's resource registry.
func (w *World) Resources() *resourceRegistry { return w.resources }

// archetypesTable returns the world's archetype table, for direct use by
// the entity-creation and migration machinery.
func (w *World) archetypesTable() *archetypeTable { return w.archetypes }

// Archetype is a read-only snapshot of one archetype: its component
// signature and current membership.
type Archetype struct {
	Signature mask.Mask
	Entities  []Entity
}

// Archetypes iterates every archetype the world has created so far, in
// creation order.
func (w *World) Archetypes() iter.Seq[Archetype] {
	return func(yield func(Archetype) bool) {
		for _, a := range w.archetypes.All() {
			if !yield(Archetype{Signature: a.signature, Entities: a.Entities()}) {
				return
			}
		}
	}
}

// Entities iterates every entity currently belonging to any archetype,
// in archetype-creation order and then storage order within each
// archetype.
func (w *World) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, a := range w.archetypes.All() {
			for _, id := range a.Entities() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// signatureBit returns the archetype-signature bit for T, registering
// its column first if this is the first time T has been named.
func signatureBit[T any](reg *componentRegistry) uint32 {
	t := typeOf[T]()
	if bit, ok := reg.BitOf(t); ok {
		return bit
	}
	RegisterComponent[T](reg)
	bit, _ := reg.BitOf(t)
	return bit
}

// pushInto pushes v for id into T's column, registering the column if
// needed. Returns false (with v handed back unchanged) if id already has
// a T in that column — the column-level duplicate-push failure mode.
func pushInto[T any](reg *componentRegistry, id Entity, v T) (rejected T, ok bool) {
	RegisterComponent[T](reg)
	g, ok := GetComponentMut[T](reg)
	if !ok {
		panic("ecs: component storage missing after registration")
	}
	defer g.Release()
	return g.Column().Push(id, v)
}

// createEntity is the generic-arity-independent core: given a signature
// already computed from the caller's component tuple and a push callback
// that stores each component into its column, it allocates the entity,
// pushes it into the target archetype, and runs the pushes.
func (w *World) createEntity(sig mask.Mask, push func(id Entity)) Entity {
	id := w.allocEntity()
	arche := w.archetypes.getOrCreate(sig)
	arche.add(id)
	push(id)
	return id
}

// archetypeOf returns the archetype currently holding id, if any.
func (w *World) archetypeOf(id Entity) (*archetype, bool) {
	for _, a := range w.archetypes.All() {
		if a.contains(id) {
			return a, true
		}
	}
	return nil, false
}

// GetComponentShared returns a shared guard over T's column directly
// from a world, for one-off access outside of a dispatched system.
func GetComponentShared[T any](w *World) (ColumnShared[T], bool) {
	return GetComponent[T](w.components)
}

// GetComponentExclusive is GetComponentShared's exclusive-access
// counterpart.
func GetComponentExclusive[T any](w *World) (ColumnExclusive[T], bool) {
	return GetComponentMut[T](w.components)
}

// RemoveEntity deletes id's components from every column, then removes
// it from its archetype and from the world's bookkeeping (a prior
// version left stale archetype/entity-list entries behind on delete;
// this implementation fixes that rather than preserving the bug).
func (w *World) RemoveEntity(id Entity) {
	w.components.RemoveComponents(id)
	if arche, ok := w.archetypeOf(id); ok {
		arche.remove(id)
	}
}
