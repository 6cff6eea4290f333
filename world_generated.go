package ecs

import "github.com/TheBitDrifter/mask"

// CreateEntity1 creates a new entity carrying a single component c1,
// computing its archetype signature from T1 and pushing c1 into T1's
// column. Naming follows the CreateQuery/CreateQuery2.../CreateQuery5
// arity ladder.
func CreateEntity1[T1 any](w *World, c1 T1) Entity {
	var sig mask.Mask
	sig.Mark(signatureBit[T1](w.components))
	return w.createEntity(sig, func(id Entity) {
		mustPush(w.components, id, c1)
	})
}

// CreateEntity2 is CreateEntity1's two-component counterpart. It panics
// with DuplicateComponentInTupleError if T1 and T2 are the same type:
// registering the same type twice in one tuple is a user error and is
// fatal.
func CreateEntity2[T1, T2 any](w *World, c1 T1, c2 T2) Entity {
	checkDistinct(typeOf[T1](), typeOf[T2]())
	var sig mask.Mask
	sig.Mark(signatureBit[T1](w.components))
	sig.Mark(signatureBit[T2](w.components))
	return w.createEntity(sig, func(id Entity) {
		mustPush(w.components, id, c1)
		mustPush(w.components, id, c2)
	})
}

// CreateEntity3 is CreateEntity1's three-component counterpart.
func CreateEntity3[T1, T2, T3 any](w *World, c1 T1, c2 T2, c3 T3) Entity {
	checkDistinct(typeOf[T1](), typeOf[T2](), typeOf[T3]())
	var sig mask.Mask
	sig.Mark(signatureBit[T1](w.components))
	sig.Mark(signatureBit[T2](w.components))
	sig.Mark(signatureBit[T3](w.components))
	return w.createEntity(sig, func(id Entity) {
		mustPush(w.components, id, c1)
		mustPush(w.components, id, c2)
		mustPush(w.components, id, c3)
	})
}

// CreateEntity4 is CreateEntity1's four-component counterpart.
func CreateEntity4[T1, T2, T3, T4 any](w *World, c1 T1, c2 T2, c3 T3, c4 T4) Entity {
	checkDistinct(typeOf[T1](), typeOf[T2](), typeOf[T3](), typeOf[T4]())
	var sig mask.Mask
	sig.Mark(signatureBit[T1](w.components))
	sig.Mark(signatureBit[T2](w.components))
	sig.Mark(signatureBit[T3](w.components))
	sig.Mark(signatureBit[T4](w.components))
	return w.createEntity(sig, func(id Entity) {
		mustPush(w.components, id, c1)
		mustPush(w.components, id, c2)
		mustPush(w.components, id, c3)
		mustPush(w.components, id, c4)
	})
}

// CreateEntities1 batches CreateEntity1 over n copies of the same
// component value.
func CreateEntities1[T1 any](w *World, n int, c1 T1) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = CreateEntity1(w, c1)
	}
	return out
}

// CreateEntities2 is CreateEntities1's two-component counterpart.
func CreateEntities2[T1, T2 any](w *World, n int, c1 T1, c2 T2) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = CreateEntity2(w, c1, c2)
	}
	return out
}

// checkDistinct panics with DuplicateComponentInTupleError if any two
// types in ts are equal, catching a tuple like CreateEntity2[Position,
// Position] before it reaches the column layer.
func checkDistinct(ts ...typeID) {
	for i := 0; i < len(ts); i++ {
		for j := i + 1; j < len(ts); j++ {
			if ts[i] == ts[j] {
				panic(DuplicateComponentInTupleError{Type: ts[i]})
			}
		}
	}
}

// mustPush pushes v for id into T's column, panicking with the fatal
// "entity already had component" condition on a rejected push during
// entity creation (a fresh entity id can never already be present in a
// column, so this path is unreachable in practice and exists only to
// surface a violated
// invariant loudly rather than silently drop data).
func mustPush[T any](reg *componentRegistry, id Entity, v T) {
	if _, ok := pushInto(reg, id, v); !ok {
		panic(ComponentExistsError{Type: typeOf[T]()})
	}
}

// AddComponents1 adds a single new component to an already-existing
// entity, migrating it from its current archetype to the union
// signature. It panics with ComponentExistsError if the entity already
// carries a T, via an explicit early check rather than relying on the
// later column-push failure.
func AddComponents1[T1 any](w *World, id Entity, c1 T1) {
	requireAbsent[T1](w, id)
	migrate(w, id, func(sig *mask.Mask) {
		sig.Mark(signatureBit[T1](w.components))
	})
	mustPush(w.components, id, c1)
}

// AddComponents2 is AddComponents1's two-component counterpart.
func AddComponents2[T1, T2 any](w *World, id Entity, c1 T1, c2 T2) {
	checkDistinct(typeOf[T1](), typeOf[T2]())
	requireAbsent[T1](w, id)
	requireAbsent[T2](w, id)
	migrate(w, id, func(sig *mask.Mask) {
		sig.Mark(signatureBit[T1](w.components))
		sig.Mark(signatureBit[T2](w.components))
	})
	mustPush(w.components, id, c1)
	mustPush(w.components, id, c2)
}

// requireAbsent panics with ComponentExistsError if id already has a T,
// checked against the component's column directly rather than the
// entity's current archetype signature (the column is authoritative).
func requireAbsent[T any](w *World, id Entity) {
	if !ComponentRegistered[T](w.components) {
		return
	}
	g, ok := GetComponent[T](w.components)
	if !ok {
		return
	}
	defer g.Release()
	if g.Column().indexOf(id) >= 0 {
		panic(ComponentExistsError{Type: typeOf[T]()})
	}
}

// migrate moves id from its current archetype to the archetype whose
// signature is the union of the current signature and whatever extra
// bits addBits marks, creating the target archetype if needed. Existing
// components are left in their original columns (only archetype
// membership moves).
func migrate(w *World, id Entity, addBits func(sig *mask.Mask)) {
	var sig mask.Mask
	if old, ok := w.archetypeOf(id); ok {
		sig = old.signature
		old.remove(id)
	}
	addBits(&sig)
	target := w.archetypes.getOrCreate(sig)
	target.add(id)
}

// AddResources1 registers a single resource value with the world,
// analogous to AddComponents1 but for the world-global resource
// registry.
func AddResources1[T1 any](w *World, r1 T1) {
	RegisterResource[T1](w.resources, r1)
}

// AddResources2 is AddResources1's two-resource counterpart.
func AddResources2[T1, T2 any](w *World, r1 T1, r2 T2) {
	RegisterResource[T1](w.resources, r1)
	RegisterResource[T2](w.resources, r2)
}
