package ecs

import "github.com/TheBitDrifter/mask"

// archetypeID identifies an archetype within a World's archetype table.
// IDs are assigned in creation order starting at 1; 0 is never handed out.
type archetypeID uint32

// archetype groups every entity whose component set is exactly the set
// named by signature. It only tracks membership: the rows themselves
// live in the owning componentRegistry's per-type columns, indexed by
// Entity.
type archetype struct {
	id        archetypeID
	signature mask.Mask
	entities  []Entity
}

func newArchetype(id archetypeID, sig mask.Mask) *archetype {
	return &archetype{id: id, signature: sig}
}

func (a *archetype) indexOf(id Entity) int {
	for i, e := range a.entities {
		if e == id {
			return i
		}
	}
	return -1
}

func (a *archetype) contains(id Entity) bool {
	return a.indexOf(id) >= 0
}

func (a *archetype) add(id Entity) {
	if a.contains(id) {
		return
	}
	a.entities = append(a.entities, id)
}

// remove deletes id from the archetype's membership list, preserving the
// relative order of the remainder (shift-remove).
func (a *archetype) remove(id Entity) bool {
	idx := a.indexOf(id)
	if idx < 0 {
		return false
	}
	a.entities = append(a.entities[:idx], a.entities[idx+1:]...)
	return true
}

func (a *archetype) Len() int { return len(a.entities) }

// Entities returns the archetype's member ids in storage order. Callers
// must not retain the slice across a mutating call.
func (a *archetype) Entities() []Entity { return a.entities }

// archetypeTable owns every archetype a World has created so far, keyed
// by exact signature: a direct map[mask.Mask] lookup, since mask.Mask is
// comparable.
type archetypeTable struct {
	nextID archetypeID
	byID   []*archetype
	bySig  map[mask.Mask]archetypeID
}

func newArchetypeTable() *archetypeTable {
	return &archetypeTable{
		nextID: 1,
		bySig:  make(map[mask.Mask]archetypeID),
	}
}

// getOrCreate returns the archetype for sig, creating an empty one if
// this is the first time sig has been seen.
func (t *archetypeTable) getOrCreate(sig mask.Mask) *archetype {
	if id, ok := t.bySig[sig]; ok {
		return t.byID[id-1]
	}
	arche := newArchetype(t.nextID, sig)
	t.byID = append(t.byID, arche)
	t.bySig[sig] = t.nextID
	t.nextID++
	return arche
}

// find returns the archetype for sig, if one has been created.
func (t *archetypeTable) find(sig mask.Mask) (*archetype, bool) {
	id, ok := t.bySig[sig]
	if !ok {
		return nil, false
	}
	return t.byID[id-1], true
}

// All returns every archetype created so far, in creation order.
func (t *archetypeTable) All() []*archetype {
	return t.byID
}
