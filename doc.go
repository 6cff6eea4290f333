/*
Package ecs provides an in-process Entity-Component-System (ECS) runtime.

It stores heterogeneously-typed component values keyed by entity identity,
and executes user-supplied "systems" that query those components (plus
process-global "resources") under a concurrent borrow-checking discipline.
Game loops, simulation frameworks, or other data-oriented pipelines embed
it as a library.

Core Concepts:

  - Entity: an opaque 64-bit identifier for a game object.
  - Component: a value associated with an entity by type identity, stored
    in a Column.
  - Resource: a singleton value stored by type identity at world scope.
  - Archetype: the set of entities that carry the same set of component
    types.
  - World: the top-level container aggregating entities, archetypes,
    components, and resources.
  - System: user code that declares the resources and components it needs
    and runs once per Dispatcher iteration.
  - Dispatcher: a worker-pool scheduler that runs systems concurrently,
    each acquiring its declared columns/resources through a borrow-checked
    registry.

Basic Usage:

	world := ecs.Factory.NewWorld()

	type Position struct{ X, Y int64 }
	type Velocity struct{ X, Y int64 }

	e1 := ecs.CreateEntity2(world, Position{0, 0}, Velocity{1, 1})
	e2 := ecs.CreateEntity1(world, Position{10, 0})
	_ = e1
	_ = e2

	positions, _ := ecs.GetComponentExclusive[Position](world)
	velocities, _ := ecs.GetComponentShared[Velocity](world)
	for row := range ecs.Join2(positions.Column(), velocities.Column()) {
		row.V1.X += row.V2.X
		row.V1.Y += row.V2.Y
	}
	positions.Release()
	velocities.Release()

The borrow cell, column, registry, archetype, join, system, executor, and
dispatcher are the package core; everything else (the Factory, the cache,
the config singleton) is a thin convenience layer over them.
*/
package ecs
