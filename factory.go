package ecs

// factory implements the factory pattern for top-level ecs values: a
// zero-size receiver type plus a single package-level instance named
// Factory.
type factory struct{}

// Factory is the global factory instance for creating worlds,
// dispatcher builders, and caches.
var Factory factory

// NewWorld returns a fresh, empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewDispatcherBuilder returns a DispatcherBuilder with the package
// defaults applied.
func (f factory) NewDispatcherBuilder() *DispatcherBuilder {
	return NewDispatcherBuilder()
}

// FactoryNewCache creates a new Cache with the specified capacity. Go
// methods cannot carry their own type parameters, so this stays a
// package-level generic function rather than a method on Factory.
func FactoryNewCache[T any](capacity int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: capacity,
	}
}
