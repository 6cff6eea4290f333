package ecs

import (
	"fmt"
	"reflect"
)

// ResourceLockedExclusiveError is raised when the resource registry is
// writer-locked at the moment a system attempts to fetch its resource pack.
type ResourceLockedExclusiveError struct{}

func (e ResourceLockedExclusiveError) Error() string {
	return fmt.Sprintf("ecs: resource registry is exclusively locked")
}

// ResourceLockedSharedError is raised when the resource registry is
// reader-locked where exclusive access was needed.
type ResourceLockedSharedError struct{}

func (e ResourceLockedSharedError) Error() string {
	return fmt.Sprintf("ecs: resource registry is shared-locked")
}

// ResourceStorageInUseError is raised when a specific resource's cell
// cannot grant the requested borrow.
type ResourceStorageInUseError struct {
	Type reflect.Type
}

func (e ResourceStorageInUseError) Error() string {
	return fmt.Sprintf("ecs: resource storage in use: %s", e.Type)
}

// NoSuchResourceStorageError is raised when no resource of the requested
// type is registered.
type NoSuchResourceStorageError struct {
	Type reflect.Type
}

func (e NoSuchResourceStorageError) Error() string {
	return fmt.Sprintf("ecs: no such resource storage: %s", e.Type)
}

// ComponentLockedExclusiveError is raised when the component registry is
// writer-locked at the moment a system attempts to fetch its component pack.
type ComponentLockedExclusiveError struct{}

func (e ComponentLockedExclusiveError) Error() string {
	return fmt.Sprintf("ecs: component registry is exclusively locked")
}

// ComponentLockedSharedError is raised when the component registry is
// reader-locked where exclusive access was needed.
type ComponentLockedSharedError struct{}

func (e ComponentLockedSharedError) Error() string {
	return fmt.Sprintf("ecs: component registry is shared-locked")
}

// ComponentStorageInUseError is raised when a specific column's cell
// cannot grant the requested borrow.
type ComponentStorageInUseError struct {
	Type reflect.Type
}

func (e ComponentStorageInUseError) Error() string {
	return fmt.Sprintf("ecs: component storage in use: %s", e.Type)
}

// NoSuchComponentStorageError is raised when no column of the requested
// type is registered.
type NoSuchComponentStorageError struct {
	Type reflect.Type
}

func (e NoSuchComponentStorageError) Error() string {
	return fmt.Sprintf("ecs: no such component storage: %s", e.Type)
}

// ComponentExistsError is a fatal condition: an entity's component tuple
// named a type it already carries, or a column push was rejected because
// the entity already had an entry.
type ComponentExistsError struct {
	Type reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("ecs: entity already had component %s", e.Type)
}

// DuplicateComponentInTupleError is a fatal condition: a single
// create_entity/add_components call named the same component type twice.
type DuplicateComponentInTupleError struct {
	Type reflect.Type
}

func (e DuplicateComponentInTupleError) Error() string {
	return fmt.Sprintf("ecs: component tuple names %s twice", e.Type)
}

// ResourceAlreadyRegisteredError is returned by RegisterResourceStrict
// when a resource of the given type already has a slot.
type ResourceAlreadyRegisteredError struct {
	Type reflect.Type
}

func (e ResourceAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("ecs: resource already registered: %s", e.Type)
}
