package ecs

import "fmt"

// Resource is a single heap-owned value of one resource type. The
// borrow-cell machinery lives at the registry level; Resource itself is
// a plain one-field box so that resourceCell can store it behind an
// `any` and recover it by type assertion.
type Resource[T any] struct {
	value T
}

func newResource[T any](v T) *Resource[T] {
	return &Resource[T]{value: v}
}

func (r *Resource[T]) get() *T { return &r.value }

func (r *Resource[T]) debugName() string {
	return fmt.Sprintf("Resource[%T]", *new(T))
}
