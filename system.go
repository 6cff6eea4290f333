package ecs

import "reflect"

// resourceSlot is implemented by Res[T] and ResMut[T]: the field types a
// user's Resources pack struct is built from. Reflection over a pack's
// exported fields, in declaration order, is how fetchResources/
// releaseResources walk a heterogeneous pack without generating one
// fetch function per resource-count × read/write combination. A
// Resources pack is a tuple of shared/exclusive resource guards; here
// the tuple is an ordinary Go struct.
type resourceSlot interface {
	fetchResource(reg *resourceRegistry) error
	releaseResource()
}

// componentSlot is the Components-pack counterpart of resourceSlot,
// implemented by Comp[T] and CompMut[T].
type componentSlot interface {
	fetchComponent(reg *componentRegistry) error
	releaseComponent()
}

// Res is a shared borrow of a resource, used as a field type in a
// user-defined Resources pack struct.
type Res[T any] struct {
	guard ResourceShared[T]
}

func (r *Res[T]) fetchResource(reg *resourceRegistry) error {
	g, err := fetchResourceShared[T](reg)
	if err != nil {
		return err
	}
	r.guard = g
	return nil
}

func (r *Res[T]) releaseResource() { r.guard.Release() }

// Get returns the borrowed resource value. Valid only between a
// successful fetch and the owning pack's release.
func (r *Res[T]) Get() *T { return r.guard.Get() }

// ResMut is an exclusive borrow of a resource, used as a field type in a
// user-defined Resources pack struct.
type ResMut[T any] struct {
	guard ResourceExclusive[T]
}

func (r *ResMut[T]) fetchResource(reg *resourceRegistry) error {
	g, err := fetchResourceExclusive[T](reg)
	if err != nil {
		return err
	}
	r.guard = g
	return nil
}

func (r *ResMut[T]) releaseResource() { r.guard.Release() }

// Get returns the borrowed resource value.
func (r *ResMut[T]) Get() *T { return r.guard.Get() }

// Comp is a shared borrow of a component column, used as a field type in
// a user-defined Components pack struct.
type Comp[T any] struct {
	guard ColumnShared[T]
}

func (c *Comp[T]) fetchComponent(reg *componentRegistry) error {
	g, err := fetchComponentShared[T](reg)
	if err != nil {
		return err
	}
	c.guard = g
	return nil
}

func (c *Comp[T]) releaseComponent() { c.guard.Release() }

// Column returns the borrowed column.
func (c *Comp[T]) Column() *Column[T] { return c.guard.Column() }

// CompMut is an exclusive borrow of a component column, used as a field
// type in a user-defined Components pack struct.
type CompMut[T any] struct {
	guard ColumnExclusive[T]
}

func (c *CompMut[T]) fetchComponent(reg *componentRegistry) error {
	g, err := fetchComponentExclusive[T](reg)
	if err != nil {
		return err
	}
	c.guard = g
	return nil
}

func (c *CompMut[T]) releaseComponent() { c.guard.Release() }

// Column returns the borrowed column.
func (c *CompMut[T]) Column() *Column[T] { return c.guard.Column() }

// System is user code declaring two associated heterogeneous packs,
// Resources and Components, and one operation over them.
// R and C are ordinary structs whose exported fields are Res[T]/
// ResMut[T] and Comp[T]/CompMut[T] respectively.
type System[R any, C any] interface {
	Execute(resources *R, components *C)
}

// fetchResources walks *r's exported fields in declaration order,
// fetching each resourceSlot. On the first failure it releases every
// slot already fetched (in the order fetched) and returns the error,
// leaving *r in an unusable but safe state.
func fetchResources[R any](reg *resourceRegistry) (*R, error) {
	var r R
	v := reflect.ValueOf(&r).Elem()
	fetched := make([]resourceSlot, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanAddr() || !v.Type().Field(i).IsExported() {
			continue
		}
		slot, ok := field.Addr().Interface().(resourceSlot)
		if !ok {
			continue
		}
		if err := slot.fetchResource(reg); err != nil {
			for _, done := range fetched {
				done.releaseResource()
			}
			return nil, err
		}
		fetched = append(fetched, slot)
	}
	return &r, nil
}

// releaseResources releases every resourceSlot field of *r.
func releaseResources[R any](r *R) {
	v := reflect.ValueOf(r).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanAddr() || !v.Type().Field(i).IsExported() {
			continue
		}
		if slot, ok := field.Addr().Interface().(resourceSlot); ok {
			slot.releaseResource()
		}
	}
}

// fetchComponents is fetchResources's Components-pack counterpart.
func fetchComponents[C any](reg *componentRegistry) (*C, error) {
	var c C
	v := reflect.ValueOf(&c).Elem()
	fetched := make([]componentSlot, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanAddr() || !v.Type().Field(i).IsExported() {
			continue
		}
		slot, ok := field.Addr().Interface().(componentSlot)
		if !ok {
			continue
		}
		if err := slot.fetchComponent(reg); err != nil {
			for _, done := range fetched {
				done.releaseComponent()
			}
			return nil, err
		}
		fetched = append(fetched, slot)
	}
	return &c, nil
}

// releaseComponents releases every componentSlot field of *c.
func releaseComponents[C any](c *C) {
	v := reflect.ValueOf(c).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanAddr() || !v.Type().Field(i).IsExported() {
			continue
		}
		if slot, ok := field.Addr().Interface().(componentSlot); ok {
			slot.releaseComponent()
		}
	}
}
