package ecs

import (
	"sync"

	"github.com/TheBitDrifter/mask"
)

// ColumnShared is a read-only borrow of a Column[T] obtained from a
// componentRegistry.
type ColumnShared[T any] struct {
	col     *Column[T]
	release func()
}

// Column returns the borrowed column. Valid until Release is called.
func (g ColumnShared[T]) Column() *Column[T] { return g.col }

// Release gives up the borrow. Safe to call on a zero-value guard.
func (g ColumnShared[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// ColumnExclusive is a read-write borrow of a Column[T].
type ColumnExclusive[T any] struct {
	col     *Column[T]
	release func()
}

// Column returns the borrowed column. Valid until Release is called.
func (g ColumnExclusive[T]) Column() *Column[T] { return g.col }

// Release gives up the borrow. Safe to call on a zero-value guard.
func (g ColumnExclusive[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// ResourceShared is a read-only borrow of a resource value.
type ResourceShared[T any] struct {
	ptr     *T
	release func()
}

func (g ResourceShared[T]) Get() *T { return g.ptr }
func (g ResourceShared[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// ResourceExclusive is a read-write borrow of a resource value.
type ResourceExclusive[T any] struct {
	ptr     *T
	release func()
}

func (g ResourceExclusive[T]) Get() *T { return g.ptr }
func (g ResourceExclusive[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// anyColumn is the type-erased view a columnCell keeps alongside its
// typed *Column[T]: removal by entity, a length check for bookkeeping,
// and a debug-print name. Lookups that need the typed value recover it
// with a type assertion against columnCell.stored.
type anyColumn interface {
	removeEntityErased(Entity) bool
	lenErased() int
	debugName() string
}

var _ anyColumn = (*Column[int])(nil)

// columnCell is one entry in a componentRegistry: a borrow-checked,
// type-erased column. The embedded borrowState is the cell's borrow
// counter; the opaque storage is the stored field, an `any` holding a
// *Column[T], recovered by type assertion rather than pointer
// reinterpretation.
type columnCell struct {
	borrowState
	typ    typeID
	stored any
	col    anyColumn
}

func newColumnCell[T any]() *columnCell {
	col := newColumn[T]()
	return &columnCell{typ: typeOf[T](), stored: col, col: col}
}

// DebugName returns the cached Column[T]-style debug name for t, or
// false if t is not registered.
func (reg *componentRegistry) DebugName(t typeID) (string, bool) {
	reg.mu.RLock()
	cc, ok := reg.columns[t]
	reg.mu.RUnlock()
	if !ok {
		return "", false
	}
	return cachedDebugName("component:"+t.String(), cc.col.debugName), true
}

// resourceCell is one entry in a resourceRegistry.
type resourceCell struct {
	borrowState
	typ    typeID
	stored any
	name   func() string
}

func newResourceCell[T any](v T) *resourceCell {
	res := newResource[T](v)
	return &resourceCell{typ: typeOf[T](), stored: res, name: res.debugName}
}

// DebugName returns the cached Resource[T]-style debug name for t, or
// false if t is not registered.
func (reg *resourceRegistry) DebugName(t typeID) (string, bool) {
	reg.mu.RLock()
	rc, ok := reg.resources[t]
	reg.mu.RUnlock()
	if !ok {
		return "", false
	}
	return cachedDebugName("resource:"+t.String(), rc.name), true
}

// componentRegistry maps type-identity to a borrow-cell-wrapped column.
// The map itself is guarded by a registry-scope sync.RWMutex; the
// "RWMutex over a map of per-entry cells, each with its own independent
// state" shape is grounded on caddyserver-caddy's UsagePool
// (other_examples/...usagepool.go), though the per-entry state
// here is the spec's borrow cell rather than UsagePool's atomic refcount.
type componentRegistry struct {
	mu      sync.RWMutex
	columns map[typeID]*columnCell
	bits    map[typeID]uint32
	nextBit uint32

	locksMu sync.Mutex
	locks   mask.Mask256
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		columns: make(map[typeID]*columnCell),
		bits:    make(map[typeID]uint32),
	}
}

// Locked reports whether any column is currently exclusively held,
// backed by a mask.Mask256 bitmap of in-flight exclusive borrows, one
// bit per registered type.
func (reg *componentRegistry) Locked() bool {
	reg.locksMu.Lock()
	defer reg.locksMu.Unlock()
	return !reg.locks.IsEmpty()
}

func (reg *componentRegistry) markExclusive(bit uint32) {
	reg.locksMu.Lock()
	reg.locks.Mark(bit)
	reg.locksMu.Unlock()
}

func (reg *componentRegistry) markReleased(bit uint32) {
	reg.locksMu.Lock()
	reg.locks.Unmark(bit)
	reg.locksMu.Unlock()
}

// RegisterComponent creates an empty column for T if absent. Returns
// whether it was freshly created; idempotent, so a second call returns
// false without altering existing state.
func RegisterComponent[T any](reg *componentRegistry) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.registerLocked(typeOf[T](), func() *columnCell { return newColumnCell[T]() })
}

func (reg *componentRegistry) registerLocked(t typeID, make func() *columnCell) bool {
	if _, ok := reg.columns[t]; ok {
		return false
	}
	reg.columns[t] = make()
	reg.bits[t] = reg.nextBit
	reg.nextBit++
	return true
}

// ComponentRegistered reports whether a column for T exists.
func ComponentRegistered[T any](reg *componentRegistry) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.columns[typeOf[T]()]
	return ok
}

// BitOf returns the signature bit assigned to T and whether T is
// registered. Bits are assigned on first registration, in registration
// order.
func (reg *componentRegistry) BitOf(t typeID) (uint32, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	b, ok := reg.bits[t]
	return b, ok
}

// GetComponent returns a shared guard over T's column, panicking on
// contention. ok is false only when T is not registered.
func GetComponent[T any](reg *componentRegistry) (ColumnShared[T], bool) {
	reg.mu.RLock()
	cc, ok := reg.columns[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok {
		return ColumnShared[T]{}, false
	}
	if !cc.tryShareState() {
		panic("ecs: component storage already held exclusively")
	}
	col := cc.stored.(*Column[T])
	return ColumnShared[T]{col: col, release: cc.releaseSharedState}, true
}

// GetComponentMut is GetComponent's exclusive-access counterpart.
func GetComponentMut[T any](reg *componentRegistry) (ColumnExclusive[T], bool) {
	t := typeOf[T]()
	reg.mu.RLock()
	cc, ok := reg.columns[t]
	bit := reg.bits[t]
	reg.mu.RUnlock()
	if !ok {
		return ColumnExclusive[T]{}, false
	}
	if !cc.tryExclusiveState() {
		panic("ecs: component storage already borrowed")
	}
	reg.markExclusive(bit)
	col := cc.stored.(*Column[T])
	return ColumnExclusive[T]{col: col, release: func() {
		reg.markReleased(bit)
		cc.releaseExclusiveState()
	}}, true
}

// TryGetComponent is GetComponent's non-panicking counterpart: ok is
// false both when T is unregistered and when the cell cannot currently
// grant the borrow.
func TryGetComponent[T any](reg *componentRegistry) (ColumnShared[T], bool) {
	reg.mu.RLock()
	cc, ok := reg.columns[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok || !cc.tryShareState() {
		return ColumnShared[T]{}, false
	}
	col := cc.stored.(*Column[T])
	return ColumnShared[T]{col: col, release: cc.releaseSharedState}, true
}

// TryGetComponentMut is TryGetComponent's exclusive-access counterpart.
func TryGetComponentMut[T any](reg *componentRegistry) (ColumnExclusive[T], bool) {
	t := typeOf[T]()
	reg.mu.RLock()
	cc, ok := reg.columns[t]
	bit := reg.bits[t]
	reg.mu.RUnlock()
	if !ok || !cc.tryExclusiveState() {
		return ColumnExclusive[T]{}, false
	}
	reg.markExclusive(bit)
	col := cc.stored.(*Column[T])
	return ColumnExclusive[T]{col: col, release: func() {
		reg.markReleased(bit)
		cc.releaseExclusiveState()
	}}, true
}

// GetOrRegisterComponent registers T if needed, then returns a shared
// guard over its column.
func GetOrRegisterComponent[T any](reg *componentRegistry) ColumnShared[T] {
	RegisterComponent[T](reg)
	g, ok := GetComponent[T](reg)
	if !ok {
		panic("ecs: get-or-register invariant violated")
	}
	return g
}

// GetOrRegisterComponentMut is the exclusive-access counterpart.
func GetOrRegisterComponentMut[T any](reg *componentRegistry) ColumnExclusive[T] {
	RegisterComponent[T](reg)
	g, ok := GetComponentMut[T](reg)
	if !ok {
		panic("ecs: get-or-register invariant violated")
	}
	return g
}

// RemoveComponentStorage removes the whole column for T.
func RemoveComponentStorage[T any](reg *componentRegistry) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	t := typeOf[T]()
	if _, ok := reg.columns[t]; !ok {
		return false
	}
	delete(reg.columns, t)
	return true
}

// RemoveComponents removes, from every column in the registry, the entry
// (if any) for entity. Used by the World to delete an entity's
// components.
func (reg *componentRegistry) RemoveComponents(entity Entity) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, cc := range reg.columns {
		cc.col.removeEntityErased(entity)
	}
}

// fetchComponentShared is GetComponent's error-returning counterpart,
// used by the executor's pack-fetch machinery. Assumes the caller
// already holds the registry's shared lock, for the same reentrant-RLock
// reason documented on fetchResourceShared.
func fetchComponentShared[T any](reg *componentRegistry) (ColumnShared[T], error) {
	t := typeOf[T]()
	cc, ok := reg.columns[t]
	if !ok {
		return ColumnShared[T]{}, NoSuchComponentStorageError{Type: t}
	}
	if !cc.tryShareState() {
		return ColumnShared[T]{}, ComponentStorageInUseError{Type: t}
	}
	col := cc.stored.(*Column[T])
	return ColumnShared[T]{col: col, release: cc.releaseSharedState}, nil
}

// fetchComponentExclusive is fetchComponentShared's exclusive-access
// counterpart.
func fetchComponentExclusive[T any](reg *componentRegistry) (ColumnExclusive[T], error) {
	t := typeOf[T]()
	cc, ok := reg.columns[t]
	if !ok {
		return ColumnExclusive[T]{}, NoSuchComponentStorageError{Type: t}
	}
	if !cc.tryExclusiveState() {
		return ColumnExclusive[T]{}, ComponentStorageInUseError{Type: t}
	}
	bit := reg.bits[t]
	reg.markExclusive(bit)
	col := cc.stored.(*Column[T])
	return ColumnExclusive[T]{col: col, release: func() {
		reg.markReleased(bit)
		cc.releaseExclusiveState()
	}}, nil
}

// TryRLock attempts the registry-scope shared lock an executor holds for
// the duration of one Execute call.
func (reg *componentRegistry) TryRLock() bool { return reg.mu.TryRLock() }

// RUnlock releases the registry-scope shared lock taken by TryRLock.
func (reg *componentRegistry) RUnlock() { reg.mu.RUnlock() }

// resourceRegistry maps type-identity to a borrow-cell-wrapped resource
// slot.
type resourceRegistry struct {
	mu        sync.RWMutex
	resources map[typeID]*resourceCell
}

func newResourceRegistry() *resourceRegistry {
	return &resourceRegistry{resources: make(map[typeID]*resourceCell)}
}

// RegisterResource creates the resource slot with value v if absent.
// Returns whether it was freshly created; re-registration leaves the
// existing value untouched.
func RegisterResource[T any](reg *resourceRegistry, v T) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	t := typeOf[T]()
	if _, ok := reg.resources[t]; ok {
		return false
	}
	reg.resources[t] = newResourceCell[T](v)
	return true
}

// RegisterResourceStrict is RegisterResource's non-idempotent form: it
// returns ResourceAlreadyRegisteredError instead of silently keeping the
// existing value when T already has a slot.
func RegisterResourceStrict[T any](reg *resourceRegistry, v T) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	t := typeOf[T]()
	if _, ok := reg.resources[t]; ok {
		return ResourceAlreadyRegisteredError{Type: t}
	}
	reg.resources[t] = newResourceCell[T](v)
	return nil
}

// ResourceRegistered reports whether a slot for T exists.
func ResourceRegistered[T any](reg *resourceRegistry) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.resources[typeOf[T]()]
	return ok
}

// GetResource returns a shared guard over T's value, panicking on
// contention. ok is false only when T is not registered.
func GetResource[T any](reg *resourceRegistry) (ResourceShared[T], bool) {
	reg.mu.RLock()
	rc, ok := reg.resources[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok {
		return ResourceShared[T]{}, false
	}
	if !rc.tryShareState() {
		panic("ecs: resource storage already held exclusively")
	}
	res := rc.stored.(*Resource[T])
	return ResourceShared[T]{ptr: res.get(), release: rc.releaseSharedState}, true
}

// GetResourceMut is GetResource's exclusive-access counterpart.
func GetResourceMut[T any](reg *resourceRegistry) (ResourceExclusive[T], bool) {
	reg.mu.RLock()
	rc, ok := reg.resources[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok {
		return ResourceExclusive[T]{}, false
	}
	if !rc.tryExclusiveState() {
		panic("ecs: resource storage already borrowed")
	}
	res := rc.stored.(*Resource[T])
	return ResourceExclusive[T]{ptr: res.get(), release: rc.releaseExclusiveState}, true
}

// TryGetResource is GetResource's non-panicking counterpart.
func TryGetResource[T any](reg *resourceRegistry) (ResourceShared[T], bool) {
	reg.mu.RLock()
	rc, ok := reg.resources[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok || !rc.tryShareState() {
		return ResourceShared[T]{}, false
	}
	res := rc.stored.(*Resource[T])
	return ResourceShared[T]{ptr: res.get(), release: rc.releaseSharedState}, true
}

// TryGetResourceMut is TryGetResource's exclusive-access counterpart.
func TryGetResourceMut[T any](reg *resourceRegistry) (ResourceExclusive[T], bool) {
	reg.mu.RLock()
	rc, ok := reg.resources[typeOf[T]()]
	reg.mu.RUnlock()
	if !ok || !rc.tryExclusiveState() {
		return ResourceExclusive[T]{}, false
	}
	res := rc.stored.(*Resource[T])
	return ResourceExclusive[T]{ptr: res.get(), release: rc.releaseExclusiveState}, true
}

// GetOrRegisterResource registers T with zero value if needed, then
// returns a shared guard over it.
func GetOrRegisterResource[T any](reg *resourceRegistry) ResourceShared[T] {
	var zero T
	RegisterResource[T](reg, zero)
	g, ok := GetResource[T](reg)
	if !ok {
		panic("ecs: get-or-register invariant violated")
	}
	return g
}

// fetchResourceShared is GetResource's error-returning counterpart, used
// by the executor's reflection-driven pack-fetch machinery so each
// slot's failure mode is a typed error instead of a panic or a bare
// boolean. Unlike GetResource, it assumes the caller already holds the
// registry's shared lock and
// so does not take reg.mu itself — taking it here too would recursively
// read-lock the same sync.RWMutex on one goroutine, which can deadlock
// against a concurrent writer per the RWMutex docs.
func fetchResourceShared[T any](reg *resourceRegistry) (ResourceShared[T], error) {
	t := typeOf[T]()
	rc, ok := reg.resources[t]
	if !ok {
		return ResourceShared[T]{}, NoSuchResourceStorageError{Type: t}
	}
	if !rc.tryShareState() {
		return ResourceShared[T]{}, ResourceStorageInUseError{Type: t}
	}
	res := rc.stored.(*Resource[T])
	return ResourceShared[T]{ptr: res.get(), release: rc.releaseSharedState}, nil
}

// fetchResourceExclusive is fetchResourceShared's exclusive-access
// counterpart.
func fetchResourceExclusive[T any](reg *resourceRegistry) (ResourceExclusive[T], error) {
	t := typeOf[T]()
	rc, ok := reg.resources[t]
	if !ok {
		return ResourceExclusive[T]{}, NoSuchResourceStorageError{Type: t}
	}
	if !rc.tryExclusiveState() {
		return ResourceExclusive[T]{}, ResourceStorageInUseError{Type: t}
	}
	res := rc.stored.(*Resource[T])
	return ResourceExclusive[T]{ptr: res.get(), release: rc.releaseExclusiveState}, nil
}

// TryRLock attempts the registry-scope shared lock an executor holds for
// the duration of one Execute call. Returns false immediately if the
// registry is currently exclusively locked.
func (reg *resourceRegistry) TryRLock() bool { return reg.mu.TryRLock() }

// RUnlock releases the registry-scope shared lock taken by TryRLock.
func (reg *resourceRegistry) RUnlock() { reg.mu.RUnlock() }

// RemoveResourceStorage removes the whole slot for T.
func RemoveResourceStorage[T any](reg *resourceRegistry) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	t := typeOf[T]()
	if _, ok := reg.resources[t]; !ok {
		return false
	}
	delete(reg.resources, t)
	return true
}

