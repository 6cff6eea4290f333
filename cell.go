package ecs

import "sync/atomic"

// cellExclusive is the MAX sentinel: the borrow counter reads this value
// only while exactly one exclusive guard is outstanding.
const cellExclusive uint32 = ^uint32(0)

// borrowState is the bare atomic counter behind a borrow cell: many
// readers XOR one writer, with 0 meaning unborrowed and cellExclusive
// meaning one live exclusive borrow. It carries no
// value, so both the generic cell[T] below and the type-erased registry
// cells (columnCell, resourceCell) can embed the same CAS retry-loop
// logic instead of each reimplementing it. The loop shape is grounded on
// dijkstracula-go-ilock/ilock.go's intention-lock state machine,
// collapsed from four states (S, X, IS, IX) down to the two this cell
// needs.
type borrowState struct {
	borrow atomic.Uint32
}

func (b *borrowState) tryShareState() bool {
	for {
		cur := b.borrow.Load()
		if cur == cellExclusive {
			return false
		}
		if b.borrow.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

func (b *borrowState) tryExclusiveState() bool {
	return b.borrow.CompareAndSwap(0, cellExclusive)
}

func (b *borrowState) releaseSharedState() {
	for {
		cur := b.borrow.Load()
		if b.borrow.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

func (b *borrowState) releaseExclusiveState() {
	b.borrow.Store(0)
}

// cell is a borrow cell parameterized over the value it guards.
type cell[T any] struct {
	value T
	borrowState
}

func newCell[T any](v T) *cell[T] {
	return &cell[T]{value: v}
}

// SharedGuard is a read-only borrow returned by a successful share. Its
// zero value is inert; Release is a no-op on it.
type SharedGuard[T any] struct {
	ptr     *T
	release func()
}

// Get returns the guarded value. Valid until Release is called.
func (g SharedGuard[T]) Get() *T { return g.ptr }

// Release gives up the borrow. Safe to call on a zero-value guard.
func (g SharedGuard[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// ExclusiveGuard is a read-write borrow returned by a successful exclusive
// acquisition. Its zero value is inert; Release is a no-op on it.
type ExclusiveGuard[T any] struct {
	ptr     *T
	release func()
}

// Get returns the guarded value. Valid until Release is called.
func (g ExclusiveGuard[T]) Get() *T { return g.ptr }

// Release gives up the borrow. Safe to call on a zero-value guard.
func (g ExclusiveGuard[T]) Release() {
	if g.release != nil {
		g.release()
	}
}

// tryShare attempts a shared borrow: CAS from n != MAX to n+1. Fails
// (returns ok=false) if the cell is currently held exclusively.
func (c *cell[T]) tryShare() (SharedGuard[T], bool) {
	if !c.tryShareState() {
		return SharedGuard[T]{}, false
	}
	return SharedGuard[T]{ptr: &c.value, release: c.releaseSharedState}, true
}

// tryExclusive attempts an exclusive borrow: CAS from 0 to MAX. Fails if
// the cell currently has any outstanding borrow (shared or exclusive).
func (c *cell[T]) tryExclusive() (ExclusiveGuard[T], bool) {
	if !c.tryExclusiveState() {
		return ExclusiveGuard[T]{}, false
	}
	return ExclusiveGuard[T]{ptr: &c.value, release: c.releaseExclusiveState}, true
}

// share is the fallible share with a fatal error on contention.
func (c *cell[T]) share() SharedGuard[T] {
	g, ok := c.tryShare()
	if !ok {
		panic("ecs: cell already held exclusively")
	}
	return g
}

// exclusive is the fallible exclusive acquisition with a fatal error on
// contention.
func (c *cell[T]) exclusive() ExclusiveGuard[T] {
	g, ok := c.tryExclusive()
	if !ok {
		panic("ecs: cell already borrowed")
	}
	return g
}

// MapShared projects a SharedGuard over X into a SharedGuard over a
// subfield Y = f(X), without releasing the underlying borrow: the
// returned guard's Release still frees the original cell's borrow-count
// slot.
func MapShared[T, U any](g SharedGuard[T], f func(*T) *U) SharedGuard[U] {
	return SharedGuard[U]{ptr: f(g.ptr), release: g.release}
}

// MapExclusive is the exclusive-guard counterpart of MapShared.
func MapExclusive[T, U any](g ExclusiveGuard[T], f func(*T) *U) ExclusiveGuard[U] {
	return ExclusiveGuard[U]{ptr: f(g.ptr), release: g.release}
}
