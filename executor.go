package ecs

// Executor is a type-erased handle to a System[R, C]: it owns the system
// value on the heap and exposes a single Execute operation, so the
// dispatcher's work queue can store executors of differing concrete
// system type as values of one uniform shape. Grounded on the
// type-erasure idiom of wrapping a generic value behind a non-generic
// interface (see componentaccessible.go's Accessor wrapping).
type Executor interface {
	Execute(resources *resourceRegistry, components *componentRegistry) error
}

// executor is Executor's sole implementation: a closure over the
// concrete System[R, C] captured by NewExecutor.
type executor struct {
	run func(resources *resourceRegistry, components *componentRegistry) error
}

func (e *executor) Execute(resources *resourceRegistry, components *componentRegistry) error {
	return e.run(resources, components)
}

// NewExecutor wraps sys into a type-erased Executor implementing a
// five-step protocol:
//  1. Attempt a shared lock on each registry; fail fast if exclusive-locked.
//  2. Fetch the Resources pack; unwind on the first missing/contended field.
//  3. Fetch the Components pack similarly.
//  4. Call sys.Execute with both packs.
//  5. Release everything, including the registry locks, via deferred calls.
func NewExecutor[R any, C any](sys System[R, C]) Executor {
	return &executor{
		run: func(resources *resourceRegistry, components *componentRegistry) error {
			if !resources.TryRLock() {
				return ResourceLockedExclusiveError{}
			}
			defer resources.RUnlock()
			if !components.TryRLock() {
				return ComponentLockedExclusiveError{}
			}
			defer components.RUnlock()

			rpack, err := fetchResources[R](resources)
			if err != nil {
				return err
			}
			defer releaseResources(rpack)

			cpack, err := fetchComponents[C](components)
			if err != nil {
				return err
			}
			defer releaseComponents(cpack)

			sys.Execute(rpack, cpack)
			return nil
		},
	}
}

// ExecutorFunc adapts a plain resources/components closure into an
// Executor, for one-off systems that do not warrant a named type.
func ExecutorFunc[R any, C any](fn func(resources *R, components *C)) Executor {
	return NewExecutor[R, C](funcSystem[R, C]{fn})
}

type funcSystem[R any, C any] struct {
	fn func(resources *R, components *C)
}

func (f funcSystem[R, C]) Execute(resources *R, components *C) { f.fn(resources, components) }
