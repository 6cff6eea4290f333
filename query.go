package ecs

// FetchResources acquires a Resources pack R directly from a world,
// mirroring what the dispatcher does internally for a system. The
// caller must Release the pack's fields (or call ReleaseResources) when
// done.
func FetchResources[R any](w *World) (*R, error) {
	if !w.resources.TryRLock() {
		return nil, ResourceLockedExclusiveError{}
	}
	defer w.resources.RUnlock()
	return fetchResources[R](w.resources)
}

// ReleaseResources releases a pack obtained from FetchResources.
func ReleaseResources[R any](r *R) { releaseResources(r) }

// FetchComponents acquires a Components pack C directly from a world.
func FetchComponents[C any](w *World) (*C, error) {
	if !w.components.TryRLock() {
		return nil, ComponentLockedExclusiveError{}
	}
	defer w.components.RUnlock()
	return fetchComponents[C](w.components)
}

// ReleaseComponents releases a pack obtained from FetchComponents.
func ReleaseComponents[C any](c *C) { releaseComponents(c) }

// Fetch acquires both a Resources pack R and a Components pack C from a
// world in one call, for one-off user code that wants the same
// fetch/unwind semantics an Executor gives a dispatched system, without
// building a full System value.
func Fetch[R any, C any](w *World) (*R, *C, error) {
	rpack, err := FetchResources[R](w)
	if err != nil {
		return nil, nil, err
	}
	cpack, err := FetchComponents[C](w)
	if err != nil {
		ReleaseResources(rpack)
		return nil, nil, err
	}
	return rpack, cpack, nil
}

// BuildSystem wraps a plain function into a System[R, C], so ad hoc
// closures can be handed to NewExecutor/Dispatcher without declaring a
// named type.
func BuildSystem[R any, C any](fn func(resources *R, components *C)) System[R, C] {
	return funcSystem[R, C]{fn}
}
