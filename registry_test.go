package ecs

import "testing"

func TestRegisterComponentIsIdempotent(t *testing.T) {
	reg := newComponentRegistry()
	if fresh := RegisterComponent[int](reg); !fresh {
		t.Fatalf("first register should report fresh=true")
	}
	if fresh := RegisterComponent[int](reg); fresh {
		t.Fatalf("second register should report fresh=false")
	}
	if !ComponentRegistered[int](reg) {
		t.Fatalf("component should be registered")
	}
}

func TestGetComponentRoundTrip(t *testing.T) {
	reg := newComponentRegistry()
	RegisterComponent[int](reg)

	wg, ok := GetComponentMut[int](reg)
	if !ok {
		t.Fatalf("GetComponentMut failed")
	}
	wg.Column().Push(1, 99)
	wg.Release()

	rg, ok := GetComponent[int](reg)
	if !ok {
		t.Fatalf("GetComponent failed")
	}
	defer rg.Release()
	idx := rg.Column().indexOf(1)
	if idx < 0 || rg.Column().Values()[idx] != 99 {
		t.Fatalf("round trip failed: values %v", rg.Column().Values())
	}
}

func TestGetComponentPanicsOnExclusiveContention(t *testing.T) {
	reg := newComponentRegistry()
	RegisterComponent[int](reg)
	wg, _ := GetComponentMut[int](reg)
	defer wg.Release()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on contended GetComponent")
		}
	}()
	GetComponent[int](reg)
}

func TestTryGetComponentFailsOnContentionWithoutPanic(t *testing.T) {
	reg := newComponentRegistry()
	RegisterComponent[int](reg)
	wg, _ := GetComponentMut[int](reg)
	defer wg.Release()

	if _, ok := TryGetComponent[int](reg); ok {
		t.Fatalf("TryGetComponent should fail while exclusively held")
	}
}

func TestFetchComponentSharedReturnsTypedErrors(t *testing.T) {
	reg := newComponentRegistry()
	if _, err := fetchComponentShared[int](reg); err == nil {
		t.Fatalf("expected NoSuchComponentStorageError")
	} else if _, ok := err.(NoSuchComponentStorageError); !ok {
		t.Fatalf("wrong error type: %T", err)
	}

	RegisterComponent[int](reg)
	eg, _ := GetComponentMut[int](reg)
	defer eg.Release()

	if _, err := fetchComponentShared[int](reg); err == nil {
		t.Fatalf("expected ComponentStorageInUseError")
	} else if _, ok := err.(ComponentStorageInUseError); !ok {
		t.Fatalf("wrong error type: %T", err)
	}
}

func TestRemoveComponentsClearsEveryColumn(t *testing.T) {
	reg := newComponentRegistry()
	RegisterComponent[int](reg)
	RegisterComponent[string](reg)

	ig, _ := GetComponentMut[int](reg)
	ig.Column().Push(7, 1)
	ig.Release()
	sg, _ := GetComponentMut[string](reg)
	sg.Column().Push(7, "x")
	sg.Release()

	reg.RemoveComponents(7)

	ig2, _ := GetComponent[int](reg)
	defer ig2.Release()
	if ig2.Column().Len() != 0 {
		t.Fatalf("int column not cleared")
	}
	sg2, _ := GetComponent[string](reg)
	defer sg2.Release()
	if sg2.Column().Len() != 0 {
		t.Fatalf("string column not cleared")
	}
}

func TestFetchResourcesFailsWhenRegistryWriteLocked(t *testing.T) {
	w := NewWorld()
	type Clock struct{ Frame int }
	AddResources1(w, Clock{Frame: 1})

	w.resources.mu.Lock()
	defer w.resources.mu.Unlock()

	type pack struct{ Clock Res[Clock] }
	if _, err := FetchResources[pack](w); err == nil {
		t.Fatalf("expected ResourceLockedExclusiveError while registry is write-locked")
	} else if _, ok := err.(ResourceLockedExclusiveError); !ok {
		t.Fatalf("wrong error type: %T", err)
	}
}

func TestFetchComponentsFailsWhenRegistryWriteLocked(t *testing.T) {
	w := NewWorld()
	CreateEntity1(w, worldTestA{V: 1})

	w.components.mu.Lock()
	defer w.components.mu.Unlock()

	type pack struct{ A Comp[worldTestA] }
	if _, err := FetchComponents[pack](w); err == nil {
		t.Fatalf("expected ComponentLockedExclusiveError while registry is write-locked")
	} else if _, ok := err.(ComponentLockedExclusiveError); !ok {
		t.Fatalf("wrong error type: %T", err)
	}
}

func TestResourceRegisterAndRoundTrip(t *testing.T) {
	type Clock struct{ Frame int }
	reg := newResourceRegistry()
	if fresh := RegisterResource(reg, Clock{Frame: 1}); !fresh {
		t.Fatalf("first register should be fresh")
	}
	if fresh := RegisterResource(reg, Clock{Frame: 99}); fresh {
		t.Fatalf("second register should not be fresh")
	}

	g, ok := GetResource[Clock](reg)
	if !ok {
		t.Fatalf("GetResource failed")
	}
	defer g.Release()
	if g.Get().Frame != 1 {
		t.Fatalf("registration overwrote existing value: got %d", g.Get().Frame)
	}
}

func TestRegisterResourceStrictRejectsSecondCall(t *testing.T) {
	type Clock struct{ Frame int }
	reg := newResourceRegistry()
	if err := RegisterResourceStrict(reg, Clock{Frame: 1}); err != nil {
		t.Fatalf("first strict register should succeed: %v", err)
	}
	err := RegisterResourceStrict(reg, Clock{Frame: 2})
	if err == nil {
		t.Fatalf("expected ResourceAlreadyRegisteredError on second call")
	}
	if _, ok := err.(ResourceAlreadyRegisteredError); !ok {
		t.Fatalf("wrong error type: %T", err)
	}

	g, _ := GetResource[Clock](reg)
	defer g.Release()
	if g.Get().Frame != 1 {
		t.Fatalf("rejected registration should not overwrite: got %d", g.Get().Frame)
	}
}
