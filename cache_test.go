package ecs

import "testing"

// TestCacheBasicOperations mirrors the teacher's cache_test.go coverage of
// SimpleCache's register/lookup round trip.
func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Fatalf("failed to register item %s: %v", item, err)
		}
		indices[i] = index
		if index != i {
			t.Fatalf("index for item %s is %d, want %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Fatalf("item %s not found in cache", item)
		}
		if index != indices[i] {
			t.Fatalf("index for item %s is %d, want %d", item, index, indices[i])
		}
		if got := cache.GetItem(index); got == nil || *got != item {
			t.Fatalf("GetItem(%d) = %v, want %s", index, got, item)
		}
		if got := cache.GetItem32(uint32(index)); got == nil || *got != item {
			t.Fatalf("GetItem32(%d) = %v, want %s", index, got, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Fatalf("found non-existent item in cache")
	}
}

func TestCacheCapacity(t *testing.T) {
	const capacity = 5
	cache := FactoryNewCache[int](capacity)

	for i := 0; i < capacity; i++ {
		key := string(rune('a' + i))
		if _, err := cache.Register(key, i); err != nil {
			t.Fatalf("failed to register %s: %v", key, err)
		}
	}

	if _, err := cache.Register("overflow", 100); err == nil {
		t.Fatalf("expected error when exceeding cache capacity")
	}
}

func TestCacheRegisterIsIdempotentByKey(t *testing.T) {
	cache := FactoryNewCache[int](2)
	first, err := cache.Register("k", 1)
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	second, err := cache.Register("k", 2)
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if first != second {
		t.Fatalf("re-registering the same key should return the same index: %d != %d", first, second)
	}
	if got := cache.GetItem(first); *got != 1 {
		t.Fatalf("re-registration should not overwrite the stored value: got %d", *got)
	}
}

func TestCacheClear(t *testing.T) {
	cache := FactoryNewCache[string](10).(*SimpleCache[string])

	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Fatalf("failed to register %s: %v", item, err)
		}
	}

	cache.Clear()

	for _, item := range items {
		if _, found := cache.GetIndex(item); found {
			t.Fatalf("item %s still found after clear", item)
		}
	}

	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Fatalf("failed to register %s after clear: %v", item, err)
		}
	}
}

func TestCachedDebugNameMemoizes(t *testing.T) {
	calls := 0
	compute := func() string {
		calls++
		return "Column[int]"
	}
	first := cachedDebugName("test:memoize:unique-key", compute)
	second := cachedDebugName("test:memoize:unique-key", compute)
	if first != "Column[int]" || second != "Column[int]" {
		t.Fatalf("unexpected cached names: %q %q", first, second)
	}
	if calls != 1 {
		t.Fatalf("compute should run once, ran %d times", calls)
	}
}
