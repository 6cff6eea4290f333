package ecs

import "testing"

func TestCellShareAllowsMultipleReaders(t *testing.T) {
	c := newCell(42)
	g1, ok := c.tryShare()
	if !ok {
		t.Fatalf("first share failed")
	}
	g2, ok := c.tryShare()
	if !ok {
		t.Fatalf("second share failed")
	}
	if *g1.Get() != 42 || *g2.Get() != 42 {
		t.Fatalf("unexpected values: %d %d", *g1.Get(), *g2.Get())
	}
	g1.Release()
	g2.Release()
}

func TestCellExclusiveExcludesShare(t *testing.T) {
	c := newCell(0)
	eg, ok := c.tryExclusive()
	if !ok {
		t.Fatalf("exclusive acquire failed")
	}
	if _, ok := c.tryShare(); ok {
		t.Fatalf("share succeeded while exclusively held")
	}
	if _, ok := c.tryExclusive(); ok {
		t.Fatalf("second exclusive succeeded while held")
	}
	eg.Release()
	if _, ok := c.tryShare(); !ok {
		t.Fatalf("share failed after release")
	}
}

func TestCellShareExcludesExclusive(t *testing.T) {
	c := newCell(0)
	g, ok := c.tryShare()
	if !ok {
		t.Fatalf("share failed")
	}
	if _, ok := c.tryExclusive(); ok {
		t.Fatalf("exclusive succeeded while shared")
	}
	g.Release()
	if _, ok := c.tryExclusive(); !ok {
		t.Fatalf("exclusive failed after release")
	}
}

func TestMapSharedProjectsWithoutReleasing(t *testing.T) {
	type pair struct{ A, B int }
	c := newCell(pair{A: 1, B: 2})
	g, ok := c.tryShare()
	if !ok {
		t.Fatalf("share failed")
	}
	projected := MapShared(g, func(p *pair) *int { return &p.A })
	if *projected.Get() != 1 {
		t.Fatalf("got %d, want 1", *projected.Get())
	}
	projected.Release()
	if _, ok := c.tryExclusive(); !ok {
		t.Fatalf("exclusive failed after projected release")
	}
}
