package ecs

import "testing"

func TestIntersectIDsEmptyInputIsEmpty(t *testing.T) {
	if got := intersectIDs(); got != nil {
		t.Fatalf("no inputs should yield nil, got %v", got)
	}
	if got := intersectIDs([]Entity{1, 2}, nil); len(got) != 0 {
		t.Fatalf("one empty input should yield empty intersection, got %v", got)
	}
}

func TestIntersectIDsAscendingDedup(t *testing.T) {
	got := intersectIDs([]Entity{3, 1, 2}, []Entity{2, 3, 1})
	want := []Entity{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestJoin2SkipsNonIntersectingEntities(t *testing.T) {
	a := newColumn[int]()
	a.Push(1, 10)
	a.Push(2, 20)
	b := newColumn[string]()
	b.Push(2, "two")
	b.Push(3, "three")

	var rows []JoinRow2[int, string]
	for row := range Join2(a, b) {
		rows = append(rows, row)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 joined row, got %d", len(rows))
	}
	if rows[0].Entity != 2 || *rows[0].V1 != 20 || *rows[0].V2 != "two" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestJoin2MutatesThroughExclusiveValues(t *testing.T) {
	a := newColumn[int]()
	a.Push(1, 1)
	b := newColumn[int]()
	b.Push(1, 10)

	for row := range Join2(a, b) {
		*row.V1 += *row.V2
	}
	if a.Values()[0] != 11 {
		t.Fatalf("mutation through join row did not stick: %d", a.Values()[0])
	}
}

func TestParallelJoin2VisitsEveryMatchedEntity(t *testing.T) {
	a := newColumn[int]()
	b := newColumn[int]()
	for i := Entity(1); i <= 50; i++ {
		a.Push(i, int(i))
		b.Push(i, int(i)*2)
	}

	seen := make(chan Entity, 50)
	ParallelJoin2(4, a, b, func(row JoinRow2[int, int]) {
		seen <- row.Entity
	})
	close(seen)

	count := 0
	for range seen {
		count++
	}
	if count != 50 {
		t.Fatalf("expected 50 visited rows, got %d", count)
	}
}
