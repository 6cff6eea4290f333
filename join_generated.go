package ecs

import (
	"iter"
	"sync"
)

// JoinRow2 is one step of a two-column join: the shared entity-id plus a
// pointer into each column's value slot.
type JoinRow2[T1, T2 any] struct {
	Entity Entity
	V1     *T1
	V2     *T2
}

// JoinRow3 is JoinRow2's three-column counterpart.
type JoinRow3[T1, T2, T3 any] struct {
	Entity Entity
	V1     *T1
	V2     *T2
	V3     *T3
}

// JoinRow4 is JoinRow2's four-column counterpart.
type JoinRow4[T1, T2, T3, T4 any] struct {
	Entity Entity
	V1     *T1
	V2     *T2
	V3     *T3
	V4     *T4
}

// Join1 walks a single column in ascending-id order. Provided for
// symmetry with Join2..Join4; unlike col.Iterate(), which follows
// storage order.
func Join1[T1 any](col1 *Column[T1]) iter.Seq2[Entity, *T1] {
	ids := intersectIDs(col1.Ids())
	return func(yield func(Entity, *T1) bool) {
		for _, id := range ids {
			if !yield(id, &col1.vals[col1.indexOf(id)]) {
				return
			}
		}
	}
}

// Join2 yields, in ascending entity-id order, one JoinRow2 per entity
// present in both col1 and col2. Each step re-scans each input column
// linearly to locate the id's slot.
func Join2[T1, T2 any](col1 *Column[T1], col2 *Column[T2]) iter.Seq[JoinRow2[T1, T2]] {
	ids := intersectIDs(col1.Ids(), col2.Ids())
	return func(yield func(JoinRow2[T1, T2]) bool) {
		for _, id := range ids {
			i1 := col1.indexOf(id)
			i2 := col2.indexOf(id)
			row := JoinRow2[T1, T2]{
				Entity: id,
				V1:     &col1.vals[i1],
				V2:     &col2.vals[i2],
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Join3 is Join2's three-column counterpart.
func Join3[T1, T2, T3 any](col1 *Column[T1], col2 *Column[T2], col3 *Column[T3]) iter.Seq[JoinRow3[T1, T2, T3]] {
	ids := intersectIDs(col1.Ids(), col2.Ids(), col3.Ids())
	return func(yield func(JoinRow3[T1, T2, T3]) bool) {
		for _, id := range ids {
			row := JoinRow3[T1, T2, T3]{
				Entity: id,
				V1:     &col1.vals[col1.indexOf(id)],
				V2:     &col2.vals[col2.indexOf(id)],
				V3:     &col3.vals[col3.indexOf(id)],
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Join4 is Join2's four-column counterpart.
func Join4[T1, T2, T3, T4 any](col1 *Column[T1], col2 *Column[T2], col3 *Column[T3], col4 *Column[T4]) iter.Seq[JoinRow4[T1, T2, T3, T4]] {
	ids := intersectIDs(col1.Ids(), col2.Ids(), col3.Ids(), col4.Ids())
	return func(yield func(JoinRow4[T1, T2, T3, T4]) bool) {
		for _, id := range ids {
			row := JoinRow4[T1, T2, T3, T4]{
				Entity: id,
				V1:     &col1.vals[col1.indexOf(id)],
				V2:     &col2.vals[col2.indexOf(id)],
				V3:     &col3.vals[col3.indexOf(id)],
				V4:     &col4.vals[col4.indexOf(id)],
			}
			if !yield(row) {
				return
			}
		}
	}
}

// ParallelJoin2 is Join2's parallel variant: the intersection is still
// produced once, up front, but the per-step work
// (here, just building the row — the real parallelism win is in the
// caller's per-row body) is fanned out across a pool of workers
// goroutines (a value below 1 means one). fn runs once per matched entity;
// ParallelJoin2 blocks until every call returns. Safe to mutate through
// V1/V2 because each row addresses a disjoint id — the column invariant
// (no id appears twice) rules out aliasing between rows, and the rows
// themselves are read from columns already exclusively or shared
// borrowed by the caller before ParallelJoin2 was invoked.
func ParallelJoin2[T1, T2 any](workers int, col1 *Column[T1], col2 *Column[T2], fn func(JoinRow2[T1, T2])) {
	if workers < 1 {
		workers = 1
	}
	ids := intersectIDs(col1.Ids(), col2.Ids())
	rows := make(chan JoinRow2[T1, T2])
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for row := range rows {
				fn(row)
			}
		}()
	}
	for _, id := range ids {
		rows <- JoinRow2[T1, T2]{
			Entity: id,
			V1:     &col1.vals[col1.indexOf(id)],
			V2:     &col2.vals[col2.indexOf(id)],
		}
	}
	close(rows)
	wg.Wait()
}
