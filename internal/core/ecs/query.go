package ecs

import "sort"

// Each2 visits entities that have both A and B, walking the smaller store
// in its dense order.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, id := range sa.ids {
			if b, ok := sb.Get(id); ok {
				fn(id, sa.items[i], b)
			}
		}
		return
	}
	for i, id := range sb.ids {
		if a, ok := sa.Get(id); ok {
			fn(id, a, sb.items[i])
		}
	}
}

// Each3 visits entities that have A, B and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	// Drive from the smallest store.
	switch {
	case sa.Len() <= sb.Len() && sa.Len() <= sc.Len():
		for i, id := range sa.ids {
			b, ok := sb.Get(id)
			if !ok {
				continue
			}
			if c, ok := sc.Get(id); ok {
				fn(id, sa.items[i], b, c)
			}
		}
	case sb.Len() <= sc.Len():
		for i, id := range sb.ids {
			a, ok := sa.Get(id)
			if !ok {
				continue
			}
			if c, ok := sc.Get(id); ok {
				fn(id, a, sb.items[i], c)
			}
		}
	default:
		for i, id := range sc.ids {
			a, ok := sa.Get(id)
			if !ok {
				continue
			}
			if b, ok := sb.Get(id); ok {
				fn(id, a, b, sc.items[i])
			}
		}
	}
}

// SortIDs orders ids ascending by raw value. Used where results must not
// depend on store insertion history.
func SortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
