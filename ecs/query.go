package ecs

import "github.com/milk9111/gridwalk/ecs/component"

// IntersectEntities returns entity IDs present in both sets.
func IntersectEntities(a, b *SparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]int, 0, len(a.denseEntities))
	for _, id := range a.denseEntities {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// ForEach visits every entity holding kind in dense storage order. fn may
// destroy the entity it is handed; entities removed earlier in the same pass
// are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return
	}
	ids := append([]int(nil), s.Entities()...)
	for _, id := range ids {
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(w.entities.entity(id), v)
	}
}

// ForEach2 visits entities holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	for _, id := range IntersectEntities(sa, sb) {
		a, ok := sa.Get(id).(*A)
		if !ok {
			continue
		}
		b, ok := sb.Get(id).(*B)
		if !ok {
			continue
		}
		fn(w.entities.entity(id), a, b)
	}
}

// First returns the first entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return 0, false
	}
	return w.entities.entity(s.Entities()[0]), true
}

// Count returns how many entities hold kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}
