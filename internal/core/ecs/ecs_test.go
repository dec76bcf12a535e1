package ecs

import "testing"

type pos struct{ X, Y float32 }
type vel struct{ DX, DY float32 }
type tag struct{}

func TestEntityPoolRecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero id")
	}
	if !p.Alive(a) {
		t.Fatal("fresh entity should be alive")
	}
	if !p.Destroy(a) {
		t.Fatal("Destroy of live entity returned false")
	}
	if p.Alive(a) {
		t.Error("destroyed entity still alive")
	}
	if p.Destroy(a) {
		t.Error("second Destroy of same id returned true")
	}

	b := p.Create()
	if b.Index() != a.Index() {
		t.Errorf("slot not recycled: got index %d, want %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Errorf("generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
	if p.Alive(a) {
		t.Error("stale handle resolves after slot reuse")
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
}

func TestStoreSwapRemoveKeepsIndex(t *testing.T) {
	s := NewStore[pos]()
	ids := []EntityID{NewEntityID(1, 0), NewEntityID(2, 0), NewEntityID(3, 0)}
	for i, id := range ids {
		s.Set(id, &pos{X: float32(i)})
	}
	s.Remove(ids[0])

	if s.Has(ids[0]) {
		t.Fatal("removed id still present")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got, ok := s.Get(ids[2])
	if !ok || got.X != 2 {
		t.Fatalf("Get(moved) = %v, %v; want X=2", got, ok)
	}
	order := s.IDs()
	if order[0] != ids[2] || order[1] != ids[1] {
		t.Errorf("dense order = %v, want [%v %v]", order, ids[2], ids[1])
	}

	// Set on an existing id replaces without growing.
	s.Set(ids[1], &pos{X: 9})
	if s.Len() != 2 {
		t.Errorf("Len after replace = %d, want 2", s.Len())
	}
	if p, _ := s.Get(ids[1]); p.X != 9 {
		t.Errorf("replaced value X = %v, want 9", p.X)
	}
}

func TestEach2VisitsIntersection(t *testing.T) {
	w := NewWorld()
	ps := Register(w, NewStore[pos]())
	vs := Register(w, NewStore[vel]())

	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	ps.Set(a, &pos{})
	ps.Set(b, &pos{})
	ps.Set(c, &pos{})
	vs.Set(b, &vel{DX: 1})
	vs.Set(c, &vel{DX: 2})

	Each2(ps, vs, func(_ EntityID, p *pos, v *vel) {
		p.X += v.DX
	})

	want := map[EntityID]float32{a: 0, b: 1, c: 2}
	for id, x := range want {
		p, _ := ps.Get(id)
		if p.X != x {
			t.Errorf("%v: X = %v, want %v", id, p.X, x)
		}
	}
}

func TestEach3DrivesFromSmallestStore(t *testing.T) {
	w := NewWorld()
	ps := Register(w, NewStore[pos]())
	vs := Register(w, NewStore[vel]())
	ts := Register(w, NewStore[tag]())

	var tagged EntityID
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		ps.Set(id, &pos{})
		vs.Set(id, &vel{})
		if i == 3 {
			ts.Set(id, &tag{})
			tagged = id
		}
	}

	var seen []EntityID
	Each3(ps, vs, ts, func(id EntityID, _ *pos, _ *vel, _ *tag) {
		seen = append(seen, id)
	})
	if len(seen) != 1 || seen[0] != tagged {
		t.Errorf("visited %v, want [%v]", seen, tagged)
	}
}

func TestWorldFlushDestroyQueue(t *testing.T) {
	w := NewWorld()
	ps := Register(w, NewStore[pos]())
	vs := Register(w, NewStore[vel]())

	a := w.CreateEntity()
	b := w.CreateEntity()
	ps.Set(a, &pos{})
	vs.Set(a, &vel{})
	ps.Set(b, &pos{})

	w.MarkForDestruction(a)
	w.MarkForDestruction(a) // duplicates are ignored
	if !w.Alive(a) {
		t.Fatal("entity destroyed before flush")
	}
	if w.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", w.Pending())
	}

	if n := w.FlushDestroyQueue(); n != 1 {
		t.Errorf("FlushDestroyQueue = %d, want 1", n)
	}
	if w.Alive(a) {
		t.Error("entity alive after flush")
	}
	if ps.Has(a) || vs.Has(a) {
		t.Error("components of destroyed entity not removed")
	}
	if !ps.Has(b) {
		t.Error("unrelated entity lost its component")
	}
	if w.Pending() != 0 {
		t.Errorf("Pending after flush = %d, want 0", w.Pending())
	}
}

func TestSortIDs(t *testing.T) {
	ids := []EntityID{NewEntityID(3, 0), NewEntityID(1, 2), NewEntityID(2, 0)}
	SortIDs(ids)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("not sorted: %v", ids)
		}
	}
}
