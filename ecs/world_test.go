package ecs

import (
	"testing"

	"github.com/milk9111/tanks/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestStaleHandleDoesNotResolve(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, reused)
	}
	if reused == old {
		t.Fatalf("reused entity must carry a new generation")
	}
	if Has(w, reused, h.Kind()) {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle resolved a component")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	h := component.NewComponent[int]()

	if err := Add(w, e, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	var zero component.ComponentKind[int]
	if err := Add(w, e, zero, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()
	h3 := component.NewComponent[float64]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if got := len(w.Query(h2.Kind())); got != 2 {
					t.Fatalf("expected 2 entities in query, got %d", got)
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "mutation_through_pointer",
			setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h3.Kind())
				if !ok {
					t.Fatalf("expected float present")
				}
				*v = 4.5
				again, _ := Get(w, e1, h3.Kind())
				if *again != 4.5 {
					t.Fatalf("expected pointer mutation to persist, got %v", *again)
				}
			},
			teardown: func() bool { return Remove(w, e1, h3.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	if _, ok := w.First(h.Kind()); ok {
		t.Fatalf("expected no entity in empty world")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, h.Kind(), intPtr(1))
	_ = Add(w, e2, h.Kind(), intPtr(2))
	DestroyEntity(w, e1)

	got, ok := w.First(h.Kind())
	if !ok || got != e2 {
		t.Fatalf("expected e2, got %v ok=%v", got, ok)
	}
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		ents := make([]Entity, 0, 4)
		for i := 0; i < 4; i++ {
			e := CreateEntity(w)
			_ = Add(w, e, h.Kind(), intPtr(i))
			ents = append(ents, e)
		}

		visited := 0
		ForEach(w, h.Kind(), func(e Entity, v *int) {
			visited++
			if *v == 0 {
				DestroyEntity(w, ents[3])
			}
		})
		if visited != 3 {
			t.Fatalf("expected destroyed entity to be skipped, visited %d", visited)
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				e4 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))
				_ = Add(w, e4, kc, intPtr(6))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach4(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()
	kc := component.NewComponentKind[float64]()
	kd := component.NewComponentKind[bool]()

	yes := true
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("two"))
	_ = Add(w, e2, kc, float64Ptr(2))
	_ = Add(w, e2, kd, &yes)

	var res []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, a *int, b *string, _ *float64, _ *bool) {
		if *a != 2 || *b != "two" {
			t.Fatalf("unexpected values %d %q", *a, *b)
		}
		res = append(res, e)
	})
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (c countingSystem) Update(w *World) {
	*c.calls = append(*c.calls, c.name)
	w.Events().Push(Event{Type: c.name})
}

func TestSchedulerRunsInOrderAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	s.Add(countingSystem{&calls, "c"})

	s.Update(w)
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("unexpected order %v", calls)
	}
	if evts := w.Events().Drain(); evts != nil {
		t.Fatalf("expected events flushed after update, got %v", evts)
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
}

func TestAdvance(t *testing.T) {
	w := NewWorld()
	w.Advance(0.5)
	w.Advance(-1)
	tm := w.Time()
	if tm.Delta != 0 || tm.Elapsed != 0.5 || tm.Frame != 2 {
		t.Fatalf("unexpected time %+v", tm)
	}
}
