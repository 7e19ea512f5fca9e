package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testRectComponent struct {
	X, Y, W, H float64
}

type testTintComponent struct {
	Alpha float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == InvalidEntity || id2 == InvalidEntity {
		t.Error("CreateEntity must never hand out InvalidEntity")
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testRectComponent{X: 100, Y: 200, W: 30, H: 40})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testRectComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	rect := comp.(*testRectComponent)
	if rect.X != 100 || rect.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", rect.X, rect.Y)
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(42), &testRectComponent{})

	if em.Exists(EntityID(42)) {
		t.Error("AddComponent must not create entities implicitly")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTintComponent{Alpha: 1})

	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if HasComponent[*testTintComponent](em, id) {
		t.Error("Components of a removed entity should be gone")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testRectComponent{})
	em.AddComponent(id1, &testTintComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testRectComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testTintComponent{})

	both := em.GetEntitiesWith(
		reflect.TypeOf(&testRectComponent{}),
		reflect.TypeOf(&testTintComponent{}),
	)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1 with both components, got %v", both)
	}

	rects := em.GetEntitiesWith(reflect.TypeOf(&testRectComponent{}))
	if len(rects) != 2 {
		t.Errorf("Expected 2 entities with rect component, got %d", len(rects))
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()
	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTintComponent{Alpha: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testRectComponent{})
		}
		ids = append(ids, id)
	}

	t.Run("GetComponent typed", func(t *testing.T) {
		tint, ok := GetComponent[*testTintComponent](em, ids[3])
		if !ok {
			t.Fatal("expected tint component")
		}
		if tint.Alpha != 3 {
			t.Errorf("Alpha: got %v, want 3", tint.Alpha)
		}
	})

	t.Run("GetComponent missing", func(t *testing.T) {
		rect, ok := GetComponent[*testRectComponent](em, ids[1])
		if ok || rect != nil {
			t.Error("expected no rect component on odd entity")
		}
	})

	t.Run("GetEntitiesWith1 is sorted", func(t *testing.T) {
		got := GetEntitiesWith1[*testTintComponent](em)
		if len(got) != 5 {
			t.Fatalf("got %d entities, want 5", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Fatalf("result not sorted: %v", got)
			}
		}
	})

	t.Run("GetEntitiesWith2", func(t *testing.T) {
		got := GetEntitiesWith2[*testTintComponent, *testRectComponent](em)
		want := []EntityID{ids[0], ids[2], ids[4]}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("RemoveComponent", func(t *testing.T) {
		RemoveComponent[*testRectComponent](em, ids[0])
		if HasComponent[*testRectComponent](em, ids[0]) {
			t.Error("rect component should be removed")
		}
		if !HasComponent[*testTintComponent](em, ids[0]) {
			t.Error("tint component should be untouched")
		}
	})
}

func TestDestroyEntityMarksOnce(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.DestroyEntity(EntityID(99))
	if len(em.pending) != 1 {
		t.Fatalf("pending: got %v, want [%d]", em.pending, id)
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) || len(em.pending) != 0 {
		t.Errorf("cleanup left state behind: exists=%v pending=%v", em.Exists(id), em.pending)
	}
}

func TestGetEntitiesWithCreationOrder(t *testing.T) {
	em := NewEntityManager()
	want := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTintComponent{})
		want = append(want, id)
	}

	got := em.GetEntitiesWith(reflect.TypeOf(&testTintComponent{}))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order: got %v, want %v", got, want)
	}
}
