package firelog

import (
	"sync"
	"testing"
)

func TestContextStoreSetMerges(t *testing.T) {
	s := NewContextStore()
	s.Set(map[string]any{"user_id": 1, "region": "us"})
	s.Set(map[string]any{"user_id": 2, "plan": "pro"})

	snap := s.Snapshot()
	if snap["user_id"] != 2 {
		t.Errorf("expected later Set to overwrite, got %v", snap["user_id"])
	}
	if snap["region"] != "us" || snap["plan"] != "pro" {
		t.Errorf("expected shallow merge to keep both keys, got %v", snap)
	}
}

func TestContextStoreClear(t *testing.T) {
	s := NewContextStore()
	s.Set(map[string]any{"user_id": 1})
	s.Clear()

	if len(s.Snapshot()) != 0 {
		t.Errorf("expected empty context after Clear, got %v", s.Snapshot())
	}
}

func TestContextStoreSnapshotIsACopy(t *testing.T) {
	s := NewContextStore()
	s.Set(map[string]any{"user_id": 1})

	snap := s.Snapshot()
	snap["user_id"] = 999
	snap["injected"] = true

	fresh := s.Snapshot()
	if fresh["user_id"] != 1 {
		t.Errorf("mutating a snapshot must not affect the store, got %v", fresh["user_id"])
	}
	if _, ok := fresh["injected"]; ok {
		t.Error("mutating a snapshot must not add keys to the store")
	}
}

func TestContextStoreConcurrentAccess(t *testing.T) {
	s := NewContextStore()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set(map[string]any{"k": n})
				_ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if _, ok := s.Snapshot()["k"]; !ok {
		t.Error("expected key to survive concurrent writes")
	}
}
