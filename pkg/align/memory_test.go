package align

import "testing"

func TestMemoryLRU(t *testing.T) {
	m := newMemory(2)
	m.put("a", AxisMemory{X: ptr(1)})
	m.put("b", AxisMemory{X: ptr(2)})

	// Touch "a" so "b" becomes the eviction victim.
	if _, ok := m.get("a"); !ok {
		t.Fatal("get(a) missed")
	}
	m.put("c", AxisMemory{Y: ptr(3)})

	if _, ok := m.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := m.get("a"); !ok {
		t.Error("a should survive")
	}
	if m.len() != 2 {
		t.Errorf("len() = %d, want 2", m.len())
	}
}

func TestMemoryEmptyPutRemoves(t *testing.T) {
	m := newMemory(0)
	m.put("a", AxisMemory{X: ptr(1)})
	m.put("a", AxisMemory{})

	if m.len() != 0 {
		t.Errorf("len() = %d, want 0", m.len())
	}
}

func TestMemoryUnbounded(t *testing.T) {
	m := newMemory(0)
	for i := 0; i < 100; i++ {
		m.put(string(rune('a'+i%26))+string(rune('a'+i/26)), AxisMemory{X: ptr(float64(i))})
	}
	if m.len() != 100 {
		t.Errorf("len() = %d, want 100", m.len())
	}
}

func TestMemoryEntriesOrder(t *testing.T) {
	m := newMemory(0)
	m.put("a", AxisMemory{X: ptr(1)})
	m.put("b", AxisMemory{X: ptr(2)})
	m.get("a")

	entries := m.entries()
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "a" {
		t.Errorf("entries() = %+v, want b then a", entries)
	}
}

func TestMemorySetCapacity(t *testing.T) {
	m := newMemory(0)
	for _, id := range []string{"a", "b", "c"} {
		m.put(id, AxisMemory{X: ptr(1)})
	}
	m.setCapacity(1)

	if m.len() != 1 {
		t.Fatalf("len() = %d, want 1", m.len())
	}
	if _, ok := m.get("c"); !ok {
		t.Error("most recent entry should survive shrink")
	}
}
