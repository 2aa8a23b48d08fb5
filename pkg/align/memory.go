package align

import "container/list"

// AxisMemory records the coordinate an element last snapped to on each axis.
// A nil field means that axis did not snap on the last call.
type AxisMemory struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

func (m AxisMemory) empty() bool { return m.X == nil && m.Y == nil }

// MemoryEntry is one element's hysteresis memory in a [State].
type MemoryEntry struct {
	ID string `json:"id"`
	AxisMemory
}

type memoryItem struct {
	id  string
	mem AxisMemory
}

// memory is an LRU map from element id to its last snap. A capacity of zero
// or less means unbounded.
type memory struct {
	capacity int
	order    *list.List // front is most recently used
	items    map[string]*list.Element
}

func newMemory(capacity int) *memory {
	return &memory{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (m *memory) get(id string) (AxisMemory, bool) {
	el, ok := m.items[id]
	if !ok {
		return AxisMemory{}, false
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoryItem).mem, true
}

// put stores mem for id. An empty memory removes the entry.
func (m *memory) put(id string, mem AxisMemory) {
	if mem.empty() {
		m.remove(id)
		return
	}
	if el, ok := m.items[id]; ok {
		el.Value.(*memoryItem).mem = mem
		m.order.MoveToFront(el)
		return
	}
	m.items[id] = m.order.PushFront(&memoryItem{id: id, mem: mem})
	m.evict()
}

func (m *memory) remove(id string) {
	if el, ok := m.items[id]; ok {
		m.order.Remove(el)
		delete(m.items, id)
	}
}

func (m *memory) setCapacity(capacity int) {
	m.capacity = capacity
	m.evict()
}

func (m *memory) evict() {
	if m.capacity <= 0 {
		return
	}
	for m.order.Len() > m.capacity {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryItem).id)
	}
}

func (m *memory) len() int { return m.order.Len() }

// entries returns the memory from least to most recently used, so that
// replaying them with put restores the same eviction order.
func (m *memory) entries() []MemoryEntry {
	out := make([]MemoryEntry, 0, m.order.Len())
	for el := m.order.Back(); el != nil; el = el.Prev() {
		item := el.Value.(*memoryItem)
		out = append(out, MemoryEntry{ID: item.id, AxisMemory: item.mem})
	}
	return out
}
