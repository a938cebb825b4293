package value

// Map is SL's insertion-ordered mapping (§3.2). Iteration order equals
// insertion order; removing then re-inserting a key moves it to the end
// (§3.2 invariant, §8 property 5). Keys must implement Hashable.
type Map struct {
	order   []Obj // keys, in insertion order
	values  map[uint64][]mapEntry
}

type mapEntry struct {
	key   Obj
	value Obj
	order int // index into Map.order, kept in sync on removal
}

func NewMap() *Map {
	return &Map{values: make(map[uint64][]mapEntry)}
}

func (m *Map) Class() *Class { return MapClass }

func (m *Map) ToString(d Dispatcher) (string, error) { return m.Inspect(d) }

func (m *Map) Inspect(d Dispatcher) (string, error) {
	out := "{"
	first := true
	for _, k := range m.order {
		if !first {
			out += ", "
		}
		first = false
		ks, err := k.Inspect(d)
		if err != nil {
			return "", err
		}
		v, _ := m.Get(k)
		vs, err := v.Inspect(d)
		if err != nil {
			return "", err
		}
		out += ks + ": " + vs
	}
	return out + "}", nil
}

func (m *Map) Equals(other Obj) bool {
	o, ok := other.(*Map)
	return ok && o == m
}

func hashOf(k Obj) uint64 {
	if h, ok := k.(Hashable); ok {
		return h.Hash()
	}
	return 0
}

// Get returns the value for k, or (Null{}, false) if absent (§4.8 `get`).
func (m *Map) Get(k Obj) (Obj, bool) {
	h := hashOf(k)
	for _, e := range m.values[h] {
		if e.key.Equals(k) {
			return e.value, true
		}
	}
	return Null{}, false
}

func (m *Map) ContainsKey(k Obj) bool {
	_, ok := m.Get(k)
	return ok
}

// Set inserts or updates k->v. An update to an existing key does NOT move
// it to the end (only remove-then-reinsert does, per §3.2); a brand new key
// is appended.
func (m *Map) Set(k, v Obj) {
	h := hashOf(k)
	bucket := m.values[h]
	for i, e := range bucket {
		if e.key.Equals(k) {
			bucket[i].value = v
			m.values[h] = bucket
			return
		}
	}
	idx := len(m.order)
	m.order = append(m.order, k)
	m.values[h] = append(bucket, mapEntry{key: k, value: v, order: idx})
}

// Remove deletes k if present, reporting whether it was found.
func (m *Map) Remove(k Obj) bool {
	h := hashOf(k)
	bucket := m.values[h]
	for i, e := range bucket {
		if e.key.Equals(k) {
			m.values[h] = append(bucket[:i], bucket[i+1:]...)
			m.removeFromOrder(e.order)
			return true
		}
	}
	return false
}

func (m *Map) removeFromOrder(idx int) {
	m.order = append(m.order[:idx], m.order[idx+1:]...)
	// Re-index every bucket entry whose order index shifted down.
	for h, bucket := range m.values {
		for i := range bucket {
			if bucket[i].order > idx {
				bucket[i].order--
			}
		}
		m.values[h] = bucket
	}
}

// Keys, Values return slices in insertion order.
func (m *Map) Keys() []Obj {
	out := make([]Obj, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Map) Values() []Obj {
	out := make([]Obj, 0, len(m.order))
	for _, k := range m.order {
		v, _ := m.Get(k)
		out = append(out, v)
	}
	return out
}

func (m *Map) Len() int { return len(m.order) }
