package value

// Set is the supplemented collection from SPEC_FULL §4.8: backed by a Map
// with Void values so it reuses the same insertion-order semantics and
// hashing as Map, rather than duplicating that machinery.
type Set struct {
	backing *Map
}

func NewSet() *Set { return &Set{backing: NewMap()} }

func (s *Set) Class() *Class { return SetClass }

func (s *Set) ToString(d Dispatcher) (string, error) { return s.Inspect(d) }

func (s *Set) Inspect(d Dispatcher) (string, error) {
	out := "{"
	for i, k := range s.backing.Keys() {
		if i > 0 {
			out += ", "
		}
		ks, err := k.Inspect(d)
		if err != nil {
			return "", err
		}
		out += ks
	}
	return out + "}", nil
}

func (s *Set) Equals(other Obj) bool {
	o, ok := other.(*Set)
	return ok && o == s
}

func (s *Set) Add(v Obj)          { s.backing.Set(v, Void{}) }
func (s *Set) Remove(v Obj) bool  { return s.backing.Remove(v) }
func (s *Set) Contains(v Obj) bool { return s.backing.ContainsKey(v) }
func (s *Set) Len() int           { return s.backing.Len() }
func (s *Set) Elements() []Obj    { return s.backing.Keys() }

func (s *Set) Union(other *Set) *Set {
	out := NewSet()
	for _, v := range s.Elements() {
		out.Add(v)
	}
	for _, v := range other.Elements() {
		out.Add(v)
	}
	return out
}

func (s *Set) Intersect(other *Set) *Set {
	out := NewSet()
	for _, v := range s.Elements() {
		if other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}
