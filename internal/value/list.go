package value

import "fmt"

// List is SL's mutable ordered sequence (§3.2). Equality is reference
// identity unless the class overrides `equals` (§3.2 invariant); since List
// is always handled via *List, Go pointer identity gives us that for free.
type List struct {
	Elements []Obj
}

func NewList(elems ...Obj) *List { return &List{Elements: elems} }

func (l *List) Class() *Class { return ListClass }

func (l *List) ToString(d Dispatcher) (string, error) { return l.Inspect(d) }

func (l *List) Inspect(d Dispatcher) (string, error) {
	out := "["
	for i, e := range l.Elements {
		if i > 0 {
			out += ", "
		}
		s, err := e.Inspect(d)
		if err != nil {
			return "", err
		}
		out += s
	}
	return out + "]", nil
}

// Equals is reference identity by default; the evaluator's dispatch
// protocol consults the class's `equals` override before falling back to
// this (§4.3).
func (l *List) Equals(other Obj) bool {
	o, ok := other.(*List)
	return ok && o == l
}

// Len, Get, Set, Add, RemoveAt, IndexOf back the `size`, `get`/`set`,
// `add`, `remove`, `indexOf` selectors (§4.8). Negative indices count from
// the end (§8 boundary behaviour).
func (l *List) Len() int { return len(l.Elements) }

func (l *List) normalizeIndex(i int64) int {
	n := int64(len(l.Elements))
	if i < 0 {
		i += n
	}
	return int(i)
}

func (l *List) Get(i int64) (Obj, error) {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.Elements) {
		return nil, fmt.Errorf("index %d out of range (size %d)", i, len(l.Elements))
	}
	return l.Elements[idx], nil
}

func (l *List) Set(i int64, v Obj) error {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.Elements) {
		return fmt.Errorf("index %d out of range (size %d)", i, len(l.Elements))
	}
	l.Elements[idx] = v
	return nil
}

func (l *List) Add(v Obj) { l.Elements = append(l.Elements, v) }

func (l *List) RemoveAt(i int64) error {
	idx := l.normalizeIndex(i)
	if idx < 0 || idx >= len(l.Elements) {
		return fmt.Errorf("index %d out of range (size %d)", i, len(l.Elements))
	}
	l.Elements = append(l.Elements[:idx], l.Elements[idx+1:]...)
	return nil
}

func (l *List) Slice(from, to int64) *List {
	f, t := l.normalizeIndex(from), l.normalizeIndex(to)
	if f < 0 {
		f = 0
	}
	if t > len(l.Elements) {
		t = len(l.Elements)
	}
	if f >= t {
		return NewList()
	}
	out := make([]Obj, t-f)
	copy(out, l.Elements[f:t])
	return &List{Elements: out}
}
