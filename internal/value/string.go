package value

import "strconv"

// String is SL's immutable UTF-8 string (§3.2).
type String struct{ Value string }

func NewString(v string) String { return String{Value: v} }

func (s String) Class() *Class                       { return StringClass }
func (s String) ToString(Dispatcher) (string, error) { return s.Value, nil }
func (s String) Inspect(Dispatcher) (string, error)  { return strconv.Quote(s.Value), nil }
func (s String) Equals(other Obj) bool {
	o, ok := other.(String)
	return ok && o.Value == s.Value
}

func (s String) Hash() uint64 {
	// FNV-1a over the UTF-8 bytes; Map and Set bucket keys by Hash (map.go).
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s.Value); i++ {
		h ^= uint64(s.Value[i])
		h *= 1099511628211
	}
	return h
}
