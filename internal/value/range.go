package value

import "fmt"

// Range is SL's closed/half-open numeric range with an optional step
// (§3.2, §4.8). A zero step is invalid ("raises", §8 boundary behaviour);
// construction rejects it so a *Range in the wild is always well-formed.
type Range struct {
	From      int64
	To        int64
	Step      int64
	Exclusive bool
}

// NewRange validates step != 0 (§8: "range with step=0 raises").
func NewRange(from, to, step int64, exclusive bool) (*Range, error) {
	if step == 0 {
		return nil, fmt.Errorf("range step must not be zero")
	}
	return &Range{From: from, To: to, Step: step, Exclusive: exclusive}, nil
}

func (r *Range) Class() *Class { return RangeClass }

func (r *Range) ToString(d Dispatcher) (string, error) { return r.Inspect(d) }

func (r *Range) Inspect(Dispatcher) (string, error) {
	op := ".."
	if r.Exclusive {
		op = "..<"
	}
	return fmt.Sprintf("%d%s%d", r.From, op, r.To), nil
}

func (r *Range) Equals(other Obj) bool {
	o, ok := other.(*Range)
	return ok && o.From == r.From && o.To == r.To && o.Step == r.Step && o.Exclusive == r.Exclusive
}

// Contains implements the `contains` selector (§4.8).
func (r *Range) Contains(v int64) bool {
	if r.Step > 0 {
		if v < r.From || (r.Exclusive && v >= r.To) || (!r.Exclusive && v > r.To) {
			return false
		}
	} else {
		if v > r.From || (r.Exclusive && v <= r.To) || (!r.Exclusive && v < r.To) {
			return false
		}
	}
	return (v-r.From)%r.Step == 0
}

// Reversed implements the `reversed` selector.
func (r *Range) Reversed() *Range {
	last := r.lastValue()
	return &Range{From: last, To: r.From, Step: -r.Step, Exclusive: false}
}

func (r *Range) lastValue() int64 {
	n := r.Count()
	if n == 0 {
		return r.From
	}
	return r.From + int64(n-1)*r.Step
}

// Count returns how many integers this range yields, used by range-fast-iter
// (§4.6 `range_fast_iter`).
func (r *Range) Count() int {
	if r.Step > 0 {
		top := r.To
		if r.Exclusive {
			top--
		}
		if top < r.From {
			return 0
		}
		return int((top-r.From)/r.Step) + 1
	}
	bottom := r.To
	if r.Exclusive {
		bottom++
	}
	if bottom > r.From {
		return 0
	}
	return int((r.From-bottom)/(-r.Step)) + 1
}

// At returns the i-th value this range yields (0-based), for the
// range_fast_iter integer-counter iteration path (§4.6).
func (r *Range) At(i int) int64 {
	return r.From + int64(i)*r.Step
}
