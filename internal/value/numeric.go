package value

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Int is SL's arbitrary-precision integer (§3.2, §4.4). It stores a plain
// int64 until an operation's exact result would overflow, at which point it
// is promoted to an apd.Decimal-backed big representation; the class
// (IntClass) never changes, only the storage (§4.4: "the class stays Int;
// only the storage differs").
//
// apd.Decimal (cockroachdb/apd/v3) is used rather than math/big.Int because
// it is already the arbitrary-precision numeric type this retrieval pack
// reaches for (cue-lang's numeric-literal tower), and its exact-integer
// arithmetic context is a direct fit for overflow promotion.
type Int struct {
	small int64
	big   *apd.Decimal // non-nil only once promoted
}

var apdCtx = apd.BaseContext.WithPrecision(256)

// NewInt constructs a machine-word Int.
func NewInt(v int64) Int { return Int{small: v} }

// IsBig reports whether this Int has been promoted to arbitrary precision.
func (i Int) IsBig() bool { return i.big != nil }

// Int64 returns the machine-word value. Only meaningful when !IsBig(); big
// values saturate to MaxInt64/MinInt64 in accordance with their sign so
// callers that must downcast (e.g. array indices) fail predictably rather
// than silently wrapping.
func (i Int) Int64() int64 {
	if i.big == nil {
		return i.small
	}
	if i.big.Sign() < 0 {
		return math.MinInt64
	}
	return math.MaxInt64
}

func (i Int) decimal() *apd.Decimal {
	if i.big != nil {
		return i.big
	}
	d := new(apd.Decimal)
	d.SetInt64(i.small)
	return d
}

func fromDecimal(d *apd.Decimal) Int {
	if v, err := d.Int64(); err == nil {
		return Int{small: v}
	}
	return Int{big: d}
}

func (i Int) Class() *Class { return IntClass }

func (i Int) ToString(Dispatcher) (string, error) {
	if i.big != nil {
		return i.big.Text('f'), nil
	}
	return strconv.FormatInt(i.small, 10), nil
}
func (i Int) Inspect(d Dispatcher) (string, error) { return i.ToString(d) }

func (i Int) Equals(other Obj) bool {
	o, ok := other.(Int)
	if !ok {
		return false
	}
	if i.big == nil && o.big == nil {
		return i.small == o.small
	}
	return i.decimal().Cmp(o.decimal()) == 0
}

func (i Int) Hash() uint64 {
	if i.big == nil {
		return uint64(i.small)
	}
	h, _ := i.big.Int64()
	return uint64(h)
}

// AddInt implements Int+Int with overflow promotion (§4.4).
func AddInt(a, b Int) Int {
	if a.big == nil && b.big == nil {
		sum := a.small + b.small
		if (sum > a.small) == (b.small > 0) || b.small == 0 {
			return Int{small: sum}
		}
	}
	var d apd.Decimal
	_, _ = apdCtx.Add(&d, a.decimal(), b.decimal())
	return fromDecimal(&d)
}

func SubInt(a, b Int) Int {
	if a.big == nil && b.big == nil {
		diff := a.small - b.small
		if (diff < a.small) == (b.small > 0) || b.small == 0 {
			return Int{small: diff}
		}
	}
	var d apd.Decimal
	_, _ = apdCtx.Sub(&d, a.decimal(), b.decimal())
	return fromDecimal(&d)
}

func MulInt(a, b Int) Int {
	if a.big == nil && b.big == nil {
		if a.small == 0 || b.small == 0 {
			return Int{small: 0}
		}
		// a == MinInt64, b == -1 (or vice versa) mathematically overflows,
		// but Go's division-overflow special case makes MinInt64/-1 wrap
		// back to MinInt64, so the p/b == a check below would miss it.
		if (a.small == math.MinInt64 && b.small == -1) || (b.small == math.MinInt64 && a.small == -1) {
			var d apd.Decimal
			_, _ = apdCtx.Mul(&d, a.decimal(), b.decimal())
			return fromDecimal(&d)
		}
		p := a.small * b.small
		if p/b.small == a.small {
			return Int{small: p}
		}
	}
	var d apd.Decimal
	_, _ = apdCtx.Mul(&d, a.decimal(), b.decimal())
	return fromDecimal(&d)
}

// DivInt implements truncating integer division; callers must have already
// rejected a zero divisor (ArithmeticError, §4.4).
func DivInt(a, b Int) Int {
	if a.big == nil && b.big == nil {
		return Int{small: a.small / b.small}
	}
	var d apd.Decimal
	_, _ = apdCtx.QuoInteger(&d, a.decimal(), b.decimal())
	return fromDecimal(&d)
}

func RemInt(a, b Int) Int {
	if a.big == nil && b.big == nil {
		return Int{small: a.small % b.small}
	}
	var d apd.Decimal
	_, _ = apdCtx.Rem(&d, a.decimal(), b.decimal())
	return fromDecimal(&d)
}

// CompareInt is a total order consistent with mathematical ordering (§4.4).
func CompareInt(a, b Int) int {
	if a.big == nil && b.big == nil {
		switch {
		case a.small < b.small:
			return -1
		case a.small > b.small:
			return 1
		default:
			return 0
		}
	}
	return a.decimal().Cmp(b.decimal())
}

// Float64 converts to a float64, used when promoting to Real (§4.4: Int op
// Real produces Real).
func (i Int) Float64() float64 {
	if i.big == nil {
		return float64(i.small)
	}
	f, _ := i.big.Float64()
	return f
}

// Real is SL's IEEE-754 double (§3.2, §4.4).
type Real struct{ Value float64 }

func NewReal(v float64) Real { return Real{Value: v} }

func (r Real) Class() *Class { return RealClass }
func (r Real) ToString(Dispatcher) (string, error) {
	return strconv.FormatFloat(r.Value, 'g', -1, 64), nil
}
func (r Real) Inspect(d Dispatcher) (string, error) { return r.ToString(d) }

// Equals follows IEEE-754 rules: NaN compares unequal to everything
// including itself (§4.4).
func (r Real) Equals(other Obj) bool {
	o, ok := other.(Real)
	if !ok {
		return false
	}
	return r.Value == o.Value
}
func (r Real) Hash() uint64 { return math.Float64bits(r.Value) }
