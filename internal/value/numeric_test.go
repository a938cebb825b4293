package value

import (
	"math"
	"testing"
)

func TestAddIntStaysSmall(t *testing.T) {
	r := AddInt(NewInt(2), NewInt(3))
	if r.IsBig() {
		t.Fatal("2+3 should not promote to big")
	}
	if r.Int64() != 5 {
		t.Fatalf("got %d, want 5", r.Int64())
	}
}

func TestAddIntPromotesOnOverflow(t *testing.T) {
	r := AddInt(NewInt(math.MaxInt64), NewInt(1))
	if !r.IsBig() {
		t.Fatal("MaxInt64+1 should promote to big")
	}
	if r.Class() != IntClass {
		t.Fatal("a promoted Int must keep IntClass (§4.4: only the storage differs)")
	}
}

func TestMulIntPromotesOnOverflow(t *testing.T) {
	big := NewInt(math.MaxInt64 / 2)
	r := MulInt(big, NewInt(4))
	if !r.IsBig() {
		t.Fatal("expected overflow promotion")
	}
}

func TestMulIntPromotesOnMinInt64TimesNegOne(t *testing.T) {
	r := MulInt(NewInt(math.MinInt64), NewInt(-1))
	if !r.IsBig() {
		t.Fatal("MinInt64*-1 overflows int64 and must promote to big, not wrap back to MinInt64")
	}
}

func TestDivIntTruncatesTowardZero(t *testing.T) {
	r := DivInt(NewInt(-7), NewInt(2))
	if r.Int64() != -3 {
		t.Fatalf("-7/2 = %d, want -3", r.Int64())
	}
}

func TestRemInt(t *testing.T) {
	r := RemInt(NewInt(-7), NewInt(2))
	if r.Int64() != -1 {
		t.Fatalf("-7%%2 = %d, want -1", r.Int64())
	}
}

func TestCompareInt(t *testing.T) {
	if CompareInt(NewInt(1), NewInt(2)) >= 0 {
		t.Error("1 should compare less than 2")
	}
	if CompareInt(NewInt(2), NewInt(2)) != 0 {
		t.Error("2 should compare equal to 2")
	}
	big := AddInt(NewInt(math.MaxInt64), NewInt(1))
	if CompareInt(big, NewInt(0)) <= 0 {
		t.Error("a promoted positive Int should compare greater than 0")
	}
}

func TestIntEquals(t *testing.T) {
	if !NewInt(5).Equals(NewInt(5)) {
		t.Error("5 should equal 5")
	}
	if NewInt(5).Equals(NewReal(5)) {
		t.Error("Int(5) should not equal Real(5) by Equals (distinct classes)")
	}
}

func TestRealToString(t *testing.T) {
	s, _ := NewReal(1.5).ToString(nil)
	if s != "1.5" {
		t.Errorf("got %q, want %q", s, "1.5")
	}
}
