package lyng_test

import (
	"context"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sergeych/lyng/pkg/lyng"
)

// goldenCase is one of the concrete end-to-end scenarios from §8: a
// program paired with the inspected form of its terminal value.
type goldenCase struct {
	name    string
	program string
}

var goldenCases = []goldenCase{
	{"accumulate_while_loop", `var s=0; var i=0; while(i<1000){ s=s+i; i=i+1 }; s`},
	{"method_call_in_loop", `class C { var x=0; fun inc(){ this.x=this.x+1 } }; var c=C(); var i=0; while(i<1000){ c.inc(); i=i+1 }; c.x`},
	{"catch_user_exception", `try { throw Exception("x") } catch(e: Exception){ e.message }`},
	{"list_sort", `val xs=[3,1,2]; xs.sort(); xs`},
	{"string_interpolation", "\"hello ${1+2}\""},
	{"map_insertion_order", `val m={"a":1,"b":2}; m["c"]=3; m.keys().toList()`},
	{"recursive_factorial", `fun f(x){ if(x==0) return 1; return x*f(x-1) }; f(5)`},
}

func TestGoldenScenarios(t *testing.T) {
	for _, gc := range goldenCases {
		t.Run(gc.name, func(t *testing.T) {
			engine, err := lyng.New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			result, err := engine.Eval(context.Background(), gc.program)
			if err != nil {
				t.Fatalf("Eval(%q): %v", gc.program, err)
			}
			inspected, err := result.Value.Inspect(nil)
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			snaps.MatchSnapshot(t, gc.name, inspected)
		})
	}
}

// TestPerfFlagsDoNotChangeObservables is §8 invariant 2: toggling any
// performance flag must not change the observable result.
func TestPerfFlagsDoNotChangeObservables(t *testing.T) {
	allOff := struct{}{}
	_ = allOff // flag struct is zero-value == every flag off
	for _, gc := range goldenCases {
		t.Run(gc.name, func(t *testing.T) {
			def, err := lyng.New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defResult, err := def.Eval(context.Background(), gc.program)
			if err != nil {
				t.Fatalf("Eval with defaults: %v", err)
			}

			noPool, err := lyng.New(lyng.WithPerfFlags(lyng.NoOptFlags()))
			if err != nil {
				t.Fatalf("New (no opt): %v", err)
			}
			noPoolResult, err := noPool.Eval(context.Background(), gc.program)
			if err != nil {
				t.Fatalf("Eval with flags off: %v", err)
			}

			defStr, _ := defResult.Value.ToString(nil)
			noPoolStr, _ := noPoolResult.Value.ToString(nil)
			if defStr != noPoolStr {
				t.Fatalf("flag-sensitive result: default=%q flags-off=%q", defStr, noPoolStr)
			}
		})
	}
}
