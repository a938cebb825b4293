package eval_test

import (
	"context"
	"testing"
	"time"

	"github.com/sergeych/lyng/internal/builtins"
	"github.com/sergeych/lyng/internal/config"
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

func run(t *testing.T, src string) value.Obj {
	t.Helper()
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", src)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	v, err := e.Execute(context.Background(), script, root)
	if err != nil {
		t.Fatalf("Execute(%q): %v", src, err)
	}
	return v
}

func TestBreakExitsLoop(t *testing.T) {
	v := run(t, `var i = 0
while (true) {
	if (i == 3) { break }
	i = i + 1
}
i`)
	if s, _ := v.ToString(nil); s != "3" {
		t.Fatalf("i = %s, want 3", s)
	}
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	v := run(t, `var sum = 0
var i = 0
while (i < 5) {
	i = i + 1
	if (i == 3) { continue }
	sum = sum + i
}
sum`)
	if s, _ := v.ToString(nil); s != "12" {
		t.Fatalf("sum = %s, want 12 (1+2+4+5)", s)
	}
}

func TestLabeledBreak(t *testing.T) {
	v := run(t, `var hits = 0
outer: while (true) {
	var j = 0
	while (true) {
		if (j == 2) { break outer }
		hits = hits + 1
		j = j + 1
	}
}
hits`)
	if s, _ := v.ToString(nil); s != "2" {
		t.Fatalf("hits = %s, want 2", s)
	}
}

func TestClosureCapturesByReference(t *testing.T) {
	v := run(t, `var counter = 0
fun makeIncrementer() {
	return { -> counter = counter + 1; counter }
}
var inc = makeIncrementer()
inc()
inc()
inc()`)
	if s, _ := v.ToString(nil); s != "3" {
		t.Fatalf("counter = %s, want 3", s)
	}
}

func TestElvisOperatorFallsBackOnNull(t *testing.T) {
	v := run(t, `var x = null
x ?: 42`)
	if s, _ := v.ToString(nil); s != "42" {
		t.Fatalf("got %s, want 42", s)
	}
}

func TestUncaughtExceptionIsExecutionError(t *testing.T) {
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", `throw Exception("boom")`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = e.Execute(context.Background(), script, root)
	if err == nil {
		t.Fatal("expected an error for an uncaught exception")
	}
	execErr, ok := err.(*eval.ExecutionError)
	if !ok {
		t.Fatalf("error is %T, want *eval.ExecutionError", err)
	}
	if execErr.Exception.Message != "boom" {
		t.Errorf("message = %q, want %q", execErr.Exception.Message, "boom")
	}
}

func TestCatchByParentClassMatchesSubclass(t *testing.T) {
	v := run(t, `var caught = false
try {
	val xs = [1,2]
	xs[99]
} catch (e: Exception) {
	caught = true
}
caught`)
	if s, _ := v.ToString(nil); s != "true" {
		t.Fatalf("caught = %s, want true (IndexError should be caught as Exception)", s)
	}
}

func TestCancellationRaisesOnNextSuspensionPoint(t *testing.T) {
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", `var i = 0
while (true) {
	i = i + 1
}
i`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = e.Execute(ctx, script, root)
	if err == nil {
		t.Fatal("expected a cancellation error from the infinite loop")
	}
	execErr, ok := err.(*eval.ExecutionError)
	if !ok {
		t.Fatalf("error is %T, want *eval.ExecutionError", err)
	}
	if execErr.Exception.Class().Name != "Cancelled" {
		t.Errorf("class = %q, want %q", execErr.Exception.Class().Name, "Cancelled")
	}
}

func TestClassInheritanceOverridesMethod(t *testing.T) {
	v := run(t, `class Animal {
	fun speak() { return "..." }
}
class Dog : Animal {
	fun speak() { return "woof" }
}
val a = Animal()
val d = Dog()
a.speak() + "/" + d.speak()`)
	if s, _ := v.ToString(nil); s != ".../woof" {
		t.Fatalf("got %s, want .../woof", s)
	}
}

func TestClassInheritsParentMethodWhenNotOverridden(t *testing.T) {
	v := run(t, `class Animal {
	fun kind() { return "animal" }
}
class Dog : Animal {
	fun speak() { return "woof" }
}
val d = Dog()
d.kind() + "/" + d.speak()`)
	if s, _ := v.ToString(nil); s != "animal/woof" {
		t.Fatalf("got %s, want animal/woof", s)
	}
}

func TestOperatorOverloadPlusDispatchesToUserMethod(t *testing.T) {
	v := run(t, `class Vec {
	var x = 0
	var y = 0
	fun plus(other) {
		val r = Vec()
		r.x = this.x + other.x
		r.y = this.y + other.y
		return r
	}
}
val a = Vec()
a.x = 1
a.y = 2
val b = Vec()
b.x = 3
b.y = 4
val c = a + b
c.x + c.y`)
	if s, _ := v.ToString(nil); s != "10" {
		t.Fatalf("got %s, want 10 (4+6)", s)
	}
}

func TestCompareToOverloadDrivesOrdering(t *testing.T) {
	v := run(t, `class Box {
	var n = 0
	fun compareTo(other) { return this.n - other.n }
}
val a = Box()
a.n = 1
val b = Box()
b.n = 2
a < b`)
	if s, _ := v.ToString(nil); s != "true" {
		t.Fatalf("got %s, want true", s)
	}
}

func TestFinallyRunsOnNormalAndThrownPaths(t *testing.T) {
	v := run(t, `var log = ""
fun withFinally(shouldThrow) {
	try {
		if (shouldThrow) { throw Exception("boom") }
		log = log + "body"
	} catch (e: Exception) {
		log = log + "/catch"
	} finally {
		log = log + "/finally"
	}
}
withFinally(false)
withFinally(true)
log`)
	if s, _ := v.ToString(nil); s != "body/finally/catch/finally" {
		t.Fatalf("got %q, want %q", s, "body/finally/catch/finally")
	}
}

func TestFinallyRunsWhenLoopBreaksOutOfTry(t *testing.T) {
	v := run(t, `var log = ""
while (true) {
	try {
		log = log + "a"
		break
	} finally {
		log = log + "/f"
	}
}
log`)
	if s, _ := v.ToString(nil); s != "a/f" {
		t.Fatalf("got %q, want a/f (finally must run before break unwinds the loop)", s)
	}
}

func TestEnumMembersCarryNameAndOrdinal(t *testing.T) {
	v := run(t, `enum Color { Red, Green, Blue }
Color.values().size()`)
	if s, _ := v.ToString(nil); s != "3" {
		t.Fatalf("values().size() = %s, want 3", s)
	}

	v2 := run(t, `enum Color { Red, Green, Blue }
Green.name + "/" + Green.ordinal`)
	if s, _ := v2.ToString(nil); s != "Green/1" {
		t.Fatalf("got %q, want Green/1", s)
	}
}

func TestUserClassIteratorProtocolDrivesForIn(t *testing.T) {
	v := run(t, `class Countdown {
	var from = 0
	fun iterator() {
		val c = Cursor()
		c.remaining = this.from
		return c
	}
}
class Cursor {
	var remaining = 0
	fun hasNext() { return this.remaining > 0 }
	fun next() {
		val v = this.remaining
		this.remaining = this.remaining - 1
		return v
	}
}
val cd = Countdown()
cd.from = 3
var total = 0
for (n in cd) { total = total + n }
total`)
	if s, _ := v.ToString(nil); s != "6" {
		t.Fatalf("total = %s, want 6 (3+2+1)", s)
	}
}

func TestIfConditionMustBeBoolRaisesCastError(t *testing.T) {
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", `if (1) { "yes" }`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = e.Execute(context.Background(), script, root)
	if err == nil {
		t.Fatal("expected an error for a non-Bool if condition")
	}
	execErr, ok := err.(*eval.ExecutionError)
	if !ok {
		t.Fatalf("error is %T, want *eval.ExecutionError", err)
	}
	if execErr.Exception.Class().Name != "CastError" {
		t.Errorf("class = %q, want CastError", execErr.Exception.Class().Name)
	}
}

func TestWhileConditionMustBeBoolRaisesCastError(t *testing.T) {
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", `while ("not a bool") { }`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, err = e.Execute(context.Background(), script, root)
	if err == nil {
		t.Fatal("expected an error for a non-Bool while condition")
	}
	if _, ok := err.(*eval.ExecutionError); !ok {
		t.Fatalf("error is %T, want *eval.ExecutionError", err)
	}
}

func TestNaNComparisonsAreAlwaysFalse(t *testing.T) {
	src := `val nan = 0.0 / 0.0
(nan < nan) == false && (nan <= nan) == false && (nan > nan) == false && (nan >= nan) == false`
	v := run(t, src)
	if s, _ := v.ToString(nil); s != "true" {
		t.Fatalf("got %s, want true (every NaN ordering comparison must be false)", s)
	}
}

func TestIndependentClosuresSurviveScopePoolReuse(t *testing.T) {
	v := run(t, `fun makeCounter(start) {
	var n = start
	return { -> n = n + 1; n }
}
val a = makeCounter(0)
val b = makeCounter(100)
a()
a()
b()
b()
"" + a() + "/" + b()`)
	if s, _ := v.ToString(nil); s != "3/103" {
		t.Fatalf("got %q, want %q (each closure must keep its own captured frame across pool reuse)", s, "3/103")
	}
}

func TestPerfFlagsDoNotChangeLoopResult(t *testing.T) {
	src := `var s = 0
var i = 0
while (i < 200) {
	s = s + i
	i = i + 1
}
s`
	defFlags := config.Default()
	allOff := config.Flags{}

	runWith := func(flags config.Flags) string {
		e := eval.New(flags)
		root := value.NewRootScope()
		if err := builtins.Install(e, root, nil); err != nil {
			t.Fatalf("Install: %v", err)
		}
		script, err := eval.Compile("test", src)
		if err != nil {
			t.Fatalf("Compile: %v", err)
		}
		v, err := e.Execute(context.Background(), script, root)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		s, _ := v.ToString(nil)
		return s
	}

	a, b := runWith(defFlags), runWith(allOff)
	if a != b {
		t.Fatalf("flag-sensitive result: default=%q all-off=%q", a, b)
	}
}
