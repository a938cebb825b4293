package builtins_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sergeych/lyng/internal/builtins"
	"github.com/sergeych/lyng/internal/config"
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

func evalScript(t *testing.T, src string) (value.Obj, string) {
	t.Helper()
	e := eval.New(config.Default())
	root := value.NewRootScope()
	var out bytes.Buffer
	if err := builtins.Install(e, root, &out); err != nil {
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
	return v, out.String()
}

func expect(t *testing.T, src, want string) {
	t.Helper()
	v, _ := evalScript(t, src)
	got, err := v.ToString(nil)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if got != want {
		t.Errorf("%q => %q, want %q", src, got, want)
	}
}

func TestStringMethods(t *testing.T) {
	expect(t, `"hello".length()`, "5")
	expect(t, `"hello".charAt(1)`, "e")
	expect(t, `"hello world".substring(0, 5)`, "hello")
	expect(t, `"a,b,c".split(",").get(1)`, "b")
	expect(t, `"hello".replace("l", "L")`, "heLLo")
	expect(t, `"hello".toUpper()`, "HELLO")
	expect(t, `"HELLO".toLower()`, "hello")
	expect(t, `"  hi  ".trim()`, "hi")
	expect(t, `"hello".contains("ell")`, "true")
	expect(t, `"hello".indexOf("l")`, "2")
}

func TestStringFormat(t *testing.T) {
	expect(t, `"{0} and {1}".format("a", "b")`, "a and b")
}

func TestStringCompareToOrdering(t *testing.T) {
	v, _ := evalScript(t, `"apple".compareTo("banana")`)
	i, ok := v.(value.Int)
	if !ok {
		t.Fatalf("compareTo returned %T, want Int", v)
	}
	if i.Int64() >= 0 {
		t.Errorf("\"apple\".compareTo(\"banana\") = %d, want < 0", i.Int64())
	}
}

func TestStringNormalize(t *testing.T) {
	expect(t, `"abc".normalize("NFC")`, "abc")
}

func TestListMethods(t *testing.T) {
	expect(t, `val xs=[3,1,2]; xs.sort(); xs.get(0)`, "1")
	expect(t, `[1,2,3].toList().get(2)`, "3")
	expect(t, `val xs=[1,2]; xs.set(0, 9); xs.get(0)`, "9")
	expect(t, `[1,2,3].slice(1,3).get(0)`, "2")
}

func TestNaturalSortOrdering(t *testing.T) {
	v, _ := evalScript(t, `val xs=["item10","item2","item1"]; xs.sort(); xs`)
	lst, ok := v.(*value.List)
	if !ok {
		t.Fatalf("result is %T, want *value.List", v)
	}
	want := []string{"item1", "item2", "item10"}
	if lst.Len() != len(want) {
		t.Fatalf("got %d elements, want %d", lst.Len(), len(want))
	}
	for i, w := range want {
		el, _ := lst.Get(int64(i))
		s, ok := el.(value.String)
		if !ok || s.Value != w {
			t.Errorf("xs[%d] = %v, want %q", i, el, w)
		}
	}
}

func TestMapMethods(t *testing.T) {
	expect(t, `val m={"a":1,"b":2}; m.get("a")`, "1")
	expect(t, `val m={"a":1}; m.set("b", 2); m.size()`, "2")
	expect(t, `val m={"a":1}; m.containsKey("a")`, "true")
	expect(t, `val m={"a":1}; m.remove("a"); m.containsKey("a")`, "false")
}

func TestSetMethods(t *testing.T) {
	expect(t, `val s = Set(); s.add(1); s.add(1); s.add(2); s.size()`, "2")
	expect(t, `val s = Set(); s.add(1); s.contains(1)`, "true")
}

func TestRangeToList(t *testing.T) {
	v, _ := evalScript(t, `(1..3).toList()`)
	lst, ok := v.(*value.List)
	if !ok {
		t.Fatalf("result is %T, want *value.List", v)
	}
	if lst.Len() != 3 {
		t.Fatalf("got %d elements, want 3", lst.Len())
	}
}

func TestRegexMatches(t *testing.T) {
	expect(t, `"hello123".matches(/[a-z]+[0-9]+/)`, "true")
	expect(t, `"hello".matches(/[0-9]+/)`, "false")
}

func TestAssertPassesSilently(t *testing.T) {
	evalScript(t, `assert(true)`)
}

func TestAssertFailureThrows(t *testing.T) {
	e := eval.New(config.Default())
	root := value.NewRootScope()
	if err := builtins.Install(e, root, nil); err != nil {
		t.Fatalf("Install: %v", err)
	}
	script, err := eval.Compile("test", `assert(false)`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := e.Execute(context.Background(), script, root); err == nil {
		t.Fatal("expected assert(false) to raise an error")
	}
}

func TestPrintlnWritesToProvidedWriter(t *testing.T) {
	_, out := evalScript(t, `println("hi")`)
	if out != "hi\n" {
		t.Fatalf("output = %q, want %q", out, "hi\n")
	}
}

func TestTypeOf(t *testing.T) {
	expect(t, `typeOf(1)`, "Int")
	expect(t, `typeOf("x")`, "String")
}

func TestExceptionMessageMethod(t *testing.T) {
	expect(t, `try { throw Exception("boom") } catch (e: Exception) { e.message }`, "boom")
}

func TestExceptionSubclassInheritsMessageMethod(t *testing.T) {
	expect(t, `try {
	val xs=[1]
	xs[50]
} catch (e: Exception) {
	e.message
}`, "index 50 out of range (size 1)")
}
