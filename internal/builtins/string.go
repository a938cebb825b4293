package builtins

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/value"
)

var rootCollator = collate.New(language.Und)

// installString populates String's method table per §4.8:
// length/charAt/substring/split/replace/matches/format, plus the
// SPEC_FULL §4.8 supplement compareTo/normalize backed by
// golang.org/x/text/collate and golang.org/x/text/unicode/norm.
func installString(_ *eval.Evaluator) {
	c := value.StringClass

	method(c, "length", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewInt(int64(len([]rune(this.(value.String).Value)))), nil
	})
	method(c, "charAt", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		idx, ok := args[0].(value.Int)
		if !ok {
			return nil, errNotAnInt("charAt")
		}
		runes := []rune(this.(value.String).Value)
		i := normalizeStringIndex(idx.Int64(), len(runes))
		if i < 0 || i >= len(runes) {
			return nil, fmt.Errorf("charAt index %d out of range (length %d)", idx.Int64(), len(runes))
		}
		return value.Char{Value: runes[i]}, nil
	})
	method(c, "substring", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		from, ok1 := args[0].(value.Int)
		to, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("substring requires Int bounds")
		}
		runes := []rune(this.(value.String).Value)
		f := clampStringIndex(normalizeStringIndex(from.Int64(), len(runes)), len(runes))
		t := clampStringIndex(normalizeStringIndex(to.Int64(), len(runes)), len(runes))
		if f >= t {
			return value.NewString(""), nil
		}
		return value.NewString(string(runes[f:t])), nil
	})
	method(c, "split", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		sep, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("split")
		}
		parts := strings.Split(this.(value.String).Value, sep.Value)
		elems := make([]value.Obj, len(parts))
		for i, p := range parts {
			elems[i] = value.NewString(p)
		}
		return value.NewList(elems...), nil
	})
	method(c, "replace", 2, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		from, ok1 := args[0].(value.String)
		to, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return nil, errNotAString("replace")
		}
		return value.NewString(strings.ReplaceAll(this.(value.String).Value, from.Value, to.Value)), nil
	})
	method(c, "matches", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		re, ok := args[0].(*value.Regex)
		if !ok {
			return nil, fmt.Errorf("matches requires a Regex argument")
		}
		return value.Bool{Value: re.Matches(this.(value.String).Value)}, nil
	})
	method(c, "format", -1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		return value.NewString(formatString(this.(value.String).Value, args)), nil
	})
	method(c, "toUpper", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewString(strings.ToUpper(this.(value.String).Value)), nil
	})
	method(c, "toLower", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewString(strings.ToLower(this.(value.String).Value)), nil
	})
	method(c, "trim", 0, func(_ value.Dispatcher, this value.Obj, _ []value.Obj) (value.Obj, error) {
		return value.NewString(strings.TrimSpace(this.(value.String).Value)), nil
	})
	method(c, "contains", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		sub, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("contains")
		}
		return value.Bool{Value: strings.Contains(this.(value.String).Value, sub.Value)}, nil
	})
	method(c, "indexOf", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		sub, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("indexOf")
		}
		return value.NewInt(int64(strings.Index(this.(value.String).Value, sub.Value))), nil
	})

	// compareTo orders strings with a locale-aware collator rather than a
	// byte-wise comparison (§4.8 supplement), since SL source and string
	// data are UTF-8 and a faithful embeddable language needs text that
	// sorts the way a human reading it expects.
	method(c, "compareTo", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		other, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("compareTo")
		}
		return value.NewInt(int64(rootCollator.CompareString(this.(value.String).Value, other.Value))), nil
	})
	// normalize(form) exposes golang.org/x/text/unicode/norm's four forms
	// by name: "NFC", "NFD", "NFKC", "NFKD".
	method(c, "normalize", 1, func(_ value.Dispatcher, this value.Obj, args []value.Obj) (value.Obj, error) {
		form, ok := args[0].(value.String)
		if !ok {
			return nil, errNotAString("normalize")
		}
		f, err := normForm(form.Value)
		if err != nil {
			return nil, err
		}
		return value.NewString(f.String(this.(value.String).Value)), nil
	})
}

func normForm(name string) (norm.Form, error) {
	switch name {
	case "NFC":
		return norm.NFC, nil
	case "NFD":
		return norm.NFD, nil
	case "NFKC":
		return norm.NFKC, nil
	case "NFKD":
		return norm.NFKD, nil
	default:
		return norm.NFC, fmt.Errorf("unknown normalization form %q", name)
	}
}

func errNotAString(selector string) error {
	return fmt.Errorf("%s requires a String argument", selector)
}

func normalizeStringIndex(i int64, n int) int {
	if i < 0 {
		i += int64(n)
	}
	return int(i)
}

func clampStringIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// formatString implements `"{0} and {1}".format(a, b)`-style positional
// substitution, the simplest form that covers §4.8's `format` selector
// without pulling in a dedicated template engine.
func formatString(tmpl string, args []value.Obj) string {
	out := tmpl
	for i, a := range args {
		s, _ := a.Inspect(nil)
		if str, ok := a.(value.String); ok {
			s = str.Value
		}
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), s)
	}
	return out
}
