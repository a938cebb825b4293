package value

import (
	"regexp"
	"sync"
)

// Regex wraps a compiled pattern (§3.2, §4.8). Compilation is cached by
// (pattern, flags) in a bounded concurrent map (§5), safe for concurrent
// read and single-writer insertion per key; the cache is a pure performance
// optimisation — Compile behaves identically with it disabled (§4.6
// `regex_cache`, §9 "Regex compilation").
type Regex struct {
	Pattern string
	Flags   string
	re      *regexp.Regexp
}

type regexCacheEntry struct {
	re  *regexp.Regexp
	err error
}

var regexCache sync.Map // map[regexCacheKey]*regexCacheEntry

type regexCacheKey struct{ pattern, flags string }

const regexCacheMax = 512

var regexCacheSize int64 // approximate; bounds insertion, not a hard cap under races

// Compile compiles pattern with the given flags ("i" case-insensitive, "m"
// multiline, "s" dot-matches-newline — translated to Go's inline (?ims)
// syntax), consulting the shared cache when useCache is true.
func Compile(pattern, flags string, useCache bool) (*Regex, error) {
	key := regexCacheKey{pattern, flags}
	if useCache {
		if v, ok := regexCache.Load(key); ok {
			e := v.(*regexCacheEntry)
			if e.err != nil {
				return nil, e.err
			}
			return &Regex{Pattern: pattern, Flags: flags, re: e.re}, nil
		}
	}

	goPattern := pattern
	if flags != "" {
		goPattern = "(?" + flags + ")" + pattern
	}
	re, err := regexp.Compile(goPattern)

	if useCache && regexCacheSize < regexCacheMax {
		regexCache.LoadOrStore(key, &regexCacheEntry{re: re, err: err})
		regexCacheSize++
	}

	if err != nil {
		return nil, err
	}
	return &Regex{Pattern: pattern, Flags: flags, re: re}, nil
}

func (r *Regex) Class() *Class { return RegexClass }

func (r *Regex) ToString(Dispatcher) (string, error) { return "/" + r.Pattern + "/" + r.Flags, nil }
func (r *Regex) Inspect(d Dispatcher) (string, error) { return r.ToString(d) }

func (r *Regex) Equals(other Obj) bool {
	o, ok := other.(*Regex)
	return ok && o.Pattern == r.Pattern && o.Flags == r.Flags
}

func (r *Regex) Matches(s string) bool        { return r.re.MatchString(s) }
func (r *Regex) Find(s string) (string, bool) {
	m := r.re.FindString(s)
	return m, m != "" || r.re.MatchString(s)
}
func (r *Regex) FindAll(s string) []string    { return r.re.FindAllString(s, -1) }
func (r *Regex) Replace(s, repl string) string {
	return r.re.ReplaceAllString(s, repl)
}
