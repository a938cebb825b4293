package value

import "github.com/sergeych/lyng/internal/source"

// Pool is the per-thread (or per-execution, on single-threaded hosts) scope
// frame pool described in §4.6. It holds up to maxIdle reset *Scope
// instances; Borrow returns a recycled frame or allocates a new one, and
// Release scrubs a frame's external references before returning it, so a
// frame retained by an escaping closure is simply never released back to
// the pool (its storage then lives as an ordinary Go heap object, reclaimed
// by the garbage collector once the closure itself is unreachable).
//
// Grounded on the same free-list-over-sync.Pool idea the teacher uses for
// its primitive value pools (internal/interp/runtime/pool.go), generalized
// here from pooling by value-type to pooling by scope frame, which is what
// this spec's §4.6 calls for.
type Pool struct {
	idle    []*Scope
	maxIdle int
}

// NewPool creates a scope pool with the documented default capacity of 64
// idle frames (§4.6).
func NewPool() *Pool { return &Pool{maxIdle: 64} }

// Borrow returns a Scope ready for a new call, wired to parent/args/this
// (§4.6 "borrow(parent, args, pos, this)").
func (p *Pool) Borrow(parent *Scope, args Arguments, pos source.Pos, this Obj) *Scope {
	if n := len(p.idle); n > 0 {
		s := p.idle[n-1]
		p.idle = p.idle[:n-1]
		s.reset(parent, args, pos, this)
		return s
	}
	s := &Scope{}
	s.reset(parent, args, pos, this)
	return s
}

// Release scrubs s's external references and returns it to the pool if
// there is room. A frame a closure escaped into (s.Escaped, set by
// MarkEscaped when a Function/Method captured it as its Closure) is never
// recycled: handing it back out via Borrow would reset its Parent out from
// under the still-live closure, and could even make s its own Parent,
// hanging Resolve's walk forever. The caller must still stop using s after
// Release returns, escaped or not — an escaped frame simply becomes an
// ordinary Go heap object, reclaimed once the closure itself is unreachable.
func (p *Pool) Release(s *Scope) {
	if s.Escaped {
		return
	}
	if len(p.idle) >= p.maxIdle {
		return
	}
	s.Parent = nil
	s.Args = Arguments{}
	s.This = nil
	s.Signal = Signal{}
	s.names = s.names[:0]
	s.slots = s.slots[:0]
	p.idle = append(p.idle, s)
}
