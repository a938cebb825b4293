// Package source holds the immutable source buffer and position bookkeeping
// shared by the lexer, parser, evaluator and diagnostics.
package source

import (
	"strconv"

	"github.com/google/uuid"
)

// Source is an immutable UTF-8 source buffer plus a human-readable label.
// It is shared by reference across every token and AST node produced from
// it, and never mutated after construction.
type Source struct {
	id   uuid.UUID
	Name string
	Text string
}

// New wraps text under the given display name (typically a file path, or
// "<eval>"/"<repl>" for inline sources) into a Source.
func New(name, text string) *Source {
	return &Source{id: uuid.New(), Name: name, Text: text}
}

// ID returns a stable identifier for this compiled unit, distinct for every
// Source made by New; a nil *Source reports uuid.Nil.
func (s *Source) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

// Pos is a position within a Source: a byte offset plus its 1-based line
// and column (column counted in runes, matching UTF-8 source text).
type Pos struct {
	Source *Source
	Offset int
	Line   int
	Column int
}

// String renders "name:line:col", the convention used throughout
// diagnostics (LexError, ParseError, stack frames).
func (p Pos) String() string {
	name := "<unknown>"
	if p.Source != nil {
		name = p.Source.Name
	}
	return name + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
