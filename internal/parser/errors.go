package parser

import (
	"strings"

	"github.com/sergeych/lyng/internal/source"
)

// Error is a single syntax failure: an unexpected token, or a construct the
// grammar does not allow at this position.
type Error struct {
	Pos     source.Pos
	Message string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// ErrorList aggregates every syntax error collected while parsing a program,
// so ParseProgram can report them all through a single error value instead
// of stopping at the first one.
type ErrorList []*Error

func (el ErrorList) Error() string {
	parts := make([]string, len(el))
	for i, e := range el {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
