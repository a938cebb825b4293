// Package diag formats compile-time and runtime errors with source
// context, and dumps ASTs/values for the --dump-ast/--trace CLI flags.
// The caret-pointing source formatter is grounded on go-dws's
// internal/errors package; the structured dump on github.com/kr/pretty.
package diag

import (
	"fmt"
	"strings"

	"github.com/sergeych/lyng/internal/source"
)

// SourceError pairs a message with the position it occurred at, and knows
// how to render itself with a line of source context and a caret, the
// same shape go-dws's CompilerError.Format produces.
type SourceError struct {
	Message string
	Pos     source.Pos
}

func (e *SourceError) Error() string { return e.Format(false) }

// Format renders the error as "name:line:col: message" followed by the
// offending source line and a caret under the column. color adds ANSI
// escapes for terminal output (the CLI's run command always passes true).
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(e.Pos.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	line := sourceLine(e.Pos)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString("\n")
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}
	return sb.String()
}

func sourceLine(p source.Pos) string {
	if p.Source == nil || p.Line < 1 {
		return ""
	}
	lines := strings.Split(p.Source.Text, "\n")
	if p.Line > len(lines) {
		return ""
	}
	return lines[p.Line-1]
}
