// Package diag collects compiler diagnostics: syntactic, import, and
// semantic errors, each anchored to the source position that caused them.
//
// Diagnostics are data, not Go errors that unwind a call stack: the type
// checker accumulates one per problem and keeps walking the rest of the
// statement list (spec §4.4), so a single run can report every independent
// error in a file instead of stopping at the first.
package diag

import (
	"fmt"
	"strings"
)

// Severity distinguishes fatal compile errors from advisory notes attached
// to them.
type Severity uint8

const (
	// Error rejects the file; code generation does not proceed for it.
	Error Severity = iota
	// Note adds context to a preceding Error (e.g. "first declared here").
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Position is a source-code location: file path plus 1-based line/column.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single compiler-reported problem.
type Diagnostic struct {
	Severity Severity
	Pos      Position
	Message  string
}

// String renders "<file>:<line>:<col> <message>" per spec §7.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s", d.Pos, d.Message)
}

// Bag accumulates diagnostics across a parse or type-check pass.
type Bag struct {
	items []Diagnostic
}

// Addf records a new Error diagnostic at pos.
func (b *Bag) Addf(pos Position, format string, args ...interface{}) {
	b.items = append(b.items, Diagnostic{
		Severity: Error,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Notef records a Note diagnostic at pos.
func (b *Bag) Notef(pos Position, format string, args ...interface{}) {
	b.items = append(b.items, Diagnostic{
		Severity: Note,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Empty reports whether no diagnostics were recorded.
func (b *Bag) Empty() bool { return len(b.items) == 0 }

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Items returns the accumulated diagnostics in the order they were added.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Error implements the error interface, rendering every diagnostic one per
// line, so a Bag can be returned directly as a Go error when a caller just
// wants to report and stop.
func (b *Bag) Error() string {
	lines := make([]string, len(b.items))
	for i, d := range b.items {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Merge appends another bag's diagnostics onto b, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
