package typecheck

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/symbol"
)

// scopeStack is the stack of frames mapping interned name → ValueType
// described in spec §4.4 "Scopes": the bottom frame is the module scope
// (functions and records register here), a new frame is pushed on entering
// a Block, a function body's parameter list, or a For's induction-variable
// scope, and popped on leaving it.
type scopeStack struct {
	frames []map[symbol.ID]ast.ValueType
}

func newScopeStack() *scopeStack {
	s := &scopeStack{}
	s.push() // module (global) scope
	return s
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, map[symbol.ID]ast.ValueType{})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopeStack) current() map[symbol.ID]ast.ValueType {
	return s.frames[len(s.frames)-1]
}

// lookup walks the stack from top to bottom and returns the first match,
// per spec §4.4's "A lookup walks the stack from top to bottom".
func (s *scopeStack) lookup(name symbol.ID) (ast.ValueType, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if ty, ok := s.frames[i][name]; ok {
			return ty, true
		}
	}
	return ast.Invalid, false
}

// declaredInCurrent reports whether name is already bound in the topmost
// frame only — used for the redefinition check, which is scoped to "the
// *current* frame" (spec §4.4 point 3), not the whole stack.
func (s *scopeStack) declaredInCurrent(name symbol.ID) bool {
	_, ok := s.current()[name]
	return ok
}

func (s *scopeStack) declare(name symbol.ID, ty ast.ValueType) {
	s.current()[name] = ty
}
