package sema

import "toyc/internal/ast"

// symbol is a declared name's entry in a scope: its type, its frame offset
// relative to fp, and whether it is a parameter.
//
// The offset recorded here for parameters is informational only — spec.md
// §4.5 has the code generator recompute parameter offsets from the calling
// convention (fp+8, fp+12, ...) independently, exactly as the reference
// implementation's analyzer and code generator keep two separate, unconnected
// offset assignments.
type symbol struct {
	name    string
	typ     ast.Type
	offset  int
	isParam bool
}

// scope is a stack of block-local symbol tables with shared offset counter,
// mirroring a lexical scope chain (spec.md §4.2).
type scope struct {
	stack  []map[string]symbol
	offset int
}

func newScope() *scope {
	s := &scope{}
	s.enter()
	return s
}

func (s *scope) enter() {
	s.stack = append(s.stack, make(map[string]symbol))
}

func (s *scope) exit() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

func (s *scope) resetOffset() { s.offset = 0 }

// declare adds name to the innermost scope. It reports false (without
// mutating anything) if name is already declared in that same scope —
// shadowing an outer scope's name is allowed.
func (s *scope) declare(name string, typ ast.Type, isParam bool) bool {
	top := s.stack[len(s.stack)-1]
	if _, exists := top[name]; exists {
		return false
	}
	off := s.offset
	if !isParam {
		off = s.offset - 4
	}
	top[name] = symbol{name: name, typ: typ, offset: off, isParam: isParam}
	if !isParam {
		s.offset -= 4
	}
	return true
}

// lookup searches from the innermost scope outward.
func (s *scope) lookup(name string) (symbol, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if sym, ok := s.stack[i][name]; ok {
			return sym, true
		}
	}
	return symbol{}, false
}
