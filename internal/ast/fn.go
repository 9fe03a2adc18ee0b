package ast

import "toyc/internal/source"

// Param is a function parameter; its type is always Int (spec.md §3).
type Param struct {
	Name string
	Type Type
	Sp   source.Span
}

// FunctionDef exclusively owns its parameter list and body (spec.md §3).
type FunctionDef struct {
	Name       string
	ReturnType Type
	Params     []Param
	Body       *Block
	Sp         source.Span
}

func (n *FunctionDef) Accept(v Visitor) { v.VisitFunctionDef(n) }

// CompilationUnit exclusively owns an ordered sequence of function definitions.
type CompilationUnit struct {
	Functions []*FunctionDef
}

func (n *CompilationUnit) Accept(v Visitor) { v.VisitCompilationUnit(n) }
