package ast

import "toyc/internal/source"

// BinaryOp enumerates the binary operators of spec.md §3.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And
	Or
)

// UnaryOp enumerates the unary operators of spec.md §3.
type UnaryOp int

const (
	Plus UnaryOp = iota
	Neg
	Not
)

// Expr is the closed variant set of expressions. Every implementation also
// satisfies Accept so that visitors can double-dispatch over it.
type Expr interface {
	exprNode()
	Span() source.Span
	Accept(v Visitor)
}

type Number struct {
	Value int32
	Sp    source.Span
}

type Ident struct {
	Name string
	Sp   source.Span
}

type Unary struct {
	Op      UnaryOp
	Operand Expr
	Sp      source.Span
}

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Sp    source.Span
}

// Call is the only expression whose static type is not always Int: a call to a
// void-returning function has type Void. ReturnType is set by the analyzer
// (spec.md §4.3 step 5), not by the parser.
type Call struct {
	Name       string
	Args       []Expr
	ReturnType Type
	Sp         source.Span
}

func (*Number) exprNode() {}
func (*Ident) exprNode()  {}
func (*Unary) exprNode()  {}
func (*Binary) exprNode() {}
func (*Call) exprNode()   {}

func (n *Number) Span() source.Span { return n.Sp }
func (n *Ident) Span() source.Span  { return n.Sp }
func (n *Unary) Span() source.Span  { return n.Sp }
func (n *Binary) Span() source.Span { return n.Sp }
func (n *Call) Span() source.Span   { return n.Sp }

func (n *Number) Accept(v Visitor) { v.VisitNumber(n) }
func (n *Ident) Accept(v Visitor)  { v.VisitIdent(n) }
func (n *Unary) Accept(v Visitor)  { v.VisitUnary(n) }
func (n *Binary) Accept(v Visitor) { v.VisitBinary(n) }
func (n *Call) Accept(v Visitor)   { v.VisitCall(n) }
