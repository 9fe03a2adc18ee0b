package riscv

import (
	"fmt"

	"toyc/internal/ast"
)

func (g *Generator) VisitNumber(n *ast.Number) {
	reg := g.reg.allocateTemp()
	g.loadImmediate(n.Value, reg)
}

func (g *Generator) VisitIdent(n *ast.Ident) {
	sym, ok := g.symbols[n.Name]
	if !ok {
		return
	}
	reg := g.reg.allocateTemp()
	g.emit(fmt.Sprintf("lw %s, %d(fp)", reg, sym.offset))
}

// VisitBinary lowers a binary expression. Like the reference implementation,
// it assumes the left operand's value always lands in t0 and the right
// operand's in t1 — true only because every leaf (Number, Ident, Call)
// allocates temporaries in increasing order starting from a clean register
// file. A binary expression nested as an operand of another binary
// expression can violate that assumption and read stale values; this is a
// known, deliberately preserved limitation (spec.md §9), not a Go-specific
// bug.
//
// && and || are NOT short-circuit: both operands are always evaluated before
// either branch runs (spec.md §9).
func (g *Generator) VisitBinary(n *ast.Binary) {
	n.Left.Accept(g)
	leftReg := "t0"

	n.Right.Accept(g)
	rightReg := "t1"

	resultReg := g.reg.allocateTemp()

	switch n.Op {
	case ast.Add:
		g.emit("add " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Sub:
		g.emit("sub " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Mul:
		g.emit("mul " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Div:
		g.emit("div " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Mod:
		g.emit("rem " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Lt:
		g.emit("slt " + resultReg + ", " + leftReg + ", " + rightReg)
	case ast.Le:
		g.emit("slt " + resultReg + ", " + rightReg + ", " + leftReg)
		g.emit("xori " + resultReg + ", " + resultReg + ", 1")
	case ast.Gt:
		g.emit("slt " + resultReg + ", " + rightReg + ", " + leftReg)
	case ast.Ge:
		g.emit("slt " + resultReg + ", " + leftReg + ", " + rightReg)
		g.emit("xori " + resultReg + ", " + resultReg + ", 1")
	case ast.Eq:
		g.emit("sub " + resultReg + ", " + leftReg + ", " + rightReg)
		g.emit("seqz " + resultReg + ", " + resultReg)
	case ast.Ne:
		g.emit("sub " + resultReg + ", " + leftReg + ", " + rightReg)
		g.emit("snez " + resultReg + ", " + resultReg)
	case ast.And:
		falseLabel := g.newLabel("and_false")
		endLabel := g.newLabel("and_end")
		g.emit("beqz " + leftReg + ", " + falseLabel)
		g.emit("beqz " + rightReg + ", " + falseLabel)
		g.loadImmediate(1, resultReg)
		g.emit("j " + endLabel)
		g.emitLabel(falseLabel)
		g.loadImmediate(0, resultReg)
		g.emitLabel(endLabel)
	case ast.Or:
		trueLabel := g.newLabel("or_true")
		endLabel := g.newLabel("or_end")
		g.emit("bnez " + leftReg + ", " + trueLabel)
		g.emit("bnez " + rightReg + ", " + trueLabel)
		g.loadImmediate(0, resultReg)
		g.emit("j " + endLabel)
		g.emitLabel(trueLabel)
		g.loadImmediate(1, resultReg)
		g.emitLabel(endLabel)
	}

	g.reg.release(leftReg)
	g.reg.release(rightReg)
}

func (g *Generator) VisitUnary(n *ast.Unary) {
	n.Operand.Accept(g)
	operandReg := "t0"
	resultReg := g.reg.allocateTemp()

	switch n.Op {
	case ast.Plus:
		g.emit("mv " + resultReg + ", " + operandReg)
	case ast.Neg:
		g.emit("sub " + resultReg + ", zero, " + operandReg)
	case ast.Not:
		g.emit("seqz " + resultReg + ", " + operandReg)
	}

	g.reg.release(operandReg)
}

// VisitCall unconditionally saves and restores all 7 caller-saved
// temporaries around the call, even when fewer are actually live — the
// reference implementation has no liveness analysis either (spec.md §9).
// Up to the first 8 arguments go in a0-a7; ToyC functions never have more
// than 8 parameters in practice, and this implementation does not lower a
// stack-passed tail beyond that, matching the reference.
func (g *Generator) VisitCall(n *ast.Call) {
	g.saveRegisters(tempRegs[:])

	for i, arg := range n.Args {
		if i >= 8 {
			break
		}
		arg.Accept(g)
		g.emit(fmt.Sprintf("mv a%d, t0", i))
	}

	g.emit("call " + n.Name)

	g.restoreRegisters(tempRegs[:])

	if n.ReturnType == ast.Int {
		resultReg := g.reg.allocateTemp()
		g.emit("mv " + resultReg + ", a0")
	}
}

func (g *Generator) saveRegisters(regs []string) {
	for _, r := range regs {
		g.emit("addi sp, sp, -4")
		g.emit("sw " + r + ", 0(sp)")
	}
}

func (g *Generator) restoreRegisters(regs []string) {
	for i := len(regs) - 1; i >= 0; i-- {
		g.emit("lw " + regs[i] + ", 0(sp)")
		g.emit("addi sp, sp, 4")
	}
}
