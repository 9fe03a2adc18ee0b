package riscv

import (
	"fmt"

	"toyc/internal/ast"
)

func (g *Generator) VisitBlock(n *ast.Block) {
	for _, stmt := range n.Stmts {
		stmt.Accept(g)
	}
}

func (g *Generator) VisitVarDecl(n *ast.VarDecl) {
	if n.Init == nil {
		return
	}
	n.Init.Accept(g)
	valueReg := "t0" // the result of the just-evaluated expression

	if sym, ok := g.symbols[n.Name]; ok {
		g.emit(fmt.Sprintf("sw %s, %d(fp)", valueReg, sym.offset))
	}
	g.reg.release(valueReg)
}

func (g *Generator) VisitAssign(n *ast.Assign) {
	n.Value.Accept(g)
	valueReg := "t0"

	if sym, ok := g.symbols[n.Name]; ok {
		g.emit(fmt.Sprintf("sw %s, %d(fp)", valueReg, sym.offset))
	}
	g.reg.release(valueReg)
}

func (g *Generator) VisitIf(n *ast.If) {
	elseLabel := g.newLabel("if_else")
	endLabel := g.newLabel("if_end")

	n.Cond.Accept(g)
	condReg := "t0"

	target := endLabel
	if n.Else != nil {
		target = elseLabel
	}
	g.emit("beqz " + condReg + ", " + target)
	g.reg.release(condReg)

	n.Then.Accept(g)

	if n.Else != nil {
		g.emit("j " + endLabel)
		g.emitLabel(elseLabel)
		n.Else.Accept(g)
	}

	g.emitLabel(endLabel)
}

func (g *Generator) VisitWhile(n *ast.While) {
	loopLabel := g.newLabel("while_loop")
	endLabel := g.newLabel("while_end")

	g.breakLabels = append(g.breakLabels, endLabel)
	g.continueLabels = append(g.continueLabels, loopLabel)

	g.emitLabel(loopLabel)

	n.Cond.Accept(g)
	condReg := "t0"
	g.emit("beqz " + condReg + ", " + endLabel)
	g.reg.release(condReg)

	n.Body.Accept(g)

	g.emit("j " + loopLabel)
	g.emitLabel(endLabel)

	g.breakLabels = g.breakLabels[:len(g.breakLabels)-1]
	g.continueLabels = g.continueLabels[:len(g.continueLabels)-1]
}

func (g *Generator) VisitBreak(n *ast.Break) {
	if len(g.breakLabels) > 0 {
		g.emit("j " + g.breakLabels[len(g.breakLabels)-1])
	}
}

func (g *Generator) VisitContinue(n *ast.Continue) {
	if len(g.continueLabels) > 0 {
		g.emit("j " + g.continueLabels[len(g.continueLabels)-1])
	}
}

func (g *Generator) VisitReturn(n *ast.Return) {
	if n.Value != nil {
		n.Value.Accept(g)
		g.emit("mv a0, t0")
	}
	g.epilogue()
}

func (g *Generator) VisitExprStmt(n *ast.ExprStmt) {
	if n.Expr != nil {
		n.Expr.Accept(g)
	}
	// Every temporary allocated while evaluating a top-level expression
	// statement is dead once it ends; releasing all of them in one shot
	// is simpler than tracking a precise liveness set (spec.md §9).
	g.reg.releaseAllTemp()
}
