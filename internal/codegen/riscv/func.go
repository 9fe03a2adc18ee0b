package riscv

import "toyc/internal/ast"

func (g *Generator) VisitCompilationUnit(n *ast.CompilationUnit) {
	for _, fn := range n.Functions {
		fn.Accept(g)
	}
}

func (g *Generator) VisitFunctionDef(n *ast.FunctionDef) {
	g.currentFunc = n.Name
	g.symbols = make(map[string]symbol)

	g.frameSize = g.computeFrameSize(n.Body)

	g.emitLabel(n.Name)
	g.prologue(n.Name, g.frameSize)

	// Parameters are read from memory at fp+8, fp+12, ...; the prologue
	// never spills the incoming a0-a7 there, so those slots hold whatever
	// the caller left above its stack pointer (spec.md §9).
	paramOffset := 8
	for _, p := range n.Params {
		g.symbols[p.Name] = symbol{offset: paramOffset, isParam: true}
		paramOffset += 4
	}

	n.Body.Accept(g)

	if n.ReturnType == ast.Void {
		g.epilogue()
	}

	g.emitRaw("")
}
