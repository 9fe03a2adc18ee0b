// Package sema implements the two-pass semantic analyzer of spec.md §4.3:
// pass A collects function signatures and checks for a well-formed main,
// pass B walks each function body verifying scoping, call arity, loop
// context, and return discipline.
package sema

import (
	"fmt"

	"toyc/internal/ast"
)

// FunctionInfo is a function's collected signature, keyed by name.
type FunctionInfo struct {
	Name       string
	ReturnType ast.Type
	ParamTypes []ast.Type
}

// Analyzer walks a CompilationUnit and records every semantic error it finds.
// It implements ast.Visitor directly, the same double-dispatch contract the
// code generator uses.
type Analyzer struct {
	functions map[string]FunctionInfo
	sc        *scope
	errors    []string

	currentFunction string
	loopDepth       int
	hasReturn       bool
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{functions: make(map[string]FunctionInfo)}
}

// Errors returns every error collected by the most recent Analyze call, in
// the order they were discovered.
func (a *Analyzer) Errors() []string { return a.errors }

func (a *Analyzer) addError(format string, args ...any) {
	a.errors = append(a.errors, fmt.Sprintf(format, args...))
}

// Analyze runs both passes over unit and reports whether it is well-formed.
func (a *Analyzer) Analyze(unit *ast.CompilationUnit) bool {
	a.errors = nil
	a.functions = make(map[string]FunctionInfo)
	a.sc = newScope()

	for _, fn := range unit.Functions {
		if _, exists := a.functions[fn.Name]; exists {
			a.addError("Function '%s' is already declared", fn.Name)
			continue
		}
		paramTypes := make([]ast.Type, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
		}
		a.functions[fn.Name] = FunctionInfo{Name: fn.Name, ReturnType: fn.ReturnType, ParamTypes: paramTypes}
	}

	if !a.hasValidMain() {
		a.addError("Missing main function with signature: int main()")
	}

	unit.Accept(a)

	return len(a.errors) == 0
}

func (a *Analyzer) hasValidMain() bool {
	main, ok := a.functions["main"]
	return ok && main.ReturnType == ast.Int && len(main.ParamTypes) == 0
}

func (a *Analyzer) VisitCompilationUnit(n *ast.CompilationUnit) {
	for _, fn := range n.Functions {
		fn.Accept(a)
	}
}

func (a *Analyzer) VisitFunctionDef(n *ast.FunctionDef) {
	a.currentFunction = n.Name
	a.hasReturn = false

	a.sc.enter()
	a.sc.resetOffset()

	for _, p := range n.Params {
		if !a.sc.declare(p.Name, p.Type, true) {
			a.addError("Parameter '%s' is already declared", p.Name)
		}
	}

	n.Body.Accept(a)

	if n.ReturnType == ast.Int && !a.hasReturn {
		a.addError("Function '%s' must return a value", n.Name)
	}

	a.sc.exit()
}

func (a *Analyzer) VisitBlock(n *ast.Block) {
	a.sc.enter()
	for _, stmt := range n.Stmts {
		stmt.Accept(a)
	}
	a.sc.exit()
}

// VisitVarDecl declares the name before visiting the initializer, matching
// spec.md §9's resolved open question: `int x = x;` sees the new x, not an
// outer one of the same name.
func (a *Analyzer) VisitVarDecl(n *ast.VarDecl) {
	if !a.sc.declare(n.Name, ast.Int, false) {
		a.addError("Variable '%s' is already declared in this scope", n.Name)
		return
	}
	if n.Init != nil {
		n.Init.Accept(a)
	}
}

func (a *Analyzer) VisitAssign(n *ast.Assign) {
	if _, ok := a.sc.lookup(n.Name); !ok {
		a.addError("Undefined variable '%s'", n.Name)
		return
	}
	n.Value.Accept(a)
}

func (a *Analyzer) VisitIdent(n *ast.Ident) {
	if _, ok := a.sc.lookup(n.Name); !ok {
		a.addError("Undefined variable '%s'", n.Name)
	}
}

func (a *Analyzer) VisitCall(n *ast.Call) {
	info, ok := a.functions[n.Name]
	if !ok {
		a.addError("Undefined function '%s'", n.Name)
		return
	}

	if len(n.Args) != len(info.ParamTypes) {
		a.addError("Function '%s' expects %d arguments, got %d", n.Name, len(info.ParamTypes), len(n.Args))
		return
	}

	for _, arg := range n.Args {
		arg.Accept(a)
	}

	n.ReturnType = info.ReturnType
}

func (a *Analyzer) VisitBinary(n *ast.Binary) {
	n.Left.Accept(a)
	n.Right.Accept(a)
}

func (a *Analyzer) VisitUnary(n *ast.Unary) {
	n.Operand.Accept(a)
}

func (a *Analyzer) VisitNumber(n *ast.Number) {}

func (a *Analyzer) VisitIf(n *ast.If) {
	n.Cond.Accept(a)
	n.Then.Accept(a)
	if n.Else != nil {
		n.Else.Accept(a)
	}
}

func (a *Analyzer) VisitWhile(n *ast.While) {
	n.Cond.Accept(a)
	a.loopDepth++
	n.Body.Accept(a)
	a.loopDepth--
}

func (a *Analyzer) VisitBreak(n *ast.Break) {
	if a.loopDepth == 0 {
		a.addError("break statement not within a loop")
	}
}

func (a *Analyzer) VisitContinue(n *ast.Continue) {
	if a.loopDepth == 0 {
		a.addError("continue statement not within a loop")
	}
}

func (a *Analyzer) VisitReturn(n *ast.Return) {
	a.hasReturn = true

	if info, ok := a.functions[a.currentFunction]; ok {
		if info.ReturnType == ast.Void && n.Value != nil {
			a.addError("void function should not return a value")
		} else if info.ReturnType == ast.Int && n.Value == nil {
			a.addError("non-void function must return a value")
		}
	}

	if n.Value != nil {
		n.Value.Accept(a)
	}
}

func (a *Analyzer) VisitExprStmt(n *ast.ExprStmt) {
	if n.Expr != nil {
		n.Expr.Accept(a)
	}
}
