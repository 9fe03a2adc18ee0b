package sema_test

import (
	"strings"
	"testing"

	"toyc/internal/ast"
	"toyc/internal/diag"
	"toyc/internal/lexer"
	"toyc/internal/parser"
	"toyc/internal/sema"
	"toyc/internal/source"
)

func mustParse(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tc", []byte(src))
	bag := diag.NewBag(100)
	lx := lexer.New(id, fs.Get(id).Content, bag)
	ps := parser.New(id, lx.Tokenize(), bag)
	unit := ps.Parse()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, bag.Items())
	}
	return unit
}

func analyze(t *testing.T, src string) (bool, []string) {
	t.Helper()
	unit := mustParse(t, src)
	a := sema.NewAnalyzer()
	ok := a.Analyze(unit)
	return ok, a.Errors()
}

func expectError(t *testing.T, src, substr string) {
	t.Helper()
	ok, errs := analyze(t, src)
	if ok {
		t.Fatalf("expected analysis to fail for %q", src)
	}
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got %v", substr, errs)
}

func TestValidProgramAnalyzesClean(t *testing.T) {
	ok, errs := analyze(t, "int main() { return 0; }")
	if !ok {
		t.Fatalf("expected clean analysis, got errors: %v", errs)
	}
}

func TestMissingMainIsAnError(t *testing.T) {
	expectError(t, "int other() { return 0; }", "Missing main function")
}

func TestMainWithWrongSignatureIsAnError(t *testing.T) {
	expectError(t, "int main(int x) { return 0; } int unused() { return 0; }", "Missing main function")
}

func TestDuplicateFunctionIsAnError(t *testing.T) {
	expectError(t, "int f() { return 0; } int f() { return 1; } int main() { return 0; }", "already declared")
}

func TestUndefinedVariableIsAnError(t *testing.T) {
	expectError(t, "int main() { return x; }", "Undefined variable 'x'")
}

func TestUndefinedFunctionCallIsAnError(t *testing.T) {
	expectError(t, "int main() { return missing(); }", "Undefined function 'missing'")
}

func TestCallArityMismatchIsAnError(t *testing.T) {
	expectError(t, "int add(int a, int b) { return a+b; } int main() { return add(1); }", "expects 2 arguments, got 1")
}

func TestBreakOutsideLoopIsAnError(t *testing.T) {
	expectError(t, "int main() { break; return 0; }", "break statement not within a loop")
}

func TestContinueOutsideLoopIsAnError(t *testing.T) {
	expectError(t, "int main() { continue; return 0; }", "continue statement not within a loop")
}

func TestNonVoidFunctionWithoutReturnIsAnError(t *testing.T) {
	expectError(t, "int f() { int x; } int main() { return 0; }", "must return a value")
}

func TestVoidFunctionReturningValueIsAnError(t *testing.T) {
	expectError(t, "void f() { return 1; } int main() { return 0; }", "void function should not return a value")
}

func TestNonVoidReturnWithNoValueIsAnError(t *testing.T) {
	expectError(t, "int f() { return; } int main() { return 0; }", "non-void function must return a value")
}

func TestDuplicateParameterIsAnError(t *testing.T) {
	expectError(t, "int f(int a, int a) { return a; } int main() { return 0; }", "already declared")
}

func TestVarDeclSeesItsOwnNameInInitializer(t *testing.T) {
	// spec.md's resolved open question: `int x = x;` sees the new x (uninitialized
	// at runtime), not an error, not an outer scope lookup.
	ok, errs := analyze(t, "int main() { int x = x; return x; }")
	if !ok {
		t.Fatalf("expected clean analysis (self-referential initializer is allowed), got: %v", errs)
	}
}

func TestLoopScopedBreakIsValid(t *testing.T) {
	ok, errs := analyze(t, "int main() { while (1) { break; } return 0; }")
	if !ok {
		t.Fatalf("expected clean analysis, got: %v", errs)
	}
}

func TestCallReturnTypeIsRecordedOnTheNode(t *testing.T) {
	unit := mustParse(t, "void f() { } int main() { f(); return 0; }")
	a := sema.NewAnalyzer()
	if !a.Analyze(unit) {
		t.Fatalf("unexpected errors: %v", a.Errors())
	}
	exprStmt := unit.Functions[1].Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	if call.ReturnType != ast.Void {
		t.Fatalf("expected call.ReturnType to be set to Void by the analyzer, got %v", call.ReturnType)
	}
}
