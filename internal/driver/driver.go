// Package driver wires the lexer, parser, semantic analyzer and code
// generator into the single-file compile pipeline spec.md §2 describes. It
// is the thin seam between cmd/toyc (argument parsing, output formatting)
// and the compiler packages themselves.
package driver

import (
	"fmt"

	"toyc/internal/ast"
	"toyc/internal/codegen/riscv"
	"toyc/internal/diag"
	"toyc/internal/lexer"
	"toyc/internal/parser"
	"toyc/internal/sema"
	"toyc/internal/source"
	"toyc/internal/token"
)

// TokenizeResult holds the output of running the lexer alone.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path and returns every token, including lexical
// diagnostics. It never fails on malformed input — bad characters become
// Invalid tokens plus a diagnostic, exactly like the lexer itself.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(id, fs.Get(id).Content, bag)
	toks := lx.Tokenize()

	return &TokenizeResult{FileSet: fs, File: id, Tokens: toks, Bag: bag}, nil
}

// ParseResult holds the output of running the lexer and parser.
type ParseResult struct {
	FileSet *source.FileSet
	File    source.FileID
	Unit    *ast.CompilationUnit
	Bag     *diag.Bag
}

// Parse lexes and parses the file at path into an AST. Syntax errors are
// reported into the returned Bag; Unit is still populated on error so
// --parse-only / --ast output can show partial progress.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(id, fs.Get(id).Content, bag)
	toks := lx.Tokenize()

	ps := parser.New(id, toks, bag)
	unit := ps.Parse()

	return &ParseResult{FileSet: fs, File: id, Unit: unit, Bag: bag}, nil
}

// CompileResult is the outcome of running the full pipeline: parse, analyze,
// generate. Assembly is empty whenever semantic analysis failed.
type CompileResult struct {
	FileSet    *source.FileSet
	File       source.FileID
	Unit       *ast.CompilationUnit
	Bag        *diag.Bag
	SemaErrors []string
	Assembly   string
}

// Compile runs the whole pipeline over the file at path. A non-nil error
// means compilation failed; SemaErrors (if non-empty) carries the semantic
// analyzer's own message list, which is reported differently from lexical
// and syntax diagnostics (spec.md §4.3, §7).
func Compile(path string, maxDiagnostics int) (*CompileResult, error) {
	pr, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	result := &CompileResult{FileSet: pr.FileSet, File: pr.File, Unit: pr.Unit, Bag: pr.Bag}

	if pr.Bag.HasErrors() {
		return result, fmt.Errorf("parsing failed")
	}

	analyzer := sema.NewAnalyzer()
	if !analyzer.Analyze(pr.Unit) {
		result.SemaErrors = analyzer.Errors()
		return result, fmt.Errorf("semantic analysis failed")
	}

	gen := riscv.New()
	result.Assembly = gen.Generate(pr.Unit)

	return result, nil
}
