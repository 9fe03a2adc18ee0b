package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"toyc/internal/ast"
	"toyc/internal/codegen/riscv"
	"toyc/internal/diag"
	"toyc/internal/lexer"
	"toyc/internal/parser"
	"toyc/internal/project"
	"toyc/internal/sema"
	"toyc/internal/source"
)

// ProjectResult is the outcome of compiling a toyc.toml project: every listed
// file is parsed independently, then their function lists are concatenated
// into a single CompilationUnit before one analysis+generation pass runs over
// the whole. This is one compilation, not separate compilation and linking —
// ToyC has no linker (spec.md Non-goals).
type ProjectResult struct {
	FileSet    *source.FileSet
	Files      []project.LoadedFile
	Unit       *ast.CompilationUnit
	Bag        *diag.Bag
	SemaErrors []string
	Assembly   string
}

// CompileProject loads, lexes and parses every file the manifest lists, then
// runs one semantic analysis and code generation pass over their combined
// function list.
func CompileProject(ctx context.Context, manifestPath string, maxDiagnostics int) (*ProjectResult, error) {
	manifestDir := filepath.Dir(manifestPath)
	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	paths := manifest.ResolveFiles(manifestDir)

	fs := source.NewFileSetWithBase(manifestDir)
	loaded, err := project.LoadFiles(ctx, fs, paths)
	if err != nil {
		return nil, fmt.Errorf("loading project files: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	unit := &ast.CompilationUnit{}
	for _, f := range loaded {
		lx := lexer.New(f.ID, fs.Get(f.ID).Content, bag)
		toks := lx.Tokenize()
		ps := parser.New(f.ID, toks, bag)
		fileUnit := ps.Parse()
		unit.Functions = append(unit.Functions, fileUnit.Functions...)
	}

	result := &ProjectResult{FileSet: fs, Files: loaded, Unit: unit, Bag: bag}
	if bag.HasErrors() {
		return result, fmt.Errorf("parsing failed")
	}

	analyzer := sema.NewAnalyzer()
	if !analyzer.Analyze(unit) {
		result.SemaErrors = analyzer.Errors()
		return result, fmt.Errorf("semantic analysis failed")
	}

	gen := riscv.New()
	result.Assembly = gen.Generate(unit)

	return result, nil
}
