package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"toyc/internal/codegen/riscv"
	"toyc/internal/diag"
	"toyc/internal/diagfmt"
	"toyc/internal/driver"
	"toyc/internal/sema"
	"toyc/internal/source"
)

// runCompile implements the single-file compile flow of spec.md's CLI
// surface: parse, analyze, generate, write, with verbose phase banners
// mirroring the original reference driver's four numbered phases.
func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	printAST, err := cmd.Flags().GetBool("ast")
	if err != nil {
		return err
	}
	printTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return err
	}
	parseOnly, err := cmd.Flags().GetBool("parse-only")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	if !strings.EqualFold(filepath.Ext(inputPath), ".tc") {
		fmt.Fprintln(os.Stderr, "Warning: Input file should have .tc extension")
	}

	if outputPath == "" {
		outputPath = baseName(inputPath) + ".s"
	}

	if verbose {
		fmt.Println("ToyC Compiler")
		fmt.Println("Input file:", inputPath)
		fmt.Println("Output file:", outputPath)
		fmt.Println("===================")
	}

	if printTokens {
		result, err := driver.Tokenize(inputPath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("Error: %w", err)
		}
		reportDiagnostics(cmd, result.Bag, result.FileSet)
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	}

	if verbose {
		fmt.Println("Phase 1: Parsing...")
	}
	pr, err := driver.Parse(inputPath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("Error: %w", err)
	}
	reportDiagnostics(cmd, pr.Bag, pr.FileSet)
	if pr.Bag.HasErrors() {
		return fmt.Errorf("Error: parsing failed")
	}
	if verbose {
		fmt.Println("  Parsing completed successfully")
	}

	if printAST {
		fmt.Println("\n=== Abstract Syntax Tree ===")
		if err := diagfmt.DumpAST(os.Stdout, pr.Unit, pr.FileSet); err != nil {
			return err
		}
		fmt.Println("============================")
	}

	if parseOnly {
		fmt.Println("Parse-only mode: Parsing successful!")
		return nil
	}

	if verbose {
		fmt.Println("Phase 2: Semantic analysis...")
	}
	analyzer := sema.NewAnalyzer()
	if !analyzer.Analyze(pr.Unit) {
		fmt.Fprintln(os.Stderr, "Semantic analysis failed:")
		for i, e := range analyzer.Errors() {
			fmt.Fprintf(os.Stderr, "  Error %d: %s\n", i+1, e)
		}
		return fmt.Errorf("semantic analysis failed")
	}
	if verbose {
		fmt.Println("  Semantic analysis completed successfully")
	}

	if verbose {
		fmt.Println("Phase 3: Code generation...")
	}
	gen := riscv.New()
	assembly := gen.Generate(pr.Unit)
	if verbose {
		fmt.Println("  Code generation completed")
	}

	if verbose {
		fmt.Println("Phase 4: Writing output...")
	}
	if err := os.WriteFile(outputPath, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("Error: cannot write to output file: %w", err)
	}
	if verbose {
		fmt.Println("  Output written to:", outputPath)
		fmt.Println("===================")
	}

	fmt.Println("Compilation successful!")

	if verbose {
		fmt.Println("\nStatistics:")
		fmt.Println("  Functions:", len(pr.Unit.Functions))
		fmt.Println("  Source lines:", strings.Count(string(pr.FileSet.Get(pr.File).Content), "\n")+1)
		fmt.Println("  Assembly lines:", strings.Count(assembly, "\n"))
	}

	return nil
}

// reportDiagnostics prints bag to stderr in the pretty format, colorized
// according to the --color persistent flag, if it has anything worth
// showing. It is a no-op on a clean bag.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:       resolveColor(cmd, os.Stderr),
		ShowPreview: true,
	})
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
