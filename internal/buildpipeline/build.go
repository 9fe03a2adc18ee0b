package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"toyc/internal/driver"
)

// Options configures a Build run.
type Options struct {
	MaxDiagnostics int
	OutDir         string // empty: write each .s beside its source
	Sink           ProgressSink
}

// Result aggregates a Build run's outcome across every input file.
type Result struct {
	Files   []FileResult
	Timings Timings
}

// OK reports whether every file compiled and wrote its output cleanly.
func (r Result) OK() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return false
		}
	}
	return true
}

// Build compiles each file in paths independently (spec.md: ToyC files never
// share state) through parse, analyze, generate, write, reporting progress on
// opts.Sink as it goes.
func Build(paths []string, opts Options) Result {
	var result Result
	for _, path := range paths {
		fr := compileOne(path, opts.MaxDiagnostics, opts.Sink, &result.Timings)
		if fr.Err == nil {
			fr = writeOutput(fr, opts)
		}
		result.Files = append(result.Files, fr)
	}
	return result
}

func writeOutput(fr FileResult, opts Options) FileResult {
	emit(opts.Sink, fr.Path, StageWrite, StatusWorking, 0, nil)
	start := time.Now()

	outPath := outputPath(fr.Path, opts.OutDir)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fr.Err = fmt.Errorf("creating output directory: %w", err)
		emit(opts.Sink, fr.Path, StageWrite, StatusError, time.Since(start), fr.Err)
		return fr
	}
	if err := os.WriteFile(outPath, []byte(fr.Assembly), 0o644); err != nil {
		fr.Err = fmt.Errorf("writing %s: %w", outPath, err)
		emit(opts.Sink, fr.Path, StageWrite, StatusError, time.Since(start), fr.Err)
		return fr
	}

	elapsed := time.Since(start)
	fr.OutputPath = outPath
	emit(opts.Sink, fr.Path, StageWrite, StatusDone, elapsed, nil)
	return fr
}

func outputPath(sourcePath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath)) + ".s"
	if outDir == "" {
		return filepath.Join(filepath.Dir(sourcePath), base)
	}
	return filepath.Join(outDir, base)
}

// BuildProject compiles every file a toyc.toml manifest lists as one
// combined CompilationUnit (spec.md's "no separate compilation" constraint
// still holds — this is one analysis+generation pass, not per-file linking)
// and writes a single assembly file next to the manifest.
func BuildProject(ctx context.Context, manifestPath string, opts Options) (FileResult, error) {
	emit(opts.Sink, manifestPath, StageParse, StatusWorking, 0, nil)
	start := time.Now()

	pr, err := driver.CompileProject(ctx, manifestPath, opts.MaxDiagnostics)
	elapsed := time.Since(start)
	if pr == nil {
		emit(opts.Sink, manifestPath, StageParse, StatusError, elapsed, err)
		return FileResult{Path: manifestPath, Err: err}, err
	}
	if pr.Bag.HasErrors() || len(pr.SemaErrors) > 0 {
		emit(opts.Sink, manifestPath, StageAnalyze, StatusError, elapsed, err)
		return FileResult{Path: manifestPath, Bag: pr.Bag, SemaErrors: pr.SemaErrors, Err: err}, err
	}
	emit(opts.Sink, manifestPath, StageGenerate, StatusDone, elapsed, nil)

	manifestDir := filepath.Dir(manifestPath)
	outName := strings.TrimSuffix(filepath.Base(manifestPath), filepath.Ext(manifestPath)) + ".s"
	outPath := filepath.Join(manifestDir, outName)
	if opts.OutDir != "" {
		outPath = filepath.Join(opts.OutDir, outName)
	}

	emit(opts.Sink, manifestPath, StageWrite, StatusWorking, 0, nil)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		emit(opts.Sink, manifestPath, StageWrite, StatusError, 0, err)
		return FileResult{Path: manifestPath, Err: err}, err
	}
	if err := os.WriteFile(outPath, []byte(pr.Assembly), 0o644); err != nil {
		emit(opts.Sink, manifestPath, StageWrite, StatusError, 0, err)
		return FileResult{Path: manifestPath, Err: err}, err
	}
	emit(opts.Sink, manifestPath, StageWrite, StatusDone, 0, nil)

	return FileResult{Path: manifestPath, Assembly: pr.Assembly, OutputPath: outPath, Bag: pr.Bag}, nil
}
