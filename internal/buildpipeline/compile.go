package buildpipeline

import (
	"fmt"
	"time"

	"toyc/internal/diag"
	"toyc/internal/driver"
)

// FileResult is one file's outcome within a Build run.
type FileResult struct {
	Path       string
	Assembly   string
	OutputPath string
	Bag        *diag.Bag
	SemaErrors []string
	Err        error
}

// compileOne runs parse, analyze and generate over a single file, emitting
// progress Events as it goes, and returns at the first stage that fails;
// writing the output is left to writeOutput. A failure in one file does not
// stop the caller from compiling the rest of the file set.
func compileOne(path string, maxDiagnostics int, sink ProgressSink, timings *Timings) FileResult {
	emit(sink, path, StageParse, StatusWorking, 0, nil)
	start := time.Now()
	result, err := driver.Compile(path, maxDiagnostics)
	elapsed := time.Since(start)

	if result == nil {
		emit(sink, path, StageParse, StatusError, elapsed, err)
		return FileResult{Path: path, Err: err}
	}

	if result.Bag.HasErrors() {
		emit(sink, path, StageParse, StatusError, elapsed, err)
		return FileResult{Path: path, Bag: result.Bag, Err: err}
	}
	emit(sink, path, StageParse, StatusDone, elapsed, nil)
	timings.Add(StageParse, elapsed)

	emit(sink, path, StageAnalyze, StatusWorking, 0, nil)
	if len(result.SemaErrors) > 0 {
		semaErr := fmt.Errorf("%s", result.SemaErrors[0])
		emit(sink, path, StageAnalyze, StatusError, 0, semaErr)
		return FileResult{Path: path, Bag: result.Bag, SemaErrors: result.SemaErrors, Err: semaErr}
	}
	emit(sink, path, StageAnalyze, StatusDone, 0, nil)

	emit(sink, path, StageGenerate, StatusDone, 0, nil)
	timings.Add(StageGenerate, elapsed)

	return FileResult{Path: path, Assembly: result.Assembly, Bag: result.Bag}
}

func emit(sink ProgressSink, path string, stage Stage, status Status, elapsed time.Duration, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: path, Stage: stage, Status: status, Elapsed: elapsed, Err: err})
}
