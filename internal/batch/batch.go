// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the conversion workflow: discovery, engine
// acquisition, strictly sequential per-job conversion with failure
// isolation, and summary reporting.
package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/maruosan78/docx2pdf/internal/discover"
	"github.com/maruosan78/docx2pdf/internal/engine"
	"github.com/maruosan78/docx2pdf/pkg/types"
)

// BatchResult holds the aggregate outcome of a conversion run.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Total returns the total number of jobs processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any jobs failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// NewJobs builds pending conversion jobs from discovered input paths,
// preserving discovery order.
func NewJobs(paths []string) []types.ConversionJob {
	jobs := make([]types.ConversionJob, len(paths))
	for i, p := range paths {
		jobs[i] = types.ConversionJob{
			ID:         uuid.NewString(),
			InputPath:  p,
			OutputPath: discover.OutputPath(p),
			Status:     types.JobPending,
		}
	}
	return jobs
}

// ConvertJob runs one job through the engine: open, export, close. A
// failure at any stage records the stage and error text on the job and
// leaves it failed; the caller moves on to the next job regardless.
func ConvertJob(eng engine.Engine, job *types.ConversionJob, opts types.ExportOptions) types.JobStatus {
	doc, err := eng.Open(job.InputPath)
	if err != nil {
		fail(job, types.StageOpen, err)
		return job.Status
	}

	if err := doc.ExportPDF(job.OutputPath, opts); err != nil {
		// Best-effort release; the export failure is what gets reported.
		_ = doc.Close(true)
		fail(job, types.StageExport, err)
		return job.Status
	}

	if err := doc.Close(true); err != nil {
		fail(job, types.StageClose, err)
		return job.Status
	}

	job.Status = types.JobSucceeded
	return job.Status
}

func fail(job *types.ConversionJob, stage types.JobStage, err error) {
	job.Status = types.JobFailed
	job.Stage = stage
	job.Error = err.Error()
}

// ConvertBatch processes jobs in order through the engine, printing per-job
// progress to w and returning a summary. A failed job never stops the
// batch. Percent complete after job k of n is floor(k/n*100).
func ConvertBatch(eng engine.Engine, jobs []types.ConversionJob, opts types.ExportOptions, w io.Writer) BatchResult {
	var result BatchResult
	total := len(jobs)

	for i := range jobs {
		job := &jobs[i]
		base := filepath.Base(job.InputPath)

		fmt.Fprintf(w, "\n[%d/%d] Converting file:\n", i+1, total)
		fmt.Fprintf(w, "  DOCX: %s\n", base)
		fmt.Fprintf(w, "  PDF : %s\n", filepath.Base(job.OutputPath))

		status := ConvertJob(eng, job, opts)
		percent := (i + 1) * 100 / total

		if status == types.JobSucceeded {
			result.Succeeded++
			fmt.Fprintf(w, "  Status: OK   |   Progress: %d%%\n", percent)
			continue
		}

		result.Failed++
		fmt.Fprintf(w, "  Status: ERROR (at %s)   |   Progress: %d%%\n", job.Stage, percent)
		fmt.Fprintf(w, "  Error while processing %s:\n    %s\n", base, job.Error)
	}

	fmt.Fprintf(w, "\nBatch summary: %d/%d succeeded, %d failed\n",
		result.Succeeded, total, result.Failed)
	return result
}

// EngineFunc acquires the conversion engine. Injected so the run can be
// exercised without an installed application.
type EngineFunc func() (engine.Engine, error)

// RunResult is the outcome of a full workflow run.
type RunResult struct {
	BatchResult

	// Jobs holds the per-job outcomes, in processing order. Empty when no
	// candidate files were found.
	Jobs []types.ConversionJob

	// EngineName is the engine that performed the conversions, empty when
	// the engine was never acquired.
	EngineName string
}

// Run executes the full workflow for dir: discovery, pre-flight listing,
// engine acquisition, sequential conversion, summary. The engine is
// acquired at most once, only when there is at least one candidate file,
// and shut down exactly once on every exit path after acquisition. An
// error return means the engine could not be acquired (fatal); per-job
// failures are reflected in the result, not the error.
func Run(dir string, acquire EngineFunc, opts types.ExportOptions, w io.Writer) (RunResult, error) {
	var res RunResult

	paths, err := discover.Discover(dir)
	if err != nil {
		return res, err
	}

	if len(paths) == 0 {
		fmt.Fprintf(w, "No %s files found in this folder:\n  %s\n", discover.SourceExt, dir)
		return res, nil
	}

	printListing(w, paths)

	eng, err := acquire()
	if err != nil {
		return res, fmt.Errorf("acquiring conversion engine: %w", err)
	}
	defer func() {
		_ = eng.Shutdown()
	}()
	res.EngineName = eng.Name()

	fmt.Fprintf(w, "\nStarting conversion using %s...\n", eng.Name())

	res.Jobs = NewJobs(paths)
	res.BatchResult = ConvertBatch(eng, res.Jobs, opts, w)
	return res, nil
}

// printListing writes the pre-flight file listing, with singular phrasing
// for a one-file batch.
func printListing(w io.Writer, paths []string) {
	fmt.Fprintf(w, "\nFiles to be converted:\n")
	if len(paths) == 1 {
		fmt.Fprintf(w, "  1 file found: %s\n", filepath.Base(paths[0]))
		return
	}
	for _, p := range paths {
		fmt.Fprintf(w, "  - %s\n", filepath.Base(p))
	}
	fmt.Fprintf(w, "\nTotal files: %d\n", len(paths))
}
