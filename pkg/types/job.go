// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// JobStatus indicates where a conversion job is in its lifecycle.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// JobStage identifies the engine operation at which a failed job failed.
// Failures at every stage map to the same terminal JobFailed status; the
// stage is recorded for reporting only.
type JobStage string

const (
	StageOpen   JobStage = "open"
	StageExport JobStage = "export"
	StageClose  JobStage = "close"
)

// ConversionJob is one input-file-to-output-file conversion attempt. Jobs
// are created from directory discovery at the start of a run, mutated in
// place as the batch progresses, and discarded at process exit.
type ConversionJob struct {
	// ID is a unique identifier for this job within the run.
	ID string `json:"id" yaml:"id"`

	// InputPath is the source document path.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the derived PDF path: InputPath with its extension
	// replaced, adjacent to the input file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Status is the job outcome.
	Status JobStatus `json:"status" yaml:"status"`

	// Stage is the engine operation that failed, set only for failed jobs.
	Stage JobStage `json:"stage,omitempty" yaml:"stage,omitempty"`

	// Error is the underlying error text, set only for failed jobs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
