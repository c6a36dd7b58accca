// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a YAML record of a finished conversion run.
package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/maruosan78/docx2pdf/internal/batch"
	"github.com/maruosan78/docx2pdf/pkg/types"
)

// Run is the report for one batch conversion run. It is an output artifact
// for the user; the tool never reads it back.
type Run struct {
	Tool       string                `yaml:"tool"`
	Version    string                `yaml:"version"`
	StartedAt  string                `yaml:"started_at"`
	WorkingDir string                `yaml:"working_dir"`
	Engine     string                `yaml:"engine,omitempty"`
	Succeeded  int                   `yaml:"succeeded"`
	Failed     int                   `yaml:"failed"`
	Total      int                   `yaml:"total"`
	Jobs       []types.ConversionJob `yaml:"jobs,omitempty"`
}

// New builds a report from a run's outcome.
func New(version, dir string, startedAt time.Time, res batch.RunResult) Run {
	return Run{
		Tool:       "docx2pdf",
		Version:    version,
		StartedAt:  startedAt.UTC().Format(time.RFC3339),
		WorkingDir: dir,
		Engine:     res.EngineName,
		Succeeded:  res.Succeeded,
		Failed:     res.Failed,
		Total:      res.Total(),
		Jobs:       res.Jobs,
	}
}

// Write marshals the report and writes it to path, overwriting any
// existing file.
func Write(path string, run Run) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}
