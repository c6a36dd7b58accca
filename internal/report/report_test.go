// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maruosan78/docx2pdf/internal/batch"
	"github.com/maruosan78/docx2pdf/pkg/types"
)

func TestWrite(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	res := batch.RunResult{
		BatchResult: batch.BatchResult{Succeeded: 1, Failed: 1},
		EngineName:  "soffice",
		Jobs: []types.ConversionJob{
			{ID: "j1", InputPath: "/work/a.docx", OutputPath: "/work/a.pdf", Status: types.JobSucceeded},
			{ID: "j2", InputPath: "/work/b.docx", OutputPath: "/work/b.pdf", Status: types.JobFailed,
				Stage: types.StageExport, Error: "file is locked"},
		},
	}

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, Write(path, New("1.2.3", "/work", started, res)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "tool: docx2pdf")
	assert.Contains(t, content, "version: 1.2.3")
	assert.Contains(t, content, "2026-03-14T09:26:53Z")
	assert.Contains(t, content, "engine: soffice")
	assert.Contains(t, content, "succeeded: 1")
	assert.Contains(t, content, "stage: export")
	assert.Contains(t, content, "error: file is locked")
}

func TestWrite_BadPath(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing", "run.yaml"), Run{})
	assert.Error(t, err)
}
