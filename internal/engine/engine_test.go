// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maruosan78/docx2pdf/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runOutputFunc func(name string, args ...string) (string, error)

	outputCalls [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunOutput(name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	m.outputCalls = append(m.outputCalls, call)
	if m.runOutputFunc != nil {
		return m.runOutputFunc(name, args...)
	}
	return "", nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "soffice available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true},
				runnableCmds:  map[string]bool{"soffice --version": true},
			},
			wantName: "soffice",
		},
		{
			name: "libreoffice fallback when soffice missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"libreoffice": true},
				runnableCmds:  map[string]bool{"libreoffice --version": true},
			},
			wantName: "libreoffice",
		},
		{
			name: "soffice preferred when both available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true, "libreoffice": true},
				runnableCmds: map[string]bool{
					"soffice --version":     true,
					"libreoffice --version": true,
				},
			},
			wantName: "soffice",
		},
		{
			name: "binary on PATH but not operational",
			exec: &mockExecutor{
				availableBins: map[string]bool{"soffice": true},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{availableBins: map[string]bool{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.Name() != tt.wantName {
				t.Errorf("engine name = %q, want %q", eng.Name(), tt.wantName)
			}
		})
	}
}

func TestNewExplicit(t *testing.T) {
	exec := &mockExecutor{
		availableBins: map[string]bool{"/opt/office/soffice": true},
		runnableCmds:  map[string]bool{"/opt/office/soffice --version": true},
	}

	eng, err := newExplicit("/opt/office/soffice", exec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eng.Name() != "/opt/office/soffice" {
		t.Errorf("engine name = %q", eng.Name())
	}

	if _, err := newExplicit("missing-binary", exec); err == nil {
		t.Error("expected error for missing binary")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "a.docx")
	if err := os.WriteFile(docPath, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := newSoffice(binSoffice, &mockExecutor{})

	if _, err := eng.Open(docPath); err != nil {
		t.Errorf("Open(%s): %v", docPath, err)
	}
	if _, err := eng.Open(filepath.Join(dir, "missing.docx")); err == nil {
		t.Error("expected error opening missing file")
	}
	if _, err := eng.Open(dir); err == nil {
		t.Error("expected error opening a directory")
	}
}

func TestExportPDF(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "a.docx")
	outPath := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(docPath, []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("success writes convert invocation", func(t *testing.T) {
		exec := &mockExecutor{
			runOutputFunc: func(name string, args ...string) (string, error) {
				// The real engine writes the output file itself.
				return "convert ok", os.WriteFile(outPath, []byte("pdf"), 0o644)
			},
		}
		eng := newSoffice(binSoffice, exec)
		doc, err := eng.Open(docPath)
		if err != nil {
			t.Fatal(err)
		}

		if err := doc.ExportPDF(outPath, types.DefaultExportOptions()); err != nil {
			t.Fatalf("ExportPDF: %v", err)
		}

		if len(exec.outputCalls) != 1 {
			t.Fatalf("expected 1 engine invocation, got %d", len(exec.outputCalls))
		}
		call := strings.Join(exec.outputCalls[0], " ")
		for _, want := range []string{"soffice", "--headless", "--convert-to", pdfFilter, "--outdir " + dir, docPath} {
			if !strings.Contains(call, want) {
				t.Errorf("invocation %q missing %q", call, want)
			}
		}
		if !strings.Contains(call, `"ExportBookmarks":{"type":"boolean","value":"true"}`) {
			t.Errorf("invocation %q missing bookmark filter data", call)
		}
	})

	t.Run("engine exit error", func(t *testing.T) {
		exec := &mockExecutor{
			runOutputFunc: func(name string, args ...string) (string, error) {
				return "source file could not be loaded", errors.New("exit status 1")
			},
		}
		eng := newSoffice(binSoffice, exec)
		doc, err := eng.Open(docPath)
		if err != nil {
			t.Fatal(err)
		}

		err = doc.ExportPDF(filepath.Join(dir, "b.pdf"), types.DefaultExportOptions())
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "could not be loaded") {
			t.Errorf("error %q should carry engine output", err)
		}
	})

	t.Run("stale output never masks a silent engine failure", func(t *testing.T) {
		// A PDF left behind by an earlier run must not count as this
		// invocation's output when the engine exits zero without
		// writing anything.
		stalePath := filepath.Join(dir, "stale.pdf")
		if err := os.WriteFile(stalePath, []byte("stale pdf"), 0o644); err != nil {
			t.Fatal(err)
		}

		exec := &mockExecutor{
			runOutputFunc: func(name string, args ...string) (string, error) {
				return "no writer filter", nil
			},
		}
		eng := newSoffice(binSoffice, exec)
		doc, err := eng.Open(docPath)
		if err != nil {
			t.Fatal(err)
		}

		err = doc.ExportPDF(stalePath, types.DefaultExportOptions())
		if err == nil {
			t.Fatal("expected error; stale output must not be reported as success")
		}
		if !strings.Contains(err.Error(), "produced no output") {
			t.Errorf("unexpected error: %v", err)
		}
		if _, statErr := os.Stat(stalePath); statErr == nil {
			t.Error("stale output should have been cleared before the invocation")
		}
	})

	t.Run("existing output is overwritten on success", func(t *testing.T) {
		replacedPath := filepath.Join(dir, "replaced.pdf")
		if err := os.WriteFile(replacedPath, []byte("old run"), 0o644); err != nil {
			t.Fatal(err)
		}

		exec := &mockExecutor{
			runOutputFunc: func(name string, args ...string) (string, error) {
				return "convert ok", os.WriteFile(replacedPath, []byte("new run"), 0o644)
			},
		}
		eng := newSoffice(binSoffice, exec)
		doc, err := eng.Open(docPath)
		if err != nil {
			t.Fatal(err)
		}

		if err := doc.ExportPDF(replacedPath, types.DefaultExportOptions()); err != nil {
			t.Fatalf("ExportPDF: %v", err)
		}
		data, err := os.ReadFile(replacedPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "new run" {
			t.Errorf("output content = %q, want the new run's output", data)
		}
	})

	t.Run("zero exit but no output produced", func(t *testing.T) {
		exec := &mockExecutor{
			runOutputFunc: func(name string, args ...string) (string, error) {
				return "no writer filter", nil
			},
		}
		eng := newSoffice(binSoffice, exec)
		doc, err := eng.Open(docPath)
		if err != nil {
			t.Fatal(err)
		}

		err = doc.ExportPDF(filepath.Join(dir, "c.pdf"), types.DefaultExportOptions())
		if err == nil {
			t.Fatal("expected error when engine produces no output")
		}
		if !strings.Contains(err.Error(), "produced no output") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestConvertTarget(t *testing.T) {
	got := convertTarget(types.ExportOptions{OptimizeForPrint: false, CreateBookmarks: false})
	if !strings.HasPrefix(got, "pdf:"+pdfFilter+":") {
		t.Errorf("convertTarget = %q", got)
	}
	if !strings.Contains(got, `"ExportBookmarks":{"type":"boolean","value":"false"}`) {
		t.Errorf("convertTarget = %q should disable bookmarks", got)
	}
}
