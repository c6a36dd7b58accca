// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruosan78/docx2pdf/pkg/types"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"

	// pdfFilter is the engine's fixed-format export filter for text documents.
	pdfFilter = "writer_pdf_Export"
)

// soffice implements Engine on top of the LibreOffice command line. Both the
// soffice and libreoffice binaries accept the same arguments; they differ
// only in name.
type soffice struct {
	bin  string
	exec executor
}

func newSoffice(bin string, exec executor) *soffice {
	return &soffice{bin: bin, exec: exec}
}

func (s *soffice) Name() string { return s.bin }

func (s *soffice) Available() bool {
	if _, err := s.exec.LookPath(s.bin); err != nil {
		return false
	}
	return s.exec.RunSilent(s.bin, "--version") == nil
}

// Open verifies the document is a readable regular file and returns a
// handle for it. The engine loads the document lazily at export time; a
// file another process holds locked still fails here or at export, and
// either way the failure stays contained to its job.
func (s *soffice) Open(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening %s: is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	f.Close()

	return &sofficeDocument{engine: s, path: path}, nil
}

// Shutdown releases the engine. Conversions run as bounded child processes
// that have already exited by the time a job completes, so there is no
// long-lived process to tear down.
func (s *soffice) Shutdown() error {
	return nil
}

// sofficeDocument is one open document, bound to the engine that opened it.
type sofficeDocument struct {
	engine *soffice
	path   string
}

// ExportPDF converts the document via a headless engine invocation. The
// engine writes the output itself, named after the input basename in the
// requested directory; outPath must follow that convention (same base name,
// .pdf extension), which is exactly what discover.OutputPath derives.
func (d *sofficeDocument) ExportPDF(outPath string, opts types.ExportOptions) error {
	// Clear any output from an earlier run first: the existence check
	// below must only ever see the file this invocation produced.
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("exporting %s: removing previous output: %w", d.path, err)
	}

	args := []string{
		"--headless",
		"--norestore",
		"--convert-to", convertTarget(opts),
		"--outdir", filepath.Dir(outPath),
		d.path,
	}

	out, err := d.engine.exec.RunOutput(d.engine.bin, args...)
	if err != nil {
		return fmt.Errorf("exporting %s: %w (%s)", d.path, err, strings.TrimSpace(out))
	}

	// The engine exits zero even for some unconvertible inputs; the output
	// file is the ground truth.
	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("exporting %s: engine produced no output (%s)", d.path, strings.TrimSpace(out))
	}

	return nil
}

// Close releases the document handle. The export invocation owns the
// document for its lifetime, so there is nothing to release here; discard
// is honored trivially because the source file is never written.
func (d *sofficeDocument) Close(discard bool) error {
	return nil
}

// convertTarget builds the --convert-to argument: the pdf target, the
// writer export filter, and its options as filter data.
func convertTarget(opts types.ExportOptions) string {
	data := fmt.Sprintf(
		`{"ExportBookmarks":{"type":"boolean","value":"%t"},"UseLosslessCompression":{"type":"boolean","value":"%t"}}`,
		opts.CreateBookmarks, opts.OptimizeForPrint,
	)
	return "pdf:" + pdfFilter + ":" + data
}
