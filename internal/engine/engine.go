// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine drives the external document-processing application that
// performs the actual format conversion. The engine is exposed as a small
// capability interface (open, export, close, shutdown) so the batch code
// can run against a test double without an installed application.
package engine

import (
	"fmt"
	"os/exec"

	"github.com/maruosan78/docx2pdf/pkg/types"
)

// Engine is a handle to the external conversion application. A run acquires
// one engine, uses it serially for every job, and shuts it down exactly once.
type Engine interface {
	// Name returns the engine binary name.
	Name() string

	// Available reports whether the engine binary exists on PATH and
	// responds to a version probe.
	Available() bool

	// Open loads the document at path for conversion.
	Open(path string) (Document, error)

	// Shutdown releases the engine handle. It is safe to call after
	// per-job failures; teardown is unconditional once acquired.
	Shutdown() error
}

// Document is an open document inside the engine.
type Document interface {
	// ExportPDF writes a fixed-format PDF rendition of the document to
	// outPath, overwriting any existing file there.
	ExportPDF(outPath string, opts types.ExportOptions) error

	// Close releases the document. When discard is true, any incidental
	// changes made while the document was open are dropped.
	Close(discard bool) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	return string(out), err
}

var defaultExec = &osExecutor{}

// Detect probes for an installed engine, trying soffice first and falling
// back to libreoffice. Returns an error when neither binary is available,
// which is fatal for the run.
func Detect() (Engine, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Engine, error) {
	soffice := newSoffice(binSoffice, exec)
	if soffice.Available() {
		return soffice, nil
	}

	libre := newSoffice(binLibreOffice, exec)
	if libre.Available() {
		return libre, nil
	}

	return nil, fmt.Errorf(
		"no conversion engine available: neither %s nor %s found or operational; install LibreOffice or set an explicit engine path",
		binSoffice, binLibreOffice,
	)
}

// New returns an engine for an explicitly configured binary, verifying that
// it is operational before handing it out.
func New(bin string) (Engine, error) {
	return newExplicit(bin, defaultExec)
}

func newExplicit(bin string, exec executor) (Engine, error) {
	eng := newSoffice(bin, exec)
	if !eng.Available() {
		return nil, fmt.Errorf("conversion engine %s not found or not operational", bin)
	}
	return eng, nil
}
