package types

// ConvertConfig holds settings for a batch conversion run.
type ConvertConfig struct {
	// Dir is the directory scanned for source documents (non-recursive).
	// Defaults to the directory containing the running executable.
	Dir string `json:"dir" yaml:"dir"`

	// EnginePath overrides engine detection with an explicit binary path.
	EnginePath string `json:"engine_path,omitempty" yaml:"engine_path,omitempty"`

	// ReportPath, when set, is where the YAML run report is written.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`

	// Pause controls whether the tool waits for Enter before exiting
	// (default true, for users who launch it by double-clicking).
	Pause bool `json:"pause" yaml:"pause"`
}

// ExportOptions is the fixed-format export configuration passed to the
// engine for every job. The result is never opened after export and source
// edits are never kept; those are properties of the conversion flow, not
// options.
type ExportOptions struct {
	// OptimizeForPrint selects print-quality output over minimal size.
	OptimizeForPrint bool `json:"optimize_for_print" yaml:"optimize_for_print"`

	// CreateBookmarks generates PDF bookmarks from document headings.
	CreateBookmarks bool `json:"create_bookmarks" yaml:"create_bookmarks"`
}

// DefaultExportOptions returns the export configuration used for every run:
// print quality, heading bookmarks.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		OptimizeForPrint: true,
		CreateBookmarks:  true,
	}
}
