package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maruosan78/docx2pdf/internal/batch"
	"github.com/maruosan78/docx2pdf/internal/engine"
	"github.com/maruosan78/docx2pdf/internal/report"
	"github.com/maruosan78/docx2pdf/pkg/types"
)

// errAlreadyReported marks fatal failures whose message was already shown
// to the user before the exit pause; main exits non-zero without repeating it.
var errAlreadyReported = errors.New("failure already reported")

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert all DOCX files in the folder to PDF",
	Long: `Convert finds every DOCX file in the target folder (non-recursive,
skipping ~$ lock files), exports each to a PDF next to it, and prints
per-file progress and a final summary. Existing PDFs are overwritten.

The folder defaults to the one containing the docx2pdf executable, so the
tool can be dropped into a folder and run with no arguments.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("dir", "", "folder to convert (default: folder containing the executable)")
	convertCmd.Flags().String("engine", "", "explicit engine binary (default: detect soffice, then libreoffice)")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().Bool("no-pause", false, "do not wait for Enter before exiting")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfig(cmd)
	return runBatch(cfg, os.Stdout, os.Stdin)
}

// convertConfig resolves the run configuration: flags win over config file
// and environment, which win over defaults.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = viper.GetString("dir")
	}
	if dir == "" {
		dir = executableDir()
	}

	enginePath, _ := cmd.Flags().GetString("engine")
	if enginePath == "" {
		enginePath = viper.GetString("engine_path")
	}

	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath == "" {
		reportPath = viper.GetString("report_path")
	}

	pause := true
	if viper.IsSet("pause") {
		pause = viper.GetBool("pause")
	}
	if noPause, _ := cmd.Flags().GetBool("no-pause"); noPause {
		pause = false
	}

	return types.ConvertConfig{
		Dir:        dir,
		EnginePath: enginePath,
		ReportPath: reportPath,
		Pause:      pause,
	}
}

// runBatch orchestrates one conversion run against the given streams.
func runBatch(cfg types.ConvertConfig, out io.Writer, in io.Reader) error {
	startedAt := time.Now()
	printBanner(out, cfg.Dir, startedAt)

	res, err := batch.Run(cfg.Dir, acquireEngine(cfg), types.DefaultExportOptions(), out)
	if err != nil {
		// Fatal tier: the engine could not be acquired (or the folder is
		// unreadable). Per-job failures never land here. The message is
		// shown here, before the pause, so the sentinel keeps main from
		// printing it again.
		fmt.Fprintf(out, "\n%v\n", err)
		pause(cfg, out, in)
		return errAlreadyReported
	}

	if res.Total() > 0 {
		fmt.Fprintf(out, "\nAll conversions finished.\n")
		if res.Total() == 1 && res.Succeeded == 1 {
			fmt.Fprintf(out, "Created PDF file: %s\n", filepath.Base(res.Jobs[0].OutputPath))
		} else {
			fmt.Fprintf(out, "PDF files were created next to each original DOCX file.\n")
		}

		if cfg.ReportPath != "" {
			if err := report.Write(cfg.ReportPath, report.New(version, cfg.Dir, startedAt, res)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
	}

	pause(cfg, out, in)
	// Per-job failures are already reported; the process still exits clean.
	return nil
}

// acquireEngine returns the engine acquisition strategy for the run: an
// explicitly configured binary, or detection with fallback.
func acquireEngine(cfg types.ConvertConfig) batch.EngineFunc {
	if cfg.EnginePath != "" {
		return func() (engine.Engine, error) { return engine.New(cfg.EnginePath) }
	}
	return engine.Detect
}

func printBanner(w io.Writer, dir string, startedAt time.Time) {
	fmt.Fprintln(w, "==========================================================")
	fmt.Fprintf(w, " docx2pdf %s\n", version)
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintln(w, " Converts all DOCX files in this folder to PDF using a")
	fmt.Fprintln(w, " locally installed document engine (fixed-format export).")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, " Current date and time: %s\n", startedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, " Working folder: %s\n", dir)
	fmt.Fprintln(w, "==========================================================")
}

// pause waits for Enter so the console window stays open for users who
// launched the tool by double-clicking.
func pause(cfg types.ConvertConfig, out io.Writer, in io.Reader) {
	if !cfg.Pause {
		return
	}
	fmt.Fprint(out, "\nPress Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// executableDir returns the directory containing the running executable,
// falling back to the current working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exe)
}
