// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docx2pdf CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docx2pdf CLI. Invoking it with no
// subcommand runs the conversion, so double-clicking the binary in a folder
// of documents converts that folder.
var rootCmd = &cobra.Command{
	Use:   "docx2pdf",
	Short: "Batch-convert DOCX files in a folder to PDF",
	Long: `docx2pdf converts every DOCX file in one folder to PDF using a locally
installed document engine (LibreOffice). One PDF per input, same base name,
same folder. A file that fails to convert never stops the rest of the batch.

Run docx2pdf with no arguments in (or pointed at) the folder to convert, or
"docx2pdf check" to verify the engine is installed before a run.`,
	Args:          cobra.NoArgs,
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docx2pdf.yaml or ~/.config/docx2pdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docx2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docx2pdf"))
		}
	}

	viper.SetEnvPrefix("DOCX2PDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errAlreadyReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
