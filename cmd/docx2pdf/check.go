package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maruosan78/docx2pdf/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that a conversion engine is installed",
	Long: `Check probes for an installed conversion engine without converting
anything, so missing prerequisites surface before a batch run instead of
midway through one.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("engine", "", "explicit engine binary (default: detect soffice, then libreoffice)")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	enginePath, _ := cmd.Flags().GetString("engine")
	if enginePath == "" {
		enginePath = viper.GetString("engine_path")
	}

	var (
		eng engine.Engine
		err error
	)
	if enginePath != "" {
		eng, err = engine.New(enginePath)
	} else {
		eng, err = engine.Detect()
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = eng.Shutdown()
	}()

	fmt.Fprintf(os.Stdout, "Conversion engine found: %s\n", eng.Name())
	return nil
}
