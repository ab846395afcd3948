package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/galois"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/tapdef"
)

var (
	// Global flags
	verbose  bool
	tapsFile string

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "lfsr",
	Short: "Galois LFSR counters and position lookup tables",
	Long: `A tool for maximum-length Galois LFSR counters: step registers,
verify that tap sets cover the full cycle, build lookup tables and
recover sequence positions from register states.

Examples:
  lfsr list                                   # Show the built-in registers
  lfsr step Galois16 --count 8                # First eight Galois16 states
  lfsr verify Galois24                        # Walk the full Galois24 cycle
  lfsr gen tables.taps --out build/           # Build tables declared in a file
  lfsr lookup build/rev16.lfsrtab 0x5a        # Position of a Galois16 state`,
	Version:           "0.1.0",
	PersistentPreRunE: setupLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Syncing a console logger can fail on some platforms; nothing to do about it.
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&tapsFile, "taps", "",
		"tap definition file (default: built-in Galois2..Galois32 catalogue)")
}

func setupLogger(cmd *cobra.Command, args []string) error {
	var (
		l   *zap.Logger
		err error
	)
	if verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l.Sugar()
	return nil
}

// loadCatalog returns the registers named by --taps, or the built-in
// catalogue when the flag is unset.
func loadCatalog() (*tapdef.Catalog, error) {
	if tapsFile == "" {
		return galois.Catalog(), nil
	}
	logger.Debugw("loading tap definitions", "file", tapsFile)
	catalog, err := tapdef.LoadFile(tapsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tap definitions: %w", err)
	}
	return catalog, nil
}

func findRegister(catalog *tapdef.Catalog, name string) (lfsr.Config, error) {
	cfg, ok := catalog.Register(name)
	if !ok {
		return lfsr.Config{}, fmt.Errorf("%w: %q", tapdef.ErrUnknownRegister, name)
	}
	return cfg, nil
}
