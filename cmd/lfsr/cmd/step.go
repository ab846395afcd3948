package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

var (
	stepStart uint64
	stepCount int
	stepDown  bool
)

var stepCmd = &cobra.Command{
	Use:   "step <register>",
	Short: "Print successive states of a register",
	Long: `Step a register from a sequence position and print each state in hex
and binary along with its position.

Examples:
  lfsr step Galois8
  lfsr step Galois32 --start 1000 --count 4
  lfsr step Galois16 --down --count 3`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepCmd.Flags().Uint64Var(&stepStart, "start", 0,
		"sequence position to start from")
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 16,
		"number of states to print")
	stepCmd.Flags().BoolVar(&stepDown, "down", false,
		"count down instead of up")
}

func runStep(cmd *cobra.Command, args []string) error {
	if stepCount < 0 {
		return fmt.Errorf("count must not be negative, got %d", stepCount)
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}
	cfg, err := findRegister(catalog, args[0])
	if err != nil {
		return err
	}

	length := uint64(cfg.SequenceLength)
	pos := stepStart % length
	r := lfsr.New(cfg, cfg.StateAt(pos))

	if verbose {
		fmt.Printf("%s forward=0x%08X inverse=0x%08X length=%d\n\n",
			cfg, cfg.ForwardMask, cfg.InverseMask, cfg.SequenceLength)
	}

	digits := int(cfg.Width+3) / 4
	for i := 0; i < stepCount; i++ {
		fmt.Printf("%10d  0x%0*X  %s\n", pos, digits, r.State(), r)
		if stepDown {
			r.Dec()
			pos = (pos + length - 1) % length
		} else {
			r.Inc()
			pos = (pos + 1) % length
		}
	}
	return nil
}
