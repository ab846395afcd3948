package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known registers",
	Long: `List every register in the tap catalogue with its width, taps,
feedback masks and sequence length.

Examples:
  lfsr list
  lfsr list --taps custom.taps`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %5s  %-18s %-10s %-10s %s\n",
		"NAME", "WIDTH", "TAPS", "FORWARD", "INVERSE", "LENGTH")
	for _, cfg := range catalog.Registers {
		fmt.Printf("%-12s %5d  %-18s 0x%08X 0x%08X %d\n",
			cfg.Name, cfg.Width, cfg.Taps, cfg.ForwardMask, cfg.InverseMask, cfg.SequenceLength)
	}

	if verbose {
		fmt.Printf("\n%d register(s)\n", len(catalog.Registers))
	}
	return nil
}
