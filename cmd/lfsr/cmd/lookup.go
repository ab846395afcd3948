package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/index"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/table"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <table-file> <state>",
	Short: "Find the sequence position of a register state",
	Long: `Load a table written by 'lfsr gen' and print the sequence position of a
register state, or "absent" when the table has no answer for it. The
state may be decimal, 0x hex or 0b binary.

Examples:
  lfsr lookup rev16.lfsrtab 0x5a
  lfsr lookup win32.lfsrtab 0xA300`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	f, err := table.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read table: %w", err)
	}

	v, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid state %q: %w", args[1], err)
	}
	state := uint32(v)

	var (
		pos uint32
		ok  bool
	)
	switch f.Kind {
	case table.KindSparse:
		sparse, err := f.Sparse()
		if err != nil {
			return err
		}
		idx, err := index.NewSearch(sparse.Register, sparse)
		if err != nil {
			return err
		}
		pos, ok = idx.Lookup(state)
	case table.KindReverse:
		rev, err := f.Reverse()
		if err != nil {
			return err
		}
		idx, err := index.NewDirect(rev.Register, rev)
		if err != nil {
			return err
		}
		// Command-line input is untrusted; report instead of panicking.
		pos, ok = idx.TryLookup(state)
	default:
		return fmt.Errorf("%w: unknown table kind %s", table.ErrFormat, f.Kind)
	}

	if verbose {
		fmt.Printf("Table %s: %s table for %s\n", f.Name, f.Kind, f.Register)
	}
	if !ok {
		fmt.Println("absent")
		return nil
	}
	fmt.Println(pos)
	return nil
}
