package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/table"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/tapdef"
)

const tableExt = ".lfsrtab"

var (
	genOutDir   string
	genNPY      bool
	genQuiet    bool
	genMaxWidth uint
)

var genCmd = &cobra.Command{
	Use:   "gen <defs-file>",
	Short: "Build the lookup tables declared in a tap definition file",
	Long: `Build every search and direct table declared in a tap definition file
and write each one to <name>.lfsrtab in the output directory.

A search declaration produces a sparse sample table for a window of the
sequence. A direct declaration produces a complete reverse table, which
holds one 32-bit slot per register state.

Example definition file:
  lfsr Galois16 width 16 taps 16, 14, 13, 11;
  search win16 using Galois16 from 10 to 20 step 5;
  direct rev16 using Galois16;

Examples:
  lfsr gen tables.taps
  lfsr gen tables.taps --out build/ --npy`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVarP(&genOutDir, "out", "o", ".",
		"output directory")
	genCmd.Flags().BoolVar(&genNPY, "npy", false,
		"also write reverse tables as NumPy .npy arrays")
	genCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false,
		"do not draw progress bars")
	genCmd.Flags().UintVar(&genMaxWidth, "max-width", table.DefaultMaxReverseWidth,
		"widest register a direct table may be built for")
}

func runGen(cmd *cobra.Command, args []string) error {
	catalog, err := tapdef.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load tap definitions: %w", err)
	}
	if len(catalog.Searches) == 0 && len(catalog.Directs) == 0 {
		return fmt.Errorf("%s declares no tables", args[0])
	}

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, req := range catalog.Searches {
		opts, finish, err := genOptions(req.Name, req.Register)
		if err != nil {
			return err
		}
		sparse, err := table.BuildSparse(req.Register, req.Min, req.Max, req.Step, opts)
		finish()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", req.Name, err)
		}

		path := filepath.Join(genOutDir, req.Name+tableExt)
		if err := table.WriteFile(path, table.NewSparseFile(req.Name, sparse)); err != nil {
			return err
		}
		fmt.Printf("Wrote %s: sparse %s [%d, %d) step %d, %d samples\n",
			path, req.Register.Name, req.Min, req.Max, req.Step, len(sparse.Samples))
	}

	for _, req := range catalog.Directs {
		opts, finish, err := genOptions(req.Name, req.Register)
		if err != nil {
			return err
		}
		rev, err := table.BuildReverse(req.Register, opts)
		finish()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", req.Name, err)
		}

		path := filepath.Join(genOutDir, req.Name+tableExt)
		if err := table.WriteFile(path, table.NewReverseFile(req.Name, rev)); err != nil {
			return err
		}
		fmt.Printf("Wrote %s: reverse %s, %d slots\n", path, req.Register.Name, len(rev.Positions))

		if genNPY {
			npyPath := filepath.Join(genOutDir, req.Name+".npy")
			if err := writeNPY(npyPath, rev); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", npyPath)
		}
	}
	return nil
}

// genOptions prepares build options for one table. finish must be called
// once the build returns.
func genOptions(name string, cfg lfsr.Config) (*table.Options, func(), error) {
	opts := table.DefaultOptions()
	opts.Log = logger.With("table", name)
	opts.ProgressEvery = 1 << 16
	opts.MaxReverseWidth = genMaxWidth
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	if genQuiet {
		return opts, func() {}, nil
	}
	bar := progressbar.Default(int64(cfg.SequenceLength), name)
	opts.Progress = func(done, total uint64) {
		if total > 0 {
			bar.ChangeMax64(int64(total))
		}
		_ = bar.Set64(int64(done))
	}
	return opts, func() { _ = bar.Finish() }, nil
}

func writeNPY(path string, rev *table.Reverse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := table.WriteNPY(f, rev); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
