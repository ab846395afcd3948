package table

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

const (
	// DefaultMaxReverseWidth keeps a reverse table at or below 256 MiB.
	DefaultMaxReverseWidth = 26
	// DefaultProgressEvery is the number of steps between progress reports.
	DefaultProgressEvery = 1 << 20
)

// Options controls table construction.
type Options struct {
	// Log receives build milestones. Nil means no logging.
	Log *zap.SugaredLogger

	// Progress, if set, is called every ProgressEvery steps of a walk and
	// once more when the walk finishes.
	Progress      func(done, total uint64)
	ProgressEvery uint64

	// MaxReverseWidth bounds the widest register a reverse table is built
	// for. A reverse table holds 2^width uint32 slots.
	MaxReverseWidth uint
}

// DefaultOptions returns Options with sensible defaults for most use cases.
func DefaultOptions() *Options {
	return &Options{
		Log:             zap.NewNop().Sugar(),
		ProgressEvery:   DefaultProgressEvery,
		MaxReverseWidth: DefaultMaxReverseWidth,
	}
}

// Validate fills in zero fields with defaults and rejects impossible values.
func (o *Options) Validate() error {
	if o.Log == nil {
		o.Log = zap.NewNop().Sugar()
	}
	if o.ProgressEvery == 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if o.MaxReverseWidth == 0 {
		o.MaxReverseWidth = DefaultMaxReverseWidth
	}
	if o.MaxReverseWidth > lfsr.MaxWidth {
		return fmt.Errorf("table: max reverse width %d exceeds %d", o.MaxReverseWidth, lfsr.MaxWidth)
	}
	return nil
}

func resolve(opts *Options) (*Options, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// report forwards walk progress at the configured interval.
func (o *Options) report(done, total uint64) {
	if o.Progress != nil && (done%o.ProgressEvery == 0 || done == total) {
		o.Progress(done, total)
	}
}
