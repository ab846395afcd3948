package table

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

// Sample is the register state recorded at one sequence position.
type Sample struct {
	_ struct{} `cbor:",toarray"`

	Position uint32
	State    uint32
}

// Sparse holds states sampled every Step positions over [Min, Max).
// It is immutable once built.
type Sparse struct {
	Register lfsr.Config
	Min      uint32
	Max      uint32
	Step     uint32
	Samples  []Sample
}

// SampleCount returns ceil((max-min)/step), the number of samples a sparse
// table over [min, max) holds.
func SampleCount(min, max, step uint32) int {
	if step == 0 || max <= min {
		return 0
	}
	return int((uint64(max-min) + uint64(step) - 1) / uint64(step))
}

// BuildSparse walks cfg forward from position 0 and records the state at
// positions min, min+step, ... below max. A walk that comes back to state 1
// early fails with a *CycleError, since its samples would repeat.
func BuildSparse(cfg lfsr.Config, min, max, step uint32, opts *Options) (*Sparse, error) {
	opts, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	switch {
	case step == 0:
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidRange)
	case min > max:
		return nil, fmt.Errorf("%w: min %d is past max %d", ErrInvalidRange, min, max)
	case max > cfg.SequenceLength:
		return nil, fmt.Errorf("%w: max %d exceeds sequence length %d of %s",
			ErrInvalidRange, max, cfg.SequenceLength, cfg)
	}

	n := SampleCount(min, max, step)
	samples := make([]Sample, 0, n)

	var last uint64
	if n > 0 {
		last = uint64(min) + uint64(n-1)*uint64(step)
	}
	opts.Log.Debugf("sampling %s over [%d, %d) every %d: %d samples", cfg, min, max, step, n)

	state := lfsr.StartState
	var pos uint64
	for next := uint64(min); next < uint64(max); next += uint64(step) {
		for pos < next {
			state = cfg.Up(state)
			pos++
			if state == lfsr.StartState {
				return nil, &CycleError{Register: cfg.Name, Step: pos, State: state,
					Reason: "walk returned to state 1 before the sequence length"}
			}
			opts.report(pos, last)
		}
		samples = append(samples, Sample{Position: uint32(pos), State: state})
	}

	return &Sparse{
		Register: cfg,
		Min:      min,
		Max:      max,
		Step:     step,
		Samples:  samples,
	}, nil
}
