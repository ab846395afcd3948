package index

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/table"
)

// Search finds positions inside a sampled window by stepping a state
// backwards until it lands on a sample. A lookup costs at most Step
// backward steps.
type Search struct {
	cfg      lfsr.Config
	min, max uint32
	step     uint32
	samples  map[uint32]uint32 // state -> position
}

// NewSearch indexes a sparse table. cfg must be the register the table was
// built for.
func NewSearch(cfg lfsr.Config, t *table.Sparse) (*Search, error) {
	if !cfg.Equal(t.Register) {
		return nil, fmt.Errorf("%w: sparse table built for %s, not %s", ErrConfigMismatch, t.Register, cfg)
	}

	samples := make(map[uint32]uint32, len(t.Samples))
	for _, s := range t.Samples {
		// First sample wins, as a scan in position order would find it.
		if _, dup := samples[s.State]; !dup {
			samples[s.State] = s.Position
		}
	}

	return &Search{
		cfg:     cfg,
		min:     t.Min,
		max:     t.Max,
		step:    t.Step,
		samples: samples,
	}, nil
}

// Lookup returns the position of state, or false when the state's position
// lies outside the sampled window. Absence is an ordinary outcome.
func (s *Search) Lookup(state uint32) (uint32, bool) {
	if state == 0 || !s.cfg.Contains(state) {
		return 0, false
	}

	candidate := state
	for offset := uint32(0); offset < s.step; offset++ {
		if sampled, ok := s.samples[candidate]; ok {
			// Backing off past position 0 wraps to the end of the cycle.
			pos := uint32((uint64(sampled) + uint64(offset)) % uint64(s.cfg.SequenceLength))
			if pos < s.min || pos >= s.max {
				return 0, false
			}
			return pos, true
		}
		candidate = s.cfg.Down(candidate)
	}
	return 0, false
}

// LookupCounter is Lookup on a counter's current state.
func (s *Search) LookupCounter(c lfsr.Counter) (uint32, bool) {
	return s.Lookup(c.State())
}

// Window returns the half-open position range the index answers for.
func (s *Search) Window() (min, max uint32) {
	return s.min, s.max
}
