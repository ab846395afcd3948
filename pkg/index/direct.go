package index

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/table"
)

// Direct answers position lookups with a single slice index into a reverse
// table.
type Direct struct {
	cfg       lfsr.Config
	positions []uint32
}

// NewDirect indexes a reverse table. cfg must be the register the table was
// built for.
func NewDirect(cfg lfsr.Config, t *table.Reverse) (*Direct, error) {
	if !cfg.Equal(t.Register) {
		return nil, fmt.Errorf("%w: reverse table built for %s, not %s", ErrConfigMismatch, t.Register, cfg)
	}
	if want := uint64(1) << cfg.Width; uint64(len(t.Positions)) != want {
		return nil, fmt.Errorf("%w: reverse table has %d slots, want %d", ErrConfigMismatch, len(t.Positions), want)
	}
	return &Direct{cfg: cfg, positions: t.Positions}, nil
}

// Lookup returns the position of a state the register can produce from
// state 1. Passing the lock-up state or a state wider than the register
// violates the table's contract and panics.
func (d *Direct) Lookup(state uint32) uint32 {
	pos, ok := d.TryLookup(state)
	if !ok {
		panic(fmt.Sprintf("index: state %#x is outside the cycle of %s", state, d.cfg))
	}
	return pos
}

// TryLookup is Lookup for untrusted input: it reports false instead of
// panicking.
func (d *Direct) TryLookup(state uint32) (uint32, bool) {
	if uint64(state) >= uint64(len(d.positions)) {
		return 0, false
	}
	pos := d.positions[state]
	return pos, pos != table.Unvisited
}

// LookupCounter is Lookup on a counter's current state.
func (d *Direct) LookupCounter(c lfsr.Counter) uint32 {
	return d.Lookup(c.State())
}
