package table

import (
	"fmt"
	"math"
	"time"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

// Unvisited marks reverse table slots no walk position landed on. Slot 0,
// the lock-up state, always holds it. It can never be a real position since
// sequence lengths are at most 2^32-1.
const Unvisited uint32 = math.MaxUint32

// Reverse maps every state of a register to the position at which the
// cycle from state 1 visits it. It is immutable once built.
type Reverse struct {
	Register  lfsr.Config
	Positions []uint32
}

// Position returns the recorded position of state, or false for the lock-up
// state, unvisited slots and states wider than the register.
func (r *Reverse) Position(state uint32) (uint32, bool) {
	if uint64(state) >= uint64(len(r.Positions)) {
		return 0, false
	}
	pos := r.Positions[state]
	return pos, pos != Unvisited
}

// BuildReverse walks cfg from state 1 through its whole sequence and
// inverts the walk into a state -> position table. The walk doubles as the
// cycle-completeness check: it fails with a *CycleError if a state repeats,
// if the lock-up state appears, or if one more step does not land back on
// state 1.
func BuildReverse(cfg lfsr.Config, opts *Options) (*Reverse, error) {
	opts, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Width > opts.MaxReverseWidth {
		return nil, fmt.Errorf("%w: %s needs 2^%d slots, limit is 2^%d",
			ErrTableTooLarge, cfg, cfg.Width, opts.MaxReverseWidth)
	}

	started := time.Now()
	size := uint64(1) << cfg.Width
	total := uint64(cfg.SequenceLength)
	opts.Log.Debugf("building reverse table for %s: %d slots", cfg, size)

	positions := make([]uint32, size)
	for i := range positions {
		positions[i] = Unvisited
	}

	state := lfsr.StartState
	for pos := uint64(0); pos < total; pos++ {
		if state == 0 {
			return nil, &CycleError{Register: cfg.Name, Step: pos, State: state,
				Reason: "walk reached the lock-up state"}
		}
		if prev := positions[state]; prev != Unvisited {
			return nil, &CycleError{Register: cfg.Name, Step: pos, State: state,
				Reason: fmt.Sprintf("state already seen at position %d, cycle shorter than %d", prev, total)}
		}
		positions[state] = uint32(pos)
		state = cfg.Up(state)
		opts.report(pos+1, total)
	}
	if state != lfsr.StartState {
		return nil, &CycleError{Register: cfg.Name, Step: total, State: state,
			Reason: "walk did not return to state 1"}
	}

	opts.Log.Infof("reverse table for %s built: %d positions in %s", cfg, total, time.Since(started))
	return &Reverse{Register: cfg, Positions: positions}, nil
}

// VerifyCycle checks that the cycle from state 1 has exactly the declared
// sequence length without materializing a table, so it also covers widths
// too large for BuildReverse. Because the transition is a bijection, the
// first repeated state of the walk is state 1 itself.
func VerifyCycle(cfg lfsr.Config, opts *Options) error {
	opts, err := resolve(opts)
	if err != nil {
		return err
	}

	started := time.Now()
	total := uint64(cfg.SequenceLength)
	state := cfg.Up(lfsr.StartState)
	steps := uint64(1)
	opts.report(steps, total)

	for state != lfsr.StartState {
		if state == 0 {
			return &CycleError{Register: cfg.Name, Step: steps, State: state,
				Reason: "walk reached the lock-up state"}
		}
		if steps >= total {
			return &CycleError{Register: cfg.Name, Step: steps, State: state,
				Reason: "walk did not return to state 1"}
		}
		state = cfg.Up(state)
		steps++
		opts.report(steps, total)
	}
	if steps != total {
		return &CycleError{Register: cfg.Name, Step: steps, State: state,
			Reason: fmt.Sprintf("cycle closed after %d steps, want %d", steps, total)}
	}

	opts.Log.Infof("%s cycle verified: %d steps in %s", cfg, total, time.Since(started))
	return nil
}
