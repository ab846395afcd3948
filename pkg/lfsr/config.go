package lfsr

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// MinWidth is the narrowest supported register.
	MinWidth = 2
	// MaxWidth is the widest supported register; the state fits a uint32.
	MaxWidth = 32
	// StartState is the canonical state at sequence position 0.
	StartState uint32 = 1
)

var (
	ErrInvalidWidth  = errors.New("lfsr: invalid width")
	ErrInvalidTaps   = errors.New("lfsr: invalid taps")
	ErrInvalidLength = errors.New("lfsr: invalid sequence length")
)

// TapSet lists the 1-based register stages that feed back into the shift.
type TapSet []uint

func (t TapSet) String() string {
	return fmt.Sprint([]uint(t))
}

// CompileMasks derives the forward and inverse feedback masks for a register
// of the given width. The forward mask has bit tap-1 set for every tap; the
// inverse mask is the forward mask rotated left by one within width bits.
func CompileMasks(width uint, taps TapSet) (forward, inverse uint32, err error) {
	if width < MinWidth || width > MaxWidth {
		return 0, 0, fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidWidth, width, MinWidth, MaxWidth)
	}
	if len(taps) == 0 {
		return 0, 0, fmt.Errorf("%w: empty tap set", ErrInvalidTaps)
	}

	var top uint
	for _, tap := range taps {
		if tap < 1 || tap > width {
			return 0, 0, fmt.Errorf("%w: tap %d outside [1, %d]", ErrInvalidTaps, tap, width)
		}
		bit := uint32(1) << (tap - 1)
		if forward&bit != 0 {
			return 0, 0, fmt.Errorf("%w: duplicate tap %d", ErrInvalidTaps, tap)
		}
		forward |= bit
		top = max(top, tap)
	}
	if top != width {
		return 0, 0, fmt.Errorf("%w: highest tap %d, want %d", ErrInvalidTaps, top, width)
	}

	inverse = (forward << 1) | ((forward >> (width - 1)) & 1)
	return forward, inverse, nil
}

// Config is a compiled register configuration. The zero value is not usable;
// build one with NewConfig.
type Config struct {
	Name           string
	Width          uint
	Taps           TapSet
	ForwardMask    uint32
	InverseMask    uint32
	SequenceLength uint32
}

// NewConfig compiles taps for a register of the given width. sequenceLength
// is the cycle length the taps are known to produce; it is trusted, not
// recomputed, but must lie in [1, 2^width-1].
func NewConfig(name string, width uint, sequenceLength uint32, taps ...uint) (Config, error) {
	fwd, inv, err := CompileMasks(width, taps)
	if err != nil {
		return Config{}, err
	}
	if sequenceLength == 0 || sequenceLength > mask(width) {
		return Config{}, fmt.Errorf("%w: %d for width %d", ErrInvalidLength, sequenceLength, width)
	}

	sorted := slices.Clone(taps)
	slices.SortFunc(sorted, func(a, b uint) int { return int(b) - int(a) })

	return Config{
		Name:           name,
		Width:          width,
		Taps:           sorted,
		ForwardMask:    fwd,
		InverseMask:    inv,
		SequenceLength: sequenceLength,
	}, nil
}

// MustConfig is like NewConfig but panics on error. It is meant for
// configuration tables known to be valid.
func MustConfig(name string, width uint, sequenceLength uint32, taps ...uint) Config {
	cfg, err := NewConfig(name, width, sequenceLength, taps...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Up returns the state one step forward of s.
func (c Config) Up(s uint32) uint32 {
	lsb := s & 1
	s >>= 1
	s ^= -lsb & c.ForwardMask
	return s
}

// Down returns the state one step backward of s. Down(Up(s)) == s for every
// s below 2^Width.
func (c Config) Down(s uint32) uint32 {
	msb := (s >> (c.Width - 1)) & 1
	s <<= 1
	s ^= -msb & c.InverseMask
	return s
}

// Advance applies Up n times.
func (c Config) Advance(s uint32, n uint64) uint32 {
	for ; n > 0; n-- {
		s = c.Up(s)
	}
	return s
}

// Rewind applies Down n times.
func (c Config) Rewind(s uint32, n uint64) uint32 {
	for ; n > 0; n-- {
		s = c.Down(s)
	}
	return s
}

// StateAt returns the state found pos steps forward of StartState. Positions
// wrap at the sequence length.
func (c Config) StateAt(pos uint64) uint32 {
	return c.Advance(StartState, pos%uint64(c.SequenceLength))
}

// Mask returns 2^Width - 1, the largest representable state.
func (c Config) Mask() uint32 {
	return mask(c.Width)
}

// Contains reports whether s fits in the register.
func (c Config) Contains(s uint32) bool {
	return s&^c.Mask() == 0
}

// Equal reports whether two configs produce the same transition and cycle.
// Names are ignored.
func (c Config) Equal(o Config) bool {
	return c.Width == o.Width &&
		c.ForwardMask == o.ForwardMask &&
		c.SequenceLength == o.SequenceLength
}

func (c Config) String() string {
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("Galois%d", c.Width)
	}
	return fmt.Sprintf("%s(width=%d taps=%v)", name, c.Width, c.Taps)
}

func mask(width uint) uint32 {
	return uint32((uint64(1) << width) - 1)
}
