package table

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/sbinet/npyio"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

// FormatVersion is the table file layout written by Encode.
const FormatVersion = 1

// Kind says which table a File carries.
type Kind uint8

const (
	KindSparse  Kind = 1
	KindReverse Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindSparse:
		return "sparse"
	case KindReverse:
		return "reverse"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// File is the on-disk form of one table together with the register it was
// built for, so a reader can check it against the register it holds.
type File struct {
	Version uint32 `cbor:"1,keyasint"`
	Kind    Kind   `cbor:"2,keyasint"`
	Name    string `cbor:"3,keyasint"`

	Register       string `cbor:"4,keyasint"`
	Width          uint   `cbor:"5,keyasint"`
	Taps           []uint `cbor:"6,keyasint"`
	ForwardMask    uint32 `cbor:"7,keyasint"`
	InverseMask    uint32 `cbor:"8,keyasint"`
	SequenceLength uint32 `cbor:"9,keyasint"`

	Min     uint32   `cbor:"10,keyasint,omitempty"`
	Max     uint32   `cbor:"11,keyasint,omitempty"`
	Step    uint32   `cbor:"12,keyasint,omitempty"`
	Samples []Sample `cbor:"13,keyasint,omitempty"`

	Positions []uint32 `cbor:"14,keyasint,omitempty"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

var decMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{MaxArrayElements: math.MaxInt32}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

func newFile(kind Kind, name string, cfg lfsr.Config) *File {
	return &File{
		Version:        FormatVersion,
		Kind:           kind,
		Name:           name,
		Register:       cfg.Name,
		Width:          cfg.Width,
		Taps:           cfg.Taps,
		ForwardMask:    cfg.ForwardMask,
		InverseMask:    cfg.InverseMask,
		SequenceLength: cfg.SequenceLength,
	}
}

// NewSparseFile wraps a sparse table for encoding.
func NewSparseFile(name string, s *Sparse) *File {
	f := newFile(KindSparse, name, s.Register)
	f.Min, f.Max, f.Step = s.Min, s.Max, s.Step
	f.Samples = s.Samples
	return f
}

// NewReverseFile wraps a reverse table for encoding.
func NewReverseFile(name string, r *Reverse) *File {
	f := newFile(KindReverse, name, r.Register)
	f.Positions = r.Positions
	return f
}

// Config recompiles the register the table was built for and checks the
// recorded masks against it.
func (f *File) Config() (lfsr.Config, error) {
	cfg, err := lfsr.NewConfig(f.Register, f.Width, f.SequenceLength, f.Taps...)
	if err != nil {
		return lfsr.Config{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if cfg.ForwardMask != f.ForwardMask || cfg.InverseMask != f.InverseMask {
		return lfsr.Config{}, fmt.Errorf("%w: masks %#x/%#x do not match taps %v",
			ErrFormat, f.ForwardMask, f.InverseMask, f.Taps)
	}
	return cfg, nil
}

// Sparse returns the sparse table held by the file.
func (f *File) Sparse() (*Sparse, error) {
	if f.Kind != KindSparse {
		return nil, fmt.Errorf("%w: %s table %q is not sparse", ErrFormat, f.Kind, f.Name)
	}
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	if f.Step == 0 || f.Min > f.Max || f.Max > cfg.SequenceLength {
		return nil, fmt.Errorf("%w: range [%d, %d) step %d", ErrFormat, f.Min, f.Max, f.Step)
	}
	if want := SampleCount(f.Min, f.Max, f.Step); len(f.Samples) != want {
		return nil, fmt.Errorf("%w: %d samples, want %d", ErrFormat, len(f.Samples), want)
	}
	for i, s := range f.Samples {
		if want := f.Min + uint32(i)*f.Step; s.Position != want {
			return nil, fmt.Errorf("%w: sample %d at position %d, want %d", ErrFormat, i, s.Position, want)
		}
	}

	// Stored states must match a fresh walk of the window.
	want, err := BuildSparse(cfg, f.Min, f.Max, f.Step, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	for i, s := range f.Samples {
		if s.State != want.Samples[i].State {
			return nil, fmt.Errorf("%w: sample at position %d holds state %#x, want %#x",
				ErrFormat, s.Position, s.State, want.Samples[i].State)
		}
	}
	return &Sparse{Register: cfg, Min: f.Min, Max: f.Max, Step: f.Step, Samples: f.Samples}, nil
}

// Reverse returns the reverse table held by the file.
func (f *File) Reverse() (*Reverse, error) {
	if f.Kind != KindReverse {
		return nil, fmt.Errorf("%w: %s table %q is not reverse", ErrFormat, f.Kind, f.Name)
	}
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	if want := uint64(1) << cfg.Width; uint64(len(f.Positions)) != want {
		return nil, fmt.Errorf("%w: %d slots, want %d", ErrFormat, len(f.Positions), want)
	}
	if err := checkPositions(cfg, f.Positions); err != nil {
		return nil, err
	}
	return &Reverse{Register: cfg, Positions: f.Positions}, nil
}

// checkPositions walks the cycle and requires every visited state to hold
// its own position and every other slot, the lock-up state included, to be
// Unvisited.
func checkPositions(cfg lfsr.Config, positions []uint32) error {
	if positions[0] != Unvisited {
		return fmt.Errorf("%w: lock-up state holds position %d", ErrFormat, positions[0])
	}

	state := lfsr.StartState
	for pos := uint32(0); pos < cfg.SequenceLength; pos++ {
		if state == 0 {
			return fmt.Errorf("%w: walk reached the lock-up state at position %d", ErrFormat, pos)
		}
		if got := positions[state]; got != pos {
			return fmt.Errorf("%w: state %#x holds position %d, want %d", ErrFormat, state, got, pos)
		}
		state = cfg.Up(state)
	}

	visited := uint64(0)
	for _, p := range positions {
		if p != Unvisited {
			visited++
		}
	}
	if visited != uint64(cfg.SequenceLength) {
		return fmt.Errorf("%w: %d slots hold positions, want %d", ErrFormat, visited, cfg.SequenceLength)
	}
	return nil
}

// Encode writes f as deterministic CBOR: identical tables always produce
// identical bytes.
func Encode(w io.Writer, f *File) error {
	if err := encMode.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("table: encode %q: %w", f.Name, err)
	}
	return nil
}

// Decode reads one table file.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := decMode.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrFormat, f.Version, FormatVersion)
	}
	return &f, nil
}

// WriteFile encodes f to path.
func WriteFile(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ReadFile decodes the table file at path.
func ReadFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer in.Close()

	return Decode(in)
}

// WriteNPY exports the reverse table's slots as a one-dimensional NumPy
// uint32 array for offline analysis.
func WriteNPY(w io.Writer, r *Reverse) error {
	if err := npyio.Write(w, r.Positions); err != nil {
		return fmt.Errorf("table: write npy: %w", err)
	}
	return nil
}
