package tapdef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
)

var (
	ErrUnknownRegister = errors.New("tapdef: unknown register")
	ErrDuplicateName   = errors.New("tapdef: duplicate name")
	ErrInvalidRange    = errors.New("tapdef: invalid range")
	ErrInvalidNumber   = errors.New("tapdef: invalid number")
)

// SearchRequest asks for a sparse sample table of Register over [Min, Max)
// taken every Step positions.
type SearchRequest struct {
	Name     string
	Register lfsr.Config
	Min      uint32
	Max      uint32
	Step     uint32
}

// DirectRequest asks for a complete reverse table of Register.
type DirectRequest struct {
	Name     string
	Register lfsr.Config
}

// Catalog is a resolved tap definition file. It is read-only once built.
type Catalog struct {
	Registers []lfsr.Config
	Searches  []SearchRequest
	Directs   []DirectRequest

	registers map[string]int
}

// Register finds a register by name, ignoring case.
func (c *Catalog) Register(name string) (lfsr.Config, bool) {
	i, ok := c.registers[strings.ToLower(name)]
	if !ok {
		return lfsr.Config{}, false
	}
	return c.Registers[i], true
}

// Resolve compiles every register declaration and checks that table
// declarations refer to declared registers with usable ranges. Names share
// one case-insensitive namespace.
func Resolve(f *File) (*Catalog, error) {
	c := &Catalog{registers: make(map[string]int)}
	names := make(map[string]struct{})

	claim := func(pos fmt.Stringer, name string) error {
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			return fmt.Errorf("%s: %w: %q", pos, ErrDuplicateName, name)
		}
		names[key] = struct{}{}
		return nil
	}

	// Registers first so table declarations may precede the register they use.
	for _, reg := range f.Registers() {
		if err := claim(reg.Pos, reg.Name); err != nil {
			return nil, err
		}
		cfg, err := resolveRegister(reg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", reg.Pos, err)
		}
		c.registers[strings.ToLower(reg.Name)] = len(c.Registers)
		c.Registers = append(c.Registers, cfg)
	}

	for _, decl := range f.Decls {
		switch {
		case decl.Search != nil:
			s := decl.Search
			if err := claim(s.Pos, s.Name); err != nil {
				return nil, err
			}
			req, err := c.resolveSearch(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Pos, err)
			}
			c.Searches = append(c.Searches, req)

		case decl.Direct != nil:
			d := decl.Direct
			if err := claim(d.Pos, d.Name); err != nil {
				return nil, err
			}
			cfg, ok := c.Register(d.Register)
			if !ok {
				return nil, fmt.Errorf("%s: %w: %q", d.Pos, ErrUnknownRegister, d.Register)
			}
			c.Directs = append(c.Directs, DirectRequest{Name: d.Name, Register: cfg})
		}
	}

	return c, nil
}

func resolveRegister(reg *RegisterDecl) (lfsr.Config, error) {
	width, err := parseUint(reg.Width, 8)
	if err != nil {
		return lfsr.Config{}, fmt.Errorf("width: %w", err)
	}

	taps := make([]uint, 0, len(reg.Taps))
	for _, t := range reg.Taps {
		tap, err := parseUint(t, 8)
		if err != nil {
			return lfsr.Config{}, fmt.Errorf("tap: %w", err)
		}
		taps = append(taps, uint(tap))
	}

	var length uint64
	if reg.Length == "" {
		if width >= lfsr.MinWidth && width <= lfsr.MaxWidth {
			length = (uint64(1) << width) - 1
		}
	} else {
		length, err = parseUint(reg.Length, 32)
		if err != nil {
			return lfsr.Config{}, fmt.Errorf("length: %w", err)
		}
	}

	return lfsr.NewConfig(reg.Name, uint(width), uint32(length), taps...)
}

func (c *Catalog) resolveSearch(s *SearchDecl) (SearchRequest, error) {
	cfg, ok := c.Register(s.Register)
	if !ok {
		return SearchRequest{}, fmt.Errorf("%w: %q", ErrUnknownRegister, s.Register)
	}

	var bounds [3]uint64
	for i, field := range []string{s.From, s.To, s.Step} {
		v, err := parseUint(field, 32)
		if err != nil {
			return SearchRequest{}, err
		}
		bounds[i] = v
	}
	from, to, step := bounds[0], bounds[1], bounds[2]

	switch {
	case step == 0:
		return SearchRequest{}, fmt.Errorf("%w: step must be positive", ErrInvalidRange)
	case from > to:
		return SearchRequest{}, fmt.Errorf("%w: from %d is past to %d", ErrInvalidRange, from, to)
	case to > uint64(cfg.SequenceLength):
		return SearchRequest{}, fmt.Errorf("%w: to %d exceeds sequence length %d of %s",
			ErrInvalidRange, to, cfg.SequenceLength, cfg.Name)
	}

	return SearchRequest{
		Name:     s.Name,
		Register: cfg,
		Min:      uint32(from),
		Max:      uint32(to),
		Step:     uint32(step),
	}, nil
}

// parseUint accepts decimal or 0x-prefixed hex with '_' separators. Leading
// zeros are decimal, not octal.
func parseUint(s string, bits int) (uint64, error) {
	base, digits := 10, s
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		base, digits = 16, s[2:]
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), base, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}
