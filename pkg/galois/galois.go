// Package galois provides the built-in catalogue of maximal-length Galois
// registers, one for every width from 2 to 32 bits.
//
// The catalogue is parsed from an embedded tap definition file the first
// time it is needed and never changes afterwards.
package galois

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/lfsr"
	"github.com/OpenTraceLab/OpenTraceLFSR/pkg/tapdef"
)

// Source is the tap definition text the catalogue is built from.
//
//go:embed galois.taps
var Source string

var load = sync.OnceValues(func() (*tapdef.Catalog, error) {
	parser, err := tapdef.NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseString("galois.taps", Source)
	if err != nil {
		return nil, err
	}
	return tapdef.Resolve(file)
})

// Catalog returns the built-in catalogue. It panics if the embedded
// definitions are broken, which the package tests rule out.
func Catalog() *tapdef.Catalog {
	c, err := load()
	if err != nil {
		panic(fmt.Sprintf("galois: embedded catalogue: %v", err))
	}
	return c
}

// Width returns the catalogue register of the given width.
func Width(width uint) (lfsr.Config, error) {
	for _, cfg := range Catalog().Registers {
		if cfg.Width == width {
			return cfg, nil
		}
	}
	return lfsr.Config{}, fmt.Errorf("%w: no catalogue register %d bits wide", lfsr.ErrInvalidWidth, width)
}

// MustWidth is like Width but panics for widths outside [2, 32].
func MustWidth(width uint) lfsr.Config {
	cfg, err := Width(width)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Named returns the catalogue register with the given name, e.g. "Galois16".
func Named(name string) (lfsr.Config, error) {
	cfg, ok := Catalog().Register(name)
	if !ok {
		return lfsr.Config{}, fmt.Errorf("%w: %q", tapdef.ErrUnknownRegister, name)
	}
	return cfg, nil
}
