package lfsr

import "fmt"

// Counter is the capability surface shared by every register: read the state
// and move it one step in either direction.
type Counter interface {
	State() uint32
	Inc()
	Dec()
}

// LFSR is a Galois register with a current state. It is not safe for
// concurrent mutation; callers normally own one per logical counter.
type LFSR struct {
	cfg   Config
	state uint32
}

var _ Counter = (*LFSR)(nil)

// New creates a register seeded with initial. Seeding with 0 parks the
// register in the lock-up state.
func New(cfg Config, initial uint32) *LFSR {
	return &LFSR{cfg: cfg, state: initial}
}

// Default creates a register at StartState (position 0).
func Default(cfg Config) *LFSR {
	return New(cfg, StartState)
}

// State reports the current register contents.
func (r *LFSR) State() uint32 {
	return r.state
}

// SetState overwrites the register contents.
func (r *LFSR) SetState(s uint32) {
	r.state = s
}

// Inc counts up one step.
func (r *LFSR) Inc() {
	r.state = r.cfg.Up(r.state)
}

// Dec counts down one step.
func (r *LFSR) Dec() {
	r.state = r.cfg.Down(r.state)
}

// SequenceLength is the cycle length of the register's configuration.
func (r *LFSR) SequenceLength() uint32 {
	return r.cfg.SequenceLength
}

// Config returns the configuration driving the register.
func (r *LFSR) Config() Config {
	return r.cfg
}

// String renders the state as Width binary digits, most significant first.
func (r *LFSR) String() string {
	return fmt.Sprintf("%0*b", int(r.cfg.Width), r.state)
}
