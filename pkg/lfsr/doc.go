// Package lfsr implements maximal-length Galois linear-feedback shift
// registers between 2 and 32 bits wide.
//
// A register is described by a Config: its width, the tap positions feeding
// back into it, the two masks compiled from those taps and the length of the
// cycle the taps produce. A Config is an immutable value; the LFSR type pairs
// one with a mutable 32-bit state and is the counter callers advance.
//
// # Overview
//
// The package provides:
//   - CompileMasks: turns a TapSet into the forward and inverse feedback masks
//   - Config.Up / Config.Down: the forward and backward transition functions
//   - LFSR: a counter with Inc, Dec and State
//
// # Usage
//
//	cfg, err := lfsr.NewConfig("Galois16", 16, 65535, 16, 14, 13, 11)
//	if err != nil {
//		return err
//	}
//
//	r := lfsr.Default(cfg) // state 1, position 0
//	for i := 0; i < 10; i++ {
//		r.Inc()
//	}
//	fmt.Println(r) // 16-digit binary state at position 10
//
//	r.Dec() // back to position 9
//
// # Galois Transitions
//
// Counting up shifts the register right by one. If the bit shifted out was 1
// the forward mask is XORed into the result:
//
//	lsb := s & 1
//	s = (s >> 1) ^ (-lsb & forward)
//
// Counting down shifts left and XORs the inverse mask when the top stage
// (bit W-1) was set. The inverse mask is the forward mask rotated left by
// one position within the W-bit register, so it both clears the bit pushed
// out above the register and restores the bit that was shifted out at the
// bottom:
//
//	msb := (s >> (W - 1)) & 1
//	s = (s << 1) ^ (-msb & inverse)
//
// Both functions select the mask arithmetically rather than with a branch,
// so their timing does not depend on the state.
//
// # Lock-up State
//
// Zero is a fixed point of both transitions. It never appears in the cycle
// started from state 1 and a register seeded with 0 stays there forever.
//
// # Limitations
//
//   - Taps are not checked for maximality here; a tap set that produces a
//     short cycle is only detected by walking it (see package table).
//   - The highest tap must equal the register width, otherwise the
//     transition is not invertible and the Config is rejected.
//   - Not suitable as a source of cryptographic randomness: every state
//     determines the whole sequence.
package lfsr
