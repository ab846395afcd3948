// Package table builds the data behind LFSR position lookups by walking a
// register forward from state 1.
//
// Two tables are supported:
//   - Sparse: the states at positions min, min+step, ... below max. Small,
//     and enough for a bounded backward search (see index.Search).
//   - Reverse: the position of every state in the cycle, 2^width slots.
//     Building one is also the cycle-completeness check for the taps.
//
// VerifyCycle runs the same check in constant memory for registers whose
// reverse table would not fit.
//
// Tables are deterministic: the same register and range always produce the
// same contents, and Encode writes them as deterministic CBOR so a table
// built offline matches one built at process start byte for byte.
package table
