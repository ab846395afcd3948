// Package index inverts an LFSR: given a state, it recovers how many steps
// forward of state 1 the register is.
//
// Search works from a sparse table and answers only for positions inside
// the sampled window. Direct works from a complete reverse table and
// answers for every state in the cycle in constant time.
//
// Both are read-only after construction and safe for concurrent use.
package index

import "errors"

// ErrConfigMismatch reports a table built for a different register than the
// one it is being used with.
var ErrConfigMismatch = errors.New("index: table does not match register")
