// Package tapdef reads tap definition files: plain-text declarations of
// Galois registers and of the inversion tables to build for them.
//
// # Syntax
//
//	# registers: name, width, optional cycle length, taps (1-based stages)
//	lfsr Galois16 width 16 length 65535 taps 16, 14, 13, 11;
//	lfsr Galois32 width 32 taps 32, 30, 26, 25;
//
//	# sparse sample table over positions [from, to), one sample every step
//	search win32 using Galois32 from 99_999_000 to 100_001_000 step 100;
//
//	# complete state -> position table
//	direct rev16 using Galois16;
//
// Keywords are case-insensitive, comments start with '#' or '--', integers
// may be decimal or 0x hex with '_' separators. When length is omitted it
// defaults to 2^width - 1.
//
// Parsing produces a File (the syntax tree); Resolve turns it into a Catalog
// of compiled lfsr.Config values and table requests, reporting the source
// position of the first bad declaration.
package tapdef
