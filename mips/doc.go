// Package mips implements the MIPS instruction-set family for the
// simulation core: the register set, the system-call convention, and the
// three structural instruction formats.
//
// Each format builder synthesizes an instruction's evaluation procedure
// and its encoding together, so the two cannot drift apart. The package
// carries the small set of concrete operations needed to exercise every
// format and trap path; exhaustive per-opcode tables plug into the same
// builders.
package mips
