// Package arch defines the width and architecture abstractions shared by
// every simulated instruction-set family.
//
// A Family value binds the register identifier type, the data width, and
// the syscall calling convention of one (instruction set, width) pair.
// The Width interface carries the signed, unsigned, register-value, and
// byte-address representations along with the lossless conversions
// between them, so family semantics are written once and run at either
// width.
//
// The instruction capability of a family is expressed by satisfying the
// machine.Instruction interface with the family's concrete instruction
// type; see the mips package for the reference implementation.
package arch
