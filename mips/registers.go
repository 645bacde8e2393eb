package mips

import (
	"fmt"

	"github.com/dunasim/duna/arch"
)

// Register identifies one of the 32 MIPS general-purpose registers.
type Register uint8

const (
	Zero Register = iota // hardwired zero
	At
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	Gp
	Sp
	Fp
	Ra
)

var regNames = [...]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

func (r Register) String() string {
	if int(r) < len(regNames) {
		return "$" + regNames[r]
	}
	return fmt.Sprintf("$%d", uint8(r))
}

// bits returns the register number right-aligned in a five-bit field.
func (r Register) bits() arch.BitStr32 {
	return arch.Bits(uint32(r), 5)
}

// Registers enumerates the architectural register set.
func Registers() []Register {
	regs := make([]Register, len(regNames))
	for i := range regs {
		regs[i] = Register(i)
	}
	return regs
}
