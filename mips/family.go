package mips

import (
	"fmt"

	"github.com/dunasim/duna/arch"
)

// NewFamily binds the MIPS register set and syscall convention at data
// width w.
func NewFamily(w arch.Width) arch.Family[Register] {
	return arch.Family[Register]{
		Name:      fmt.Sprintf("mips%d", w.Bits()),
		Width:     w,
		Registers: Registers(),
		Zero:      Zero,
		HasZero:   true,
		SP:        Sp,
		Syscalls:  Convention{},
	}
}

var (
	// Mips32 is the 32-bit MIPS family.
	Mips32 = NewFamily(arch.W32)
	// Mips64 is the 64-bit MIPS family.
	Mips64 = NewFamily(arch.W64)
)
