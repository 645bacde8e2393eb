package arch

import (
	"fmt"
)

// Register is implemented by a concrete family's register identifier
// type: a finite, fixed set of equality-comparable, printable values.
type Register interface {
	comparable
	fmt.Stringer
}

// Syscall identifies one of the system calls the privileged layer models.
type Syscall int

//go:generate go tool stringer -linecomment -type=Syscall
const (
	SyscallRead  = Syscall(0) // read
	SyscallWrite = Syscall(1) // write
	SyscallOpen  = Syscall(2) // open
	SyscallClose = Syscall(3) // close
	SyscallExit  = Syscall(4) // exit
)

// SyscallConvention fixes the register assignment used to invoke and
// return from a system call within one family.
type SyscallConvention[R Register] interface {
	// NumberReg is the register carrying the syscall number.
	NumberReg() R
	// ArgRegs are the registers carrying the syscall arguments.
	ArgRegs() [3]R
	// ReturnReg is the register receiving the syscall result.
	ReturnReg() R
	// SyscallFor decodes a syscall number, reporting whether the number
	// is a syscall the convention knows.
	SyscallFor(n SignedValue) (call Syscall, ok bool)
	// NumberFor is the inverse of SyscallFor.
	NumberFor(call Syscall) (n SignedValue, ok bool)
}

// Family binds the register, width and syscall capabilities of one
// (instruction set, data width) pair. A Family carries no runtime state;
// one value is resolved per pair and shared by every run.
type Family[R Register] struct {
	Name      string
	Width     Width
	Registers []R // the full architectural register set
	Zero      R   // hardwired zero register, meaningful when HasZero
	HasZero   bool
	SP        R // stack pointer register
	Syscalls  SyscallConvention[R]
}
