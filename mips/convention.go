package mips

import (
	"github.com/dunasim/duna/arch"
)

// Convention is the MIPS system-call register assignment: number in $v0,
// arguments in $a0 through $a2, result back in $v0.
type Convention struct{}

var syscallNumbers = map[arch.SignedValue]arch.Syscall{
	0:  arch.SyscallRead,
	1:  arch.SyscallWrite,
	2:  arch.SyscallOpen,
	3:  arch.SyscallClose,
	10: arch.SyscallExit,
}

func (Convention) NumberReg() Register {
	return V0
}

func (Convention) ArgRegs() [3]Register {
	return [3]Register{A0, A1, A2}
}

func (Convention) ReturnReg() Register {
	return V0
}

func (Convention) SyscallFor(n arch.SignedValue) (call arch.Syscall, ok bool) {
	call, ok = syscallNumbers[n]
	return
}

func (Convention) NumberFor(call arch.Syscall) (n arch.SignedValue, ok bool) {
	for number, c := range syscallNumbers {
		if c == call {
			return number, true
		}
	}
	return -1, false
}
