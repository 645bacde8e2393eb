package machine

import (
	"github.com/dunasim/duna/arch"
)

// handleTrap resolves a trap raised by instruction evaluation. Only the
// system-call trap reaches the privileged layer. Integer overflow takes
// the default resolution, a nil privileged diff, leaving the destination
// register untouched. Any other kind is outside the simulator's modeled
// scope.
func (s *ProgramState[R]) handleTrap(kind TrapKind) *PrivDiff {
	switch kind {
	case TrapSyscall:
		return s.dispatchSyscall()
	case TrapIntOverflow:
		return nil
	default:
		panic(ErrUnhandledTrap(kind))
	}
}

// dispatchSyscall decodes the pending system call per the family's
// calling convention and produces the privileged effect. An unknown
// number, or a recognized syscall the simulator does not implement, is a
// host contract violation and aborts.
func (s *ProgramState[R]) dispatchSyscall() *PrivDiff {
	conv := s.Family.Syscalls
	w := s.Family.Width
	rf := s.User.Regs

	number := w.Signed(rf.Read(conv.NumberReg()))
	args := conv.ArgRegs()
	a0 := rf.Read(args[0])
	a1 := rf.Read(args[1])
	a2 := rf.Read(args[2])

	call, ok := conv.SyscallFor(number)
	if !ok {
		panic(ErrUnknownSyscall(number))
	}

	switch call {
	case arch.SyscallWrite:
		return s.syscallWrite(a0, a1, a2)
	case arch.SyscallExit:
		return &PrivDiff{
			Kind:  PrivTerminate,
			Cause: Exit(uint32(w.Unsigned(a0))),
		}
	default:
		panic(ErrUnimplementedSyscall(call))
	}
}

// syscallWrite reads count bytes starting at the byte address in buf and
// routes them to the file descriptor in fd.
func (s *ProgramState[R]) syscallWrite(fd, buf, count arch.RegValue) *PrivDiff {
	w := s.Family.Width
	base := w.ByteAddr(buf)
	n := uint64(w.Unsigned(count))

	data := make([]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		data = append(data, s.User.Mem.ByteAt(base+arch.ByteAddr(i)))
	}

	return &PrivDiff{
		Kind: PrivFileWrite,
		Fd:   int(w.Unsigned(fd)),
		Data: data,
	}
}
