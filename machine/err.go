package machine

import (
	"errors"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/translate"
)

var f = translate.From

var (
	// ErrRevertUnsupported reports a privileged diff with no modeled
	// inverse, such as a file write or a termination.
	ErrRevertUnsupported = errors.New(f("revert unsupported"))
)

// ErrUnknownSyscall is raised, via panic, for a syscall number outside
// the modeled set. The guest used a feature the simulator does not model,
// so this is a host contract violation rather than a guest error.
type ErrUnknownSyscall arch.SignedValue

func (e ErrUnknownSyscall) Error() string {
	return f("unknown syscall %d", int64(e))
}

// ErrUnimplementedSyscall is raised, via panic, for a recognized syscall
// the simulator intentionally does not implement.
type ErrUnimplementedSyscall arch.Syscall

func (e ErrUnimplementedSyscall) Error() string {
	return f("syscall %v not implemented", arch.Syscall(e))
}

// ErrUnhandledTrap is raised, via panic, for trap kinds outside the
// simulator's scope.
type ErrUnhandledTrap TrapKind

func (e ErrUnhandledTrap) Error() string {
	return f("trap %v not handled", TrapKind(e))
}

// ErrBadFileDescriptor is raised, via panic, for a write to a descriptor
// other than stdout or stderr.
type ErrBadFileDescriptor int

func (e ErrBadFileDescriptor) Error() string {
	return f("file descriptor %d not open", int(e))
}
