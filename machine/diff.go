package machine

import (
	"github.com/dunasim/duna/arch"
)

// PcDiff records a program counter change.
type PcDiff struct {
	Old arch.ByteAddr
	New arch.ByteAddr
}

// RegDiff records a change to a single register.
type RegDiff[R arch.Register] struct {
	Reg R
	Old arch.RegValue
	New arch.RegValue
}

// MemDiff records a change to a single memory word.
type MemDiff struct {
	Addr arch.WordAddr
	Old  uint32
	New  uint32
}

// UserDiff is the only legal mutation of user-visible state: a pc change
// plus at most one register change and at most one memory word change.
// Apply and revert are mutual inverses; the caller applies a diff once
// and reverts it at most once.
type UserDiff[R arch.Register] struct {
	Pc  PcDiff
	Reg *RegDiff[R]
	Mem *MemDiff
}

func newDiff[R arch.Register](us *UserState[R], newPc arch.ByteAddr, reg *RegDiff[R], mem *MemDiff) UserDiff[R] {
	return UserDiff[R]{
		Pc:  PcDiff{Old: us.Pc, New: newPc},
		Reg: reg,
		Mem: mem,
	}
}

// Noop advances the pc past the instruction and changes nothing else.
func Noop[R arch.Register](us *UserState[R]) UserDiff[R] {
	return newDiff(us, us.Pc.Plus4(), nil, nil)
}

// PcUpdate moves the pc to newPc, as a taken branch or jump does.
func PcUpdate[R arch.Register](us *UserState[R], newPc arch.ByteAddr) UserDiff[R] {
	return newDiff(us, newPc, nil, nil)
}

// RegWrite stores val into reg and moves the pc to newPc.
func RegWrite[R arch.Register](us *UserState[R], newPc arch.ByteAddr, reg R, val arch.RegValue) UserDiff[R] {
	return newDiff(us, newPc, &RegDiff[R]{
		Reg: reg,
		Old: us.Regs.Read(reg),
		New: val,
	}, nil)
}

// RegWriteAdvance stores val into reg and advances the pc by one
// instruction width, the shape of every ordinary computational result.
func RegWriteAdvance[R arch.Register](us *UserState[R], reg R, val arch.RegValue) UserDiff[R] {
	return RegWrite(us, us.Pc.Plus4(), reg, val)
}

// MemWrite stores val into the word at addr and advances the pc by one
// instruction width.
func MemWrite[R arch.Register](us *UserState[R], addr arch.WordAddr, val uint32) UserDiff[R] {
	return newDiff(us, us.Pc.Plus4(), nil, &MemDiff{
		Addr: addr,
		Old:  us.Mem.WordAt(addr),
		New:  val,
	})
}

// TrapKind classifies a control transfer from instruction evaluation to
// the privileged layer.
type TrapKind int

const (
	// TrapNone marks an InstResult carrying a diff instead of a trap.
	TrapNone = TrapKind(0)
	// TrapSyscall is an environment call from user mode.
	TrapSyscall = TrapKind(1)
	// TrapIntOverflow is signed integer overflow from a checked
	// arithmetic instruction.
	TrapIntOverflow = TrapKind(2)
	// TrapPageFault is a fault from paged memory translation.
	TrapPageFault = TrapKind(3)
)

func (k TrapKind) String() string {
	switch k {
	case TrapNone:
		return "none"
	case TrapSyscall:
		return "syscall"
	case TrapIntOverflow:
		return "integer overflow"
	case TrapPageFault:
		return "page fault"
	}
	return f("TrapKind(%d)", int(k))
}

// InstResult is the outcome of one instruction evaluation: a user diff in
// the steady case, or a trap for the privileged layer to resolve.
type InstResult[R arch.Register] struct {
	Trap TrapKind
	Diff UserDiff[R]
}

// DiffResult wraps a user diff as an evaluation outcome.
func DiffResult[R arch.Register](d UserDiff[R]) InstResult[R] {
	return InstResult[R]{Diff: d}
}

// TrapResult wraps a trap as an evaluation outcome.
func TrapResult[R arch.Register](kind TrapKind) InstResult[R] {
	return InstResult[R]{Trap: kind}
}

// PrivDiffKind tags a PrivDiff variant.
type PrivDiffKind int

const (
	// PrivTerminate ends the run with a TermCause.
	PrivTerminate = PrivDiffKind(0)
	// PrivFileWrite appends bytes to a file descriptor.
	PrivFileWrite = PrivDiffKind(1)
	// PrivPtUpdate changes a page mapping.
	PrivPtUpdate = PrivDiffKind(2)
	// PrivBrkUpdate moves the program break.
	PrivBrkUpdate = PrivDiffKind(3)
)

// PrivDiff records one change to privileged state. Kind selects which of
// the remaining fields are meaningful.
type PrivDiff struct {
	Kind   PrivDiffKind
	Cause  TermCause     // PrivTerminate
	Fd     int           // PrivFileWrite
	Data   []byte        // PrivFileWrite
	Update PtUpdate      // PrivPtUpdate
	OldBrk arch.ByteAddr // PrivBrkUpdate
	NewBrk arch.ByteAddr // PrivBrkUpdate
}

// Revertible reports whether the diff has a modeled inverse. File writes
// and terminations do not.
func (d *PrivDiff) Revertible() bool {
	switch d.Kind {
	case PrivPtUpdate, PrivBrkUpdate:
		return true
	}
	return false
}

/// StateDiff is one undo-log entry: exactly one of Priv or User is set.
// For a trapping instruction the privileged half is applied first and its
// derived user half second, so a revert must undo the user half first.
type StateDiff[R arch.Register] struct {
	Priv *PrivDiff
	User *UserDiff[R]
}
