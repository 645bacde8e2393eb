// Copyright 2025, The Duna Authors

package machine

import (
	"bytes"
	"io"
	"os"

	"github.com/dunasim/duna/arch"
)

// Instruction pairs a pure evaluation procedure with a structural
// encoding. The emitted machine word is a function of the encoding fields
// alone, never of the evaluation procedure; two instructions are equal
// exactly when their machine words are.
type Instruction[R arch.Register] interface {
	// MachineCode emits the encoded machine word.
	MachineCode() uint32
	// Eval computes the outcome of the instruction against the current
	// state. It never mutates state directly.
	Eval(s *ProgramState[R]) InstResult[R]
}

// UserState is the program state the guest observes directly.
type UserState[R arch.Register] struct {
	Pc   arch.ByteAddr
	Regs *RegFile[R]
	Mem  Memory
}

// ApplyDiff performs the described user-visible change.
func (us *UserState[R]) ApplyDiff(d UserDiff[R]) {
	us.Pc = d.Pc.New
	if d.Reg != nil {
		us.Regs.Set(d.Reg.Reg, d.Reg.New)
	}
	if d.Mem != nil {
		us.Mem.SetWord(d.Mem.Addr, d.Mem.New)
	}
}

// RevertDiff restores the state recorded in the diff: old pc, old
// register value, old memory word. The round trip through ApplyDiff and
// RevertDiff is bit exact.
func (us *UserState[R]) RevertDiff(d UserDiff[R]) {
	us.Pc = d.Pc.Old
	if d.Reg != nil {
		us.Regs.Set(d.Reg.Reg, d.Reg.Old)
	}
	if d.Mem != nil {
		us.Mem.SetWord(d.Mem.Addr, d.Mem.Old)
	}
}

// PrivState holds the OS-like resources of one simulated run: the program
// break, the page table, and the captured output streams.
type PrivState struct {
	Brk       arch.ByteAddr
	HeapStart arch.ByteAddr
	Table     PageTable

	// EchoStdout and EchoStderr receive a copy of every captured byte.
	// They default to the process streams.
	EchoStdout io.Writer
	EchoStderr io.Writer

	stdout bytes.Buffer
	stderr bytes.Buffer
}

// Stdout returns every byte the guest has written to file descriptor 1.
func (p *PrivState) Stdout() []byte {
	return p.stdout.Bytes()
}

// Stderr returns every byte the guest has written to file descriptor 2.
func (p *PrivState) Stderr() []byte {
	return p.stderr.Bytes()
}

// appendFile captures data on the descriptor's stream and echoes it to
// the process stream.
func (p *PrivState) appendFile(fd int, data []byte) {
	switch fd {
	case 1:
		p.stdout.Write(data)
		p.EchoStdout.Write(data)
	case 2:
		p.stderr.Write(data)
		p.EchoStderr.Write(data)
	default:
		panic(ErrBadFileDescriptor(fd))
	}
}

// ProgramState owns the privileged and user state of one simulated run.
// It is created once per run, has exactly one owner, and is mutated only
// through diff application.
type ProgramState[R arch.Register] struct {
	Family arch.Family[R]
	Priv   PrivState
	User   UserState[R]
}

// NewProgramState builds a zeroed state for fam: registers cleared, pc
// zero, break at the heap start, and the provided memory and page table
// owned for the lifetime of the run.
func NewProgramState[R arch.Register](fam arch.Family[R], mem Memory, table PageTable, heapStart arch.ByteAddr) *ProgramState[R] {
	return &ProgramState[R]{
		Family: fam,
		Priv: PrivState{
			Brk:        heapStart,
			HeapStart:  heapStart,
			Table:      table,
			EchoStdout: os.Stdout,
			EchoStderr: os.Stderr,
		},
		User: UserState[R]{
			Regs: NewRegFile(fam),
			Mem:  mem,
		},
	}
}

// ApplyInstruction evaluates inst against the current state and applies
// the outcome. A trap is resolved by the privileged layer; the privileged
// effect is applied before the user-visible effect it derives. The
// returned diffs are the undo-log entries in application order. cause is
// non-nil when the instruction terminated the run.
func (s *ProgramState[R]) ApplyInstruction(inst Instruction[R]) (diffs []StateDiff[R], cause *TermCause) {
	res := inst.Eval(s)
	if res.Trap == TrapNone {
		ud := res.Diff
		s.User.ApplyDiff(ud)
		diffs = []StateDiff[R]{{User: &ud}}
		return
	}

	pd := s.handleTrap(res.Trap)

	var ud UserDiff[R]
	if pd != nil {
		diffs = append(diffs, StateDiff[R]{Priv: pd})
		var derived *UserDiff[R]
		derived, cause = s.applyPriv(pd)
		if cause != nil {
			return
		}
		ud = *derived
	} else {
		// Default trap resolution: no register write, pc advances.
		ud = Noop(&s.User)
	}

	s.User.ApplyDiff(ud)
	diffs = append(diffs, StateDiff[R]{User: &ud})
	return
}

// applyPriv applies d to the privileged state and derives the
// user-visible half of the change. Termination yields a cause and no
// user diff.
func (s *ProgramState[R]) applyPriv(d *PrivDiff) (ud *UserDiff[R], cause *TermCause) {
	switch d.Kind {
	case PrivTerminate:
		c := d.Cause
		cause = &c
		return
	case PrivFileWrite:
		s.Priv.appendFile(d.Fd, d.Data)
		w := s.Family.Width
		ret := s.Family.Syscalls.ReturnReg()
		diff := RegWriteAdvance(&s.User, ret, w.FromUnsigned(arch.UnsignedValue(len(d.Data))))
		ud = &diff
		return
	case PrivPtUpdate:
		s.Priv.Table.ApplyUpdate(s.User.Mem, d.Update)
	case PrivBrkUpdate:
		s.Priv.Brk = d.NewBrk
	}
	diff := Noop(&s.User)
	ud = &diff
	return
}

// Revert undoes one undo-log entry. The caller reverts entries most
// recent first, so the user half of a trapping instruction is undone
// before the privileged half it derived from. User diffs restore the
// recorded old state bit-for-bit; privileged file writes and terminations
// have no modeled inverse and report ErrRevertUnsupported.
func (s *ProgramState[R]) Revert(d StateDiff[R]) (err error) {
	switch {
	case d.User != nil:
		s.User.RevertDiff(*d.User)
	case d.Priv != nil:
		err = s.revertPriv(d.Priv)
	}
	return
}

func (s *ProgramState[R]) revertPriv(d *PrivDiff) (err error) {
	switch d.Kind {
	case PrivPtUpdate:
		s.Priv.Table.RevertUpdate(s.User.Mem, d.Update)
	case PrivBrkUpdate:
		s.Priv.Brk = d.OldBrk
	default:
		err = ErrRevertUnsupported
	}
	return
}
