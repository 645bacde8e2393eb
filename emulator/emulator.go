// Copyright 2025, The Duna Authors

// Package emulator drives a program through the reversible simulation
// core: fetch, evaluate, apply, and optionally undo, one instruction at
// a time.
package emulator

import (
	"iter"
	"log"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/internal"
	"github.com/dunasim/duna/machine"
)

// Layout fixes where the program's segments live in the guest address
// space.
type Layout struct {
	TextBase  arch.ByteAddr // first instruction
	DataBase  arch.ByteAddr // start of the data segment
	StackInit arch.ByteAddr // initial stack pointer
}

// DefaultLayout is the conventional user-space layout: text low, data
// above it, stack descending from just under the top of the 32-bit
// space. The heap starts on the first page boundary past the data.
var DefaultLayout = Layout{
	TextBase:  0x1000_0000,
	DataBase:  0x2000_0000,
	StackInit: 0x7FFF_FFF0,
}

const pageSize = arch.ByteAddr(0x1000)

// Emulator owns one simulated run: the instruction stream, the machine
// state it mutates, and the undo log that makes every applied
// instruction reversible.
type Emulator[R arch.Register] struct {
	Verbose bool

	State  *machine.ProgramState[R]
	Layout Layout

	insts []machine.Instruction[R]
	data  []byte
	undo  [][]machine.StateDiff[R]
	cause *machine.TermCause
}

// New builds an emulator for fam running insts over the initial data
// segment data. The machine state starts with the pc at the text base,
// the stack pointer seeded from the layout, and memory loaded from the
// program image.
func New[R arch.Register](fam arch.Family[R], insts []machine.Instruction[R], data []byte, layout Layout) *Emulator[R] {
	heap := (layout.DataBase + arch.ByteAddr(len(data)) + pageSize - 1) &^ (pageSize - 1)
	mem := machine.NewSparseMemory()
	state := machine.NewProgramState(fam, mem, machine.IdentityTable{}, heap)
	state.User.Pc = layout.TextBase
	state.User.Regs.Set(fam.SP, fam.Width.FromByteAddr(layout.StackInit))

	e := &Emulator[R]{
		State:  state,
		Layout: layout,
		insts:  insts,
		data:   append([]byte(nil), data...),
	}
	for addr, word := range e.Image() {
		mem.SetWord(addr, word)
	}
	return e
}

// Image iterates the program image as word address, machine word pairs:
// the encoded text segment followed by the packed data segment.
func (e *Emulator[R]) Image() iter.Seq2[arch.WordAddr, uint32] {
	return internal.IterSeq2Concat(e.textWords(), e.dataWords())
}

func (e *Emulator[R]) textWords() iter.Seq2[arch.WordAddr, uint32] {
	return func(yield func(arch.WordAddr, uint32) bool) {
		base := e.Layout.TextBase.WordAddress()
		for i, inst := range e.insts {
			if !yield(base+arch.WordAddr(i), inst.MachineCode()) {
				return
			}
		}
	}
}

func (e *Emulator[R]) dataWords() iter.Seq2[arch.WordAddr, uint32] {
	return func(yield func(arch.WordAddr, uint32) bool) {
		base := e.Layout.DataBase.WordAddress()
		for i := 0; i < len(e.data); i += 4 {
			var word uint32
			for j := 0; j < 4 && i+j < len(e.data); j++ {
				word |= uint32(e.data[i+j]) << (8 * j)
			}
			if !yield(base+arch.WordAddr(i/4), word) {
				return
			}
		}
	}
}

// InstAt fetches the instruction at pc. ok is false one past the end of
// the stream, which Step treats as normal exhaustion. A pc below the
// text base or off word alignment panics with ErrPcOutOfRange.
func (e *Emulator[R]) InstAt(pc arch.ByteAddr) (inst machine.Instruction[R], ok bool) {
	if pc < e.Layout.TextBase || pc.Offset() != 0 {
		panic(ErrPcOutOfRange(pc))
	}
	idx := uint64(pc-e.Layout.TextBase) / 4
	if idx >= uint64(len(e.insts)) {
		return nil, false
	}
	return e.insts[idx], true
}

// Step applies the instruction at the current pc and pushes its diffs on
// the undo log. done is true once the program has terminated or the pc
// has moved past the last instruction; further calls keep reporting
// done without touching the state.
func (e *Emulator[R]) Step() (done bool) {
	if e.cause != nil {
		return true
	}
	inst, ok := e.InstAt(e.State.User.Pc)
	if !ok {
		return true
	}
	if e.Verbose {
		log.Printf("%08x: %v", uint64(e.State.User.Pc), inst)
	}
	diffs, cause := e.State.ApplyInstruction(inst)
	e.undo = append(e.undo, diffs)
	e.cause = cause
	return cause != nil
}

// Undo reverts the most recently applied instruction, restoring the
// machine state bit for bit, and pops it from the undo log. A revert
// past a file write or a termination fails with
// machine.ErrRevertUnsupported before unwinding any of the entry, so the
// state is left exactly as applied.
func (e *Emulator[R]) Undo() (err error) {
	if len(e.undo) == 0 {
		return ErrNothingApplied
	}
	last := e.undo[len(e.undo)-1]
	for _, d := range last {
		if d.Priv != nil && !d.Priv.Revertible() {
			return machine.ErrRevertUnsupported
		}
	}
	for i := len(last) - 1; i >= 0; i-- {
		err = e.State.Revert(last[i])
		if err != nil {
			return err
		}
	}
	e.undo = e.undo[:len(e.undo)-1]
	e.cause = nil
	return nil
}

// Run steps until the program terminates or exhausts the instruction
// stream, then returns the process exit status.
func (e *Emulator[R]) Run() uint8 {
	for !e.Step() {
	}
	return e.ExitStatus()
}

// ExitStatus derives the process exit status. A terminated run maps its
// cause through the usual wait-status encoding; a run that fell off the
// end of the stream reports the low seven bits of the return register.
func (e *Emulator[R]) ExitStatus() uint8 {
	if e.cause != nil {
		return e.State.HandleExit(*e.cause)
	}
	ret := e.State.User.Regs.Read(e.State.Family.Syscalls.ReturnReg())
	return uint8(e.State.Family.Width.Unsigned(ret)) & 0x7F
}

// Cause returns the termination cause, nil while the program is still
// runnable.
func (e *Emulator[R]) Cause() *machine.TermCause {
	return e.cause
}

// Stdout returns every byte the program has written to file
// descriptor 1.
func (e *Emulator[R]) Stdout() []byte {
	return e.State.Priv.Stdout()
}

// Stderr returns every byte the program has written to file
// descriptor 2.
func (e *Emulator[R]) Stderr() []byte {
	return e.State.Priv.Stderr()
}
