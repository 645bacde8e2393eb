package machine

import (
	"fmt"
	"io"

	"github.com/dunasim/duna/arch"
)

// A minimal test family: four argument-style registers, a syscall
// convention, and a hardwired zero register.
type testReg uint8

const (
	tZero testReg = iota
	tNum
	tA0
	tA1
	tA2
	tRet
	tSp
	tTmp
)

func (r testReg) String() string {
	return fmt.Sprintf("r%d", uint8(r))
}

type testConv struct{}

func (testConv) NumberReg() testReg {
	return tNum
}

func (testConv) ArgRegs() [3]testReg {
	return [3]testReg{tA0, tA1, tA2}
}

func (testConv) ReturnReg() testReg {
	return tRet
}

var testSyscalls = map[arch.SignedValue]arch.Syscall{
	0:  arch.SyscallRead,
	1:  arch.SyscallWrite,
	2:  arch.SyscallOpen,
	3:  arch.SyscallClose,
	10: arch.SyscallExit,
}

func (testConv) SyscallFor(n arch.SignedValue) (call arch.Syscall, ok bool) {
	call, ok = testSyscalls[n]
	return
}

func (testConv) NumberFor(call arch.Syscall) (n arch.SignedValue, ok bool) {
	for number, c := range testSyscalls {
		if c == call {
			return number, true
		}
	}
	return -1, false
}

func testFamily(w arch.Width) arch.Family[testReg] {
	return arch.Family[testReg]{
		Name:      "test-" + w.String(),
		Width:     w,
		Registers: []testReg{tZero, tNum, tA0, tA1, tA2, tRet, tSp, tTmp},
		Zero:      tZero,
		HasZero:   true,
		SP:        tSp,
		Syscalls:  testConv{},
	}
}

// newTestState builds a state with output echo silenced.
func newTestState(w arch.Width) *ProgramState[testReg] {
	s := NewProgramState(testFamily(w), NewSparseMemory(), IdentityTable{}, 0x3000_0000)
	s.Priv.EchoStdout = io.Discard
	s.Priv.EchoStderr = io.Discard
	return s
}

// fakeInst is an Instruction with a canned machine word and evaluation
// procedure.
type fakeInst struct {
	code uint32
	eval func(s *ProgramState[testReg]) InstResult[testReg]
}

func (i *fakeInst) MachineCode() uint32 {
	return i.code
}

func (i *fakeInst) Eval(s *ProgramState[testReg]) InstResult[testReg] {
	return i.eval(s)
}
