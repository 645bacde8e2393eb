package mips

import (
	"io"
	"testing"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/machine"
	"github.com/stretchr/testify/assert"
)

func newState(w arch.Width) *machine.ProgramState[Register] {
	s := machine.NewProgramState(NewFamily(w), machine.NewSparseMemory(), machine.IdentityTable{}, 0x3000_0000)
	s.Priv.EchoStdout = io.Discard
	s.Priv.EchoStderr = io.Discard
	return s
}

func apply(t *testing.T, s *machine.ProgramState[Register], inst *Inst) {
	t.Helper()
	_, cause := s.ApplyInstruction(inst)
	assert.Nil(t, cause, "%v terminated the run", inst)
}

func TestArithmetic(t *testing.T) {
	table := [](struct {
		name string
		a, b arch.RegValue
		inst *Inst
		dest Register
		want arch.RegValue
	}){
		{"add", 2, 3, Add(T2, T0, T1), T2, 5},
		{"addu wraps", 0xFFFF_FFFF, 1, Addu(T2, T0, T1), T2, 0},
		{"sub", 7, 9, Sub(T2, T0, T1), T2, 0xFFFF_FFFE},
		{"and", 0xFF00, 0x0FF0, And(T2, T0, T1), T2, 0x0F00},
		{"or", 0xFF00, 0x0FF0, Or(T2, T0, T1), T2, 0xFFF0},
		{"xor", 0xFF00, 0x0FF0, Xor(T2, T0, T1), T2, 0xF0F0},
	}

	for _, entry := range table {
		s := newState(arch.W32)
		s.User.Regs.Set(T0, entry.a)
		s.User.Regs.Set(T1, entry.b)
		apply(t, s, entry.inst)
		assert.Equal(t, entry.want, s.User.Regs.Read(entry.dest), entry.name)
		assert.Equal(t, arch.ByteAddr(4), s.User.Pc, entry.name)
	}
}

func TestImmediates(t *testing.T) {
	table := [](struct {
		name string
		rs   arch.RegValue
		inst *Inst
		want arch.RegValue
	}){
		{"addi", 10, Addi(T0, T1, Imm16(-4)), 6},
		{"addiu wraps", 0, Addiu(T0, T1, Imm16(-1)), 0xFFFF_FFFF},
		{"ori zero extends", 0, Ori(T0, T1, Imm16(-1)), 0xFFFF},
		{"andi zero extends", 0xFFFF_FFFF, Andi(T0, T1, Imm16(-1)), 0xFFFF},
		{"lui", 0, Lui(Zero, T1, Imm16(0x2000)), 0x2000_0000},
	}

	for _, entry := range table {
		s := newState(arch.W32)
		s.User.Regs.Set(T0, entry.rs)
		apply(t, s, entry.inst)
		assert.Equal(t, entry.want, s.User.Regs.Read(T1), entry.name)
	}
}

func TestAddressCompose(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W32)

	// The usual two-instruction sequence for a full 32-bit constant.
	apply(t, s, Lui(Zero, T0, Imm16(0x2000)))
	apply(t, s, Ori(T0, T0, Imm16(0x0104)))

	assert.Equal(arch.RegValue(0x2000_0104), s.User.Regs.Read(T0))
	assert.Equal(arch.ByteAddr(8), s.User.Pc)
}

func TestOverflowTrap(t *testing.T) {
	table := [](struct {
		name string
		a, b arch.RegValue
		inst *Inst
	}){
		{"add", 0x7FFF_FFFF, 1, Add(T2, T0, T1)},
		{"sub", 0x8000_0000, 1, Sub(T2, T0, T1)},
		{"addi", 0x7FFF_FFFF, 0, Addi(T0, T2, Imm16(1))},
	}

	for _, entry := range table {
		s := newState(arch.W32)
		s.User.Regs.Set(T0, entry.a)
		s.User.Regs.Set(T1, entry.b)
		s.User.Regs.Set(T2, 0xAAAA)

		diffs, cause := s.ApplyInstruction(entry.inst)
		assert.Nil(t, cause, entry.name)
		// The destination survives untouched and execution continues.
		assert.Equal(t, arch.RegValue(0xAAAA), s.User.Regs.Read(T2), entry.name)
		assert.Equal(t, arch.ByteAddr(4), s.User.Pc, entry.name)
		assert.Len(t, diffs, 1, entry.name)
		assert.Nil(t, diffs[0].User.Reg, entry.name)
	}
}

func TestNoOverflowAt64(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W64)
	s.User.Regs.Set(T0, 0x7FFF_FFFF)
	s.User.Regs.Set(T1, 1)

	apply(t, s, Add(T2, T0, T1))
	assert.Equal(arch.RegValue(0x8000_0000), s.User.Regs.Read(T2))
}

func TestZeroRegister(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W32)

	apply(t, s, Addi(Zero, Zero, Imm16(7)))
	assert.Equal(arch.RegValue(0), s.User.Regs.Read(Zero))
}

func TestJumpAndLink(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W32)
	s.User.Pc = 0x1000_0008

	apply(t, s, Jal(Target26(0x1000_0040)))
	assert.Equal(arch.ByteAddr(0x1000_0040), s.User.Pc)
	assert.Equal(arch.RegValue(0x1000_000C), s.User.Regs.Read(Ra))

	apply(t, s, Jr(Ra))
	assert.Equal(arch.ByteAddr(0x1000_000C), s.User.Pc)
	// JR writes no register, so $ra keeps the return address.
	assert.Equal(arch.RegValue(0x1000_000C), s.User.Regs.Read(Ra))
}

func TestJump(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W32)
	s.User.Pc = 0x1000_0000

	apply(t, s, J(Target26(0x1000_0100)))
	assert.Equal(arch.ByteAddr(0x1000_0100), s.User.Pc)
	assert.Equal(arch.RegValue(0), s.User.Regs.Read(Ra))
}

func TestLoadStore(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W32)
	s.User.Regs.Set(T0, 0x2000_0010)
	s.User.Regs.Set(T1, 0xDEAD_BEEF)

	apply(t, s, Sw(T0, T1, Imm16(-8)))
	assert.Equal(uint32(0xDEAD_BEEF), s.User.Mem.WordAt(arch.ByteAddr(0x2000_0008).WordAddress()))

	apply(t, s, Lw(T0, T2, Imm16(-8)))
	assert.Equal(arch.RegValue(0xDEAD_BEEF), s.User.Regs.Read(T2))
}

func TestLoadSignExtends(t *testing.T) {
	assert := assert.New(t)
	s := newState(arch.W64)
	s.User.Regs.Set(T0, 0x2000_0000)
	s.User.Regs.Set(T1, 0xFFFF_FFFF)

	apply(t, s, Sw(T0, T1, Imm16(0)))
	apply(t, s, Lw(T0, T2, Imm16(0)))
	assert.Equal(arch.RegValue(0xFFFF_FFFF_FFFF_FFFF), s.User.Regs.Read(T2))
}

func TestConvention(t *testing.T) {
	assert := assert.New(t)
	conv := Convention{}

	assert.Equal(V0, conv.NumberReg())
	assert.Equal(V0, conv.ReturnReg())
	assert.Equal([3]Register{A0, A1, A2}, conv.ArgRegs())

	call, ok := conv.SyscallFor(1)
	assert.True(ok)
	assert.Equal(arch.SyscallWrite, call)

	call, ok = conv.SyscallFor(10)
	assert.True(ok)
	assert.Equal(arch.SyscallExit, call)

	_, ok = conv.SyscallFor(99)
	assert.False(ok)

	n, ok := conv.NumberFor(arch.SyscallExit)
	assert.True(ok)
	assert.Equal(arch.SignedValue(10), n)

	_, ok = conv.NumberFor(arch.Syscall(99))
	assert.False(ok)
}
