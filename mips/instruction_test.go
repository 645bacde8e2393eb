package mips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		inst *Inst
		want uint32
	}){
		{"add", Add(T0, T1, T2), 0x012A_4020},
		{"addu", Addu(T0, T1, T2), 0x012A_4021},
		{"sub", Sub(S0, S1, S2), 0x0232_8022},
		{"and", And(T0, T1, T2), 0x012A_4024},
		{"or", Or(T0, T1, T2), 0x012A_4025},
		{"xor", Xor(T0, T1, T2), 0x012A_4026},
		{"jr", Jr(Ra), 0x03E0_0008},
		{"syscall", Syscall(), 0x0000_000C},
		{"addi", Addi(T1, T0, Imm16(4)), 0x2128_0004},
		{"addiu", Addiu(T1, T0, Imm16(-1)), 0x2528_FFFF},
		{"ori", Ori(Zero, T0, Imm16(5)), 0x3408_0005},
		{"andi", Andi(T1, T0, Imm16(0xFF)), 0x3128_00FF},
		{"lui", Lui(Zero, T0, Imm16(0x2000)), 0x3C08_2000},
		{"lw", Lw(T1, T0, Imm16(4)), 0x8D28_0004},
		{"sw", Sw(T1, T0, Imm16(8)), 0xAD28_0008},
		{"j", J(Target26(0x0040_0000)), 0x0810_0000},
		{"jal", Jal(Target26(0x0040_0000)), 0x0C10_0000},
	}

	for _, entry := range table {
		assert.Equal(entry.want, entry.inst.MachineCode(), entry.name)
		// Encoding is stable under repeated calls.
		assert.Equal(entry.want, entry.inst.MachineCode(), entry.name)
	}
}

func TestInstEquality(t *testing.T) {
	assert := assert.New(t)

	// Equality is machine-word equality, not procedure identity.
	assert.True(Add(T0, T1, T2).Equal(Add(T0, T1, T2)))
	assert.False(Add(T0, T1, T2).Equal(Add(T3, T1, T2)))
	assert.False(Add(T0, T1, T2).Equal(Addu(T0, T1, T2)))
	assert.True(Jr(Ra).Equal(Jr(Ra)))
}

func TestInstString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add $t0, $t1, $t2", Add(T0, T1, T2).String())
	assert.Equal("addi $t1, $t0, -1", Addi(T0, T1, Imm16(-1)).String())
	assert.Equal("j 0x0100000", J(Target26(0x0040_0000)).String())
}

func TestRegisterString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("$zero", Zero.String())
	assert.Equal("$v0", V0.String())
	assert.Equal("$sp", Sp.String())
	assert.Equal("$ra", Ra.String())
	assert.Equal("$32", Register(32).String())
	assert.Len(Registers(), 32)
}
