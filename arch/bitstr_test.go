package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsMasks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0x5), Bits(0xFFFF_FFF5, 4).Uint32())
	assert.Equal(uint8(4), Bits(0xFFFF_FFF5, 4).Size())
	assert.Equal(uint32(0xFFFF_FFF5), Bits(0xFFFF_FFF5, 32).Uint32())
}

func TestBitsConcat(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a    BitStr32
		b    BitStr32
		want BitStr32
	}){
		{"small", Bits(0b101, 3), Bits(0b01, 2), Bits(0b10101, 5)},
		{"empty_lhs", Bits(0, 0), Bits(0x3F, 6), Bits(0x3F, 6)},
		{"empty_rhs", Bits(0x3F, 6), Bits(0, 0), Bits(0x3F, 6)},
		{"full", Bits(0x2B, 6), Bits(0x03FF_FFFF, 26), Bits(0xAFFF_FFFF, 32)},
	}

	for _, entry := range table {
		assert.Equal(entry.want, entry.a.Concat(entry.b), entry.name)
	}

	assert.Panics(func() { Bits(0, 20).Concat(Bits(0, 13)) })
	assert.Panics(func() { Bits(0, 33) })
}

func TestBitsSigned(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		bits BitStr32
		want SignedValue
	}){
		{"zero", Bits(0, 16), 0},
		{"positive", Bits(0x7FFF, 16), 0x7FFF},
		{"negative", Bits(0x8000, 16), -0x8000},
		{"minus_one", Bits(0xFFFF, 16), -1},
		{"empty", Bits(0, 0), 0},
		{"word", Bits(0x8000_0000, 32), -0x8000_0000},
	}

	for _, entry := range table {
		assert.Equal(entry.want, entry.bits.Signed(), entry.name)
		assert.Equal(UnsignedValue(entry.bits.Uint32()), entry.bits.Unsigned(), entry.name)
	}
}

func TestSyscallString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("read", SyscallRead.String())
	assert.Equal("write", SyscallWrite.String())
	assert.Equal("exit", SyscallExit.String())
	assert.Equal("Syscall(9)", Syscall(9).String())
}
