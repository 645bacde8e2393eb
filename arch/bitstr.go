package arch

// BitStr32 is a bit string of up to 32 bits. Instruction encodings are
// assembled by pure concatenation of bit strings, so the emitted machine
// word is a function of the encoding fields alone.
type BitStr32 struct {
	value uint32
	size  uint8
}

// Bits builds a bit string from the low size bits of value.
func Bits(value uint32, size uint8) BitStr32 {
	if size > 32 {
		panic("bit string wider than 32 bits")
	}
	if size < 32 {
		value &= (1 << size) - 1
	}
	return BitStr32{value: value, size: size}
}

// Concat appends o on the low-order side of b. The combined string must
// still fit in 32 bits.
func (b BitStr32) Concat(o BitStr32) BitStr32 {
	return Bits(b.value<<o.size|o.value, b.size+o.size)
}

// Size returns the number of bits in the string.
func (b BitStr32) Size() uint8 {
	return b.size
}

// Uint32 returns the bit string right-aligned in a machine word.
func (b BitStr32) Uint32() uint32 {
	return b.value
}

// Unsigned zero-extends the bit string.
func (b BitStr32) Unsigned() UnsignedValue {
	return UnsignedValue(b.value)
}

// Signed sign-extends the bit string.
func (b BitStr32) Signed() SignedValue {
	if b.size == 0 {
		return 0
	}
	shift := 32 - uint(b.size)
	return SignedValue(int32(b.value<<shift) >> shift)
}
