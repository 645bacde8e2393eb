package arch

// RegValue is the canonical container for one register-sized datum. Only
// the low Width.Bits() bits are significant; a Width interprets the rest.
type RegValue uint64

// SignedValue is the sign-extended view of a RegValue.
type SignedValue int64

// UnsignedValue is the zero-extended view of a RegValue.
type UnsignedValue uint64

// ByteAddr is the address of a single byte of simulated memory.
type ByteAddr uint64

// WordAddr is the address of an aligned 32-bit word of simulated memory.
type WordAddr uint64

// WordAddress returns the address of the word containing the byte.
func (a ByteAddr) WordAddress() WordAddr {
	return WordAddr(a >> 2)
}

// Offset returns the byte offset within the containing word.
func (a ByteAddr) Offset() uint {
	return uint(a & 0x3)
}

// Plus4 advances the address by one instruction width.
func (a ByteAddr) Plus4() ByteAddr {
	return a + 4
}

// ByteAddress returns the address of the first byte of the word.
func (w WordAddr) ByteAddress() ByteAddr {
	return ByteAddr(w << 2)
}

// Width binds the signed, unsigned, register-value and byte-address
// representations of one data width. Conversions among the four views are
// total, and round trips are lossless for any value that originated from
// one of them.
type Width interface {
	// Bits is the number of significant bits in a register.
	Bits() uint
	// Signed sign-extends the low Bits() of the value.
	Signed(v RegValue) SignedValue
	// Unsigned zero-extends the low Bits() of the value.
	Unsigned(v RegValue) UnsignedValue
	// FromSigned truncates to the low Bits() of the value.
	FromSigned(s SignedValue) RegValue
	// FromUnsigned truncates to the low Bits() of the value.
	FromUnsigned(u UnsignedValue) RegValue
	// ByteAddr reinterprets the value as a byte address.
	ByteAddr(v RegValue) ByteAddr
	// FromByteAddr reinterprets a byte address as a register value.
	FromByteAddr(a ByteAddr) RegValue
	// SignBit reports whether the value is negative when viewed signed.
	SignBit(v RegValue) bool
	String() string
}

var (
	// W32 is the 32-bit data width.
	W32 Width = w32{}
	// W64 is the 64-bit data width.
	W64 Width = w64{}
)

type w32 struct{}

func (w32) Bits() uint {
	return 32
}

func (w32) Signed(v RegValue) SignedValue {
	return SignedValue(int32(uint32(v)))
}

func (w32) Unsigned(v RegValue) UnsignedValue {
	return UnsignedValue(uint32(v))
}

func (w32) FromSigned(s SignedValue) RegValue {
	return RegValue(uint32(s))
}

func (w32) FromUnsigned(u UnsignedValue) RegValue {
	return RegValue(uint32(u))
}

func (w32) ByteAddr(v RegValue) ByteAddr {
	return ByteAddr(uint32(v))
}

func (w32) FromByteAddr(a ByteAddr) RegValue {
	return RegValue(uint32(a))
}

func (w32) SignBit(v RegValue) bool {
	return v&(1<<31) != 0
}

func (w32) String() string {
	return "32b"
}

type w64 struct{}

func (w64) Bits() uint {
	return 64
}

func (w64) Signed(v RegValue) SignedValue {
	return SignedValue(v)
}

func (w64) Unsigned(v RegValue) UnsignedValue {
	return UnsignedValue(v)
}

func (w64) FromSigned(s SignedValue) RegValue {
	return RegValue(s)
}

func (w64) FromUnsigned(u UnsignedValue) RegValue {
	return RegValue(u)
}

func (w64) ByteAddr(v RegValue) ByteAddr {
	return ByteAddr(v)
}

func (w64) FromByteAddr(a ByteAddr) RegValue {
	return RegValue(a)
}

func (w64) SignBit(v RegValue) bool {
	return v&(1<<63) != 0
}

func (w64) String() string {
	return "64b"
}
