package machine

import (
	"github.com/dunasim/duna/arch"
)

// RegFile maps architectural register identifiers to width-sized values.
// Unwritten registers read as zero. Writes to the family's hardwired zero
// register are silently absorbed here, so instruction semantics never
// special-case it.
type RegFile[R arch.Register] struct {
	width   arch.Width
	zero    R
	hasZero bool
	vals    map[R]arch.RegValue
}

// NewRegFile creates a zeroed register file for fam.
func NewRegFile[R arch.Register](fam arch.Family[R]) *RegFile[R] {
	return &RegFile[R]{
		width:   fam.Width,
		zero:    fam.Zero,
		hasZero: fam.HasZero,
		vals:    map[R]arch.RegValue{},
	}
}

// Read returns the current value of reg.
func (rf *RegFile[R]) Read(reg R) arch.RegValue {
	return rf.vals[reg]
}

// Set stores val into reg, truncated to the file's data width.
func (rf *RegFile[R]) Set(reg R, val arch.RegValue) {
	if rf.hasZero && reg == rf.zero {
		return
	}
	rf.vals[reg] = rf.width.FromUnsigned(rf.width.Unsigned(val))
}
