package mips

import (
	"fmt"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/machine"
)

// Format tags the structural encoding of an instruction.
type Format int

const (
	// FormatR is the register-register form.
	FormatR = Format(0)
	// FormatI is the register-immediate form.
	FormatI = Format(1)
	// FormatJ is the jump form.
	FormatJ = Format(2)
)

// RInstFields are the fixed fields of a register-register encoding.
type RInstFields struct {
	Opcode arch.BitStr32 // 6 bits
	Shamt  arch.BitStr32 // 5 bits
	Funct  arch.BitStr32 // 6 bits
}

// rFields builds the usual register-register fixed fields: opcode zero,
// no shift amount, the given function code.
func rFields(funct uint32) RInstFields {
	return RInstFields{
		Opcode: arch.Bits(0, 6),
		Shamt:  arch.Bits(0, 5),
		Funct:  arch.Bits(funct, 6),
	}
}

type instFields struct {
	format Format

	// FormatR
	rd Register
	r  RInstFields

	// FormatI and FormatJ
	opcode arch.BitStr32

	// FormatR and FormatI
	rs, rt Register

	// FormatI
	imm arch.BitStr32 // 16 bits

	// FormatJ
	addr arch.BitStr32 // 26 bits
}

type evalFn func(s *machine.ProgramState[Register]) machine.InstResult[Register]

// Inst is one MIPS instruction: an evaluation procedure paired with the
// encoding fields it was built from. The machine word depends on the
// fields alone.
type Inst struct {
	name   string
	eval   evalFn
	fields instFields
}

var _ machine.Instruction[Register] = (*Inst)(nil)

// MachineCode assembles the encoding fields by pure bit concatenation.
func (in *Inst) MachineCode() uint32 {
	f := in.fields
	switch f.format {
	case FormatR:
		return f.r.Opcode.
			Concat(f.rs.bits()).
			Concat(f.rt.bits()).
			Concat(f.rd.bits()).
			Concat(f.r.Shamt).
			Concat(f.r.Funct).
			Uint32()
	case FormatI:
		return f.opcode.
			Concat(f.rs.bits()).
			Concat(f.rt.bits()).
			Concat(f.imm).
			Uint32()
	default:
		return f.opcode.
			Concat(f.addr).
			Uint32()
	}
}

// Eval runs the evaluation procedure against the current state.
func (in *Inst) Eval(s *machine.ProgramState[Register]) machine.InstResult[Register] {
	return in.eval(s)
}

// Equal reports whether two instructions emit the same machine word.
func (in *Inst) Equal(o *Inst) bool {
	return in.MachineCode() == o.MachineCode()
}

func (in *Inst) String() string {
	f := in.fields
	switch f.format {
	case FormatR:
		return fmt.Sprintf("%s %v, %v, %v", in.name, f.rd, f.rs, f.rt)
	case FormatI:
		return fmt.Sprintf("%s %v, %v, %d", in.name, f.rt, f.rs, int32(f.imm.Signed()))
	default:
		return fmt.Sprintf("%s 0x%07x", in.name, f.addr.Uint32())
	}
}

// Exception is an architectural exception raised during evaluation. It
// is recovered into a trap, never surfaced as a host error.
type Exception int

const (
	// ExcOverflow is signed integer overflow from checked arithmetic.
	ExcOverflow = Exception(0)
)

func (e Exception) trap() machine.TrapKind {
	switch e {
	case ExcOverflow:
		return machine.TrapIntOverflow
	}
	panic(fmt.Sprintf("exception %d unknown", int(e)))
}

// rType builds a register-register instruction constructor. eval computes
// the new rd value from the rs and rt values, or raises an architectural
// exception, in which case the destination is left unmodified. JR, the
// one register-register form that writes no destination, has its own
// constructor.
func rType(name string, fields RInstFields, eval func(w arch.Width, rs, rt arch.RegValue) (arch.RegValue, *Exception)) func(rd, rs, rt Register) *Inst {
	return func(rd, rs, rt Register) *Inst {
		return &Inst{
			name: name,
			eval: func(s *machine.ProgramState[Register]) machine.InstResult[Register] {
				us := &s.User
				val, exc := eval(s.Family.Width, us.Regs.Read(rs), us.Regs.Read(rt))
				if exc != nil {
					return machine.TrapResult[Register](exc.trap())
				}
				return machine.DiffResult(machine.RegWriteAdvance(us, rd, val))
			},
			fields: instFields{format: FormatR, rd: rd, rs: rs, rt: rt, r: fields},
		}
	}
}

// iType builds a register-immediate instruction constructor. eval has the
// full user state in hand, as loads and stores need it.
func iType(name string, opcode uint32, eval func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register]) func(rs, rt Register, imm arch.BitStr32) *Inst {
	op := arch.Bits(opcode, 6)
	return func(rs, rt Register, imm arch.BitStr32) *Inst {
		return &Inst{
			name: name,
			eval: func(s *machine.ProgramState[Register]) machine.InstResult[Register] {
				return eval(&s.User, s.Family.Width, rs, rt, imm)
			},
			fields: instFields{format: FormatI, rs: rs, rt: rt, opcode: op, imm: imm},
		}
	}
}

// jType builds a jump instruction constructor over a 26-bit target.
func jType(name string, opcode uint32, eval func(us *machine.UserState[Register], w arch.Width, addr arch.BitStr32) machine.InstResult[Register]) func(addr arch.BitStr32) *Inst {
	op := arch.Bits(opcode, 6)
	return func(addr arch.BitStr32) *Inst {
		return &Inst{
			name: name,
			eval: func(s *machine.ProgramState[Register]) machine.InstResult[Register] {
				return eval(&s.User, s.Family.Width, addr)
			},
			fields: instFields{format: FormatJ, opcode: op, addr: addr},
		}
	}
}

// Imm16 builds the 16-bit immediate field of a register-immediate form.
func Imm16(v int32) arch.BitStr32 {
	return arch.Bits(uint32(v), 16)
}

// Target26 builds the 26-bit target field of a jump form from a byte
// address within the jump's region.
func Target26(addr arch.ByteAddr) arch.BitStr32 {
	return arch.Bits(uint32(addr>>2), 26)
}
