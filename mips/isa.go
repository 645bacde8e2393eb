package mips

import (
	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/machine"
)

// addOverflow adds within width w, raising ExcOverflow when the signed
// result does not fit.
func addOverflow(w arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
	sum := w.FromUnsigned(w.Unsigned(a) + w.Unsigned(b))
	if w.SignBit(a) == w.SignBit(b) && w.SignBit(sum) != w.SignBit(a) {
		exc := ExcOverflow
		return 0, &exc
	}
	return sum, nil
}

// subOverflow subtracts within width w, raising ExcOverflow when the
// signed result does not fit.
func subOverflow(w arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
	diff := w.FromUnsigned(w.Unsigned(a) - w.Unsigned(b))
	if w.SignBit(a) != w.SignBit(b) && w.SignBit(diff) != w.SignBit(a) {
		exc := ExcOverflow
		return 0, &exc
	}
	return diff, nil
}

// Register-register operations.
var (
	// Add places rs + rt in rd, trapping on signed overflow.
	Add = rType("add", rFields(0x20), addOverflow)

	// Addu places rs + rt in rd, wrapping.
	Addu = rType("addu", rFields(0x21), func(w arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
		return w.FromUnsigned(w.Unsigned(a) + w.Unsigned(b)), nil
	})

	// Sub places rs - rt in rd, trapping on signed overflow.
	Sub = rType("sub", rFields(0x22), subOverflow)

	// And places rs & rt in rd.
	And = rType("and", rFields(0x24), func(_ arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
		return a & b, nil
	})

	// Or places rs | rt in rd.
	Or = rType("or", rFields(0x25), func(_ arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
		return a | b, nil
	})

	// Xor places rs ^ rt in rd.
	Xor = rType("xor", rFields(0x26), func(_ arch.Width, a, b arch.RegValue) (arch.RegValue, *Exception) {
		return a ^ b, nil
	})
)

// Jr jumps to the byte address held in rs. It is the register-register
// form that writes no destination, so its diff omits the register write.
func Jr(rs Register) *Inst {
	return &Inst{
		name: "jr",
		eval: func(s *machine.ProgramState[Register]) machine.InstResult[Register] {
			us := &s.User
			target := s.Family.Width.ByteAddr(us.Regs.Read(rs))
			return machine.DiffResult(machine.PcUpdate(us, target))
		},
		fields: instFields{format: FormatR, rd: Zero, rs: rs, rt: Zero, r: rFields(0x08)},
	}
}

// Syscall transfers control to the privileged layer.
func Syscall() *Inst {
	return &Inst{
		name: "syscall",
		eval: func(s *machine.ProgramState[Register]) machine.InstResult[Register] {
			return machine.TrapResult[Register](machine.TrapSyscall)
		},
		fields: instFields{format: FormatR, r: rFields(0x0C)},
	}
}

// signedImmAdd adds a sign-extended immediate to a register value.
func signedImmAdd(w arch.Width, base arch.RegValue, imm arch.BitStr32) arch.RegValue {
	return w.FromSigned(w.Signed(base) + imm.Signed())
}

// Register-immediate operations.
var (
	// Addi places rs + imm in rt, trapping on signed overflow.
	Addi = iType("addi", 0x08, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		val, exc := addOverflow(w, us.Regs.Read(rs), w.FromSigned(imm.Signed()))
		if exc != nil {
			return machine.TrapResult[Register](exc.trap())
		}
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, val))
	})

	// Addiu places rs + imm in rt, wrapping.
	Addiu = iType("addiu", 0x09, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, signedImmAdd(w, us.Regs.Read(rs), imm)))
	})

	// Ori places rs | imm in rt, with the immediate zero extended.
	Ori = iType("ori", 0x0D, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		val := us.Regs.Read(rs) | w.FromUnsigned(imm.Unsigned())
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, val))
	})

	// Andi places rs & imm in rt, with the immediate zero extended.
	Andi = iType("andi", 0x0C, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		val := us.Regs.Read(rs) & w.FromUnsigned(imm.Unsigned())
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, val))
	})

	// Lui places imm shifted into the upper half-word in rt. rs is
	// unused and encodes as zero.
	Lui = iType("lui", 0x0F, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		val := w.FromSigned(arch.SignedValue(int32(imm.Uint32() << 16)))
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, val))
	})

	// Lw loads the word at rs + imm into rt, sign extended.
	Lw = iType("lw", 0x23, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		addr := w.ByteAddr(signedImmAdd(w, us.Regs.Read(rs), imm))
		word := us.Mem.WordAt(addr.WordAddress())
		return machine.DiffResult(machine.RegWriteAdvance(us, rt, w.FromSigned(arch.SignedValue(int32(word)))))
	})

	// Sw stores the word in rt at rs + imm.
	Sw = iType("sw", 0x2B, func(us *machine.UserState[Register], w arch.Width, rs, rt Register, imm arch.BitStr32) machine.InstResult[Register] {
		addr := w.ByteAddr(signedImmAdd(w, us.Regs.Read(rs), imm))
		word := uint32(w.Unsigned(us.Regs.Read(rt)))
		return machine.DiffResult(machine.MemWrite(us, addr.WordAddress(), word))
	})
)

// jumpTarget composes the new pc from the region bits of the following
// instruction and the 26-bit target.
func jumpTarget(pc arch.ByteAddr, addr arch.BitStr32) arch.ByteAddr {
	region := uint64(pc.Plus4()) &^ 0x0FFF_FFFF
	return arch.ByteAddr(region | uint64(addr.Uint32())<<2)
}

// Jump operations.
var (
	// J jumps to the target within the current region.
	J = jType("j", 0x02, func(us *machine.UserState[Register], w arch.Width, addr arch.BitStr32) machine.InstResult[Register] {
		return machine.DiffResult(machine.PcUpdate(us, jumpTarget(us.Pc, addr)))
	})

	// Jal jumps to the target and places the return address in $ra.
	Jal = jType("jal", 0x03, func(us *machine.UserState[Register], w arch.Width, addr arch.BitStr32) machine.InstResult[Register] {
		ret := w.FromByteAddr(us.Pc.Plus4())
		return machine.DiffResult(machine.RegWrite(us, jumpTarget(us.Pc, addr), Ra, ret))
	})
)
