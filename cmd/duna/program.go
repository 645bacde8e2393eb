// Copyright 2025, The Duna Authors

package main

import (
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/emulator"
	"github.com/dunasim/duna/machine"
	"github.com/dunasim/duna/mips"
)

// program is what a build script produces: the instruction stream and
// the initial data segment.
type program struct {
	layout emulator.Layout
	insts  []machine.Instruction[mips.Register]
	data   []byte
}

// loadProgram executes a Starlark build script. Each instruction
// function appends to the stream as the script runs, so plain Starlark
// control flow doubles as macro expansion.
func loadProgram(path string, layout emulator.Layout) (p *program, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	p = &program{layout: layout}
	thread := &starlark.Thread{Name: path}
	opts := &syntax.FileOptions{TopLevelControl: true}
	_, err = starlark.ExecFileOptions(opts, thread, path, src, p.env())
	if err != nil {
		return nil, err
	}
	return
}

// env is the script's predeclared environment: the register names
// without their $ prefix, the segment bases, and one function per
// instruction form. The Starlark keywords "and" and "or" force the
// trailing underscore on those two.
func (p *program) env() starlark.StringDict {
	env := starlark.StringDict{
		"text_base": starlark.MakeUint64(uint64(p.layout.TextBase)),
		"data_base": starlark.MakeUint64(uint64(p.layout.DataBase)),
		"here":      starlark.NewBuiltin("here", p.here),
		"data":      starlark.NewBuiltin("data", p.appendData),
		"syscall":   starlark.NewBuiltin("syscall", p.appendSyscall),
		"jr":        starlark.NewBuiltin("jr", p.appendJr),
		"lui":       starlark.NewBuiltin("lui", p.appendLui),
	}

	for i, reg := range mips.Registers() {
		env[strings.TrimPrefix(reg.String(), "$")] = starlark.MakeInt(i)
	}

	for name, build := range map[string]func(rd, rs, rt mips.Register) *mips.Inst{
		"add":  mips.Add,
		"addu": mips.Addu,
		"sub":  mips.Sub,
		"and_": mips.And,
		"or_":  mips.Or,
		"xor":  mips.Xor,
	} {
		env[name] = p.rBuiltin(name, build)
	}

	for name, build := range map[string]func(rs, rt mips.Register, imm arch.BitStr32) *mips.Inst{
		"addi":  mips.Addi,
		"addiu": mips.Addiu,
		"ori":   mips.Ori,
		"andi":  mips.Andi,
		"lw":    mips.Lw,
		"sw":    mips.Sw,
	} {
		env[name] = p.iBuiltin(name, build)
	}

	for name, build := range map[string]func(addr arch.BitStr32) *mips.Inst{
		"j":   mips.J,
		"jal": mips.Jal,
	} {
		env[name] = p.jBuiltin(name, build)
	}

	return env
}

func toReg(n int) (mips.Register, error) {
	if n < 0 || n > 31 {
		return mips.Zero, ErrBadRegister(n)
	}
	return mips.Register(n), nil
}

func toImm16(v int) (arch.BitStr32, error) {
	if v < -0x8000 || v > 0xFFFF {
		return arch.BitStr32{}, ErrBadImmediate(v)
	}
	return mips.Imm16(int32(v)), nil
}

func toTarget(v int64) (arch.BitStr32, error) {
	if v < 0 || v&3 != 0 {
		return arch.BitStr32{}, ErrBadTarget(v)
	}
	return mips.Target26(arch.ByteAddr(v)), nil
}

func (p *program) rBuiltin(name string, build func(rd, rs, rt mips.Register) *mips.Inst) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var rd, rs, rt int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &rd, &rs, &rt)
		if err != nil {
			return nil, err
		}
		d, err := toReg(rd)
		if err != nil {
			return nil, err
		}
		s, err := toReg(rs)
		if err != nil {
			return nil, err
		}
		t, err := toReg(rt)
		if err != nil {
			return nil, err
		}
		p.insts = append(p.insts, build(d, s, t))
		return starlark.None, nil
	})
}

func (p *program) iBuiltin(name string, build func(rs, rt mips.Register, imm arch.BitStr32) *mips.Inst) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var rs, rt, imm int
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &rs, &rt, &imm)
		if err != nil {
			return nil, err
		}
		s, err := toReg(rs)
		if err != nil {
			return nil, err
		}
		t, err := toReg(rt)
		if err != nil {
			return nil, err
		}
		i, err := toImm16(imm)
		if err != nil {
			return nil, err
		}
		p.insts = append(p.insts, build(s, t, i))
		return starlark.None, nil
	})
}

func (p *program) jBuiltin(name string, build func(addr arch.BitStr32) *mips.Inst) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target int64
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &target)
		if err != nil {
			return nil, err
		}
		addr, err := toTarget(target)
		if err != nil {
			return nil, err
		}
		p.insts = append(p.insts, build(addr))
		return starlark.None, nil
	})
}

func (p *program) appendLui(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var rt, imm int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &rt, &imm)
	if err != nil {
		return nil, err
	}
	t, err := toReg(rt)
	if err != nil {
		return nil, err
	}
	i, err := toImm16(imm)
	if err != nil {
		return nil, err
	}
	p.insts = append(p.insts, mips.Lui(mips.Zero, t, i))
	return starlark.None, nil
}

func (p *program) appendJr(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var rs int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &rs)
	if err != nil {
		return nil, err
	}
	s, err := toReg(rs)
	if err != nil {
		return nil, err
	}
	p.insts = append(p.insts, mips.Jr(s))
	return starlark.None, nil
}

func (p *program) appendSyscall(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}
	p.insts = append(p.insts, mips.Syscall())
	return starlark.None, nil
}

// here returns the byte address the next appended instruction will
// occupy, for computing jump targets in the script.
func (p *program) here(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return nil, err
	}
	return starlark.MakeUint64(uint64(p.layout.TextBase) + 4*uint64(len(p.insts))), nil
}

// appendData appends a string or bytes value to the data segment and
// returns the byte address the appended bytes start at.
func (p *program) appendData(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var val starlark.Value
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &val)
	if err != nil {
		return nil, err
	}
	addr := uint64(p.layout.DataBase) + uint64(len(p.data))
	switch v := val.(type) {
	case starlark.String:
		p.data = append(p.data, v...)
	case starlark.Bytes:
		p.data = append(p.data, v...)
	default:
		return nil, ErrBadData(val.Type())
	}
	return starlark.MakeUint64(addr), nil
}
