package main

import (
	"github.com/dunasim/duna/translate"
)

var f = translate.From

// ErrBadRegister reports a register number outside 0 through 31.
type ErrBadRegister int

func (e ErrBadRegister) Error() string {
	return f("register %d out of range", int(e))
}

// ErrBadImmediate reports an immediate outside the 16-bit field.
type ErrBadImmediate int

func (e ErrBadImmediate) Error() string {
	return f("immediate %d does not fit in 16 bits", int(e))
}

// ErrBadTarget reports a jump target that is negative or not word
// aligned.
type ErrBadTarget int64

func (e ErrBadTarget) Error() string {
	return f("jump target %d not addressable", int64(e))
}

// ErrBadData reports a data() argument of an unsupported type.
type ErrBadData string

func (e ErrBadData) Error() string {
	return f("data accepts string or bytes, not %s", string(e))
}
