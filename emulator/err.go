package emulator

import (
	"errors"

	"github.com/dunasim/duna/arch"
	"github.com/dunasim/duna/translate"
)

var f = translate.From

var (
	// ErrNothingApplied reports an undo request with no applied
	// instruction left to revert.
	ErrNothingApplied = errors.New(f("nothing applied"))
)

// ErrPcOutOfRange is raised, via panic, when the program counter leaves
// the text segment or loses word alignment. The instruction stream is
// the only execution source, so a pc outside it is a host contract
// violation rather than a guest fault.
type ErrPcOutOfRange arch.ByteAddr

func (e ErrPcOutOfRange) Error() string {
	return f("pc 0x%x outside the text segment", uint64(e))
}
