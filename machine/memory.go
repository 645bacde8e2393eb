package machine

import (
	"github.com/dunasim/duna/arch"
)

// Memory is the word- and byte-granular store consumed by the core. A
// word access never tears. Translation and faulting are the concern of
// the page table backing an implementation, not of this interface.
type Memory interface {
	WordAt(addr arch.WordAddr) uint32
	SetWord(addr arch.WordAddr, value uint32)
	ByteAt(addr arch.ByteAddr) byte
	SetByte(addr arch.ByteAddr, value byte)
}

// SparseMemory is a map-backed Memory. The touched working set of a
// simulated program is tiny compared to its address space, so only the
// words ever written are stored. Untouched memory reads as zero. Bytes
// are packed little endian within each word.
type SparseMemory struct {
	words map[arch.WordAddr]uint32
}

// NewSparseMemory creates an empty memory image.
func NewSparseMemory() *SparseMemory {
	return &SparseMemory{
		words: map[arch.WordAddr]uint32{},
	}
}

func (m *SparseMemory) WordAt(addr arch.WordAddr) uint32 {
	return m.words[addr]
}

func (m *SparseMemory) SetWord(addr arch.WordAddr, value uint32) {
	m.words[addr] = value
}

func (m *SparseMemory) ByteAt(addr arch.ByteAddr) byte {
	word := m.words[addr.WordAddress()]
	return byte(word >> (8 * addr.Offset()))
}

func (m *SparseMemory) SetByte(addr arch.ByteAddr, value byte) {
	shift := 8 * addr.Offset()
	word := m.words[addr.WordAddress()]
	word = (word &^ (0xFF << shift)) | (uint32(value) << shift)
	m.words[addr.WordAddress()] = word
}
