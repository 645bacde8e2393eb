package machine

import (
	"github.com/dunasim/duna/arch"
)

// PpnNone marks the absence of a physical page in a PtUpdate.
const PpnNone = ^uint64(0)

// PtUpdate records one change to a virtual-to-physical page mapping,
// carrying enough to both apply and exactly undo the change.
type PtUpdate struct {
	Vpn    uint64 // virtual page number
	OldPpn uint64 // prior physical page, PpnNone when previously unmapped
	NewPpn uint64 // new physical page, PpnNone to unmap
}

// PageTable is the translation strategy owned by the privileged state.
// Translation and fault details live behind the implementation; the core
// only applies updates against physical memory and reverts previously
// applied updates.
type PageTable interface {
	ApplyUpdate(mem Memory, u PtUpdate)
	RevertUpdate(mem Memory, u PtUpdate)
}

// IdentityTable maps every page to itself and tracks nothing. It is the
// strategy used when no translation is wanted.
type IdentityTable struct{}

func (IdentityTable) ApplyUpdate(Memory, PtUpdate) {}

func (IdentityTable) RevertUpdate(Memory, PtUpdate) {}

// FlatTable tracks page mappings in a map, without relocating any backing
// storage.
type FlatTable struct {
	pages map[uint64]uint64
}

// NewFlatTable creates a table with no pages mapped.
func NewFlatTable() *FlatTable {
	return &FlatTable{
		pages: map[uint64]uint64{},
	}
}

// Lookup translates a virtual page number.
func (t *FlatTable) Lookup(vpn uint64) (ppn uint64, ok bool) {
	ppn, ok = t.pages[vpn]
	return
}

func (t *FlatTable) ApplyUpdate(_ Memory, u PtUpdate) {
	if u.NewPpn == PpnNone {
		delete(t.pages, u.Vpn)
	} else {
		t.pages[u.Vpn] = u.NewPpn
	}
}

func (t *FlatTable) RevertUpdate(_ Memory, u PtUpdate) {
	if u.OldPpn == PpnNone {
		delete(t.pages, u.Vpn)
	} else {
		t.pages[u.Vpn] = u.OldPpn
	}
}

// FaultCause classifies a memory fault raised by the page-table layer.
type FaultCause int

const (
	// FaultPage is an access to an unmapped page.
	FaultPage = FaultCause(0)
	// FaultSeg is an access outside the process's segments.
	FaultSeg = FaultCause(1)
	// FaultBus is an access to a physically invalid address.
	FaultBus = FaultCause(2)
)

// MemFault is a memory access fault surfaced by translation.
type MemFault struct {
	Addr  arch.ByteAddr
	Cause FaultCause
}

// TermCauseOf maps a memory fault to the cause that ends the run.
func TermCauseOf(fault MemFault) TermCause {
	switch fault.Cause {
	case FaultBus:
		return TermCause{Kind: TermBusError}
	default:
		return TermCause{Kind: TermSegFault}
	}
}
