// Package cartridge implements NES cartridge ROM loading and memory mappers.
//
// NES cartridges contain PRG-ROM (program code for CPU) and CHR-ROM/RAM
// (graphics data for PPU). Different cartridges use different mapper chips
// to extend the NES's memory space through bank switching.
package cartridge

// Mapper defines the interface for NES cartridge mappers
//
// Mappers handle the translation between CPU/PPU addresses and actual
// ROM/RAM locations. Different mapper numbers implement different
// bank switching schemes.
type Mapper interface {
	// ReadPRG reads a byte from PRG-ROM/RAM (CPU address space $8000-$FFFF)
	ReadPRG(addr uint16) uint8

	// WritePRG writes a byte to PRG-RAM or triggers mapper control (CPU address space $6000-$FFFF)
	WritePRG(addr uint16, value uint8)

	// ReadCHR reads a byte from CHR-ROM/RAM (PPU address space $0000-$1FFF)
	ReadCHR(addr uint16) uint8

	// WriteCHR writes a byte to CHR-RAM (PPU address space $0000-$1FFF)
	// CHR-ROM is read-only; writes may be ignored or used for mapper control
	WriteCHR(addr uint16, value uint8)

	// Scanline is called by the PPU on each scanline (for IRQ timing).
	// Retained for mappers whose counters are simple enough to track
	// by scanline count; MMC3 ignores it in favor of NotifyA12/StepM2.
	Scanline()

	// GetMirroring returns the current nametable mirroring mode
	GetMirroring() uint8

	// PeekPRG reads PRG-ROM/RAM without side effects, for breakpoint
	// inspection and disassembly tools. Mappers whose ReadPRG has no
	// side effects can implement this as a direct call to ReadPRG.
	PeekPRG(addr uint16) uint8

	// PeekCHR reads CHR-ROM/RAM without side effects.
	PeekCHR(addr uint16) uint8

	// NotifyA12 is called on every PPU bus dereference, address-only,
	// regardless of whether it is a CHR read or write. MMC3-family
	// mappers use the rising edges of bit 12 to clock their scanline
	// counter; mappers that don't care about A12 transitions ignore it.
	NotifyA12(addr uint16)

	// StepM2 is called once per CPU clock (M2) cycle, used by mappers
	// that filter PPU-A12 edges by a minimum number of low M2 cycles
	// to reject the address glitches PPU rendering produces.
	StepM2()

	// IRQ reports whether the mapper is currently asserting the IRQ
	// line. Mappers without an IRQ source always return false.
	IRQ() bool
}
