package cartridge

// Mapper31 implements iNES Mapper 31, the NSF bank-switching mapper.
// It does not correspond to a physical cartridge board; it exists so
// an NSF music file's bank-switched PRG layout (eight independently
// selected 4KB windows at $8000-$FFFF) can be expressed through
// the same Mapper interface every other cartridge uses, rather than
// giving NSF playback its own bespoke bus.
//
// PRG Memory Map:
//
//	$8000-$8FFF, $9000-$9FFF, ..., $F000-$FFFF: eight 4KB banks,
//	  independently selected by writes to $5FF8-$5FFF
//
// Registers:
//
//	$5FF8: selects the 4KB bank mapped at $8000
//	$5FF9: selects the 4KB bank mapped at $9000
//	...
//	$5FFF: selects the 4KB bank mapped at $F000
type Mapper31 struct {
	prgROM []uint8
	chrRAM []uint8

	banks     [8]uint8
	prgBanks  uint8 // number of 4KB PRG banks available
	mirroring uint8
}

// NewMapper31 creates a new NSF bank-switch mapper. CHR is always RAM
// since NSF files carry no graphics data.
func NewMapper31(prgROM, chrROM []uint8, mirroring uint8) *Mapper31 {
	m := &Mapper31{
		prgROM:    make([]uint8, len(prgROM)),
		chrRAM:    make([]uint8, 8192),
		prgBanks:  uint8(len(prgROM) / 4096),
		mirroring: mirroring,
	}
	copy(m.prgROM, prgROM)
	// Default layout: bank N at window N, so an NSF with fewer than
	// 8*4KB=32KB of data still boots into a sane, contiguous image.
	for i := range m.banks {
		m.banks[i] = uint8(i)
	}
	return m
}

func (m *Mapper31) bankIndex(addr uint16) int {
	return int((addr - 0x8000) / 0x1000)
}

// ReadPRG reads from PRG space. $6000-$7FFF is unmapped on this
// board; NSF players keep their zero page and player RAM below $6000.
func (m *Mapper31) ReadPRG(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	bank := m.banks[m.bankIndex(addr)]
	offset := uint32(bank)*0x1000 + uint32(addr&0x0FFF)
	if int(offset) < len(m.prgROM) {
		return m.prgROM[offset]
	}
	return 0
}

// WritePRG handles writes to $5FF8-$5FFF, the bank-select registers.
// Mapper 31 carries no other writable PRG state.
func (m *Mapper31) WritePRG(addr uint16, value uint8) {
	if addr >= 0x5FF8 && addr <= 0x5FFF {
		m.banks[addr-0x5FF8] = value
	}
}

// ReadCHR reads from CHR-RAM.
func (m *Mapper31) ReadCHR(addr uint16) uint8 {
	if int(addr) < len(m.chrRAM) {
		return m.chrRAM[addr]
	}
	return 0
}

// WriteCHR writes to CHR-RAM.
func (m *Mapper31) WriteCHR(addr uint16, value uint8) {
	if int(addr) < len(m.chrRAM) {
		m.chrRAM[addr] = value
	}
}

// Scanline is unused; mapper 31 has no IRQ source.
func (m *Mapper31) Scanline() {}

// GetMirroring returns the nametable mirroring mode. NSF playback
// never renders, so this value is only meaningful if a host insists
// on driving the PPU anyway.
func (m *Mapper31) GetMirroring() uint8 { return m.mirroring }

// PeekPRG reads PRG space without side effects.
func (m *Mapper31) PeekPRG(addr uint16) uint8 { return m.ReadPRG(addr) }

// PeekCHR reads CHR-RAM without side effects.
func (m *Mapper31) PeekCHR(addr uint16) uint8 { return m.ReadCHR(addr) }

// NotifyA12 is unused; mapper 31 has no IRQ logic tied to PPU addressing.
func (m *Mapper31) NotifyA12(addr uint16) {}

// StepM2 is unused; mapper 31 has no per-cycle state.
func (m *Mapper31) StepM2() {}

// IRQ always reports false; mapper 31 has no IRQ source.
func (m *Mapper31) IRQ() bool { return false }
