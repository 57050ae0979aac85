package cartridge

// Mapper66 implements iNES Mapper 66 (GxROM).
//
// GxROM is used by games like Super Mario Bros. + Duck Hunt, Dragon
// Power. A single write selects both the 32KB PRG bank and the 8KB
// CHR bank simultaneously; there is no independent control of either.
//
// CPU Memory Map:
//
//	$8000-$FFFF: Switchable 32 KB PRG-ROM bank
//
// PPU Memory Map:
//
//	$0000-$1FFF: Switchable 8 KB CHR-ROM bank
//
// Bank Switching:
//
//	Writing to $8000-$FFFF: bits 4-5 select the PRG bank, bits 0-1
//	select the CHR bank.
type Mapper66 struct {
	prgROM []uint8
	chrROM []uint8

	prgBanks uint8
	chrBanks uint8
	prgBank  uint8
	chrBank  uint8

	mirroring uint8
}

// NewMapper66 creates a new GxROM mapper (Mapper 66).
func NewMapper66(prgROM, chrROM []uint8, mirroring uint8) *Mapper66 {
	m := &Mapper66{
		prgROM:    make([]uint8, len(prgROM)),
		chrROM:    make([]uint8, len(chrROM)),
		prgBanks:  uint8(len(prgROM) / 32768),
		chrBanks:  uint8(len(chrROM) / 8192),
		mirroring: mirroring,
	}
	copy(m.prgROM, prgROM)
	copy(m.chrROM, chrROM)
	return m
}

// ReadPRG reads from the selected 32KB PRG bank.
func (m *Mapper66) ReadPRG(addr uint16) uint8 {
	if addr < 0x8000 {
		return 0
	}
	offset := uint32(m.prgBank)*0x8000 + uint32(addr-0x8000)
	if int(offset) < len(m.prgROM) {
		return m.prgROM[offset]
	}
	return 0
}

// WritePRG decodes the combined PRG/CHR bank-select write.
func (m *Mapper66) WritePRG(addr uint16, value uint8) {
	if addr < 0x8000 {
		return
	}
	prg := (value >> 4) & 0x03
	chr := value & 0x03
	if m.prgBanks > 0 {
		prg &= m.prgBanks - 1
	}
	if m.chrBanks > 0 {
		chr &= m.chrBanks - 1
	}
	m.prgBank = prg
	m.chrBank = chr
}

// ReadCHR reads from the selected 8KB CHR-ROM bank.
func (m *Mapper66) ReadCHR(addr uint16) uint8 {
	offset := uint32(m.chrBank)*0x2000 + uint32(addr)
	if int(offset) < len(m.chrROM) {
		return m.chrROM[offset]
	}
	return 0
}

// WriteCHR is a no-op; GxROM CHR is ROM, not RAM.
func (m *Mapper66) WriteCHR(addr uint16, value uint8) {}

// Scanline is unused; GxROM has no IRQ source.
func (m *Mapper66) Scanline() {}

// GetMirroring returns the fixed nametable mirroring mode from the
// cartridge header; GxROM cannot change it at runtime.
func (m *Mapper66) GetMirroring() uint8 { return m.mirroring }

// PeekPRG reads PRG-ROM without side effects.
func (m *Mapper66) PeekPRG(addr uint16) uint8 { return m.ReadPRG(addr) }

// PeekCHR reads CHR-ROM without side effects.
func (m *Mapper66) PeekCHR(addr uint16) uint8 { return m.ReadCHR(addr) }

// NotifyA12 is unused; GxROM has no IRQ logic tied to PPU addressing.
func (m *Mapper66) NotifyA12(addr uint16) {}

// StepM2 is unused; GxROM has no per-cycle state.
func (m *Mapper66) StepM2() {}

// IRQ always reports false; GxROM has no IRQ source.
func (m *Mapper66) IRQ() bool { return false }
