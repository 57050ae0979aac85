package cartridge

// MirrorNametableAddress maps a PPU nametable address ($2000-$2FFF,
// already reduced modulo $1000) onto one of the two physical 1KB VRAM
// pages, according to mode. This logic is shared by the PPU, which
// owns the actual VRAM storage but has no opinion of its own about
// which cartridge-controlled layout applies.
func MirrorNametableAddress(addr uint16, mode uint8) uint16 {
	addr &= 0x0FFF
	table := addr / 0x0400
	offset := addr % 0x0400

	var page uint16
	switch mode {
	case MirrorVertical:
		page = uint16(table) % 2
	case MirrorHorizontal:
		page = uint16(table) / 2
	case MirrorSingleLow:
		page = 0
	case MirrorSingleHigh:
		page = 1
	case MirrorFourScreen:
		// Four-screen carts provide their own 2KB of extra VRAM; this
		// mapping only covers the two onboard 1KB pages, so callers
		// with four-screen cartridges must route through
		// cartridge-provided storage instead of this helper.
		page = uint16(table) % 2
	default:
		page = uint16(table) % 2
	}

	return page*0x0400 + offset
}
