package cpu

// addrMode identifies one of the 6502's addressing modes. Illegal
// opcodes reuse the same modes as their documented cousins.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

// operand is the resolved address (or, for accumulator/implied modes,
// an unused zero) plus whether resolving it crossed a page boundary.
// A page cross costs a CPU an extra read cycle on indexed modes when
// the base instruction does not already account for it.
type operand struct {
	addr         uint16
	pageCrossed  bool
	isAccumulator bool
}

func (c *CPU) resolve(bus Bus, mode addrMode) operand {
	switch mode {
	case modeImplied:
		return operand{}
	case modeAccumulator:
		return operand{isAccumulator: true}
	case modeImmediate:
		addr := c.PC
		c.PC++
		return operand{addr: addr}
	case modeZeroPage:
		addr := uint16(bus.Read(c.PC))
		c.PC++
		return operand{addr: addr}
	case modeZeroPageX:
		addr := uint16(uint8(bus.Read(c.PC)) + c.X)
		c.PC++
		return operand{addr: addr}
	case modeZeroPageY:
		addr := uint16(uint8(bus.Read(c.PC)) + c.Y)
		c.PC++
		return operand{addr: addr}
	case modeAbsolute:
		addr := c.read16(bus, c.PC)
		c.PC += 2
		return operand{addr: addr}
	case modeAbsoluteX:
		base := c.read16(bus, c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		return operand{addr: addr, pageCrossed: pageOf(base) != pageOf(addr)}
	case modeAbsoluteY:
		base := c.read16(bus, c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pageOf(base) != pageOf(addr)}
	case modeIndirect:
		ptr := c.read16(bus, c.PC)
		c.PC += 2
		addr := c.read16Bugged(bus, ptr)
		return operand{addr: addr}
	case modeIndirectX:
		base := uint8(bus.Read(c.PC))
		c.PC++
		ptr := uint16(base + c.X)
		addr := c.read16ZeroPage(bus, ptr)
		return operand{addr: addr}
	case modeIndirectY:
		base := uint8(bus.Read(c.PC))
		c.PC++
		ptr := c.read16ZeroPage(bus, uint16(base))
		addr := ptr + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pageOf(ptr) != pageOf(addr)}
	case modeRelative:
		offset := int8(bus.Read(c.PC))
		c.PC++
		addr := uint16(int32(c.PC) + int32(offset))
		return operand{addr: addr, pageCrossed: pageOf(c.PC) != pageOf(addr)}
	}
	return operand{}
}

func pageOf(addr uint16) uint16 {
	return addr & 0xFF00
}

func (c *CPU) read16(bus Bus, addr uint16) uint16 {
	lo := uint16(bus.Read(addr))
	hi := uint16(bus.Read(addr + 1))
	return hi<<8 | lo
}

// read16Bugged reproduces the JMP ($xxFF) page-wrap bug: the high byte
// is fetched from the start of the same page rather than the next
// page, matching the original 6502's incomplete address-increment
// logic for indirect JMP.
func (c *CPU) read16Bugged(bus Bus, addr uint16) uint16 {
	lo := uint16(bus.Read(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(bus.Read(hiAddr))
	return hi<<8 | lo
}

// read16ZeroPage wraps within the zero page for (indirect,X) and
// (indirect),Y addressing, as the real CPU never carries into page 1.
func (c *CPU) read16ZeroPage(bus Bus, addr uint16) uint16 {
	lo := uint16(bus.Read(addr & 0x00FF))
	hi := uint16(bus.Read((addr + 1) & 0x00FF))
	return hi<<8 | lo
}
