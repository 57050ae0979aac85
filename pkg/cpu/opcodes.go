package cpu

// opcodeEntry describes one of the 256 possible opcode bytes: its
// mnemonic (used only for tracing/debugging), addressing mode, base
// cycle count, and the handler that performs the operation. For most
// instructions, the handler's bool return means "a page-crossing
// penalty cycle should be added on top of the base count," mirroring
// how real instructions only pay that penalty on certain modes (e.g.
// LDA absolute,X but not STA absolute,X). For branch opcodes
// (isBranch), the same bool instead means "the branch was taken" —
// see execute.
type opcodeEntry struct {
	name   string
	mode   addrMode
	cycles uint8
	fn     func(c *CPU, bus Bus, op operand) bool
	// isBranch marks the conditional-branch opcodes, whose fn return
	// value means "branch taken" rather than "apply the page-crossing
	// penalty" — the two pay different, stackable costs (see execute).
	isBranch bool
}

// execute runs the already-fetched opcode entry: resolves its operand,
// invokes its handler, and folds in any page-crossing penalty.
//
// Branches and page-crossing reads both use the handler's bool return,
// but mean different things by it. For most instructions, true means
// "this access crossed a page boundary" and costs one extra cycle.
// For branches, true means "the branch was taken," which always costs
// one extra cycle, plus a further one if the taken branch also crossed
// a page boundary — two independently stackable penalties, not one.
func (c *CPU) execute(bus Bus, entry opcodeEntry) uint8 {
	op := c.resolve(bus, entry.mode)
	extra := entry.fn(c, bus, op)
	cycles := entry.cycles
	if entry.isBranch {
		if extra {
			cycles++
			if op.pageCrossed {
				cycles++
			}
		}
	} else if extra && op.pageCrossed {
		cycles++
	}
	return cycles
}

func (c *CPU) load(bus Bus, op operand) uint8 {
	if op.isAccumulator {
		return c.A
	}
	return bus.Read(op.addr)
}

func (c *CPU) store(bus Bus, op operand, v uint8) {
	if op.isAccumulator {
		c.A = v
		return
	}
	bus.Write(op.addr, v)
}

// --- load/store ---

func opLDA(c *CPU, bus Bus, op operand) bool { c.A = c.load(bus, op); c.setZN(c.A); return true }
func opLDX(c *CPU, bus Bus, op operand) bool { c.X = c.load(bus, op); c.setZN(c.X); return true }
func opLDY(c *CPU, bus Bus, op operand) bool { c.Y = c.load(bus, op); c.setZN(c.Y); return true }
func opSTA(c *CPU, bus Bus, op operand) bool { bus.Write(op.addr, c.A); return false }
func opSTX(c *CPU, bus Bus, op operand) bool { bus.Write(op.addr, c.X); return false }
func opSTY(c *CPU, bus Bus, op operand) bool { bus.Write(op.addr, c.Y); return false }

// --- transfers ---

func opTAX(c *CPU, bus Bus, op operand) bool { c.X = c.A; c.setZN(c.X); return false }
func opTAY(c *CPU, bus Bus, op operand) bool { c.Y = c.A; c.setZN(c.Y); return false }
func opTXA(c *CPU, bus Bus, op operand) bool { c.A = c.X; c.setZN(c.A); return false }
func opTYA(c *CPU, bus Bus, op operand) bool { c.A = c.Y; c.setZN(c.A); return false }
func opTSX(c *CPU, bus Bus, op operand) bool { c.X = c.SP; c.setZN(c.X); return false }
func opTXS(c *CPU, bus Bus, op operand) bool { c.SP = c.X; return false }

// --- stack ---

func opPHA(c *CPU, bus Bus, op operand) bool { c.push(bus, c.A); return false }
func opPHP(c *CPU, bus Bus, op operand) bool {
	c.push(bus, c.P|FlagBreak|FlagUnused)
	return false
}
func opPLA(c *CPU, bus Bus, op operand) bool { c.A = c.pull(bus); c.setZN(c.A); return false }
func opPLP(c *CPU, bus Bus, op operand) bool {
	c.P = (c.pull(bus) &^ FlagBreak) | FlagUnused
	return false
}

// --- arithmetic ---

func (c *CPU) adc(v uint8) {
	sum := uint16(c.A) + uint16(v)
	if c.flag(FlagCarry) {
		sum++
	}
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *CPU, bus Bus, op operand) bool { c.adc(c.load(bus, op)); return true }
func opSBC(c *CPU, bus Bus, op operand) bool { c.adc(^c.load(bus, op)); return true }

func (c *CPU) compare(reg, v uint8) {
	result := reg - v
	c.setFlag(FlagCarry, reg >= v)
	c.setZN(result)
}

func opCMP(c *CPU, bus Bus, op operand) bool { c.compare(c.A, c.load(bus, op)); return true }
func opCPX(c *CPU, bus Bus, op operand) bool { c.compare(c.X, c.load(bus, op)); return false }
func opCPY(c *CPU, bus Bus, op operand) bool { c.compare(c.Y, c.load(bus, op)); return false }

// --- increment/decrement ---

func opINC(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr) + 1
	bus.Write(op.addr, v)
	c.setZN(v)
	return false
}
func opDEC(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr) - 1
	bus.Write(op.addr, v)
	c.setZN(v)
	return false
}
func opINX(c *CPU, bus Bus, op operand) bool { c.X++; c.setZN(c.X); return false }
func opINY(c *CPU, bus Bus, op operand) bool { c.Y++; c.setZN(c.Y); return false }
func opDEX(c *CPU, bus Bus, op operand) bool { c.X--; c.setZN(c.X); return false }
func opDEY(c *CPU, bus Bus, op operand) bool { c.Y--; c.setZN(c.Y); return false }

// --- logic ---

func opAND(c *CPU, bus Bus, op operand) bool { c.A &= c.load(bus, op); c.setZN(c.A); return true }
func opORA(c *CPU, bus Bus, op operand) bool { c.A |= c.load(bus, op); c.setZN(c.A); return true }
func opEOR(c *CPU, bus Bus, op operand) bool { c.A ^= c.load(bus, op); c.setZN(c.A); return true }
func opBIT(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
	return false
}

// --- shifts/rotates ---

func opASL(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.store(bus, op, v)
	c.setZN(v)
	return false
}
func opLSR(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.store(bus, op, v)
	c.setZN(v)
	return false
}
func opROL(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = v<<1 | carryIn
	c.store(bus, op, v)
	c.setZN(v)
	return false
}
func opROR(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = v>>1 | carryIn
	c.store(bus, op, v)
	c.setZN(v)
	return false
}

// --- branches ---

func (c *CPU) branch(op operand, taken bool) bool {
	if !taken {
		return false
	}
	c.PC = op.addr
	return true
}

func opBCC(c *CPU, bus Bus, op operand) bool { return c.branch(op, !c.flag(FlagCarry)) }
func opBCS(c *CPU, bus Bus, op operand) bool { return c.branch(op, c.flag(FlagCarry)) }
func opBEQ(c *CPU, bus Bus, op operand) bool { return c.branch(op, c.flag(FlagZero)) }
func opBNE(c *CPU, bus Bus, op operand) bool { return c.branch(op, !c.flag(FlagZero)) }
func opBMI(c *CPU, bus Bus, op operand) bool { return c.branch(op, c.flag(FlagNegative)) }
func opBPL(c *CPU, bus Bus, op operand) bool { return c.branch(op, !c.flag(FlagNegative)) }
func opBVC(c *CPU, bus Bus, op operand) bool { return c.branch(op, !c.flag(FlagOverflow)) }
func opBVS(c *CPU, bus Bus, op operand) bool { return c.branch(op, c.flag(FlagOverflow)) }

// --- jumps/calls ---

func opJMP(c *CPU, bus Bus, op operand) bool { c.PC = op.addr; return false }
func opJSR(c *CPU, bus Bus, op operand) bool {
	c.push16(bus, c.PC-1)
	c.PC = op.addr
	return false
}
func opRTS(c *CPU, bus Bus, op operand) bool {
	c.PC = c.pull16(bus) + 1
	return false
}
func opRTI(c *CPU, bus Bus, op operand) bool {
	c.P = (c.pull(bus) &^ FlagBreak) | FlagUnused
	c.PC = c.pull16(bus)
	return false
}
func opBRK(c *CPU, bus Bus, op operand) bool {
	c.PC++
	c.push16(bus, c.PC)
	c.push(bus, c.P|FlagBreak|FlagUnused)
	c.P |= FlagInterrupt
	c.PC = readVector(bus, VectorIRQ)
	return false
}

// --- flags ---

func opCLC(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagCarry, false); return false }
func opSEC(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagCarry, true); return false }
func opCLI(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagInterrupt, false); return false }
func opSEI(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagInterrupt, true); return false }
func opCLD(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagDecimal, false); return false }
func opSED(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagDecimal, true); return false }
func opCLV(c *CPU, bus Bus, op operand) bool { c.setFlag(FlagOverflow, false); return false }

// --- misc ---

func opNOP(c *CPU, bus Bus, op operand) bool { return false }

// opNOPRead is used by the undocumented NOP variants that still
// perform a read of their operand (and so still pay the page-cross
// penalty) but discard the value.
func opNOPRead(c *CPU, bus Bus, op operand) bool { c.load(bus, op); return true }

func opJAM(c *CPU, bus Bus, op operand) bool { c.halted = true; return false }

// --- undocumented combo opcodes ---
// These fuse two documented operations into one instruction, exactly as
// the real 6502's decode ROM does when an unassigned opcode happens to
// assert two control-line groups at once.

func opLAX(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	c.A = v
	c.X = v
	c.setZN(v)
	return true
}
func opSAX(c *CPU, bus Bus, op operand) bool {
	bus.Write(op.addr, c.A&c.X)
	return false
}
func opDCP(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr) - 1
	bus.Write(op.addr, v)
	c.compare(c.A, v)
	return false
}
func opISC(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr) + 1
	bus.Write(op.addr, v)
	c.adc(^v)
	return false
}
func opSLO(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	bus.Write(op.addr, v)
	c.A |= v
	c.setZN(c.A)
	return false
}
func opRLA(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr)
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = v<<1 | carryIn
	bus.Write(op.addr, v)
	c.A &= v
	c.setZN(c.A)
	return false
}
func opSRE(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	bus.Write(op.addr, v)
	c.A ^= v
	c.setZN(c.A)
	return false
}
func opRRA(c *CPU, bus Bus, op operand) bool {
	v := bus.Read(op.addr)
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = v>>1 | carryIn
	bus.Write(op.addr, v)
	c.adc(v)
	return false
}
func opANC(c *CPU, bus Bus, op operand) bool {
	c.A &= c.load(bus, op)
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
	return false
}
func opALR(c *CPU, bus Bus, op operand) bool {
	c.A &= c.load(bus, op)
	c.setFlag(FlagCarry, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
	return false
}
func opARR(c *CPU, bus Bus, op operand) bool {
	c.A &= c.load(bus, op)
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 0x80
	}
	c.A = c.A>>1 | carryIn
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x40 != 0)
	c.setFlag(FlagOverflow, (c.A>>6)&1^(c.A>>5)&1 != 0)
	return false
}
func opSBX(c *CPU, bus Bus, op operand) bool {
	v := c.load(bus, op)
	result := (c.A & c.X) - v
	c.setFlag(FlagCarry, (c.A&c.X) >= v)
	c.X = result
	c.setZN(c.X)
	return false
}

// opcodeTable is the full 256-entry dispatch table, official opcodes
// plus the documented illegal opcodes that real NES software (and
// test ROMs such as blargg's instr_test) actually relies on. Unlisted
// byte values fall through to JAM, matching unstable/rarely-emulated
// illegal opcodes that no commercial NES game depends on.
var opcodeTable [256]opcodeEntry

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = opcodeEntry{name: "JAM", mode: modeImplied, cycles: 2, fn: opJAM}
	}

	def := func(code uint8, name string, mode addrMode, cycles uint8, fn func(*CPU, Bus, operand) bool) {
		opcodeTable[code] = opcodeEntry{name: name, mode: mode, cycles: cycles, fn: fn}
	}

	defBranch := func(code uint8, name string, fn func(*CPU, Bus, operand) bool) {
		opcodeTable[code] = opcodeEntry{name: name, mode: modeRelative, cycles: 2, fn: fn, isBranch: true}
	}

	// ADC
	def(0x69, "ADC", modeImmediate, 2, opADC)
	def(0x65, "ADC", modeZeroPage, 3, opADC)
	def(0x75, "ADC", modeZeroPageX, 4, opADC)
	def(0x6D, "ADC", modeAbsolute, 4, opADC)
	def(0x7D, "ADC", modeAbsoluteX, 4, opADC)
	def(0x79, "ADC", modeAbsoluteY, 4, opADC)
	def(0x61, "ADC", modeIndirectX, 6, opADC)
	def(0x71, "ADC", modeIndirectY, 5, opADC)

	// AND
	def(0x29, "AND", modeImmediate, 2, opAND)
	def(0x25, "AND", modeZeroPage, 3, opAND)
	def(0x35, "AND", modeZeroPageX, 4, opAND)
	def(0x2D, "AND", modeAbsolute, 4, opAND)
	def(0x3D, "AND", modeAbsoluteX, 4, opAND)
	def(0x39, "AND", modeAbsoluteY, 4, opAND)
	def(0x21, "AND", modeIndirectX, 6, opAND)
	def(0x31, "AND", modeIndirectY, 5, opAND)

	// ASL
	def(0x0A, "ASL", modeAccumulator, 2, opASL)
	def(0x06, "ASL", modeZeroPage, 5, opASL)
	def(0x16, "ASL", modeZeroPageX, 6, opASL)
	def(0x0E, "ASL", modeAbsolute, 6, opASL)
	def(0x1E, "ASL", modeAbsoluteX, 7, opASL)

	// branches
	defBranch(0x90, "BCC", opBCC)
	defBranch(0xB0, "BCS", opBCS)
	defBranch(0xF0, "BEQ", opBEQ)
	defBranch(0x30, "BMI", opBMI)
	defBranch(0xD0, "BNE", opBNE)
	defBranch(0x10, "BPL", opBPL)
	defBranch(0x50, "BVC", opBVC)
	defBranch(0x70, "BVS", opBVS)

	// BIT
	def(0x24, "BIT", modeZeroPage, 3, opBIT)
	def(0x2C, "BIT", modeAbsolute, 4, opBIT)

	// BRK
	def(0x00, "BRK", modeImplied, 7, opBRK)

	// flag ops
	def(0x18, "CLC", modeImplied, 2, opCLC)
	def(0x38, "SEC", modeImplied, 2, opSEC)
	def(0x58, "CLI", modeImplied, 2, opCLI)
	def(0x78, "SEI", modeImplied, 2, opSEI)
	def(0xB8, "CLV", modeImplied, 2, opCLV)
	def(0xD8, "CLD", modeImplied, 2, opCLD)
	def(0xF8, "SED", modeImplied, 2, opSED)

	// CMP
	def(0xC9, "CMP", modeImmediate, 2, opCMP)
	def(0xC5, "CMP", modeZeroPage, 3, opCMP)
	def(0xD5, "CMP", modeZeroPageX, 4, opCMP)
	def(0xCD, "CMP", modeAbsolute, 4, opCMP)
	def(0xDD, "CMP", modeAbsoluteX, 4, opCMP)
	def(0xD9, "CMP", modeAbsoluteY, 4, opCMP)
	def(0xC1, "CMP", modeIndirectX, 6, opCMP)
	def(0xD1, "CMP", modeIndirectY, 5, opCMP)

	// CPX / CPY
	def(0xE0, "CPX", modeImmediate, 2, opCPX)
	def(0xE4, "CPX", modeZeroPage, 3, opCPX)
	def(0xEC, "CPX", modeAbsolute, 4, opCPX)
	def(0xC0, "CPY", modeImmediate, 2, opCPY)
	def(0xC4, "CPY", modeZeroPage, 3, opCPY)
	def(0xCC, "CPY", modeAbsolute, 4, opCPY)

	// DEC/INC
	def(0xC6, "DEC", modeZeroPage, 5, opDEC)
	def(0xD6, "DEC", modeZeroPageX, 6, opDEC)
	def(0xCE, "DEC", modeAbsolute, 6, opDEC)
	def(0xDE, "DEC", modeAbsoluteX, 7, opDEC)
	def(0xE6, "INC", modeZeroPage, 5, opINC)
	def(0xF6, "INC", modeZeroPageX, 6, opINC)
	def(0xEE, "INC", modeAbsolute, 6, opINC)
	def(0xFE, "INC", modeAbsoluteX, 7, opINC)

	def(0xCA, "DEX", modeImplied, 2, opDEX)
	def(0x88, "DEY", modeImplied, 2, opDEY)
	def(0xE8, "INX", modeImplied, 2, opINX)
	def(0xC8, "INY", modeImplied, 2, opINY)

	// EOR
	def(0x49, "EOR", modeImmediate, 2, opEOR)
	def(0x45, "EOR", modeZeroPage, 3, opEOR)
	def(0x55, "EOR", modeZeroPageX, 4, opEOR)
	def(0x4D, "EOR", modeAbsolute, 4, opEOR)
	def(0x5D, "EOR", modeAbsoluteX, 4, opEOR)
	def(0x59, "EOR", modeAbsoluteY, 4, opEOR)
	def(0x41, "EOR", modeIndirectX, 6, opEOR)
	def(0x51, "EOR", modeIndirectY, 5, opEOR)

	// JMP/JSR/RTS/RTI
	def(0x4C, "JMP", modeAbsolute, 3, opJMP)
	def(0x6C, "JMP", modeIndirect, 5, opJMP)
	def(0x20, "JSR", modeAbsolute, 6, opJSR)
	def(0x60, "RTS", modeImplied, 6, opRTS)
	def(0x40, "RTI", modeImplied, 6, opRTI)

	// LDA/LDX/LDY
	def(0xA9, "LDA", modeImmediate, 2, opLDA)
	def(0xA5, "LDA", modeZeroPage, 3, opLDA)
	def(0xB5, "LDA", modeZeroPageX, 4, opLDA)
	def(0xAD, "LDA", modeAbsolute, 4, opLDA)
	def(0xBD, "LDA", modeAbsoluteX, 4, opLDA)
	def(0xB9, "LDA", modeAbsoluteY, 4, opLDA)
	def(0xA1, "LDA", modeIndirectX, 6, opLDA)
	def(0xB1, "LDA", modeIndirectY, 5, opLDA)

	def(0xA2, "LDX", modeImmediate, 2, opLDX)
	def(0xA6, "LDX", modeZeroPage, 3, opLDX)
	def(0xB6, "LDX", modeZeroPageY, 4, opLDX)
	def(0xAE, "LDX", modeAbsolute, 4, opLDX)
	def(0xBE, "LDX", modeAbsoluteY, 4, opLDX)

	def(0xA0, "LDY", modeImmediate, 2, opLDY)
	def(0xA4, "LDY", modeZeroPage, 3, opLDY)
	def(0xB4, "LDY", modeZeroPageX, 4, opLDY)
	def(0xAC, "LDY", modeAbsolute, 4, opLDY)
	def(0xBC, "LDY", modeAbsoluteX, 4, opLDY)

	// LSR
	def(0x4A, "LSR", modeAccumulator, 2, opLSR)
	def(0x46, "LSR", modeZeroPage, 5, opLSR)
	def(0x56, "LSR", modeZeroPageX, 6, opLSR)
	def(0x4E, "LSR", modeAbsolute, 6, opLSR)
	def(0x5E, "LSR", modeAbsoluteX, 7, opLSR)

	// NOP (official)
	def(0xEA, "NOP", modeImplied, 2, opNOP)

	// ORA
	def(0x09, "ORA", modeImmediate, 2, opORA)
	def(0x05, "ORA", modeZeroPage, 3, opORA)
	def(0x15, "ORA", modeZeroPageX, 4, opORA)
	def(0x0D, "ORA", modeAbsolute, 4, opORA)
	def(0x1D, "ORA", modeAbsoluteX, 4, opORA)
	def(0x19, "ORA", modeAbsoluteY, 4, opORA)
	def(0x01, "ORA", modeIndirectX, 6, opORA)
	def(0x11, "ORA", modeIndirectY, 5, opORA)

	// stack
	def(0x48, "PHA", modeImplied, 3, opPHA)
	def(0x08, "PHP", modeImplied, 3, opPHP)
	def(0x68, "PLA", modeImplied, 4, opPLA)
	def(0x28, "PLP", modeImplied, 4, opPLP)

	// ROL/ROR
	def(0x2A, "ROL", modeAccumulator, 2, opROL)
	def(0x26, "ROL", modeZeroPage, 5, opROL)
	def(0x36, "ROL", modeZeroPageX, 6, opROL)
	def(0x2E, "ROL", modeAbsolute, 6, opROL)
	def(0x3E, "ROL", modeAbsoluteX, 7, opROL)
	def(0x6A, "ROR", modeAccumulator, 2, opROR)
	def(0x66, "ROR", modeZeroPage, 5, opROR)
	def(0x76, "ROR", modeZeroPageX, 6, opROR)
	def(0x6E, "ROR", modeAbsolute, 6, opROR)
	def(0x7E, "ROR", modeAbsoluteX, 7, opROR)

	// SBC
	def(0xE9, "SBC", modeImmediate, 2, opSBC)
	def(0xE5, "SBC", modeZeroPage, 3, opSBC)
	def(0xF5, "SBC", modeZeroPageX, 4, opSBC)
	def(0xED, "SBC", modeAbsolute, 4, opSBC)
	def(0xFD, "SBC", modeAbsoluteX, 4, opSBC)
	def(0xF9, "SBC", modeAbsoluteY, 4, opSBC)
	def(0xE1, "SBC", modeIndirectX, 6, opSBC)
	def(0xF1, "SBC", modeIndirectY, 5, opSBC)
	def(0xEB, "*SBC", modeImmediate, 2, opSBC) // undocumented duplicate

	// STA/STX/STY
	def(0x85, "STA", modeZeroPage, 3, opSTA)
	def(0x95, "STA", modeZeroPageX, 4, opSTA)
	def(0x8D, "STA", modeAbsolute, 4, opSTA)
	def(0x9D, "STA", modeAbsoluteX, 5, opSTA)
	def(0x99, "STA", modeAbsoluteY, 5, opSTA)
	def(0x81, "STA", modeIndirectX, 6, opSTA)
	def(0x91, "STA", modeIndirectY, 6, opSTA)
	def(0x86, "STX", modeZeroPage, 3, opSTX)
	def(0x96, "STX", modeZeroPageY, 4, opSTX)
	def(0x8E, "STX", modeAbsolute, 4, opSTX)
	def(0x84, "STY", modeZeroPage, 3, opSTY)
	def(0x94, "STY", modeZeroPageX, 4, opSTY)
	def(0x8C, "STY", modeAbsolute, 4, opSTY)

	// transfers
	def(0xAA, "TAX", modeImplied, 2, opTAX)
	def(0xA8, "TAY", modeImplied, 2, opTAY)
	def(0x8A, "TXA", modeImplied, 2, opTXA)
	def(0x98, "TYA", modeImplied, 2, opTYA)
	def(0xBA, "TSX", modeImplied, 2, opTSX)
	def(0x9A, "TXS", modeImplied, 2, opTXS)

	// --- undocumented opcodes actually exercised by commercial ROMs
	// and the blargg instr_test / illegal-opcode test suites ---

	def(0xA7, "LAX", modeZeroPage, 3, opLAX)
	def(0xB7, "LAX", modeZeroPageY, 4, opLAX)
	def(0xAF, "LAX", modeAbsolute, 4, opLAX)
	def(0xBF, "LAX", modeAbsoluteY, 4, opLAX)
	def(0xA3, "LAX", modeIndirectX, 6, opLAX)
	def(0xB3, "LAX", modeIndirectY, 5, opLAX)

	def(0x87, "SAX", modeZeroPage, 3, opSAX)
	def(0x97, "SAX", modeZeroPageY, 4, opSAX)
	def(0x8F, "SAX", modeAbsolute, 4, opSAX)
	def(0x83, "SAX", modeIndirectX, 6, opSAX)

	def(0xC7, "DCP", modeZeroPage, 5, opDCP)
	def(0xD7, "DCP", modeZeroPageX, 6, opDCP)
	def(0xCF, "DCP", modeAbsolute, 6, opDCP)
	def(0xDF, "DCP", modeAbsoluteX, 7, opDCP)
	def(0xDB, "DCP", modeAbsoluteY, 7, opDCP)
	def(0xC3, "DCP", modeIndirectX, 8, opDCP)
	def(0xD3, "DCP", modeIndirectY, 8, opDCP)

	def(0xE7, "ISC", modeZeroPage, 5, opISC)
	def(0xF7, "ISC", modeZeroPageX, 6, opISC)
	def(0xEF, "ISC", modeAbsolute, 6, opISC)
	def(0xFF, "ISC", modeAbsoluteX, 7, opISC)
	def(0xFB, "ISC", modeAbsoluteY, 7, opISC)
	def(0xE3, "ISC", modeIndirectX, 8, opISC)
	def(0xF3, "ISC", modeIndirectY, 8, opISC)

	def(0x07, "SLO", modeZeroPage, 5, opSLO)
	def(0x17, "SLO", modeZeroPageX, 6, opSLO)
	def(0x0F, "SLO", modeAbsolute, 6, opSLO)
	def(0x1F, "SLO", modeAbsoluteX, 7, opSLO)
	def(0x1B, "SLO", modeAbsoluteY, 7, opSLO)
	def(0x03, "SLO", modeIndirectX, 8, opSLO)
	def(0x13, "SLO", modeIndirectY, 8, opSLO)

	def(0x27, "RLA", modeZeroPage, 5, opRLA)
	def(0x37, "RLA", modeZeroPageX, 6, opRLA)
	def(0x2F, "RLA", modeAbsolute, 6, opRLA)
	def(0x3F, "RLA", modeAbsoluteX, 7, opRLA)
	def(0x3B, "RLA", modeAbsoluteY, 7, opRLA)
	def(0x23, "RLA", modeIndirectX, 8, opRLA)
	def(0x33, "RLA", modeIndirectY, 8, opRLA)

	def(0x47, "SRE", modeZeroPage, 5, opSRE)
	def(0x57, "SRE", modeZeroPageX, 6, opSRE)
	def(0x4F, "SRE", modeAbsolute, 6, opSRE)
	def(0x5F, "SRE", modeAbsoluteX, 7, opSRE)
	def(0x5B, "SRE", modeAbsoluteY, 7, opSRE)
	def(0x43, "SRE", modeIndirectX, 8, opSRE)
	def(0x53, "SRE", modeIndirectY, 8, opSRE)

	def(0x67, "RRA", modeZeroPage, 5, opRRA)
	def(0x77, "RRA", modeZeroPageX, 6, opRRA)
	def(0x6F, "RRA", modeAbsolute, 6, opRRA)
	def(0x7F, "RRA", modeAbsoluteX, 7, opRRA)
	def(0x7B, "RRA", modeAbsoluteY, 7, opRRA)
	def(0x63, "RRA", modeIndirectX, 8, opRRA)
	def(0x73, "RRA", modeIndirectY, 8, opRRA)

	def(0x0B, "ANC", modeImmediate, 2, opANC)
	def(0x2B, "ANC", modeImmediate, 2, opANC)
	def(0x4B, "ALR", modeImmediate, 2, opALR)
	def(0x6B, "ARR", modeImmediate, 2, opARR)
	def(0xCB, "SBX", modeImmediate, 2, opSBX)

	// undocumented NOPs: several addressing-mode variants, all
	// discarding their operand.
	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		def(code, "*NOP", modeImplied, 2, opNOP)
	}
	def(0x80, "*NOP", modeImmediate, 2, opNOPRead)
	def(0x82, "*NOP", modeImmediate, 2, opNOPRead)
	def(0x89, "*NOP", modeImmediate, 2, opNOPRead)
	def(0xC2, "*NOP", modeImmediate, 2, opNOPRead)
	def(0xE2, "*NOP", modeImmediate, 2, opNOPRead)
	def(0x04, "*NOP", modeZeroPage, 3, opNOPRead)
	def(0x44, "*NOP", modeZeroPage, 3, opNOPRead)
	def(0x64, "*NOP", modeZeroPage, 3, opNOPRead)
	def(0x14, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0x34, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0x54, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0x74, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0xD4, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0xF4, "*NOP", modeZeroPageX, 4, opNOPRead)
	def(0x0C, "*NOP", modeAbsolute, 4, opNOPRead)
	def(0x1C, "*NOP", modeAbsoluteX, 4, opNOPRead)
	def(0x3C, "*NOP", modeAbsoluteX, 4, opNOPRead)
	def(0x5C, "*NOP", modeAbsoluteX, 4, opNOPRead)
	def(0x7C, "*NOP", modeAbsoluteX, 4, opNOPRead)
	def(0xDC, "*NOP", modeAbsoluteX, 4, opNOPRead)
	def(0xFC, "*NOP", modeAbsoluteX, 4, opNOPRead)

	// JAM/KIL opcodes left at their init default.
}
