package cpu

import "testing"

// testBus is a flat 64KB RAM image, enough to exercise every
// addressing mode without wiring up the full system bus.
type testBus struct {
	mem [65536]uint8
}

func (b *testBus) Read(addr uint16) uint8  { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v uint8) { b.mem[addr] = v }
func (b *testBus) Peek(addr uint16) uint8  { return b.mem[addr] }

func newTestCPU(resetVector uint16) (*CPU, *testBus) {
	bus := &testBus{}
	bus.mem[VectorReset] = uint8(resetVector)
	bus.mem[VectorReset+1] = uint8(resetVector >> 8)
	c := New()
	c.PowerOn(bus)
	return c, bus
}

func TestPowerOnLoadsResetVector(t *testing.T) {
	c, _ := newTestCPU(0xC000)
	if c.PC != 0xC000 {
		t.Fatalf("PC = %#04x, want %#04x", c.PC, 0xC000)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
	if c.P&FlagInterrupt == 0 {
		t.Fatalf("I flag should be set at power-on")
	}
}

func TestLDAImmediateSetsZeroAndNegative(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	cycles := c.StepInstruction(bus)
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
	if c.A != 0 || c.P&FlagZero == 0 {
		t.Fatalf("A = %#02x, P = %#02x, want A=0 Z=1", c.A, c.P)
	}

	bus.mem[0x8002] = 0xA9 // LDA #$80
	bus.mem[0x8003] = 0x80
	c.StepInstruction(bus)
	if c.A != 0x80 || c.P&FlagNegative == 0 {
		t.Fatalf("A = %#02x, P = %#02x, want A=0x80 N=1", c.A, c.P)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.A = 0x7F
	bus.mem[0x8000] = 0x69 // ADC #$01
	bus.mem[0x8001] = 0x01
	c.StepInstruction(bus)
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if c.P&FlagOverflow == 0 {
		t.Fatalf("V flag should be set on signed overflow")
	}
	if c.P&FlagCarry != 0 {
		t.Fatalf("C flag should be clear, no unsigned carry occurred")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.A = 0x00
	c.P |= FlagCarry // no borrow going in
	bus.mem[0x8000] = 0xE9
	bus.mem[0x8001] = 0x01
	c.StepInstruction(bus)
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xFF", c.A)
	}
	if c.P&FlagCarry != 0 {
		t.Fatalf("C flag should be clear, a borrow occurred")
	}
}

func TestStackPushPull(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.A = 0x42
	bus.mem[0x8000] = 0x48 // PHA
	bus.mem[0x8001] = 0xA9 // LDA #$00
	bus.mem[0x8002] = 0x00
	bus.mem[0x8003] = 0x68 // PLA
	c.StepInstruction(bus)
	c.StepInstruction(bus)
	if c.A != 0 {
		t.Fatalf("A = %#02x after LDA #0, want 0", c.A)
	}
	c.StepInstruction(bus)
	if c.A != 0x42 {
		t.Fatalf("A = %#02x after PLA, want 0x42", c.A)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS
	c.StepInstruction(bus)
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x after JSR, want 0x9000", c.PC)
	}
	c.StepInstruction(bus)
	if c.PC != 0x8003 {
		t.Fatalf("PC = %#04x after RTS, want 0x8003", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x6C // JMP ($30FF)
	bus.mem[0x8001] = 0xFF
	bus.mem[0x8002] = 0x30
	bus.mem[0x30FF] = 0x00
	bus.mem[0x3000] = 0x90 // high byte wrongly read from $3000, not $3100
	bus.mem[0x3100] = 0xA0
	c.StepInstruction(bus)
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x, want 0x9000 (page-wrap bug reproduced)", c.PC)
	}
}

func TestBranchPageCrossExtraCycle(t *testing.T) {
	c, bus := newTestCPU(0x80FD)
	bus.mem[0x80FD] = 0xF0 // BEQ +5 -> crosses from page 0x80 to 0x81
	bus.mem[0x80FE] = 0x05
	c.P |= FlagZero
	cycles := c.StepInstruction(bus)
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4 (branch taken + page cross)", cycles)
	}
}

func TestNMIServicing(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[VectorNMI] = 0x00
	bus.mem[VectorNMI+1] = 0x91
	bus.mem[0x8000] = 0xEA // NOP, never actually executed
	c.SetNMILine(true)
	cycles := c.StepInstruction(bus)
	if cycles != 7 {
		t.Fatalf("cycles = %d, want 7 for interrupt sequence", cycles)
	}
	if c.PC != 0x9100 {
		t.Fatalf("PC = %#04x, want 0x9100 (NMI vector)", c.PC)
	}
}

func TestIRQMaskedByInterruptFlag(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.P |= FlagInterrupt
	bus.mem[0x8000] = 0xEA // NOP
	c.SetIRQLine(true)
	cycles := c.StepInstruction(bus)
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2 (IRQ masked, NOP executes)", cycles)
	}
}

func TestLAXIllegalOpcode(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA7 // LAX $10
	bus.mem[0x8001] = 0x10
	bus.mem[0x0010] = 0x55
	c.StepInstruction(bus)
	if c.A != 0x55 || c.X != 0x55 {
		t.Fatalf("A=%#02x X=%#02x, want both 0x55", c.A, c.X)
	}
}

func TestJAMHaltsExecution(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x02 // unassigned -> JAM
	c.StepInstruction(bus)
	if !c.Halted() {
		t.Fatalf("CPU should be halted after JAM opcode")
	}
	pc := c.PC
	c.StepInstruction(bus)
	if c.PC != pc {
		t.Fatalf("halted CPU should not advance PC")
	}
}

func TestBreakpointFires(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xEA
	bus.mem[0x8001] = 0xEA
	c.Breakpoints().Set(0x8001, BreakpointPersist)
	c.StepInstruction(bus)
	if _, hit := c.Breakpoints().Hit(); hit {
		t.Fatalf("breakpoint should not have fired before PC reached it")
	}
	c.StepInstruction(bus)
	addr, hit := c.Breakpoints().Hit()
	if !hit || addr != 0x8001 {
		t.Fatalf("breakpoint should have fired at 0x8001, got hit=%v addr=%#04x", hit, addr)
	}
}
