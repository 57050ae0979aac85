package bus

import (
	"testing"

	"github.com/andrewthecodertx/nes-emulator/pkg/apu"
	"github.com/andrewthecodertx/nes-emulator/pkg/cartridge"
	"github.com/andrewthecodertx/nes-emulator/pkg/genie"
	"github.com/andrewthecodertx/nes-emulator/pkg/ppu"
)

func newTestBus() *NESBus {
	prg := make([]byte, 32768)
	mapper := cartridge.NewMapper0(prg, nil, cartridge.MirrorHorizontal)
	ppuUnit := ppu.NewPPU()
	ppuUnit.SetMapper(mapper)
	ppuUnit.SetMirroring(cartridge.MirrorHorizontal)

	b := NewNESBus(ppuUnit, mapper)
	b.SetAPU(apu.New(b, apu.TVSystemNTSC))
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x0000, 0x42)
	if v := b.Read(0x0800); v != 0x42 {
		t.Errorf("Read(0x0800) = %#02x, want 0x42 (RAM mirror)", v)
	}
	if v := b.Read(0x1800); v != 0x42 {
		t.Errorf("Read(0x1800) = %#02x, want 0x42 (RAM mirror)", v)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus()
	b.Write(0x2000, 0x80) // PPUCTRL, enable NMI
	if v := b.Read(0x2000); v&0x80 == 0 {
		t.Errorf("PPUCTRL readback via open bus unexpected: %#02x", v)
	}
	// $2008 mirrors $2000
	b.Write(0x2008, 0x00)
	if b.GetPPU() == nil {
		t.Fatal("expected non-nil PPU")
	}
}

func TestControllerStrobeAndRead(t *testing.T) {
	b := newTestBus()
	b.GetController(0).SetButton(0, true) // ButtonA
	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)
	if v := b.Read(0x4016); v&0x01 == 0 {
		t.Errorf("expected button A pressed on first read, got %#02x", v)
	}
}

func TestOAMDMATransferParity(t *testing.T) {
	b := newTestBus()
	b.Write(0x0200, 0xAB) // page 2, offset 0
	b.Write(0x4014, 0x02) // arm OAM DMA from page 2

	if !b.DMAPending() {
		t.Fatal("expected DMA to be pending immediately after $4014 write")
	}
	if b.DMAActive() {
		t.Fatal("expected DMA to not start stealing cycles until ActivateDMA")
	}

	// Mirrors pkg/nes.Progress: the triggering instruction's own cycles
	// are clocked first, then the transfer is activated.
	b.ActivateDMA()

	if !b.DMAActive() {
		t.Fatal("expected DMA to be active after ActivateDMA")
	}

	cycles := 0
	for b.DMAActive() && cycles < 1000 {
		b.Clock()
		cycles++
	}

	if cycles < 513 || cycles > 514 {
		t.Errorf("DMA took %d cycles, want 513 or 514", cycles)
	}
}

func TestOAMDMADoesNotStealTriggeringInstructionCycles(t *testing.T) {
	b := newTestBus()
	b.Write(0x0200, 0xAB)
	b.Write(0x4014, 0x02)

	// Simulate the 4 cycles of the STA $4014 that issued this write:
	// none of them should be consumed by the DMA steal since it hasn't
	// been activated yet.
	for i := 0; i < 4; i++ {
		b.Clock()
	}
	if !b.DMAPending() || b.DMAActive() {
		t.Fatal("DMA should remain pending, not active, during the triggering instruction's own cycles")
	}

	b.ActivateDMA()
	cycles := 0
	for b.DMAActive() && cycles < 1000 {
		b.Clock()
		cycles++
	}
	if cycles < 513 || cycles > 514 {
		t.Errorf("DMA took %d cycles after activation, want 513 or 514", cycles)
	}
}

func TestGenieCodePatchesCartridgeReads(t *testing.T) {
	b := newTestBus()
	raw := genie.Code{Address: 0x94A7, Value: 0x02}
	code, err := genie.Parse(raw.String())
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", raw.String(), err)
	}
	b.SetGenieCodes([]genie.Code{code})

	got := b.Read(code.Address)
	if got != code.Value {
		t.Errorf("Read(%#04x) = %#02x, want patched value %#02x", code.Address, got, code.Value)
	}
}

func TestIRQLineORsMapperAndAPU(t *testing.T) {
	b := newTestBus()
	if b.IRQ() {
		t.Fatal("expected IRQ line low with nothing asserting it")
	}
	b.SetIRQ(apu.IRQSourceFrame, true)
	if !b.IRQ() {
		t.Error("expected IRQ line high once frame IRQ source asserts")
	}
	b.SetIRQ(apu.IRQSourceFrame, false)
	b.SetIRQ(apu.IRQSourceDMC, true)
	if !b.IRQ() {
		t.Error("expected IRQ line high once DMC IRQ source asserts")
	}
}
