package nes

import (
	"testing"

	"github.com/andrewthecodertx/nes-emulator/pkg/cartridge"
	"github.com/andrewthecodertx/nes-emulator/pkg/cpu"
)

// buildNROM builds a 1x16KB-PRG NROM image with fill (typically 0xEA,
// NOP) at every PRG byte and the reset vector pointed at resetVector.
func buildNROM(resetVector uint16, fill uint8) *cartridge.Cartridge {
	data := make([]byte, 16+16384)
	copy(data[0:4], []byte("NES\x1a"))
	data[4] = 1 // 1x16KB PRG bank
	data[5] = 0 // CHR-RAM
	data[6] = 0
	data[7] = 0

	prgOffset := 16
	for i := prgOffset; i < len(data); i++ {
		data[i] = fill
	}
	data[prgOffset+0x3FFC] = uint8(resetVector)
	data[prgOffset+0x3FFD] = uint8(resetVector >> 8)

	cart, err := cartridge.LoadFromBytes(data)
	if err != nil {
		panic(err)
	}
	return cart
}

func TestNewFromCartridgePowersOnFromResetVector(t *testing.T) {
	cart := buildNROM(0x8123, 0xEA)
	n := NewFromCartridge(cart)
	if n.GetCPU().PC != 0x8123 {
		t.Errorf("PC = %#04x, want 0x8123", n.GetCPU().PC)
	}
}

func TestProgressReachesCyclesTarget(t *testing.T) {
	cart := buildNROM(0x8000, 0xEA) // NOP forever

	n := NewFromCartridge(cart)
	n.Reset()

	result := n.Progress(CyclesTarget(100))
	if result != ResultReachedTarget {
		t.Errorf("Progress result = %v, want ResultReachedTarget", result)
	}
	if n.GetCycles() < 100 {
		t.Errorf("GetCycles() = %d, want >= 100", n.GetCycles())
	}
}

func TestProgressStopsAtBreakpoint(t *testing.T) {
	cart := buildNROM(0x8000, 0xEA) // NOP forever

	n := NewFromCartridge(cart)
	n.Reset()
	n.Breakpoints().Set(0x8010, cpu.BreakpointPersist)

	result := n.Progress(CyclesTarget(100000))
	if result != ResultBreakpoint {
		t.Fatalf("Progress result = %v, want ResultBreakpoint", result)
	}
	if n.GetCPU().PC != 0x8010 {
		t.Errorf("PC = %#04x, want 0x8010", n.GetCPU().PC)
	}
}

func TestSwapFramebufferTransfersOwnership(t *testing.T) {
	cart := buildNROM(0x8000, 0xEA)
	n := NewFromCartridge(cart)
	n.Reset()

	fresh := &[256 * 240]uint8{}
	old := n.SwapFramebuffer(fresh)
	if old == nil {
		t.Fatal("expected a non-nil previous framebuffer")
	}
	if n.GetFrameBuffer() != fresh {
		t.Error("PPU should now be rendering into the buffer passed to SwapFramebuffer")
	}
}

func TestOAMDMADoesNotOverlapTriggeringInstruction(t *testing.T) {
	// STA $4014 at the reset vector, NOP-filled past it.
	data := make([]byte, 16+16384)
	copy(data[0:4], []byte("NES\x1a"))
	data[4] = 1 // 1x16KB PRG bank
	data[5] = 0 // CHR-RAM

	prgOffset := 16
	for i := prgOffset; i < len(data); i++ {
		data[i] = 0xEA // NOP
	}
	data[prgOffset+0] = 0x8D // STA
	data[prgOffset+1] = 0x14
	data[prgOffset+2] = 0x40
	data[prgOffset+0x3FFC] = 0x00 // reset vector -> 0x8000
	data[prgOffset+0x3FFD] = 0x80

	cart, err := cartridge.LoadFromBytes(data)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}

	n := NewFromCartridge(cart)
	n.Reset()

	// STA absolute costs 4 cycles; an even-parity DMA start then steals
	// 513 more. If the DMA steal overlapped the STA (the bug under
	// test), the total would be 513 instead of 517.
	result := n.Progress(CyclesTarget(517))
	if result != ResultReachedTarget {
		t.Fatalf("Progress result = %v, want ResultReachedTarget", result)
	}
	if n.GetCycles() != 517 {
		t.Errorf("GetCycles() = %d, want 517 (4 for STA + 513 for the DMA steal it triggers)", n.GetCycles())
	}
	if n.GetBus().DMAActive() {
		t.Error("expected DMA to have completed by cycle 517")
	}
}

func TestPressAndReleaseButtonReachController(t *testing.T) {
	cart := buildNROM(0x8000, 0xEA)
	n := NewFromCartridge(cart)

	n.PressButton(0, 0) // ButtonA
	n.GetBus().Write(0x4016, 0x01)
	n.GetBus().Write(0x4016, 0x00)
	if v := n.GetBus().Read(0x4016); v&0x01 == 0 {
		t.Error("expected controller 0 button A to read as pressed")
	}

	n.ReleaseButton(0, 0)
}
