package ppu

import "testing"

func newTestPPU() *PPU {
	p := NewPPU()
	p.mask.Set(0x18) // RenderBackground | RenderSprites
	return p
}

func TestOpenBusLatchesAcrossWriteOnlyReads(t *testing.T) {
	p := newTestPPU()
	p.WriteCPURegister(0x2000, 0x55)
	// PPUCTRL is write-only; reading it returns whatever was last
	// driven onto the bus rather than a fixed 0.
	if v := p.ReadCPURegister(0x2000); v != 0x55 {
		t.Errorf("ReadCPURegister(0x2000) = %#02x, want open-bus value 0x55", v)
	}
}

func TestPPUStatusLowBitsReflectOpenBus(t *testing.T) {
	p := newTestPPU()
	p.WriteCPURegister(0x2005, 0x1F) // drives open bus, harmless scroll write
	p.status.SetVBlank(true)
	v := p.ReadCPURegister(0x2002)
	if v&0x80 == 0 {
		t.Error("expected VBlank bit set in PPUSTATUS")
	}
	if v&0x1F != 0x1F {
		t.Errorf("expected unimplemented low bits to reflect open bus, got %#02x", v&0x1F)
	}
	// Reading PPUSTATUS clears VBlank.
	if p.status.VBlank() {
		t.Error("expected VBlank cleared after PPUSTATUS read")
	}
}

func TestOAMDataAttributeByteMasksUnimplementedBits(t *testing.T) {
	p := newTestPPU()
	p.WriteCPURegister(0x2003, 0x02) // OAMADDR -> attribute byte of sprite 0
	p.WriteCPURegister(0x2004, 0xFF)

	p.WriteCPURegister(0x2003, 0x02)
	got := p.ReadCPURegister(0x2004)
	if got != 0xE3 {
		t.Errorf("OAMDATA attribute read = %#02x, want 0xE3 (bits 2-4 masked)", got)
	}
}

func TestDotHookFiresEveryClock(t *testing.T) {
	p := newTestPPU()
	calls := 0
	p.RegisterDotHook(func(scanline int16, cycle uint16) {
		calls++
	})
	for i := 0; i < 10; i++ {
		p.Clock()
	}
	if calls != 10 {
		t.Errorf("dot hook fired %d times, want 10", calls)
	}

	p.UnregisterDotHooks()
	p.Clock()
	if calls != 10 {
		t.Errorf("dot hook fired after UnregisterDotHooks, calls=%d", calls)
	}
}

func TestScanlineBreakpointFiresOnce(t *testing.T) {
	p := newTestPPU()
	p.SetScanlineBreakpoint(0)

	if _, hit := p.ScanlineBreakpointHit(); hit {
		t.Fatal("breakpoint should not be armed before reaching the scanline")
	}

	for p.scanline != 0 || p.cycle != 0 {
		p.Clock()
	}
	p.Clock() // the Clock call that evaluates cycle==0 at scanline 0

	scanline, hit := p.ScanlineBreakpointHit()
	if !hit {
		t.Fatal("expected scanline breakpoint to have fired")
	}
	if scanline != 0 {
		t.Errorf("breakpoint fired for scanline %d, want 0", scanline)
	}

	if _, hit := p.ScanlineBreakpointHit(); hit {
		t.Error("breakpoint latch should clear after being read once")
	}
}

func TestSwapFramebufferGivesExclusiveOwnership(t *testing.T) {
	p := newTestPPU()
	first := p.GetFrameBuffer()

	fresh := &Framebuffer{}
	old := p.SwapFramebuffer(fresh)
	if old != first {
		t.Error("SwapFramebuffer should return the buffer the PPU was previously using")
	}
	if p.GetFrameBuffer() != fresh {
		t.Error("PPU should now be rendering into the buffer passed to SwapFramebuffer")
	}

	// Passing nil allocates a fresh buffer rather than panicking.
	another := p.SwapFramebuffer(nil)
	if another != fresh {
		t.Error("expected the swapped-out buffer back")
	}
	if p.GetFrameBuffer() == nil {
		t.Error("expected SwapFramebuffer(nil) to install a fresh buffer")
	}
}

func TestSpriteOverflowBugDriftsDiagonally(t *testing.T) {
	p := newTestPPU()
	p.scanline = 10

	// 9 sprites all visible on scanline 10 (Y=8, 8px sprites cover
	// scanlines 9-16): the first 8 fill secondary OAM normally, the
	// 9th should be found by the buggy diagonal scan and set overflow.
	for n := 0; n < 9; n++ {
		base := n * 4
		p.oam[base+0] = 8 // Y
		p.oam[base+1] = 0 // tile
		p.oam[base+2] = 0 // attributes
		p.oam[base+3] = 0 // X
	}

	p.spriteEvaluation()

	if p.spriteCount != 8 {
		t.Errorf("spriteCount = %d, want 8 (secondary OAM capacity)", p.spriteCount)
	}
	if !p.status.SpriteOverflow() {
		t.Error("expected sprite overflow flag set once a 9th in-range sprite is found")
	}
}

func TestSpriteEvaluationSkipsWhenRenderingDisabled(t *testing.T) {
	p := NewPPU()
	p.mask.Set(0) // rendering disabled
	p.oam[0] = 0  // sprite 0 at Y=0, in range of any early scanline

	p.spriteEvaluation()

	if p.spriteCount != 0 {
		t.Errorf("spriteCount = %d, want 0 when rendering is disabled", p.spriteCount)
	}
}
