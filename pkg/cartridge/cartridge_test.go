package cartridge

import "testing"

func buildINES(mapperID, mirroring uint8, prgBanks, chrBanks uint8, trainer bool) []byte {
	header := make([]byte, 16)
	copy(header, []byte(inesMagic))
	header[4] = prgBanks
	header[5] = chrBanks
	flags6 := (mapperID & 0x0F) << 4
	if mirroring == MirrorVertical {
		flags6 |= 0x01
	}
	if trainer {
		flags6 |= 0x04
	}
	header[6] = flags6
	header[7] = mapperID & 0xF0

	data := append([]byte{}, header...)
	if trainer {
		data = append(data, make([]byte, 512)...)
	}
	data = append(data, make([]byte, int(prgBanks)*prgROMBankSize)...)
	data = append(data, make([]byte, int(chrBanks)*chrROMBankSize)...)
	return data
}

func TestLoadFromBytesRejectsBadMagic(t *testing.T) {
	data := make([]byte, 32)
	if _, err := LoadFromBytes(data); err == nil {
		t.Fatal("expected error for invalid magic")
	}
}

func TestLoadFromBytesNROM(t *testing.T) {
	data := buildINES(0, MirrorHorizontal, 2, 1, false)
	cart, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("LoadFromBytes returned error: %v", err)
	}
	if cart.GetMapperID() != 0 {
		t.Errorf("MapperID = %d, want 0", cart.GetMapperID())
	}
	if cart.GetPRGBanks() != 2 {
		t.Errorf("PRGBanks = %d, want 2", cart.GetPRGBanks())
	}
	if _, ok := cart.GetMapper().(*Mapper0); !ok {
		t.Errorf("expected *Mapper0, got %T", cart.GetMapper())
	}
}

func TestLoadFromBytesUnsupportedMapper(t *testing.T) {
	data := buildINES(255, MirrorHorizontal, 1, 1, false)
	if _, err := LoadFromBytes(data); err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}

func TestLoadFromBytesMapper66(t *testing.T) {
	data := buildINES(66, MirrorHorizontal, 2, 4, false)
	cart, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("LoadFromBytes returned error: %v", err)
	}
	if _, ok := cart.GetMapper().(*Mapper66); !ok {
		t.Errorf("expected *Mapper66, got %T", cart.GetMapper())
	}
}

func TestMapper0MirrorsSingleBank(t *testing.T) {
	prg := make([]byte, 16384)
	prg[0] = 0xAA
	prg[0x3FFF] = 0xBB
	m := NewMapper0(prg, nil, MirrorHorizontal)
	if v := m.ReadPRG(0x8000); v != 0xAA {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0xAA", v)
	}
	if v := m.ReadPRG(0xC000); v != 0xAA {
		t.Errorf("ReadPRG(0xC000) = %#02x, want 0xAA (mirrored)", v)
	}
	if v := m.ReadPRG(0xFFFF); v != 0xBB {
		t.Errorf("ReadPRG(0xFFFF) = %#02x, want 0xBB", v)
	}
}

func TestMapper1IgnoresSecondConsecutiveWrite(t *testing.T) {
	prg := make([]byte, 16384*2)
	m := NewMapper1(prg, nil, MirrorHorizontal)

	// Five single-cycle-separated writes successfully load the shift
	// register and commit to a control register.
	for i := 0; i < 5; i++ {
		m.StepM2()
		m.WritePRG(0x8000, 0x01) // shifts a 1 in each time
	}
	afterFirstCommit := m.prgMode

	// Now, one cycle later, feed two writes on the very same cycle (no
	// StepM2 between them): the second must be discarded.
	m.StepM2()
	m.WritePRG(0x8000, 0x80) // reset
	m.WritePRG(0x8000, 0x80) // should be ignored, same cycle
	if m.shiftCount != 0 {
		t.Fatalf("reset write should have cleared shiftCount, got %d", m.shiftCount)
	}
	_ = afterFirstCommit
}

func TestMapper4ScanlineIRQViaA12Edges(t *testing.T) {
	prg := make([]byte, 8192*4)
	m := NewMapper4(prg, nil, MirrorHorizontal)
	m.WritePRG(0xC000, 1) // IRQ latch = 1
	m.WritePRG(0xC001, 0) // schedule reload
	m.WritePRG(0xE001, 0) // enable IRQ

	// A12 low for 3+ M2 cycles, then rising edge should clock the
	// counter (reload to 1, then next edge decrements to 0 and fires).
	m.NotifyA12(0x0000)
	m.StepM2()
	m.StepM2()
	m.StepM2()
	m.NotifyA12(0x1000)
	if m.IRQ() {
		t.Fatalf("IRQ should not fire yet; counter just reloaded to latch value 1")
	}

	m.NotifyA12(0x0000)
	m.StepM2()
	m.StepM2()
	m.StepM2()
	m.NotifyA12(0x1000)
	if !m.IRQ() {
		t.Fatalf("expected IRQ after counter reached zero with IRQs enabled")
	}
}

func TestMapper4A12EdgeFilteredByShortLowPeriod(t *testing.T) {
	prg := make([]byte, 8192*4)
	m := NewMapper4(prg, nil, MirrorHorizontal)
	m.WritePRG(0xC000, 0)
	m.WritePRG(0xC001, 0)
	m.WritePRG(0xE001, 0)

	m.NotifyA12(0x0000)
	m.StepM2() // only 1 low cycle, below the 3-cycle filter threshold
	m.NotifyA12(0x1000)
	if m.IRQ() {
		t.Fatalf("A12 edge after too-short a low period should be filtered out")
	}
}

func TestMirrorNametableAddressVertical(t *testing.T) {
	if got := MirrorNametableAddress(0x2000, MirrorVertical); got != 0x0000 {
		t.Errorf("got %#04x, want 0x0000", got)
	}
	if got := MirrorNametableAddress(0x2400, MirrorVertical); got != 0x0400 {
		t.Errorf("got %#04x, want 0x0400", got)
	}
	if got := MirrorNametableAddress(0x2800, MirrorVertical); got != 0x0000 {
		t.Errorf("got %#04x, want 0x0000 (mirrors table 0)", got)
	}
}

func TestMirrorNametableAddressHorizontal(t *testing.T) {
	if got := MirrorNametableAddress(0x2000, MirrorHorizontal); got != 0x0000 {
		t.Errorf("got %#04x, want 0x0000", got)
	}
	if got := MirrorNametableAddress(0x2400, MirrorHorizontal); got != 0x0000 {
		t.Errorf("got %#04x, want 0x0000 (mirrors table 0)", got)
	}
	if got := MirrorNametableAddress(0x2800, MirrorHorizontal); got != 0x0400 {
		t.Errorf("got %#04x, want 0x0400", got)
	}
}
