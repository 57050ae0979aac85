// Package bus implements the NES system bus connecting CPU, RAM, PPU,
// APU, and cartridge.
package bus

import (
	"github.com/andrewthecodertx/nes-emulator/pkg/apu"
	"github.com/andrewthecodertx/nes-emulator/pkg/cartridge"
	"github.com/andrewthecodertx/nes-emulator/pkg/controller"
	"github.com/andrewthecodertx/nes-emulator/pkg/cpu"
	"github.com/andrewthecodertx/nes-emulator/pkg/genie"
	"github.com/andrewthecodertx/nes-emulator/pkg/ppu"
)

// NESBus implements the cpu.Bus interface for the NES system
//
// CPU Memory Map:
//   $0000-$07FF: 2KB internal RAM
//   $0800-$1FFF: Mirrors of $0000-$07FF
//   $2000-$2007: PPU registers
//   $2008-$3FFF: Mirrors of $2000-$2007
//   $4000-$4017: APU and I/O registers
//   $4018-$401F: APU and I/O functionality (rarely used)
//   $4020-$FFFF: Cartridge space (PRG-ROM, PRG-RAM, mapper registers)
type NESBus struct {
	// 2KB CPU RAM (mirrored to fill $0000-$1FFF)
	cpuRAM [2048]uint8

	// PPU (Picture Processing Unit)
	ppu *ppu.PPU

	// APU (Audio Processing Unit)
	apu *apu.APU

	// Cartridge mapper
	mapper cartridge.Mapper

	// Controllers
	controller1 *controller.Controller
	controller2 *controller.Controller

	// Game Genie patches applied to CPU reads of cartridge PRG space
	genieCodes []genie.Code

	// DMA transfer state. A $4014 write only arms dmaPending: the
	// transfer itself does not start stealing cycles until ActivateDMA
	// is called, after the triggering instruction's own cycles have
	// been clocked (see pkg/nes.Progress). Starting the steal inside
	// the same Write call would let the CPU's StepInstruction loop
	// clock the triggering instruction's cycles through stepDMA instead
	// of through normal execution, undercounting the sequence by that
	// instruction's length.
	dmaPending  bool
	dmaPage     uint8
	dmaAddr     uint8
	dmaData     uint8
	dmaCycle    uint64
	dmaStartOdd bool
	dmaTransfer bool
	dmaHalted   bool

	// IRQ lines OR'd together onto the CPU; asserted by the APU's
	// frame sequencer and DMC channel via SetIRQ.
	frameIRQ bool
	dmcIRQ   bool

	cpuCycle uint64
}

// Ensure NESBus implements cpu.Bus and apu.Bus.
var _ cpu.Bus = (*NESBus)(nil)
var _ apu.Bus = (*NESBus)(nil)

// NewNESBus creates a new NES system bus. The APU is constructed by
// the caller (it needs the bus as its own Bus implementation for DMC
// sample fetches) and wired in with SetAPU before the first Clock.
func NewNESBus(ppuUnit *ppu.PPU, mapper cartridge.Mapper) *NESBus {
	return &NESBus{
		ppu:         ppuUnit,
		mapper:      mapper,
		controller1: controller.NewController(),
		controller2: controller.NewController(),
	}
}

// SetAPU wires the APU instance into the bus after both have been
// constructed, breaking the construction cycle (APU needs a Bus,
// NESBus needs an APU).
func (b *NESBus) SetAPU(a *apu.APU) {
	b.apu = a
}

// SetGenieCodes replaces the set of active Game Genie patches. An
// empty slice disables Game Genie filtering entirely.
func (b *NESBus) SetGenieCodes(codes []genie.Code) {
	b.genieCodes = codes
}

// Read implements cpu.Bus.Read for the CPU.
func (b *NESBus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.cpuRAM[addr&0x07FF]

	case addr < 0x4000:
		return b.ppu.ReadCPURegister(0x2000 + (addr & 0x0007))

	case addr == 0x4015:
		if b.apu != nil {
			return b.apu.ReadStatus()
		}
		return 0

	case addr == 0x4016:
		return b.controller1.Read()

	case addr == 0x4017:
		return b.controller2.Read()

	case addr >= 0x8000:
		value := b.mapper.ReadPRG(addr)
		return b.applyGenie(addr, value)

	case addr >= 0x4020:
		return b.mapper.ReadPRG(addr)
	}

	return 0
}

// Peek reads without side effects, used by breakpoint/disassembly
// tooling. PPU registers have no side-effect-free read path on real
// hardware, so reads in $2000-$3FFF return 0 rather than risk
// perturbing PPU state a debugger merely wants to inspect.
func (b *NESBus) Peek(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.cpuRAM[addr&0x07FF]
	case addr < 0x4000:
		return 0
	case addr >= 0x4020:
		value := b.mapper.PeekPRG(addr)
		if addr >= 0x8000 {
			return b.applyGenie(addr, value)
		}
		return value
	}
	return 0
}

func (b *NESBus) applyGenie(addr uint16, value uint8) uint8 {
	for _, code := range b.genieCodes {
		value = code.Apply(addr, value)
	}
	return value
}

// Write implements cpu.Bus.Write for the CPU.
func (b *NESBus) Write(addr uint16, data uint8) {
	switch {
	case addr < 0x2000:
		b.cpuRAM[addr&0x07FF] = data

	case addr < 0x4000:
		b.ppu.WriteCPURegister(0x2000+(addr&0x0007), data)

	case addr == 0x4014:
		// OAMDMA: arm a 256-byte transfer from CPU memory to OAM. The
		// steal doesn't begin until ActivateDMA runs, once the STA (or
		// whatever wrote this register) has been charged its own cycles.
		b.dmaPage = data
		b.dmaPending = true

	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		if b.apu != nil {
			b.apu.WriteRegister(addr, data)
		}

	case addr == 0x4016:
		// Controller strobe
		b.controller1.Write(data)
		b.controller2.Write(data)

	case addr >= 0x4020:
		b.mapper.WritePRG(addr, data)
	}
}

// Clock advances the bus by one CPU cycle: the PPU at 3x CPU speed,
// the APU and mapper M2 line at 1x, and the OAM-DMA state machine.
func (b *NESBus) Clock() {
	for i := 0; i < 3; i++ {
		b.ppu.Clock()
	}

	if b.apu != nil {
		b.apu.Clock()
	}
	b.mapper.StepM2()

	b.stepDMA()

	b.cpuCycle++
}

// stepDMA advances the OAM-DMA transfer. Real OAM-DMA steals exactly
// 513 CPU cycles if it starts on an even CPU cycle, or 514 if it
// starts on an odd one: the extra "alignment" cycle only happens when
// the DMA begins out of phase with the read/write cycle pairing.
func (b *NESBus) stepDMA() {
	if !b.dmaTransfer {
		return
	}

	if !b.dmaHalted {
		b.dmaHalted = true
		b.dmaCycle = 0
		return
	}

	cycle := b.dmaCycle
	b.dmaCycle++

	alignCycles := uint64(0)
	if b.dmaStartOdd {
		alignCycles = 1
	}

	if cycle < alignCycles {
		return
	}

	transferCycle := cycle - alignCycles
	if transferCycle%2 == 0 {
		addr := uint16(b.dmaPage)<<8 | uint16(b.dmaAddr)
		b.dmaData = b.Read(addr)
	} else {
		b.ppu.WriteCPURegister(0x2004, b.dmaData)
		b.dmaAddr++
		if b.dmaAddr == 0 {
			b.dmaTransfer = false
		}
	}
}

// DMAActive reports whether OAM-DMA is currently stealing CPU cycles;
// callers should not step the CPU while this is true.
func (b *NESBus) DMAActive() bool {
	return b.dmaTransfer
}

// DMAPending reports whether a $4014 write has armed a transfer that
// hasn't started stealing cycles yet.
func (b *NESBus) DMAPending() bool {
	return b.dmaPending
}

// ActivateDMA transitions a pending transfer to active, latching the
// current CPU cycle's parity for the 513/514-cycle timing rule. Callers
// must only invoke this between instructions, once the instruction that
// issued the $4014 write has already been charged its own cycles.
func (b *NESBus) ActivateDMA() {
	if !b.dmaPending {
		return
	}
	b.dmaPending = false
	b.dmaAddr = 0x00
	b.dmaTransfer = true
	b.dmaHalted = false
	b.dmaStartOdd = b.cpuCycle%2 != 0
}

// IsNMI returns true if the PPU is requesting an NMI
func (b *NESBus) IsNMI() bool {
	return b.ppu.GetNMI()
}

// IRQ reports whether any IRQ source — the APU frame sequencer, the
// DMC channel, or the mapper — is currently asserting the shared,
// level-sensitive CPU IRQ line.
func (b *NESBus) IRQ() bool {
	return b.frameIRQ || b.dmcIRQ || b.mapper.IRQ()
}

// SetIRQ implements apu.Bus.SetIRQ, latching the named source's
// current assertion state; IRQ() ORs all sources together.
func (b *NESBus) SetIRQ(source apu.IRQSource, asserted bool) {
	switch source {
	case apu.IRQSourceFrame:
		b.frameIRQ = asserted
	case apu.IRQSourceDMC:
		b.dmcIRQ = asserted
	}
}

// GetPPU returns a pointer to the PPU
func (b *NESBus) GetPPU() *ppu.PPU {
	return b.ppu
}

// GetAPU returns a pointer to the APU.
func (b *NESBus) GetAPU() *apu.APU {
	return b.apu
}

// GetController returns a pointer to the specified controller (0 or 1)
func (b *NESBus) GetController(num int) *controller.Controller {
	if num == 0 {
		return b.controller1
	}
	return b.controller2
}
