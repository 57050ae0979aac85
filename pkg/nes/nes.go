// Package nes implements the top-level NES emulator: it owns the CPU,
// PPU, APU, bus, and cartridge, and is the sole entry point a host
// program drives.
package nes

import (
	"fmt"

	"github.com/andrewthecodertx/nes-emulator/pkg/apu"
	"github.com/andrewthecodertx/nes-emulator/pkg/bus"
	"github.com/andrewthecodertx/nes-emulator/pkg/cartridge"
	"github.com/andrewthecodertx/nes-emulator/pkg/controller"
	"github.com/andrewthecodertx/nes-emulator/pkg/cpu"
	"github.com/andrewthecodertx/nes-emulator/pkg/genie"
	"github.com/andrewthecodertx/nes-emulator/pkg/ppu"
)

// TargetKind selects what Progress runs until.
type TargetKind int

const (
	// TargetCycles runs for exactly N CPU cycles (modulo completing
	// whatever instruction is in flight when the count is reached).
	TargetCycles TargetKind = iota
	// TargetFrameReady runs until the PPU completes a frame.
	TargetFrameReady
)

// Target describes a Progress stopping condition.
type Target struct {
	Kind   TargetKind
	Cycles uint64
}

// CyclesTarget builds a Target that runs for n CPU cycles.
func CyclesTarget(n uint64) Target {
	return Target{Kind: TargetCycles, Cycles: n}
}

// FrameReadyTarget builds a Target that runs until the next frame
// completes.
func FrameReadyTarget() Target {
	return Target{Kind: TargetFrameReady}
}

// Result reports why Progress returned.
type Result int

const (
	// ResultFrameReady means a complete frame is available.
	ResultFrameReady Result = iota
	// ResultReachedTarget means a Cycles target was reached.
	ResultReachedTarget
	// ResultBreakpoint means a registered CPU breakpoint fired.
	ResultBreakpoint
)

func (r Result) String() string {
	switch r {
	case ResultFrameReady:
		return "FrameReady"
	case ResultReachedTarget:
		return "ReachedTarget"
	case ResultBreakpoint:
		return "Breakpoint"
	default:
		return "Unknown"
	}
}

// NES represents the complete NES emulator system.
type NES struct {
	cpu       *cpu.CPU
	bus       *bus.NESBus
	ppu       *ppu.PPU
	apu       *apu.APU
	cartridge *cartridge.Cartridge
	cycles    uint64
}

// New creates a new NES emulator from a ROM file.
func New(romPath string) (*NES, error) {
	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}

	return NewFromCartridge(cart), nil
}

// NewFromNSF creates a new NES emulator for playing an NSF music file,
// returning the header metadata alongside the running machine.
func NewFromNSF(data []byte) (*NES, cartridge.NSFInfo, error) {
	cart, info, err := cartridge.LoadNSF(data)
	if err != nil {
		return nil, cartridge.NSFInfo{}, fmt.Errorf("failed to load NSF: %w", err)
	}
	return NewFromCartridge(cart), info, nil
}

// NewFromCartridge creates a new NES emulator from an already-loaded
// cartridge.
func NewFromCartridge(cart *cartridge.Cartridge) *NES {
	ppuUnit := ppu.NewPPU()
	ppuUnit.SetMapper(cart.GetMapper())
	ppuUnit.SetMirroring(cart.GetMirroring())

	nesbus := bus.NewNESBus(ppuUnit, cart.GetMapper())

	tv := apu.TVSystemNTSC
	if cart.TVSystem() == cartridge.TVSystemPAL {
		tv = apu.TVSystemPAL
	}
	apuUnit := apu.New(nesbus, tv)
	nesbus.SetAPU(apuUnit)

	cpuCore := cpu.New()
	cpuCore.PowerOn(nesbus)

	n := &NES{
		cpu:       cpuCore,
		bus:       nesbus,
		ppu:       ppuUnit,
		apu:       apuUnit,
		cartridge: cart,
	}

	return n
}

// Reset resets the NES to its documented post-RESET state, as opposed
// to PowerOn's post-power-up state.
func (n *NES) Reset() {
	n.cpu.Reset(n.bus)
	n.ppu.Reset()
	n.apu.Reset()
}

// RegisterHook adds a per-dot hook called as the PPU renders.
func (n *NES) RegisterHook(h ppu.DotHook) {
	n.ppu.RegisterDotHook(h)
}

// UnregisterHooks clears every registered hook.
func (n *NES) UnregisterHooks() {
	n.ppu.UnregisterDotHooks()
}

// Breakpoints returns the CPU's address-keyed breakpoint registry.
func (n *NES) Breakpoints() *cpu.Breakpoints {
	return n.cpu.Breakpoints()
}

// SetScanlineBreakpoint arms a one-shot stop at the given PPU scanline.
func (n *NES) SetScanlineBreakpoint(scanline int16) {
	n.ppu.SetScanlineBreakpoint(scanline)
}

// SetGenieCodes installs (or clears, with nil/empty) a set of Game
// Genie patches applied to CPU reads of cartridge PRG space.
func (n *NES) SetGenieCodes(codes []genie.Code) {
	n.bus.SetGenieCodes(codes)
}

// Progress runs the machine until target is satisfied, or a
// breakpoint fires, and reports which. This is the sole reentry point
// a host drives; Progress itself never returns an error; construction
// failures are surfaced earlier, at New/NewFromCartridge/NewFromNSF.
func (n *NES) Progress(target Target) Result {
	startCycles := n.cycles

	for {
		if n.bus.DMAActive() {
			n.bus.Clock()
			n.cycles++
		} else {
			consumed := n.cpu.StepInstruction(n.bus)
			for i := uint8(0); i < consumed; i++ {
				n.bus.Clock()
				n.cycles++
			}

			// A $4014 write during the instruction just clocked only
			// arms the transfer; activate it now so the triggering
			// instruction's own cycles above aren't swallowed by the
			// DMA steal.
			if n.bus.DMAPending() {
				n.bus.ActivateDMA()
			}

			if _, hit := n.cpu.Breakpoints().Hit(); hit {
				n.syncInterruptLines()
				return ResultBreakpoint
			}
		}

		n.syncInterruptLines()

		if _, hit := n.ppu.ScanlineBreakpointHit(); hit {
			return ResultBreakpoint
		}

		if n.ppu.IsFrameComplete() {
			n.ppu.ClearFrameComplete()
			if target.Kind == TargetFrameReady {
				return ResultFrameReady
			}
		}

		if target.Kind == TargetCycles && n.cycles-startCycles >= target.Cycles {
			return ResultReachedTarget
		}
	}
}

// RunFrame runs the emulator until a complete frame is rendered, a
// convenience wrapper around Progress(FrameReadyTarget()) for hosts
// that don't care about breakpoints.
func (n *NES) RunFrame() {
	n.Progress(FrameReadyTarget())
}

func (n *NES) syncInterruptLines() {
	n.cpu.SetNMILine(n.bus.IsNMI())
	n.cpu.SetIRQLine(n.bus.IRQ())
}

// SwapFramebuffer hands the host a fresh framebuffer to render into
// and returns the one the PPU just finished filling, giving the host
// sole ownership of the returned buffer with no further mutation from
// the PPU until it is swapped back in.
func (n *NES) SwapFramebuffer(next *ppu.Framebuffer) *ppu.Framebuffer {
	return n.ppu.SwapFramebuffer(next)
}

// GetFrameBuffer returns the PPU's current framebuffer without
// transferring ownership; prefer SwapFramebuffer for host rendering.
func (n *NES) GetFrameBuffer() *ppu.Framebuffer {
	return n.ppu.GetFrameBuffer()
}

// GetPPU returns a pointer to the PPU for direct access.
func (n *NES) GetPPU() *ppu.PPU {
	return n.ppu
}

// GetAPU returns a pointer to the APU for direct access.
func (n *NES) GetAPU() *apu.APU {
	return n.apu
}

// GetCPU returns a pointer to the CPU for direct access.
func (n *NES) GetCPU() *cpu.CPU {
	return n.cpu
}

// GetBus returns a pointer to the system bus for direct access.
func (n *NES) GetBus() *bus.NESBus {
	return n.bus
}

// GetCycles returns the total number of CPU cycles executed.
func (n *NES) GetCycles() uint64 {
	return n.cycles
}

// GetCartridge returns a pointer to the loaded cartridge.
func (n *NES) GetCartridge() *cartridge.Cartridge {
	return n.cartridge
}

// PressButton and ReleaseButton pass controller input through to the
// named pad (0 or 1).
func (n *NES) PressButton(pad int, button controller.Button) {
	n.bus.GetController(pad).SetButton(button, true)
}

func (n *NES) ReleaseButton(pad int, button controller.Button) {
	n.bus.GetController(pad).SetButton(button, false)
}
