// Package apu implements the NES 2A03's audio processing unit: two
// pulse channels, a triangle channel, a noise channel, a delta
// modulation channel, the frame sequencer that clocks their envelope
// and length-counter units, and the mixer that sums them into a
// single float32 sample stream.
package apu

// Bus is the APU's view of the system, used by the DMC channel to
// fetch sample bytes and to assert the mapper-independent DMC/frame
// IRQ lines back onto the CPU.
type Bus interface {
	Read(addr uint16) uint8
	SetIRQ(source IRQSource, asserted bool)
}

// IRQSource identifies which of the APU's two independent interrupt
// sources is being asserted or cleared; the system bus ORs both
// together (and the mapper IRQ) onto the CPU's IRQ line.
type IRQSource int

const (
	IRQSourceFrame IRQSource = iota
	IRQSourceDMC
)

// TVSystem selects the NTSC or PAL noise-period and DMC-rate tables.
// The frame sequencer uses its NTSC cycle constants for both systems;
// there is no PAL frame-sequencer table.
type TVSystem int

const (
	TVSystemNTSC TVSystem = iota
	TVSystemPAL
)

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

var triangleTable = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

var noisePeriodTableNTSC = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var noisePeriodTablePAL = [16]uint16{
	4, 8, 14, 30, 60, 88, 118, 148, 188, 236, 354, 472, 708, 944, 1890, 3778,
}

var dmcRateTableNTSC = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}

var dmcRateTablePAL = [16]uint16{
	398, 354, 316, 298, 276, 236, 210, 198, 176, 148, 132, 118, 98, 78, 66, 50,
}

// APU is the complete audio state machine. A caller drives it one CPU
// cycle at a time via Clock, mirroring how the rest of this module
// steps the PPU and mapper from the bus's per-cycle loop rather than
// batching work per instruction.
type APU struct {
	bus Bus

	Pulse1   PulseChannel
	Pulse2   PulseChannel
	Triangle TriangleChannel
	Noise    NoiseChannel
	DMC      DMCChannel

	sequencer FrameSequencer

	tv TVSystem

	cycle uint64

	sampleAccum float32
	sampleCount uint32
}

// New creates an APU wired to bus for DMC sample fetches and IRQ
// assertion. tv selects the noise/DMC period tables; the frame
// sequencer's cycle constants are shared between NTSC and PAL.
func New(bus Bus, tv TVSystem) *APU {
	a := &APU{bus: bus, tv: tv}
	a.Pulse1.sweepOnesComplement = true
	a.sequencer = newFrameSequencer(0)
	return a
}

// Reset applies the documented power-on/reset register state: all
// channels silenced, frame sequencer in 4-step mode with IRQ enabled.
func (a *APU) Reset() {
	a.Pulse1 = PulseChannel{sweepOnesComplement: true}
	a.Pulse2 = PulseChannel{}
	a.Triangle = TriangleChannel{}
	a.Noise = NoiseChannel{ShiftReg: 1}
	a.DMC = DMCChannel{}
	a.sequencer = newFrameSequencer(a.cycle)
	a.bus.SetIRQ(IRQSourceFrame, false)
	a.bus.SetIRQ(IRQSourceDMC, false)
}

// WriteRegister handles a CPU write to one of the APU's memory-mapped
// registers, $4000-$4013 and $4015/$4017.
func (a *APU) WriteRegister(addr uint16, v uint8) {
	switch addr {
	case 0x4000:
		a.Pulse1.writeControl(v)
	case 0x4001:
		a.Pulse1.writeSweep(v)
	case 0x4002:
		a.Pulse1.writeTimerLow(v)
	case 0x4003:
		a.Pulse1.writeTimerHigh(v)
	case 0x4004:
		a.Pulse2.writeControl(v)
	case 0x4005:
		a.Pulse2.writeSweep(v)
	case 0x4006:
		a.Pulse2.writeTimerLow(v)
	case 0x4007:
		a.Pulse2.writeTimerHigh(v)
	case 0x4008:
		a.Triangle.writeControl(v)
	case 0x400A:
		a.Triangle.writeTimerLow(v)
	case 0x400B:
		a.Triangle.writeTimerHigh(v)
	case 0x400C:
		a.Noise.writeControl(v)
	case 0x400E:
		a.Noise.writePeriod(v, a.periodTable())
	case 0x400F:
		a.Noise.writeLength(v)
	case 0x4010:
		a.DMC.writeControl(v, a.rateTable())
	case 0x4011:
		a.DMC.writeDirectLoad(v)
	case 0x4012:
		a.DMC.writeSampleAddress(v)
	case 0x4013:
		a.DMC.writeSampleLength(v)
	case 0x4015:
		a.writeStatus(v)
	case 0x4017:
		a.sequencer.writeRegister(v)
	}
}

// ReadStatus handles a CPU read of $4015: each channel's active bit
// reflects whether its length counter is currently nonzero, and
// reading this register acknowledges (clears) the frame IRQ flag.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.Pulse1.Length.Value > 0 {
		v |= 0x01
	}
	if a.Pulse2.Length.Value > 0 {
		v |= 0x02
	}
	if a.Triangle.Length.Value > 0 {
		v |= 0x04
	}
	if a.Noise.Length.Value > 0 {
		v |= 0x08
	}
	if a.DMC.CurrentLength > 0 {
		v |= 0x10
	}
	if a.sequencer.interruptFlagged {
		v |= 0x40
	}
	if a.DMC.irqFlagged {
		v |= 0x80
	}
	a.sequencer.clearIRQ()
	a.bus.SetIRQ(IRQSourceFrame, false)
	return v
}

func (a *APU) writeStatus(v uint8) {
	a.Pulse1.setEnabled(v&0x01 != 0)
	a.Pulse2.setEnabled(v&0x02 != 0)
	a.Triangle.setEnabled(v&0x04 != 0)
	a.Noise.setEnabled(v&0x08 != 0)
	a.DMC.setEnabled(v&0x10 != 0, a.bus)
	a.DMC.irqFlagged = false
	a.bus.SetIRQ(IRQSourceDMC, false)
}

func (a *APU) periodTable() [16]uint16 {
	if a.tv == TVSystemPAL {
		return noisePeriodTablePAL
	}
	return noisePeriodTableNTSC
}

func (a *APU) rateTable() [16]uint16 {
	if a.tv == TVSystemPAL {
		return dmcRateTablePAL
	}
	return dmcRateTableNTSC
}

// Clock advances the APU by one CPU cycle. Timers tick every CPU
// cycle for the triangle channel but every other CPU cycle for the
// pulse, noise, and DMC units, matching the real 2A03's internal
// clock divider.
func (a *APU) Clock() {
	status := a.sequencer.step(a.cycle)

	if status&frameQuarter != 0 {
		a.Pulse1.clockEnvelope()
		a.Pulse2.clockEnvelope()
		a.Triangle.clockLinearCounter()
		a.Noise.clockEnvelope()
	}
	if status&frameHalf != 0 {
		a.Pulse1.clockLengthAndSweep()
		a.Pulse2.clockLengthAndSweep()
		a.Triangle.Length.clock()
		a.Noise.Length.clock()
	}
	if a.sequencer.interruptFlagged {
		a.bus.SetIRQ(IRQSourceFrame, true)
	}

	a.Triangle.clockTimer()
	if a.cycle%2 == 0 {
		a.Pulse1.clockTimer()
		a.Pulse2.clockTimer()
		a.Noise.clockTimer()
		a.DMC.clockTimer(a.bus)
		if a.DMC.irqFlagged {
			a.bus.SetIRQ(IRQSourceDMC, true)
		}
	}

	a.sampleAccum += a.mix()
	a.sampleCount++

	a.cycle++
}

// Sample returns the average output level accumulated since the last
// call and resets the accumulator, used by a host to pull one output
// sample per audio-frame tick regardless of how many APU cycles
// elapsed in between.
func (a *APU) Sample() float32 {
	if a.sampleCount == 0 {
		return 0
	}
	s := a.sampleAccum / float32(a.sampleCount)
	a.sampleAccum = 0
	a.sampleCount = 0
	return s
}

// mix combines the five channel outputs using the non-linear mixing
// formulas documented on the NESdev wiki, which the linear-sounding
// but electrically inaccurate "just add them up" approach gets wrong
// for the pulse channels in particular.
func (a *APU) mix() float32 {
	p1 := float32(a.Pulse1.output())
	p2 := float32(a.Pulse2.output())
	t := float32(a.Triangle.output())
	n := float32(a.Noise.output())
	d := float32(a.DMC.output())

	var pulseOut float32
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/(p1+p2) + 100)
	}

	var tndOut float32
	tndDenom := t/8227 + n/12241 + d/22638
	if tndDenom > 0 {
		tndOut = 159.79 / (1/tndDenom + 100)
	}

	return pulseOut + tndOut
}
