// Command nes-run is a headless frame-stepper: it loads a ROM, runs it
// for a fixed number of frames (optionally printing CPU state after
// each frame), and reports basic frame-buffer and CPU state. Useful for
// scripted regression checks that don't need a display.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/andrewthecodertx/nes-emulator/pkg/cpu"
	"github.com/andrewthecodertx/nes-emulator/pkg/nes"
)

func main() {
	frames := flag.Int("frames", 60, "number of frames to run")
	trace := flag.Bool("trace", false, "print PC/register state after each frame (not per instruction)")
	breakAddr := flag.Int("break", -1, "stop and report CPU state when PC reaches this address")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("usage: nes-run [-frames N] [-trace] [-break 0xADDR] <rom-file>")
	}

	emulator, err := nes.New(args[0])
	if err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}
	emulator.Reset()

	if *breakAddr >= 0 {
		emulator.Breakpoints().Set(uint16(*breakAddr), cpu.BreakpointPersist)
	}

	cart := emulator.GetCartridge()
	fmt.Printf("Loaded %s: mapper %d, %dKB PRG, %dKB CHR, %s\n",
		args[0], cart.GetMapperID(), int(cart.GetPRGBanks())*16, int(cart.GetCHRBanks())*8, cart.TVSystem())

	for i := 0; i < *frames; i++ {
		for {
			result := emulator.Progress(nes.FrameReadyTarget())
			if *trace {
				c := emulator.GetCPU()
				fmt.Printf("PC=$%04X A=$%02X X=$%02X Y=$%02X SP=$%02X P=$%02X cyc=%d\n",
					c.PC, c.A, c.X, c.Y, c.SP, c.P, emulator.GetCycles())
			}
			if result == nes.ResultBreakpoint {
				c := emulator.GetCPU()
				fmt.Printf("breakpoint hit at $%04X (frame %d, cycle %d)\n", c.PC, i, emulator.GetCycles())
				return
			}
			if result == nes.ResultFrameReady {
				break
			}
		}
	}

	frame := emulator.GetFrameBuffer()
	colors := make(map[uint8]int)
	for _, px := range frame {
		colors[px]++
	}
	fmt.Printf("Ran %d frames (%d CPU cycles). %d unique palette colors in final frame.\n",
		*frames, emulator.GetCycles(), len(colors))
}
