// Command nes-sdl is an SDL2 display and input host for the emulator core.
package main

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/andrewthecodertx/nes-emulator/pkg/controller"
	"github.com/andrewthecodertx/nes-emulator/pkg/nes"
	"github.com/andrewthecodertx/nes-emulator/pkg/ppu"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenWidth  = ppu.ScreenWidth
	screenHeight = ppu.ScreenHeight
	windowScale  = 3
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nes-sdl <rom-file>")
		os.Exit(1)
	}

	romPath := os.Args[1]

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		log.Fatalf("Failed to initialize SDL: %v", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"NES Emulator - "+romPath,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		screenWidth*windowScale,
		screenHeight*windowScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB24,
		sdl.TEXTUREACCESS_STREAMING,
		screenWidth,
		screenHeight,
	)
	if err != nil {
		log.Fatalf("Failed to create texture: %v", err)
	}
	defer texture.Destroy()

	emulator, err := nes.New(romPath)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	cart := emulator.GetCartridge()
	fmt.Printf("Loaded %s: mapper %d, %dKB PRG, %dKB CHR, %s\n",
		romPath, cart.GetMapperID(), int(cart.GetPRGBanks())*16, int(cart.GetCHRBanks())*8, cart.TVSystem())

	emulator.Reset()

	pixels := make([]byte, screenWidth*screenHeight*3)

	ctrl := emulator.GetBus().GetController(0)

	fmt.Println("ESC=quit | P=pause | SPACE=step-when-paused | R=reset")
	fmt.Println("Arrows=D-pad | Z=B | X=A | Enter=Start | RShift=Select")

	running := true
	paused := false

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.KeyboardEvent:
				pressed := e.Type == sdl.KEYDOWN

				if pressed {
					switch e.Keysym.Sym {
					case sdl.K_ESCAPE:
						running = false
						continue
					case sdl.K_SPACE:
						if paused {
							emulator.RunFrame()
						}
						continue
					case sdl.K_p:
						paused = !paused
						continue
					case sdl.K_r:
						emulator.Reset()
						continue
					}
				}

				switch e.Keysym.Sym {
				case sdl.K_x:
					ctrl.SetButton(controller.ButtonA, pressed)
				case sdl.K_z:
					ctrl.SetButton(controller.ButtonB, pressed)
				case sdl.K_RSHIFT:
					ctrl.SetButton(controller.ButtonSelect, pressed)
				case sdl.K_RETURN:
					ctrl.SetButton(controller.ButtonStart, pressed)
				case sdl.K_UP:
					ctrl.SetButton(controller.ButtonUp, pressed)
				case sdl.K_DOWN:
					ctrl.SetButton(controller.ButtonDown, pressed)
				case sdl.K_LEFT:
					ctrl.SetButton(controller.ButtonLeft, pressed)
				case sdl.K_RIGHT:
					ctrl.SetButton(controller.ButtonRight, pressed)
				}
			}
		}

		if !paused {
			emulator.RunFrame()
		}

		frame := emulator.GetFrameBuffer()
		ppu.FormatRGB888.Convert(frame, pixels)

		texture.Update(nil, unsafe.Pointer(&pixels[0]), screenWidth*3)
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		if !paused {
			sdl.Delay(16)
		} else {
			sdl.Delay(100)
		}
	}
}
