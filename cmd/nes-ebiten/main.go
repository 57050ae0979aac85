// Command nes-ebiten is an alternate display and input host built on
// Ebitengine instead of SDL2, for platforms where a pure-Go graphics
// stack is preferable to linking libSDL2.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/andrewthecodertx/nes-emulator/pkg/controller"
	"github.com/andrewthecodertx/nes-emulator/pkg/nes"
	"github.com/andrewthecodertx/nes-emulator/pkg/ppu"
	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 3

type game struct {
	emu    *nes.NES
	pixels []byte
	image  *ebiten.Image
	paused bool
}

var keymap = map[ebiten.Key]controller.Button{
	ebiten.KeyX:     controller.ButtonA,
	ebiten.KeyZ:     controller.ButtonB,
	ebiten.KeyShift: controller.ButtonSelect,
	ebiten.KeyEnter: controller.ButtonStart,
	ebiten.KeyUp:    controller.ButtonUp,
	ebiten.KeyDown:  controller.ButtonDown,
	ebiten.KeyLeft:  controller.ButtonLeft,
	ebiten.KeyRight: controller.ButtonRight,
}

func (g *game) Update() error {
	if inpututilJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututilJustPressed(ebiten.KeyR) {
		g.emu.Reset()
	}

	ctrl := g.emu.GetBus().GetController(0)
	for key, button := range keymap {
		ctrl.SetButton(button, ebiten.IsKeyPressed(key))
	}

	if !g.paused {
		g.emu.RunFrame()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.emu.GetFrameBuffer()
	ppu.FormatRGBA8888.Convert(frame, g.pixels)
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}

// inpututilJustPressed is a minimal just-pressed edge detector kept
// local to avoid pulling in the inpututil subpackage for two keys.
var keyWasDown = map[ebiten.Key]bool{}

func inpututilJustPressed(key ebiten.Key) bool {
	down := ebiten.IsKeyPressed(key)
	was := keyWasDown[key]
	keyWasDown[key] = down
	return down && !was
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: nes-ebiten <rom-file>")
		os.Exit(1)
	}

	emulator, err := nes.New(os.Args[1])
	if err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}

	cart := emulator.GetCartridge()
	fmt.Printf("Loaded %s: mapper %d, %dKB PRG, %dKB CHR, %s\n",
		os.Args[1], cart.GetMapperID(), int(cart.GetPRGBanks())*16, int(cart.GetCHRBanks())*8, cart.TVSystem())

	emulator.Reset()

	g := &game{
		emu:    emulator,
		pixels: make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4),
		image:  ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
	}

	ebiten.SetWindowSize(ppu.ScreenWidth*windowScale, ppu.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("NES Emulator - " + os.Args[1])

	fmt.Println("P=pause | R=reset | Arrows=D-pad | Z=B | X=A | Enter=Start | Shift=Select")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
