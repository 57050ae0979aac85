// Command rom-info dumps an iNES or NSF file's header fields.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/andrewthecodertx/nes-emulator/pkg/cartridge"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: rom-info <rom-file>")
		os.Exit(1)
	}

	path := os.Args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(1)
	}

	if strings.HasSuffix(strings.ToLower(path), ".nsf") {
		dumpNSF(data)
		return
	}
	dumpINES(path, data)
}

func dumpINES(path string, data []byte) {
	fmt.Printf("ROM File: %s\n", path)
	fmt.Printf("File Size: %d bytes\n\n", len(data))

	cart, err := cartridge.LoadFromFile(path)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	mirrorNames := []string{"Horizontal", "Vertical", "Single-low", "Single-high", "Four-screen"}
	fmt.Printf("Mapper: %d\n", cart.GetMapperID())
	fmt.Printf("PRG-ROM Banks: %d (%d KB)\n", cart.GetPRGBanks(), int(cart.GetPRGBanks())*16)
	fmt.Printf("CHR-ROM Banks: %d (%d KB)\n", cart.GetCHRBanks(), int(cart.GetCHRBanks())*8)
	fmt.Printf("Mirroring: %s\n", mirrorNames[cart.GetMirroring()])
	fmt.Printf("Battery-backed RAM: %v\n", cart.HasSaveRAM())
	fmt.Printf("TV System: %v\n", cart.TVSystem())
}

func dumpNSF(data []byte) {
	_, info, err := cartridge.LoadNSF(data)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Title:     %s\n", info.Title)
	fmt.Printf("Artist:    %s\n", info.Artist)
	fmt.Printf("Copyright: %s\n", info.Copyright)
	fmt.Printf("Songs:     %d (starting at %d)\n", info.SongCount, info.StartingSong)
	fmt.Printf("Load:      $%04X\n", info.LoadAddress)
	fmt.Printf("Init:      $%04X\n", info.InitAddress)
	fmt.Printf("Play:      $%04X\n", info.PlayAddress)
	fmt.Printf("Bank-switched: %v\n", info.IsBankSwitched)
	fmt.Printf("TV System: %v\n", info.TVSystem)
}
