package cartridge

import "fmt"

const (
	nsfHeaderSize = 0x80
	nsfMagic      = "NESM\x1a"
)

// NSFInfo carries the player-facing metadata an NSF file's header
// provides, alongside the Cartridge a host plays it through.
type NSFInfo struct {
	SongCount     uint8
	StartingSong  uint8
	LoadAddress   uint16
	InitAddress   uint16
	PlayAddress   uint16
	Title         string
	Artist        string
	Copyright     string
	IsBankSwitched bool
	TVSystem      TVSystem
}

// LoadNSF parses an NSF music file and returns a Cartridge backed by
// Mapper31, plus the header metadata a player needs to pick a song and
// call its init/play routines.
func LoadNSF(data []byte) (*Cartridge, NSFInfo, error) {
	if len(data) < nsfHeaderSize {
		return nil, NSFInfo{}, fmt.Errorf("nsf: file too small to contain a header")
	}
	if string(data[0:5]) != nsfMagic {
		return nil, NSFInfo{}, fmt.Errorf("nsf: invalid magic, expected %q", nsfMagic)
	}

	info := NSFInfo{
		SongCount:    data[0x06],
		StartingSong: data[0x07],
		LoadAddress:  uint16(data[0x08]) | uint16(data[0x09])<<8,
		InitAddress:  uint16(data[0x0A]) | uint16(data[0x0B])<<8,
		PlayAddress:  uint16(data[0x0C]) | uint16(data[0x0D])<<8,
		Title:        trimNSFString(data[0x0E:0x2E]),
		Artist:       trimNSFString(data[0x2E:0x4E]),
		Copyright:    trimNSFString(data[0x4E:0x6E]),
	}

	switch data[0x7A] & 0x03 {
	case 1:
		info.TVSystem = TVSystemPAL
	case 2, 3:
		info.TVSystem = TVSystemDual
	default:
		info.TVSystem = TVSystemNTSC
	}

	var banks [8]uint8
	for i := 0; i < 8; i++ {
		banks[i] = data[0x70+i]
		if banks[i] != 0 {
			info.IsBankSwitched = true
		}
	}

	prgData := data[nsfHeaderSize:]

	var prgROM []byte
	if info.IsBankSwitched {
		padding := int(info.LoadAddress & 0xFFF)
		prgROM = make([]byte, padding+len(prgData))
		copy(prgROM[padding:], prgData)
	} else {
		padding := int(info.LoadAddress - 0x8000)
		size := padding + len(prgData)
		if size < 0x8000 {
			size = 0x8000
		}
		prgROM = make([]byte, size)
		copy(prgROM[padding:], prgData)
	}

	mapper := NewMapper31(prgROM, nil, MirrorVertical)
	if info.IsBankSwitched {
		for i, b := range banks {
			mapper.banks[i] = b
		}
	}

	cart := &Cartridge{
		mapper:   mapper,
		mapperID: 31,
		prgBanks: uint8(len(prgROM) / 4096),
		chrBanks: 0,
		mirroring: MirrorVertical,
		tvSystem: info.TVSystem,
	}

	return cart, info, nil
}

func trimNSFString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
