// Package rom loads iNES cartridge images from disk or memory, handling
// the parts of the format that sit outside the nes package's own header
// parsing: file I/O, the optional trainer payload, and the top-level
// validation a caller needs before ever constructing a Console.
package rom

import (
	"fmt"
	"os"
)

const (
	headerSize    = 16
	trainerSize   = 512
	prgBankUnit   = 0x4000
	chrBankUnit   = 0x2000
	trainerFlag   = 1 << 2
	magic0, magic1, magic2, magic3 = 'N', 'E', 'S', 0x1A
)

// Image is a parsed iNES file: the raw PRG/CHR payloads (trainer already
// stripped) plus the header fields nes.NewCartridge needs to pick a mapper.
type Image struct {
	PRG       []byte
	CHR       []byte
	Mapper    byte
	Mirroring byte // 0: horizontal, 1: vertical; bit 3 of flags 6 means four-screen, reported separately
	FourScreen bool
	Battery   bool
}

// Load reads and parses an iNES file from path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes an iNES image already held in memory.
func Parse(data []byte) (*Image, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("rom: truncated header: %d bytes", len(data))
	}
	if data[0] != magic0 || data[1] != magic1 || data[2] != magic2 || data[3] != magic3 {
		return nil, fmt.Errorf("rom: bad magic bytes, not an iNES file")
	}
	prgBanks := int(data[4])
	chrBanks := int(data[5])
	flags6 := data[6]
	flags7 := data[7]

	offset := headerSize
	if flags6&trainerFlag != 0 {
		offset += trainerSize
	}

	prgSize := prgBanks * prgBankUnit
	if offset+prgSize > len(data) {
		return nil, fmt.Errorf("rom: truncated PRG-ROM: need %d bytes, have %d", prgSize, len(data)-offset)
	}
	prg := data[offset : offset+prgSize]
	offset += prgSize

	chrSize := chrBanks * chrBankUnit
	if offset+chrSize > len(data) {
		return nil, fmt.Errorf("rom: truncated CHR-ROM: need %d bytes, have %d", chrSize, len(data)-offset)
	}
	chr := data[offset : offset+chrSize]

	mapper := (flags7 & 0xF0) | (flags6 >> 4)
	return &Image{
		PRG:        prg,
		CHR:        chr,
		Mapper:     mapper,
		Mirroring:  flags6 & 0x01,
		FourScreen: flags6&0x08 != 0,
		Battery:    flags6&0x02 != 0,
	}, nil
}
