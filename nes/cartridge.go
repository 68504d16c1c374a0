package nes

import (
	"fmt"

	"github.com/nescore/nesgo/internal/rom"
)

// Cartridge wraps a parsed iNES image with the mapper it selects.
// Reference: https://www.nesdev.org/wiki/INES
type Cartridge struct {
	Mapper Mapper
}

// NewCartridge builds the mapper named by img's header and wraps it as a
// Cartridge. An unsupported mapper number is an error, not a panic:
// LoadROM and LoadROMBytes must be able to reject a ROM they can't run.
func NewCartridge(img *rom.Image) (*Cartridge, error) {
	mirroring := MirrorHorizontal
	if img.Mirroring == 1 {
		mirroring = MirrorVertical
	}
	if img.FourScreen {
		mirroring = MirrorFourScreen
	}
	mapper, err := NewMapper(img.Mapper, img.PRG, img.CHR, mirroring)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	return &Cartridge{Mapper: mapper}, nil
}
