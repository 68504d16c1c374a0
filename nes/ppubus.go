package nes

// PPUBus routes PPU reads/writes across its address space: cartridge
// pattern tables (via the mapper), nametable VRAM (mirrored per the
// mapper's current Mirroring), and palette RAM.
//
// Address        Size    Description
// -------------------------------------
// $0000-$0FFF    $1000   Pattern table 0
// $1000-$1FFF    $1000   Pattern table 1
// $2000-$23FF    $0400   Nametable 0
// $2400-$27FF    $0400   Nametable 1
// $2800-$2BFF    $0400   Nametable 2
// $2C00-$2FFF    $0400   Nametable 3
// $3000-$3EFF    $0F00   Mirrors of $2000-$2EFF
// $3F00-$3F1F    $0020   Palette RAM indexes
// $3F20-$3FFF    $00E0   Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
type PPUBus struct {
	vram   *RAM
	mapper Mapper
}

// NewPPUBus creates a PPU bus over vram (nametables) and mapper (pattern
// tables + mirroring).
func NewPPUBus(vram *RAM, mapper Mapper) *PPUBus {
	return &PPUBus{vram: vram, mapper: mapper}
}

// nametableAddress resolves a $2000-$2FFF address to a physical offset in
// the 2 KiB nametable VRAM, folding the four logical nametables down to
// the two physical ones per the mapper's mirroring mode.
func (b *PPUBus) nametableAddress(address uint16) uint16 {
	relative := (address - 0x2000) % 0x1000
	table := relative / 0x0400
	offset := relative % 0x0400
	var physical uint16
	switch b.mapper.Mirroring() {
	case MirrorHorizontal:
		physical = table / 2
	case MirrorVertical:
		physical = table % 2
	case MirrorSingleLower:
		physical = 0
	case MirrorSingleUpper:
		physical = 1
	case MirrorFourScreen:
		physical = table % 2 // best-effort: no dedicated 4-screen VRAM modeled
	}
	return physical*0x0400 + offset
}

// read reads a byte from the PPU's address space.
func (b *PPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.mapper.ReadCHR(address)
	case address < 0x3F00:
		return b.vram.read(b.nametableAddress(address))
	default:
		return 0
	}
}

// write writes a byte to the PPU's address space. Palette RAM writes are
// handled directly by the PPU (see ppu.go) rather than routed here.
func (b *PPUBus) write(address uint16, value byte) {
	switch {
	case address < 0x2000:
		b.mapper.WriteCHR(address, value)
	case address < 0x3F00:
		b.vram.write(b.nametableAddress(address), value)
	}
}
