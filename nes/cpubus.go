package nes

import "github.com/golang/glog"

// CPUBus routes CPU reads/writes across the NES memory map: work RAM, PPU
// registers, the APU/controller I/O page, and the cartridge mapper.
//
// CPU memory map:
//   $0000-$1FFF  2 KiB work RAM, mirrored four times
//   $2000-$3FFF  PPU registers, mirrored every 8 bytes
//   $4000-$4013  APU registers (stub)
//   $4014        OAMDMA
//   $4015        APU status (stub)
//   $4016        Controller #1
//   $4017        Controller #2 / APU frame counter (stub)
//   $4018-$5FFF  unmapped I/O + expansion
//   $6000-$FFFF  cartridge mapper
type CPUBus struct {
	ram        *RAM
	ppu        *PPU
	apu        *APU
	mapper     Mapper
	controller *Controller

	// cpu is a non-owning back-reference used only to signal the OAM
	// DMA stall; the Console aggregate owns the CPU.
	cpu *CPU
}

// NewCPUBus creates a CPU bus over the given peers.
func NewCPUBus(ram *RAM, ppu *PPU, apu *APU, mapper Mapper, controller *Controller) *CPUBus {
	return &CPUBus{ram: ram, ppu: ppu, apu: apu, mapper: mapper, controller: controller}
}

// attachCPU installs the back-reference used for DMA stalls. Called once
// by the Console aggregate after both CPU and CPUBus are constructed.
func (b *CPUBus) attachCPU(cpu *CPU) {
	b.cpu = cpu
}

// read reads a byte from the CPU's view of the address space. Reads that
// fall in an unmapped I/O window yield 0.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.ram.read(address % 0x0800)
	case address < 0x4000:
		return b.ppu.readRegister(0x2000 + (address % 8))
	case address == 0x4015:
		return b.apu.readStatus()
	case address == 0x4016:
		return b.controller.read()
	case address == 0x4017:
		return 0
	case address < 0x6000:
		return 0
	default:
		return b.mapper.ReadCPU(address)
	}
}

// read16 reads a little-endian 16-bit value with no page-wrap (ordinary
// 6502 little-endian read, distinct from the indirect-addressing bug in
// read16Bugged).
func (b *CPUBus) read16(address uint16) uint16 {
	lo := uint16(b.read(address))
	hi := uint16(b.read(address + 1))
	return hi<<8 | lo
}

// write writes a byte, dispatching to the peer that owns address. Writes
// into unmapped I/O windows are silently dropped.
func (b *CPUBus) write(address uint16, value byte) {
	switch {
	case address < 0x2000:
		b.ram.write(address%0x0800, value)
	case address < 0x4000:
		b.ppu.writeRegister(0x2000+(address%8), value)
	case address == 0x4014:
		b.triggerOAMDMA(value)
	case address == 0x4016:
		b.controller.write(value)
	case address < 0x6000:
		// APU registers and other expansion I/O: writes swallowed.
	default:
		b.mapper.WriteCPU(address, value)
	}
}

// triggerOAMDMA copies the 256-byte page at value*$100 into PPU OAM and
// stalls the CPU for 513 cycles (514 if the current cycle count is odd).
func (b *CPUBus) triggerOAMDMA(page byte) {
	var data [256]byte
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		data[i] = b.read(base + uint16(i))
	}
	b.ppu.writeOAMDMA(data)
	if b.cpu == nil {
		glog.Warningf("OAMDMA triggered before CPU attached to bus")
		return
	}
	stall := uint16(513)
	if b.cpu.Cycles()%2 != 0 {
		stall = 514
	}
	b.cpu.StallForDMA(stall)
}
