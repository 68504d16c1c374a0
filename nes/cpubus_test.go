package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPUBusRAMMirroring(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.bus.write(0x0000, 0x42)
	assert.Equal(t, byte(0x42), cpu.bus.read(0x0800))
	assert.Equal(t, byte(0x42), cpu.bus.read(0x1000))
	assert.Equal(t, byte(0x42), cpu.bus.read(0x1800))
}

func TestCPUBusPPURegisterMirroring(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.bus.write(0x2000, 1) // PPUCTRL nametable select = 1
	assert.Equal(t, byte(1), cpu.bus.ppu.nameTableFlag)
	cpu.bus.write(0x2008, 2) // mirrored PPUCTRL, every 8 bytes
	assert.Equal(t, byte(2), cpu.bus.ppu.nameTableFlag, "writes to $2008 reach the same register as $2000")
}

func TestOAMDMAStallsAndCopiesPage(t *testing.T) {
	cpu, _ := newTestCPU()
	for i := 0; i < 256; i++ {
		cpu.bus.write(uint16(i), byte(i))
	}
	cpu.bus.triggerOAMDMA(0x00)
	assert.Equal(t, byte(0x00), cpu.bus.ppu.primaryOAM.read(0))
	assert.Equal(t, byte(0xFF), cpu.bus.ppu.primaryOAM.read(255))
	assert.True(t, cpu.stall == 513 || cpu.stall == 514)
}

func TestControllerShiftOrder(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.bus.write(0x4016, 1) // strobe on
	cpu.bus.controller.Set([8]bool{true, false, false, false, false, false, false, true})
	cpu.bus.write(0x4016, 0) // strobe off, latch state
	assert.Equal(t, byte(1), cpu.bus.read(0x4016)&1, "button A reads first")
	assert.Equal(t, byte(0), cpu.bus.read(0x4016)&1, "button B reads second")
}
