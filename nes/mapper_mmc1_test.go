package nes

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMMC1Serial performs the 5 single-bit LSB-first writes MMC1 expects
// to latch a value into the register selected by addr.
func writeMMC1Serial(mapper interface {
	WriteCPU(uint16, byte)
}, addr uint16, value byte) {
	for i := 0; i < 5; i++ {
		bit := (value >> uint(i)) & 1
		mapper.WriteCPU(addr, bit)
	}
}

func TestMMC1PowerOnIsPRGMode3(t *testing.T) {
	const banks = 4
	prg := make([]byte, banks*prgROMBankSize)
	prg[(banks-1)*prgROMBankSize] = 0x55
	mapper, err := NewMapper(1, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	assert.Equal(t, byte(0x55), mapper.ReadCPU(0xC000), "power-on mode 3 fixes the last bank at $C000")
}

func TestMMC1LatchesAfterFiveWrites(t *testing.T) {
	const banks = 4
	prg := make([]byte, banks*prgROMBankSize)
	prg[2*prgROMBankSize] = 0x99
	mapper, err := NewMapper(1, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	// Select PRG bank mode 2 (fixed first, switchable at $C000) and pick
	// bank 2 for $C000.
	writeMMC1Serial(mapper, 0x8000, 0x08) // control: CHR 4KiB mode off, PRG mode 2
	writeMMC1Serial(mapper, 0xE000, 0x02) // PRG bank select = 2

	assert.Equal(t, byte(0x99), mapper.ReadCPU(0xC000))
}

func TestMMC1ResetBitForcesShiftClearAndPRGMode3(t *testing.T) {
	const banks = 2
	prg := make([]byte, banks*prgROMBankSize)
	prg[(banks-1)*prgROMBankSize] = 0x7A
	mapper, err := NewMapper(1, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	// Switch to PRG mode 0 (32 KiB) first, so mode 3 isn't already active.
	writeMMC1Serial(mapper, 0x8000, 0x00)
	mapper.WriteCPU(0x8000, 1)    // partial shift, bit 0 only, never latched
	mapper.WriteCPU(0x8000, 0x80) // bit 7 set: reset

	t.Log(spew.Sdump(mapper))
	assert.Equal(t, 0, mapper.(*mapperMMC1).shiftCount, "reset discards the partially shifted bit")
	assert.Equal(t, byte(0x7A), mapper.ReadCPU(0xC000), "reset forces PRG mode 3 (fixed last bank at $C000)")
}

func TestMMC1MirroringFollowsControlRegister(t *testing.T) {
	prg := make([]byte, prgROMBankSize)
	mapper, err := NewMapper(1, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	writeMMC1Serial(mapper, 0x8000, 0x02) // control low bits = 10: vertical
	assert.Equal(t, MirrorVertical, mapper.Mirroring())
}
