package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNROM128MirrorsSingleBankTwice(t *testing.T) {
	prg := make([]byte, prgROMBankSize)
	prg[0] = 0xAB
	prg[prgROMBankSize-1] = 0xCD
	mapper, err := NewMapper(0, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	assert.Equal(t, byte(0xAB), mapper.ReadCPU(0x8000))
	assert.Equal(t, byte(0xAB), mapper.ReadCPU(0xC000), "NROM-128 mirrors the 16 KiB bank at $C000")
	assert.Equal(t, byte(0xCD), mapper.ReadCPU(0xBFFF))
	assert.Equal(t, byte(0xCD), mapper.ReadCPU(0xFFFF))
}

func TestNROM256DoesNotMirror(t *testing.T) {
	prg := make([]byte, 2*prgROMBankSize)
	prg[0] = 0x11
	prg[prgROMBankSize] = 0x22
	mapper, err := NewMapper(0, prg, make([]byte, chrROMBankSize), MirrorVertical)
	require.NoError(t, err)

	assert.Equal(t, byte(0x11), mapper.ReadCPU(0x8000))
	assert.Equal(t, byte(0x22), mapper.ReadCPU(0xC000))
	assert.Equal(t, MirrorVertical, mapper.Mirroring())
}

func TestNROMPRGRAMReadWrite(t *testing.T) {
	prg := make([]byte, prgROMBankSize)
	mapper, err := NewMapper(0, prg, make([]byte, chrROMBankSize), MirrorHorizontal)
	require.NoError(t, err)

	mapper.WriteCPU(0x6000, 0x42)
	assert.Equal(t, byte(0x42), mapper.ReadCPU(0x6000))
}

func TestUnsupportedMapperNumberErrors(t *testing.T) {
	_, err := NewMapper(99, make([]byte, prgROMBankSize), nil, MirrorHorizontal)
	assert.Error(t, err)
}
