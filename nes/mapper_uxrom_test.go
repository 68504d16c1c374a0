package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUxROMBankSwitch(t *testing.T) {
	const banks = 4
	prg := make([]byte, banks*prgROMBankSize)
	for i := 0; i < banks; i++ {
		prg[i*prgROMBankSize] = byte(i)
	}
	mapper, err := NewMapper(2, prg, nil, MirrorVertical)
	require.NoError(t, err)

	assert.Equal(t, byte(0), mapper.ReadCPU(0x8000), "bank 0 selected on power-on")
	assert.Equal(t, byte(banks-1), mapper.ReadCPU(0xC000), "$C000 always reads the last bank")

	mapper.WriteCPU(0x8000, 2)
	assert.Equal(t, byte(2), mapper.ReadCPU(0x8000))
	assert.Equal(t, byte(banks-1), mapper.ReadCPU(0xC000), "fixed bank unaffected by switch")
}

func TestUxROMBankSelectWrapsModuloBankCount(t *testing.T) {
	const banks = 2
	prg := make([]byte, banks*prgROMBankSize)
	prg[1*prgROMBankSize] = 0x77
	mapper, err := NewMapper(2, prg, nil, MirrorHorizontal)
	require.NoError(t, err)

	mapper.WriteCPU(0x9000, 5) // 5 mod 2 == 1
	assert.Equal(t, byte(0x77), mapper.ReadCPU(0x8000))
}

func TestUxROMCHRIsRAM(t *testing.T) {
	prg := make([]byte, prgROMBankSize)
	mapper, err := NewMapper(2, prg, nil, MirrorHorizontal)
	require.NoError(t, err)

	mapper.WriteCHR(0x0000, 0x9A)
	assert.Equal(t, byte(0x9A), mapper.ReadCHR(0x0000))
}
