package nes

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logCPUState dumps the full register/flag state via go-spew; t.Log output
// is only printed by the test runner when the test fails or -v is passed,
// so this is free on a passing run and a full diff on a failing one.
func logCPUState(t *testing.T, cpu *CPU) {
	t.Helper()
	t.Log(spew.Sdump(cpu))
}

func TestCPUReset(t *testing.T) {
	cpu, _ := newTestCPU()
	assert.Equal(t, uint16(0x8000), cpu.PC())
	assert.Equal(t, byte(0xFD), cpu.sp)
	assert.True(t, cpu.i)
}

func TestLDAImmediateSetsZN(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.load(0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x05)

	cpu.Tick()
	assert.Equal(t, byte(0x00), cpu.a)
	assert.True(t, cpu.z, "loading 0 should set Z")
	assert.False(t, cpu.n)

	cpu.Tick()
	assert.Equal(t, byte(0x80), cpu.a)
	assert.False(t, cpu.z)
	assert.True(t, cpu.n, "loading a negative value should set N")

	cpu.Tick()
	assert.Equal(t, byte(0x05), cpu.a)
	assert.False(t, cpu.z)
	assert.False(t, cpu.n)
}

func TestSTALoadRoundTrip(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.load(0xA9, 0x42, 0x85, 0x10) // LDA #$42; STA $10

	cpu.Tick()
	cpu.Tick()
	require.Equal(t, byte(0x42), cpu.bus.read(0x0010))
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	cpu, mapper := newTestCPU()
	// LDA #$FF; ADC #$01 -> 0x00, carry set, overflow clear (unsigned wrap)
	mapper.load(0xA9, 0xFF, 0x69, 0x01)
	cpu.Tick()
	cpu.Tick()
	assert.Equal(t, byte(0x00), cpu.a)
	assert.True(t, cpu.c)
	assert.True(t, cpu.z)
	assert.False(t, cpu.v)
}

func TestADCSignedOverflow(t *testing.T) {
	cpu, mapper := newTestCPU()
	// LDA #$7F; ADC #$01 -> 0x80, overflow set (positive+positive=negative)
	mapper.load(0xA9, 0x7F, 0x69, 0x01)
	cpu.Tick()
	cpu.Tick()
	logCPUState(t, cpu)
	assert.Equal(t, byte(0x80), cpu.a)
	assert.True(t, cpu.v)
	assert.True(t, cpu.n)
}

func TestBranchNotTakenCostsBaseCycles(t *testing.T) {
	cpu, mapper := newTestCPU()
	// LDA #$00 sets Z; BNE (branches when Z clear) is therefore not taken.
	mapper.load(0xA9, 0x00, 0xD0, 0x02)
	cpu.Tick()
	before := cpu.Cycles()
	cycles := cpu.Tick()
	assert.Equal(t, 2, cycles)
	assert.Equal(t, before+2, cpu.Cycles())
	assert.Equal(t, uint16(0x8004), cpu.PC())
}

func TestBranchTakenAddsCycle(t *testing.T) {
	cpu, mapper := newTestCPU()
	// LDA #$00 sets Z; BEQ is therefore taken.
	mapper.load(0xA9, 0x00, 0xF0, 0x02)
	cpu.Tick()
	cycles := cpu.Tick()
	assert.Equal(t, 3, cycles, "taken branch costs base+1")
	assert.Equal(t, uint16(0x8006), cpu.PC())
}

func TestBranchTakenCrossingPageAddsTwoCycles(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.prg[0xFFFC-0x8000] = 0xF0
	mapper.prg[0xFFFD-0x8000] = 0x80 // reset vector -> $80F0
	mapper.prg[0x80F0-0x8000] = 0xF0 // BEQ
	mapper.prg[0x80F1-0x8000] = 0x7F // +127, lands the branch target in the next page
	cpu.Reset()
	cpu.z = true // force the branch to be taken
	cycles := cpu.Tick()
	assert.Equal(t, 4, cycles, "taken branch across a page boundary costs base+2")
	assert.Equal(t, uint16(0x8171), cpu.PC())
}

func TestJSRRTSRoundTrip(t *testing.T) {
	cpu, mapper := newTestCPU()
	// JSR $8010; at $8010: RTS
	mapper.load(0x20, 0x10, 0x80)
	mapper.prg[0x8010-0x8000] = 0x60 // RTS
	cpu.Tick()                      // JSR
	assert.Equal(t, uint16(0x8010), cpu.PC())
	cpu.Tick() // RTS
	assert.Equal(t, uint16(0x8003), cpu.PC())
}

func TestPushPullStack(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.load(0xA9, 0x99, 0x48, 0xA9, 0x00, 0x68) // LDA #$99; PHA; LDA #$00; PLA
	cpu.Tick()
	cpu.Tick()
	cpu.Tick()
	cpu.Tick()
	assert.Equal(t, byte(0x99), cpu.a)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	cpu, mapper := newTestCPU()
	// JMP ($80FF): low byte from $80FF, high byte incorrectly from $8000
	// rather than $8100.
	mapper.load(0x6C, 0xFF, 0x80)
	mapper.prg[0x80FF-0x8000] = 0x34
	mapper.prg[0x8100-0x8000] = 0x12 // correct high byte, must NOT be used
	cpu.Tick()
	logCPUState(t, cpu)
	assert.Equal(t, uint16(0x6C34), cpu.PC(), "page-wrap bug reads high byte from start of page")
}

func TestTriggerNMIServicedAtNextTick(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.prg[0xFFFA-0x8000] = 0x00
	mapper.prg[0xFFFB-0x8000] = 0x90 // NMI vector -> $9000
	mapper.load(0xEA)                // NOP at $8000
	cpu.TriggerNMI()
	cycles := cpu.Tick()
	assert.Equal(t, 7, cycles)
	assert.Equal(t, uint16(0x9000), cpu.PC())
}

func TestStallForDMAConsumesOneCyclePerTick(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.StallForDMA(513)
	cycles := cpu.Tick()
	assert.Equal(t, 1, cycles)
	assert.Equal(t, uint16(512), cpu.stall)
}

func TestUnofficialOpcodeDecodesAsTolerantNOP(t *testing.T) {
	cpu, mapper := newTestCPU()
	mapper.load(0x04) // unofficial opcode, should not panic
	assert.NotPanics(t, func() { cpu.Tick() })
}
