package nes

import "github.com/golang/glog"

// CPU emulates the Ricoh 2A03, a MOS 6502 derivative with the decimal mode
// pins tied off. It owns no memory of its own beyond its registers; all
// reads and writes are routed through a Bus.
//
// References:
//   https://www.nesdev.org/wiki/CPU
//   http://www.6502.org/tutorials/6502opcodes.html

const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE // also the BRK vector

	stackBase = 0x0100
)

// interruptKind tags the single pending-interrupt latch. Only NMI is wired
// up by this core; IRQ is reserved but unused (the APU is a stub and never
// raises one).
type interruptKind int

const (
	interruptNone interruptKind = iota
	interruptNMI
)

// CPU is the 6502 register file plus scheduling state.
type CPU struct {
	pc uint16
	sp byte
	a  byte
	x  byte
	y  byte

	// Individually stored status flags. B and U are synthesized on push
	// rather than stored.
	c bool // carry
	z bool // zero
	i bool // interrupt disable
	d bool // decimal (inert on the 2A03)
	v bool // overflow
	n bool // negative

	cycles uint64

	// branchPenalty is set by resolveAddress for modes that cross a
	// page, and consumed by branch and memory opcodes at retirement.
	branchPenalty int

	// stall counts cycles to skip, used to model OAM DMA.
	stall uint16

	pendingInterrupt interruptKind

	bus          *CPUBus
	instructions [256]instruction
}

// NewCPU creates a CPU wired to bus. Registers are left in an undefined
// state until Reset is called.
func NewCPU(bus *CPUBus) *CPU {
	return &CPU{
		bus:          bus,
		instructions: buildInstructionTable(),
	}
}

// Reset puts the CPU into its documented power-on/reset state: sp=$FD,
// I and U set in the status byte, pc loaded from the reset vector.
func (c *CPU) Reset() {
	c.sp = 0xFD
	c.setFlags(0x24)
	c.pc = c.bus.read16(vectorReset)
	c.pendingInterrupt = interruptNone
	c.stall = 0
}

// PC reports the program counter, mainly for tests and debuggers.
func (c *CPU) PC() uint16 { return c.pc }

// Cycles reports the monotonic cycle counter since reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// TriggerNMI latches a non-maskable interrupt, observed at the next
// instruction boundary. Called by the PPU at vblank.
func (c *CPU) TriggerNMI() {
	c.pendingInterrupt = interruptNMI
}

// StallForDMA adds n cycles the CPU will spend stalled, used for OAM DMA.
func (c *CPU) StallForDMA(n uint16) {
	c.stall += n
}

// getFlags packs the six stored flags plus the synthesized U bit (always
// 1) into a status byte. B is not part of CPU state; callers that need B
// set synthesize it themselves (see php/brk).
func (c *CPU) getFlags() byte {
	var f byte
	if c.c {
		f |= 1 << 0
	}
	if c.z {
		f |= 1 << 1
	}
	if c.i {
		f |= 1 << 2
	}
	if c.d {
		f |= 1 << 3
	}
	if c.v {
		f |= 1 << 6
	}
	if c.n {
		f |= 1 << 7
	}
	f |= 1 << 5 // U always reads as 1
	return f
}

// setFlags unpacks a status byte into the six restorable flags (B and U
// are not stored; U always reads back as 1 regardless of the source bit).
func (c *CPU) setFlags(v byte) {
	c.c = v&(1<<0) != 0
	c.z = v&(1<<1) != 0
	c.i = v&(1<<2) != 0
	c.d = v&(1<<3) != 0
	c.v = v&(1<<6) != 0
	c.n = v&(1<<7) != 0
}

// push writes a byte to the hardware stack at $0100+sp and decrements sp,
// wrapping within the stack page.
func (c *CPU) push(v byte) {
	c.bus.write(stackBase+uint16(c.sp), v)
	c.sp--
}

// pull increments sp and reads the byte now on top of the stack.
func (c *CPU) pull() byte {
	c.sp++
	return c.bus.read(stackBase + uint16(c.sp))
}

// push16 pushes a 16-bit value high byte first, matching 6502 stack
// order (so pull16 reads it back low byte first).
func (c *CPU) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

// pull16 pulls a 16-bit value, low byte first then high byte.
func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

// serviceNMI pushes pc and flags (with B clear), disables further
// interrupts, and jumps through the NMI vector. Takes 7 cycles.
func (c *CPU) serviceNMI() int {
	c.push16(c.pc)
	c.push(c.getFlags()) // B is clear; getFlags never sets it
	c.i = true
	c.pc = c.bus.read16(vectorNMI)
	c.cycles += 7
	c.pendingInterrupt = interruptNone
	return 7
}

// Tick executes one step: service a pending stall or interrupt, or else
// fetch-decode-execute one instruction. It returns the number of cycles
// consumed, for the scheduler to convert into PPU dot-cycles.
func (c *CPU) Tick() int {
	if c.stall > 0 {
		c.stall--
		// Returning 1 rather than 0 keeps the PPU advancing during DMA.
		return 1
	}
	if c.pendingInterrupt == interruptNMI {
		return c.serviceNMI()
	}

	opcode := c.bus.read(c.pc)
	inst := c.instructions[opcode]
	c.pc++
	operand := c.resolveAddress(inst.mode)
	c.pc += inst.size - 1
	before := c.cycles
	c.cycles += uint64(inst.cycles)

	if inst.branchExec != nil {
		taken := inst.branchExec(c, operand, inst.mode)
		if taken {
			c.cycles++
			c.cycles += uint64(c.branchPenalty)
		}
	} else {
		inst.exec(c, operand, inst.mode)
		if inst.pageCrossAdds {
			c.cycles += uint64(c.branchPenalty)
		}
	}

	if inst.mnemonic == "" {
		glog.V(2).Infof("decoded unofficial opcode 0x%02x as tolerant NOP", opcode)
	}
	return int(c.cycles - before)
}
