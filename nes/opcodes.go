package nes

// Each opcode implementation receives the CPU and the already-resolved
// effective address (ignored by implied/accumulator-mode opcodes) and
// mutates CPU/bus state. None of these return a cycle count: base cycles
// live in the instruction table (instructions.go); only branch-taken and
// page-cross penalties are added by tick() after dispatch.

// setZN sets the Z and N flags from the 8-bit result of a load/transfer/
// arithmetic operation.
func (c *CPU) setZN(v byte) {
	c.z = v == 0
	c.n = v&0x80 != 0
}

// --- Load/Store ---

func (c *CPU) lda(addr uint16, mode addressingMode) {
	c.a = c.bus.read(addr)
	c.setZN(c.a)
}

func (c *CPU) ldx(addr uint16, mode addressingMode) {
	c.x = c.bus.read(addr)
	c.setZN(c.x)
}

func (c *CPU) ldy(addr uint16, mode addressingMode) {
	c.y = c.bus.read(addr)
	c.setZN(c.y)
}

func (c *CPU) sta(addr uint16, mode addressingMode) {
	c.bus.write(addr, c.a)
}

func (c *CPU) stx(addr uint16, mode addressingMode) {
	c.bus.write(addr, c.x)
}

func (c *CPU) sty(addr uint16, mode addressingMode) {
	c.bus.write(addr, c.y)
}

// --- Transfer ---

func (c *CPU) tax(addr uint16, mode addressingMode) {
	c.x = c.a
	c.setZN(c.x)
}

func (c *CPU) tay(addr uint16, mode addressingMode) {
	c.y = c.a
	c.setZN(c.y)
}

func (c *CPU) txa(addr uint16, mode addressingMode) {
	c.a = c.x
	c.setZN(c.a)
}

func (c *CPU) tya(addr uint16, mode addressingMode) {
	c.a = c.y
	c.setZN(c.a)
}

func (c *CPU) tsx(addr uint16, mode addressingMode) {
	c.x = c.sp
	c.setZN(c.x)
}

func (c *CPU) txs(addr uint16, mode addressingMode) {
	c.sp = c.x
}

// --- Stack ---

func (c *CPU) pha(addr uint16, mode addressingMode) {
	c.push(c.a)
}

func (c *CPU) php(addr uint16, mode addressingMode) {
	// PHP pushes the status byte with B and U both set.
	c.push(c.getFlags() | 0x30)
}

func (c *CPU) pla(addr uint16, mode addressingMode) {
	c.a = c.pull()
	c.setZN(c.a)
}

func (c *CPU) plp(addr uint16, mode addressingMode) {
	// PLP restores all flags except B, and forces U set.
	c.setFlags(c.pull())
}

// --- Logical ---

func (c *CPU) and(addr uint16, mode addressingMode) {
	c.a &= c.bus.read(addr)
	c.setZN(c.a)
}

func (c *CPU) ora(addr uint16, mode addressingMode) {
	c.a |= c.bus.read(addr)
	c.setZN(c.a)
}

func (c *CPU) eor(addr uint16, mode addressingMode) {
	c.a ^= c.bus.read(addr)
	c.setZN(c.a)
}

// --- Arithmetic ---

// addWithCarry implements ADC's 8-bit add-with-carry-in, setting C, Z, N,
// and V (signed overflow).
func (c *CPU) addWithCarry(operand byte) {
	carryIn := uint16(0)
	if c.c {
		carryIn = 1
	}
	a := c.a
	sum := uint16(a) + uint16(operand) + carryIn
	result := byte(sum)
	c.c = sum > 0xFF
	c.v = (a^result)&(operand^result)&0x80 != 0
	c.a = result
	c.setZN(c.a)
}

func (c *CPU) adc(addr uint16, mode addressingMode) {
	c.addWithCarry(c.bus.read(addr))
}

func (c *CPU) sbc(addr uint16, mode addressingMode) {
	// SBC is ADC with the operand's ones' complement.
	c.addWithCarry(^c.bus.read(addr))
}

// --- Compare ---

func (c *CPU) compare(reg, operand byte) {
	result := reg - operand
	c.c = reg >= operand
	c.setZN(result)
}

func (c *CPU) cmp(addr uint16, mode addressingMode) {
	c.compare(c.a, c.bus.read(addr))
}

func (c *CPU) cpx(addr uint16, mode addressingMode) {
	c.compare(c.x, c.bus.read(addr))
}

func (c *CPU) cpy(addr uint16, mode addressingMode) {
	c.compare(c.y, c.bus.read(addr))
}

// --- Increment/Decrement ---

func (c *CPU) inc(addr uint16, mode addressingMode) {
	v := c.bus.read(addr) + 1
	c.bus.write(addr, v)
	c.setZN(v)
}

func (c *CPU) dec(addr uint16, mode addressingMode) {
	v := c.bus.read(addr) - 1
	c.bus.write(addr, v)
	c.setZN(v)
}

func (c *CPU) inx(addr uint16, mode addressingMode) {
	c.x++
	c.setZN(c.x)
}

func (c *CPU) iny(addr uint16, mode addressingMode) {
	c.y++
	c.setZN(c.y)
}

func (c *CPU) dex(addr uint16, mode addressingMode) {
	c.x--
	c.setZN(c.x)
}

func (c *CPU) dey(addr uint16, mode addressingMode) {
	c.y--
	c.setZN(c.y)
}

// --- Shift/Rotate ---

func (c *CPU) asl(addr uint16, mode addressingMode) {
	if mode == accumulator {
		c.c = c.a&0x80 != 0
		c.a <<= 1
		c.setZN(c.a)
		return
	}
	v := c.bus.read(addr)
	c.c = v&0x80 != 0
	v <<= 1
	c.bus.write(addr, v)
	c.setZN(v)
}

func (c *CPU) lsr(addr uint16, mode addressingMode) {
	if mode == accumulator {
		c.c = c.a&0x01 != 0
		c.a >>= 1
		c.setZN(c.a)
		return
	}
	v := c.bus.read(addr)
	c.c = v&0x01 != 0
	v >>= 1
	c.bus.write(addr, v)
	c.setZN(v)
}

func (c *CPU) rol(addr uint16, mode addressingMode) {
	var carryIn byte
	if c.c {
		carryIn = 1
	}
	if mode == accumulator {
		c.c = c.a&0x80 != 0
		c.a = (c.a << 1) | carryIn
		c.setZN(c.a)
		return
	}
	v := c.bus.read(addr)
	c.c = v&0x80 != 0
	v = (v << 1) | carryIn
	c.bus.write(addr, v)
	c.setZN(v)
}

func (c *CPU) ror(addr uint16, mode addressingMode) {
	var carryIn byte
	if c.c {
		carryIn = 0x80
	}
	if mode == accumulator {
		c.c = c.a&0x01 != 0
		c.a = (c.a >> 1) | carryIn
		c.setZN(c.a)
		return
	}
	v := c.bus.read(addr)
	c.c = v&0x01 != 0
	v = (v >> 1) | carryIn
	c.bus.write(addr, v)
	c.setZN(v)
}

// --- Branches ---
// Each branch opcode reports whether it was taken; tick() uses that to
// add the taken/page-cross cycle penalties.

func (c *CPU) branch(take bool, addr uint16) bool {
	if take {
		c.pc = addr
	}
	return take
}

func (c *CPU) bcc(addr uint16, mode addressingMode) bool { return c.branch(!c.c, addr) }
func (c *CPU) bcs(addr uint16, mode addressingMode) bool { return c.branch(c.c, addr) }
func (c *CPU) beq(addr uint16, mode addressingMode) bool { return c.branch(c.z, addr) }
func (c *CPU) bne(addr uint16, mode addressingMode) bool { return c.branch(!c.z, addr) }
func (c *CPU) bmi(addr uint16, mode addressingMode) bool { return c.branch(c.n, addr) }
func (c *CPU) bpl(addr uint16, mode addressingMode) bool { return c.branch(!c.n, addr) }
func (c *CPU) bvc(addr uint16, mode addressingMode) bool { return c.branch(!c.v, addr) }
func (c *CPU) bvs(addr uint16, mode addressingMode) bool { return c.branch(c.v, addr) }

// --- Jumps/Subroutine ---

func (c *CPU) jmp(addr uint16, mode addressingMode) {
	c.pc = addr
}

func (c *CPU) jsr(addr uint16, mode addressingMode) {
	c.push16(c.pc - 1)
	c.pc = addr
}

func (c *CPU) rts(addr uint16, mode addressingMode) {
	c.pc = c.pull16() + 1
}

func (c *CPU) rti(addr uint16, mode addressingMode) {
	c.setFlags(c.pull())
	c.pc = c.pull16()
}

// --- Flags ---

func (c *CPU) clc(addr uint16, mode addressingMode) { c.c = false }
func (c *CPU) sec(addr uint16, mode addressingMode) { c.c = true }
func (c *CPU) cli(addr uint16, mode addressingMode) { c.i = false }
func (c *CPU) sei(addr uint16, mode addressingMode) { c.i = true }
func (c *CPU) cld(addr uint16, mode addressingMode) { c.d = false }
func (c *CPU) sed(addr uint16, mode addressingMode) { c.d = true }
func (c *CPU) clv(addr uint16, mode addressingMode) { c.v = false }

// --- Misc ---

func (c *CPU) bit(addr uint16, mode addressingMode) {
	v := c.bus.read(addr)
	c.z = c.a&v == 0
	c.n = v&0x80 != 0
	c.v = v&0x40 != 0
}

func (c *CPU) nop(addr uint16, mode addressingMode) {}

func (c *CPU) brk(addr uint16, mode addressingMode) {
	c.push16(c.pc + 1)
	c.push(c.getFlags() | 0x30)
	c.i = true
	c.pc = c.bus.read16(vectorIRQ)
}
