package nes

// instruction is one entry of the 256-slot dispatch table: the decoded
// shape of a single opcode byte. Exactly one of exec/branchExec is set,
// matching whether the mnemonic is a conditional branch.
type instruction struct {
	mnemonic      string
	mode          addressingMode
	size          uint16
	cycles        int
	pageCrossAdds bool // resolver's page-cross penalty is charged at retirement
	exec          func(*CPU, uint16, addressingMode)
	branchExec    func(*CPU, uint16, addressingMode) bool
}

// unofficial decodes any opcode byte this core doesn't implement as a
// tolerant 1-byte, 2-cycle no-op rather than panicking.
func unofficial() instruction {
	return instruction{mnemonic: "", mode: implied, size: 1, cycles: 2, exec: (*CPU).nop}
}

// op builds a non-branch table entry.
func op(mnemonic string, mode addressingMode, size uint16, cycles int, pageCrossAdds bool, fn func(*CPU, uint16, addressingMode)) instruction {
	return instruction{mnemonic: mnemonic, mode: mode, size: size, cycles: cycles, pageCrossAdds: pageCrossAdds, exec: fn}
}

// branchOp builds a branch table entry.
func branchOp(mnemonic string, fn func(*CPU, uint16, addressingMode) bool) instruction {
	return instruction{mnemonic: mnemonic, mode: relative, size: 2, cycles: 2, branchExec: fn}
}

// buildInstructionTable returns the 256-entry opcode dispatch table,
// bit-exact to the published 6502 reference for all 151 legal opcodes.
// Unmapped slots decode as a tolerant NOP.
func buildInstructionTable() [256]instruction {
	var t [256]instruction
	for i := range t {
		t[i] = unofficial()
	}

	t[0x00] = op("BRK", implied, 1, 7, false, (*CPU).brk)
	t[0x01] = op("ORA", indirectX, 2, 6, false, (*CPU).ora)
	t[0x05] = op("ORA", zeroPage, 2, 3, false, (*CPU).ora)
	t[0x06] = op("ASL", zeroPage, 2, 5, false, (*CPU).asl)
	t[0x08] = op("PHP", implied, 1, 3, false, (*CPU).php)
	t[0x09] = op("ORA", immediate, 2, 2, false, (*CPU).ora)
	t[0x0A] = op("ASL", accumulator, 1, 2, false, (*CPU).asl)
	t[0x0D] = op("ORA", absolute, 3, 4, false, (*CPU).ora)
	t[0x0E] = op("ASL", absolute, 3, 6, false, (*CPU).asl)

	t[0x10] = branchOp("BPL", (*CPU).bpl)
	t[0x11] = op("ORA", indirectY, 2, 5, true, (*CPU).ora)
	t[0x15] = op("ORA", zeroPageX, 2, 4, false, (*CPU).ora)
	t[0x16] = op("ASL", zeroPageX, 2, 6, false, (*CPU).asl)
	t[0x18] = op("CLC", implied, 1, 2, false, (*CPU).clc)
	t[0x19] = op("ORA", absoluteY, 3, 4, true, (*CPU).ora)
	t[0x1D] = op("ORA", absoluteX, 3, 4, true, (*CPU).ora)
	t[0x1E] = op("ASL", absoluteX, 3, 7, false, (*CPU).asl)

	t[0x20] = op("JSR", absolute, 3, 6, false, (*CPU).jsr)
	t[0x21] = op("AND", indirectX, 2, 6, false, (*CPU).and)
	t[0x24] = op("BIT", zeroPage, 2, 3, false, (*CPU).bit)
	t[0x25] = op("AND", zeroPage, 2, 3, false, (*CPU).and)
	t[0x26] = op("ROL", zeroPage, 2, 5, false, (*CPU).rol)
	t[0x28] = op("PLP", implied, 1, 4, false, (*CPU).plp)
	t[0x29] = op("AND", immediate, 2, 2, false, (*CPU).and)
	t[0x2A] = op("ROL", accumulator, 1, 2, false, (*CPU).rol)
	t[0x2C] = op("BIT", absolute, 3, 4, false, (*CPU).bit)
	t[0x2D] = op("AND", absolute, 3, 4, false, (*CPU).and)
	t[0x2E] = op("ROL", absolute, 3, 6, false, (*CPU).rol)

	t[0x30] = branchOp("BMI", (*CPU).bmi)
	t[0x31] = op("AND", indirectY, 2, 5, true, (*CPU).and)
	t[0x35] = op("AND", zeroPageX, 2, 4, false, (*CPU).and)
	t[0x36] = op("ROL", zeroPageX, 2, 6, false, (*CPU).rol)
	t[0x38] = op("SEC", implied, 1, 2, false, (*CPU).sec)
	t[0x39] = op("AND", absoluteY, 3, 4, true, (*CPU).and)
	t[0x3D] = op("AND", absoluteX, 3, 4, true, (*CPU).and)
	t[0x3E] = op("ROL", absoluteX, 3, 7, false, (*CPU).rol)

	t[0x40] = op("RTI", implied, 1, 6, false, (*CPU).rti)
	t[0x41] = op("EOR", indirectX, 2, 6, false, (*CPU).eor)
	t[0x45] = op("EOR", zeroPage, 2, 3, false, (*CPU).eor)
	t[0x46] = op("LSR", zeroPage, 2, 5, false, (*CPU).lsr)
	t[0x48] = op("PHA", implied, 1, 3, false, (*CPU).pha)
	t[0x49] = op("EOR", immediate, 2, 2, false, (*CPU).eor)
	t[0x4A] = op("LSR", accumulator, 1, 2, false, (*CPU).lsr)
	t[0x4C] = op("JMP", absolute, 3, 3, false, (*CPU).jmp)
	t[0x4D] = op("EOR", absolute, 3, 4, false, (*CPU).eor)
	t[0x4E] = op("LSR", absolute, 3, 6, false, (*CPU).lsr)

	t[0x50] = branchOp("BVC", (*CPU).bvc)
	t[0x51] = op("EOR", indirectY, 2, 5, true, (*CPU).eor)
	t[0x55] = op("EOR", zeroPageX, 2, 4, false, (*CPU).eor)
	t[0x56] = op("LSR", zeroPageX, 2, 6, false, (*CPU).lsr)
	t[0x58] = op("CLI", implied, 1, 2, false, (*CPU).cli)
	t[0x59] = op("EOR", absoluteY, 3, 4, true, (*CPU).eor)
	t[0x5D] = op("EOR", absoluteX, 3, 4, true, (*CPU).eor)
	t[0x5E] = op("LSR", absoluteX, 3, 7, false, (*CPU).lsr)

	t[0x60] = op("RTS", implied, 1, 6, false, (*CPU).rts)
	t[0x61] = op("ADC", indirectX, 2, 6, false, (*CPU).adc)
	t[0x65] = op("ADC", zeroPage, 2, 3, false, (*CPU).adc)
	t[0x66] = op("ROR", zeroPage, 2, 5, false, (*CPU).ror)
	t[0x68] = op("PLA", implied, 1, 4, false, (*CPU).pla)
	t[0x69] = op("ADC", immediate, 2, 2, false, (*CPU).adc)
	t[0x6A] = op("ROR", accumulator, 1, 2, false, (*CPU).ror)
	t[0x6C] = op("JMP", indirect, 3, 5, false, (*CPU).jmp)
	t[0x6D] = op("ADC", absolute, 3, 4, false, (*CPU).adc)
	t[0x6E] = op("ROR", absolute, 3, 6, false, (*CPU).ror)

	t[0x70] = branchOp("BVS", (*CPU).bvs)
	t[0x71] = op("ADC", indirectY, 2, 5, true, (*CPU).adc)
	t[0x75] = op("ADC", zeroPageX, 2, 4, false, (*CPU).adc)
	t[0x76] = op("ROR", zeroPageX, 2, 6, false, (*CPU).ror)
	t[0x78] = op("SEI", implied, 1, 2, false, (*CPU).sei)
	t[0x79] = op("ADC", absoluteY, 3, 4, true, (*CPU).adc)
	t[0x7D] = op("ADC", absoluteX, 3, 4, true, (*CPU).adc)
	t[0x7E] = op("ROR", absoluteX, 3, 7, false, (*CPU).ror)

	t[0x81] = op("STA", indirectX, 2, 6, false, (*CPU).sta)
	t[0x84] = op("STY", zeroPage, 2, 3, false, (*CPU).sty)
	t[0x85] = op("STA", zeroPage, 2, 3, false, (*CPU).sta)
	t[0x86] = op("STX", zeroPage, 2, 3, false, (*CPU).stx)
	t[0x88] = op("DEY", implied, 1, 2, false, (*CPU).dey)
	t[0x8A] = op("TXA", implied, 1, 2, false, (*CPU).txa)
	t[0x8C] = op("STY", absolute, 3, 4, false, (*CPU).sty)
	t[0x8D] = op("STA", absolute, 3, 4, false, (*CPU).sta)
	t[0x8E] = op("STX", absolute, 3, 4, false, (*CPU).stx)

	t[0x90] = branchOp("BCC", (*CPU).bcc)
	t[0x91] = op("STA", indirectY, 2, 6, false, (*CPU).sta)
	t[0x94] = op("STY", zeroPageX, 2, 4, false, (*CPU).sty)
	t[0x95] = op("STA", zeroPageX, 2, 4, false, (*CPU).sta)
	t[0x96] = op("STX", zeroPageY, 2, 4, false, (*CPU).stx)
	t[0x98] = op("TYA", implied, 1, 2, false, (*CPU).tya)
	t[0x99] = op("STA", absoluteY, 3, 5, false, (*CPU).sta)
	t[0x9A] = op("TXS", implied, 1, 2, false, (*CPU).txs)
	t[0x9D] = op("STA", absoluteX, 3, 5, false, (*CPU).sta)

	t[0xA0] = op("LDY", immediate, 2, 2, false, (*CPU).ldy)
	t[0xA1] = op("LDA", indirectX, 2, 6, false, (*CPU).lda)
	t[0xA2] = op("LDX", immediate, 2, 2, false, (*CPU).ldx)
	t[0xA4] = op("LDY", zeroPage, 2, 3, false, (*CPU).ldy)
	t[0xA5] = op("LDA", zeroPage, 2, 3, false, (*CPU).lda)
	t[0xA6] = op("LDX", zeroPage, 2, 3, false, (*CPU).ldx)
	t[0xA8] = op("TAY", implied, 1, 2, false, (*CPU).tay)
	t[0xA9] = op("LDA", immediate, 2, 2, false, (*CPU).lda)
	t[0xAA] = op("TAX", implied, 1, 2, false, (*CPU).tax)
	t[0xAC] = op("LDY", absolute, 3, 4, false, (*CPU).ldy)
	t[0xAD] = op("LDA", absolute, 3, 4, false, (*CPU).lda)
	t[0xAE] = op("LDX", absolute, 3, 4, false, (*CPU).ldx)

	t[0xB0] = branchOp("BCS", (*CPU).bcs)
	t[0xB1] = op("LDA", indirectY, 2, 5, true, (*CPU).lda)
	t[0xB4] = op("LDY", zeroPageX, 2, 4, false, (*CPU).ldy)
	t[0xB5] = op("LDA", zeroPageX, 2, 4, false, (*CPU).lda)
	t[0xB6] = op("LDX", zeroPageY, 2, 4, false, (*CPU).ldx)
	t[0xB8] = op("CLV", implied, 1, 2, false, (*CPU).clv)
	t[0xB9] = op("LDA", absoluteY, 3, 4, true, (*CPU).lda)
	t[0xBA] = op("TSX", implied, 1, 2, false, (*CPU).tsx)
	t[0xBC] = op("LDY", absoluteX, 3, 4, true, (*CPU).ldy)
	t[0xBD] = op("LDA", absoluteX, 3, 4, true, (*CPU).lda)
	t[0xBE] = op("LDX", absoluteY, 3, 4, true, (*CPU).ldx)

	t[0xC0] = op("CPY", immediate, 2, 2, false, (*CPU).cpy)
	t[0xC1] = op("CMP", indirectX, 2, 6, false, (*CPU).cmp)
	t[0xC4] = op("CPY", zeroPage, 2, 3, false, (*CPU).cpy)
	t[0xC5] = op("CMP", zeroPage, 2, 3, false, (*CPU).cmp)
	t[0xC6] = op("DEC", zeroPage, 2, 5, false, (*CPU).dec)
	t[0xC8] = op("INY", implied, 1, 2, false, (*CPU).iny)
	t[0xC9] = op("CMP", immediate, 2, 2, false, (*CPU).cmp)
	t[0xCA] = op("DEX", implied, 1, 2, false, (*CPU).dex)
	t[0xCC] = op("CPY", absolute, 3, 4, false, (*CPU).cpy)
	t[0xCD] = op("CMP", absolute, 3, 4, false, (*CPU).cmp)
	t[0xCE] = op("DEC", absolute, 3, 6, false, (*CPU).dec)

	t[0xD0] = branchOp("BNE", (*CPU).bne)
	t[0xD1] = op("CMP", indirectY, 2, 5, true, (*CPU).cmp)
	t[0xD5] = op("CMP", zeroPageX, 2, 4, false, (*CPU).cmp)
	t[0xD6] = op("DEC", zeroPageX, 2, 6, false, (*CPU).dec)
	t[0xD8] = op("CLD", implied, 1, 2, false, (*CPU).cld)
	t[0xD9] = op("CMP", absoluteY, 3, 4, true, (*CPU).cmp)
	t[0xDD] = op("CMP", absoluteX, 3, 4, true, (*CPU).cmp)
	t[0xDE] = op("DEC", absoluteX, 3, 7, false, (*CPU).dec)

	t[0xE0] = op("CPX", immediate, 2, 2, false, (*CPU).cpx)
	t[0xE1] = op("SBC", indirectX, 2, 6, false, (*CPU).sbc)
	t[0xE4] = op("CPX", zeroPage, 2, 3, false, (*CPU).cpx)
	t[0xE5] = op("SBC", zeroPage, 2, 3, false, (*CPU).sbc)
	t[0xE6] = op("INC", zeroPage, 2, 5, false, (*CPU).inc)
	t[0xE8] = op("INX", implied, 1, 2, false, (*CPU).inx)
	t[0xE9] = op("SBC", immediate, 2, 2, false, (*CPU).sbc)
	t[0xEA] = op("NOP", implied, 1, 2, false, (*CPU).nop)
	t[0xEC] = op("CPX", absolute, 3, 4, false, (*CPU).cpx)
	t[0xED] = op("SBC", absolute, 3, 4, false, (*CPU).sbc)
	t[0xEE] = op("INC", absolute, 3, 6, false, (*CPU).inc)

	t[0xF0] = branchOp("BEQ", (*CPU).beq)
	t[0xF1] = op("SBC", indirectY, 2, 5, true, (*CPU).sbc)
	t[0xF5] = op("SBC", zeroPageX, 2, 4, false, (*CPU).sbc)
	t[0xF6] = op("INC", zeroPageX, 2, 6, false, (*CPU).inc)
	t[0xF8] = op("SED", implied, 1, 2, false, (*CPU).sed)
	t[0xF9] = op("SBC", absoluteY, 3, 4, true, (*CPU).sbc)
	t[0xFD] = op("SBC", absoluteX, 3, 4, true, (*CPU).sbc)
	t[0xFE] = op("INC", absoluteX, 3, 7, false, (*CPU).inc)

	return t
}
