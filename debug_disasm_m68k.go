// debug_disasm_m68k.go - 68000 disassembler for the debug monitor

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
debug_disasm_m68k.go - Disassembler

A compact one-instruction disassembler for the monitor and for fatal
diagnostics. It reads through the decoder's side-effect-free peek path, so
disassembling ahead of the PC never triggers I/O. Most of what the
interpreter executes is covered; ABCD, SBCD, ADDX, SUBX and EXG print under
the and/or/add/sub mnemonic of their opcode group, MOVEP prints without its
displacement, and anything unrecognised prints as dc.w.
*/

package main

import "fmt"

var m68kSizeSuffix = [3]string{"b", "w", "l"}

var m68kCondNames = [16]string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
}

// disasmState streams extension words the same way the interpreter does.
type disasmState struct {
	mem *MachineBanks
	pc  uint32
}

func (d *disasmState) word() uint16 {
	w := d.mem.PeekRead16(d.pc)
	d.pc += 2
	return w
}

func (d *disasmState) long() uint32 {
	hi := uint32(d.word())
	return hi<<16 | uint32(d.word())
}

// ea formats one effective address field.
func (d *disasmState) ea(mode, reg uint16, size int) string {
	switch mode {
	case 0:
		return fmt.Sprintf("d%d", reg)
	case 1:
		return fmt.Sprintf("a%d", reg)
	case 2:
		return fmt.Sprintf("(a%d)", reg)
	case 3:
		return fmt.Sprintf("(a%d)+", reg)
	case 4:
		return fmt.Sprintf("-(a%d)", reg)
	case 5:
		return fmt.Sprintf("$%x(a%d)", int16(d.word()), reg)
	case 6:
		ext := d.word()
		idx := "d"
		if ext&0x8000 != 0 {
			idx = "a"
		}
		sz := "w"
		if ext&0x0800 != 0 {
			sz = "l"
		}
		return fmt.Sprintf("$%x(a%d,%s%d.%s)", int8(ext), reg, idx, (ext>>12)&7, sz)
	case 7:
		switch reg {
		case 0:
			return fmt.Sprintf("$%x.w", d.word())
		case 1:
			return fmt.Sprintf("$%x.l", d.long())
		case 2:
			base := d.pc
			return fmt.Sprintf("$%x(pc)", base+uint32(int32(int16(d.word()))))
		case 3:
			ext := d.word()
			return fmt.Sprintf("$%x(pc,x%d)", int8(ext), (ext>>12)&7)
		case 4:
			if size == M68K_LONG_SIZE {
				return fmt.Sprintf("#$%x", d.long())
			}
			return fmt.Sprintf("#$%x", d.word())
		}
	}
	return "?"
}

// DisassembleM68K renders the instruction at pc and returns its text and
// length in bytes.
func DisassembleM68K(mem *MachineBanks, pc uint32) (string, uint32) {
	d := &disasmState{mem: mem, pc: pc}
	op := d.word()
	text := d.decode(op)
	return text, d.pc - pc
}

func (d *disasmState) decode(op uint16) string {
	szBits := (op >> 6) & 3
	size := M68K_WORD_SIZE
	if szBits == 0 {
		size = M68K_BYTE_SIZE
	} else if szBits == 2 {
		size = M68K_LONG_SIZE
	}
	mode := (op >> 3) & 7
	reg := op & 7

	switch op >> 12 {
	case 0x0:
		if op&0x0100 != 0 {
			if mode == 1 {
				return fmt.Sprintf("movep.? d%d", (op>>9)&7)
			}
			ops := [4]string{"btst", "bchg", "bclr", "bset"}
			return fmt.Sprintf("%s d%d,%s", ops[(op>>6)&3], (op>>9)&7, d.ea(mode, reg, M68K_BYTE_SIZE))
		}
		switch op {
		case 0x003C, 0x007C, 0x023C, 0x027C, 0x0A3C, 0x0A7C:
			ops := map[uint16]string{0x003C: "ori.b #,ccr", 0x007C: "ori.w #,sr",
				0x023C: "andi.b #,ccr", 0x027C: "andi.w #,sr",
				0x0A3C: "eori.b #,ccr", 0x0A7C: "eori.w #,sr"}
			d.word()
			return ops[op]
		}
		if (op>>9)&7 == 4 {
			ops := [4]string{"btst", "bchg", "bclr", "bset"}
			bit := d.word() & 0xFF
			return fmt.Sprintf("%s #%d,%s", ops[(op>>6)&3], bit, d.ea(mode, reg, M68K_BYTE_SIZE))
		}
		ops := [8]string{"ori", "andi", "subi", "addi", "", "eori", "cmpi", ""}
		name := ops[(op>>9)&7]
		if name == "" || szBits == 3 {
			return fmt.Sprintf("dc.w $%04x", op)
		}
		imm := d.ea(7, 4, size)
		return fmt.Sprintf("%s.%s %s,%s", name, m68kSizeSuffix[szBits], imm, d.ea(mode, reg, size))
	case 0x1, 0x2, 0x3:
		msz := map[uint16]int{1: M68K_BYTE_SIZE, 2: M68K_LONG_SIZE, 3: M68K_WORD_SIZE}[op>>12]
		src := d.ea(mode, reg, msz)
		dstMode := (op >> 6) & 7
		dstReg := (op >> 9) & 7
		if dstMode == 1 {
			return fmt.Sprintf("movea %s,a%d", src, dstReg)
		}
		return fmt.Sprintf("move %s,%s", src, d.ea(dstMode, dstReg, msz))
	case 0x4:
		switch {
		case op == 0x4E70:
			return "reset"
		case op == 0x4E71:
			return "nop"
		case op == 0x4E72:
			return fmt.Sprintf("stop #$%04x", d.word())
		case op == 0x4E73:
			return "rte"
		case op == 0x4E75:
			return "rts"
		case op == 0x4E76:
			return "trapv"
		case op == 0x4E77:
			return "rtr"
		case op&0xFFF0 == 0x4E40:
			return fmt.Sprintf("trap #%d", op&0xF)
		case op&0xFFF8 == 0x4E50:
			return fmt.Sprintf("link a%d,#%d", reg, int16(d.word()))
		case op&0xFFF8 == 0x4E58:
			return fmt.Sprintf("unlk a%d", reg)
		case op&0xFFF8 == 0x4E60:
			return fmt.Sprintf("move a%d,usp", reg)
		case op&0xFFF8 == 0x4E68:
			return fmt.Sprintf("move usp,a%d", reg)
		case op&0xFFC0 == 0x4E80:
			return fmt.Sprintf("jsr %s", d.ea(mode, reg, M68K_WORD_SIZE))
		case op&0xFFC0 == 0x4EC0:
			return fmt.Sprintf("jmp %s", d.ea(mode, reg, M68K_WORD_SIZE))
		case op&0xFFC0 == 0x40C0:
			return fmt.Sprintf("move sr,%s", d.ea(mode, reg, M68K_WORD_SIZE))
		case op&0xFFC0 == 0x44C0:
			return fmt.Sprintf("move %s,ccr", d.ea(mode, reg, M68K_WORD_SIZE))
		case op&0xFFC0 == 0x46C0:
			return fmt.Sprintf("move %s,sr", d.ea(mode, reg, M68K_WORD_SIZE))
		case op&0xFFB8 == 0x4880 && mode == 0:
			if op&0x0040 == 0 {
				return fmt.Sprintf("ext.w d%d", reg)
			}
			return fmt.Sprintf("ext.l d%d", reg)
		case op&0xFFF8 == 0x4840:
			return fmt.Sprintf("swap d%d", reg)
		case op&0xFFC0 == 0x4840:
			return fmt.Sprintf("pea %s", d.ea(mode, reg, M68K_LONG_SIZE))
		case op&0xFFC0 == 0x4800:
			return fmt.Sprintf("nbcd %s", d.ea(mode, reg, M68K_BYTE_SIZE))
		case op&0xFB80 == 0x4880:
			mask := d.word()
			dir := "movem reg,"
			if op&0x0400 != 0 {
				dir = "movem mem,"
			}
			return fmt.Sprintf("%s%s mask=$%04x", dir, d.ea(mode, reg, size), mask)
		case op == 0x4AFC:
			return "illegal"
		case op&0xFFC0 == 0x4AC0:
			return fmt.Sprintf("tas %s", d.ea(mode, reg, M68K_BYTE_SIZE))
		case op&0xFF00 == 0x4A00:
			return fmt.Sprintf("tst.%s %s", m68kSizeSuffix[szBits], d.ea(mode, reg, size))
		case op&0xFF00 == 0x4000:
			return fmt.Sprintf("negx.%s %s", m68kSizeSuffix[szBits], d.ea(mode, reg, size))
		case op&0xFF00 == 0x4200:
			return fmt.Sprintf("clr.%s %s", m68kSizeSuffix[szBits], d.ea(mode, reg, size))
		case op&0xFF00 == 0x4400:
			return fmt.Sprintf("neg.%s %s", m68kSizeSuffix[szBits], d.ea(mode, reg, size))
		case op&0xFF00 == 0x4600:
			return fmt.Sprintf("not.%s %s", m68kSizeSuffix[szBits], d.ea(mode, reg, size))
		case op&0xF1C0 == 0x41C0:
			return fmt.Sprintf("lea %s,a%d", d.ea(mode, reg, M68K_LONG_SIZE), (op>>9)&7)
		case op&0xF1C0 == 0x4180:
			return fmt.Sprintf("chk %s,d%d", d.ea(mode, reg, M68K_WORD_SIZE), (op>>9)&7)
		}
		return fmt.Sprintf("dc.w $%04x", op)
	case 0x5:
		if szBits == 3 {
			if mode == 1 {
				disp := int32(int16(d.word()))
				return fmt.Sprintf("db%s d%d,$%x", m68kCondNames[(op>>8)&0xF], reg, d.pc-2+uint32(disp))
			}
			return fmt.Sprintf("s%s %s", m68kCondNames[(op>>8)&0xF], d.ea(mode, reg, M68K_BYTE_SIZE))
		}
		data := (op >> 9) & 7
		if data == 0 {
			data = 8
		}
		name := "addq"
		if op&0x0100 != 0 {
			name = "subq"
		}
		return fmt.Sprintf("%s.%s #%d,%s", name, m68kSizeSuffix[szBits], data, d.ea(mode, reg, size))
	case 0x6:
		cond := (op >> 8) & 0xF
		disp := int32(int8(op))
		base := d.pc
		if disp == 0 {
			disp = int32(int16(d.word()))
		}
		target := base + uint32(disp)
		switch cond {
		case 0:
			return fmt.Sprintf("bra $%x", target)
		case 1:
			return fmt.Sprintf("bsr $%x", target)
		}
		return fmt.Sprintf("b%s $%x", m68kCondNames[cond], target)
	case 0x7:
		return fmt.Sprintf("moveq #%d,d%d", int8(op), (op>>9)&7)
	case 0x8, 0xC:
		name := "or"
		if op>>12 == 0xC {
			name = "and"
		}
		opmode := (op >> 6) & 7
		dreg := (op >> 9) & 7
		switch opmode {
		case 3:
			if name == "or" {
				return fmt.Sprintf("divu %s,d%d", d.ea(mode, reg, M68K_WORD_SIZE), dreg)
			}
			return fmt.Sprintf("mulu %s,d%d", d.ea(mode, reg, M68K_WORD_SIZE), dreg)
		case 7:
			if name == "or" {
				return fmt.Sprintf("divs %s,d%d", d.ea(mode, reg, M68K_WORD_SIZE), dreg)
			}
			return fmt.Sprintf("muls %s,d%d", d.ea(mode, reg, M68K_WORD_SIZE), dreg)
		}
		if opmode&4 == 0 {
			return fmt.Sprintf("%s.%s %s,d%d", name, m68kSizeSuffix[opmode&3], d.ea(mode, reg, size), dreg)
		}
		return fmt.Sprintf("%s.%s d%d,%s", name, m68kSizeSuffix[opmode&3], dreg, d.ea(mode, reg, size))
	case 0x9, 0xD:
		name := "sub"
		if op>>12 == 0xD {
			name = "add"
		}
		opmode := (op >> 6) & 7
		dreg := (op >> 9) & 7
		if opmode == 3 || opmode == 7 {
			sz := "w"
			if opmode == 7 {
				sz = "l"
			}
			return fmt.Sprintf("%sa.%s %s,a%d", name, sz, d.ea(mode, reg, size), dreg)
		}
		if opmode&4 == 0 {
			return fmt.Sprintf("%s.%s %s,d%d", name, m68kSizeSuffix[opmode&3], d.ea(mode, reg, size), dreg)
		}
		return fmt.Sprintf("%s.%s d%d,%s", name, m68kSizeSuffix[opmode&3], dreg, d.ea(mode, reg, size))
	case 0xB:
		opmode := (op >> 6) & 7
		dreg := (op >> 9) & 7
		if opmode == 3 || opmode == 7 {
			return fmt.Sprintf("cmpa %s,a%d", d.ea(mode, reg, size), dreg)
		}
		if opmode >= 4 {
			if mode == 1 {
				return fmt.Sprintf("cmpm (a%d)+,(a%d)+", reg, dreg)
			}
			return fmt.Sprintf("eor.%s d%d,%s", m68kSizeSuffix[opmode&3], dreg, d.ea(mode, reg, size))
		}
		return fmt.Sprintf("cmp.%s %s,d%d", m68kSizeSuffix[opmode&3], d.ea(mode, reg, size), dreg)
	case 0xE:
		kinds := [4]string{"as", "ls", "rox", "ro"}
		dir := "r"
		if op&0x0100 != 0 {
			dir = "l"
		}
		if szBits == 3 {
			return fmt.Sprintf("%s%s %s", kinds[(op>>9)&3], dir, d.ea(mode, reg, M68K_WORD_SIZE))
		}
		kind := kinds[(op>>3)&3]
		if op&0x20 != 0 {
			return fmt.Sprintf("%s%s.%s d%d,d%d", kind, dir, m68kSizeSuffix[szBits], (op>>9)&7, reg)
		}
		count := (op >> 9) & 7
		if count == 0 {
			count = 8
		}
		return fmt.Sprintf("%s%s.%s #%d,d%d", kind, dir, m68kSizeSuffix[szBits], count, reg)
	case 0xA:
		return fmt.Sprintf("line-a $%03x", op&0xFFF)
	case 0xF:
		return fmt.Sprintf("line-f $%03x", op&0xFFF)
	}
	return fmt.Sprintf("dc.w $%04x", op)
}
