// cpu_m68k_timing.go - Cycle cost tables for the 68000 interpreter

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

package main

// charge adds an instruction's base cycle cost. In approximate timing mode
// the whole instruction is charged a flat cost by the dispatcher instead,
// so the fine-grained charges are skipped.
func (cpu *M68KCPU) charge(n int32) {
	if !cpu.approxTiming {
		cpu.sliceCycles += n
	}
}

// eaFetchCycles is the classic 68000 effective-address calculation table.
// Rows: addressing mode (modes 0/1 are free, mode 7 expands by register).
// Columns: byte/word then long.
var eaFetchCycles = [8][2]int32{
	{0, 0},   // Dn
	{0, 0},   // An
	{4, 8},   // (An)
	{4, 8},   // (An)+
	{6, 10},  // -(An)
	{8, 12},  // (d16,An)
	{10, 14}, // (d8,An,Xn)
	{0, 0},   // mode 7, see below
}

var ea7FetchCycles = [5][2]int32{
	{8, 12},  // (xxx).W
	{12, 16}, // (xxx).L
	{8, 12},  // (d16,PC)
	{10, 14}, // (d8,PC,Xn)
	{4, 8},   // #imm
}

// chargeEA adds the operand fetch penalty for one effective address.
func (cpu *M68KCPU) chargeEA(mode, reg uint16, size int) {
	if cpu.approxTiming {
		return
	}
	col := 0
	if size == M68K_LONG_SIZE {
		col = 1
	}
	if mode == 7 {
		if reg <= 4 {
			cpu.sliceCycles += ea7FetchCycles[reg][col]
		}
		return
	}
	cpu.sliceCycles += eaFetchCycles[mode][col]
}

// chargeEAControl adds the address calculation penalty for control-flow
// addressing (LEA/PEA/JMP/JSR), which pays for the calculation but not for
// an operand transfer.
func (cpu *M68KCPU) chargeEAControl(mode, reg uint16) {
	if cpu.approxTiming {
		return
	}
	switch mode {
	case 2:
		cpu.sliceCycles += 0
	case 5:
		cpu.sliceCycles += 4
	case 6:
		cpu.sliceCycles += 6
	case 7:
		switch reg {
		case 0:
			cpu.sliceCycles += 4
		case 1:
			cpu.sliceCycles += 8
		case 2:
			cpu.sliceCycles += 4
		case 3:
			cpu.sliceCycles += 6
		}
	}
}

// m68kExcCycles charges exception entry per vector: the group-0 faults pay
// for the long frame, interrupts for the acknowledge cycle.
var m68kExcCycles = func() [48]int32 {
	var t [48]int32
	for i := range t {
		t[i] = 34
	}
	t[M68K_VEC_BUS_ERROR] = 50
	t[M68K_VEC_ADDR_ERROR] = 50
	t[M68K_VEC_ILLEGAL] = 34
	t[M68K_VEC_DIV_ZERO] = 38
	t[M68K_VEC_CHK] = 40
	t[M68K_VEC_TRAPV] = 34
	t[M68K_VEC_PRIVILEGE] = 34
	t[M68K_VEC_TRACE] = 34
	t[M68K_VEC_LINE_A] = 34
	t[M68K_VEC_LINE_F] = 34
	for l := 1; l <= 7; l++ {
		t[M68K_VEC_AUTOVECTOR+l] = 44
	}
	for v := M68K_VEC_TRAP_BASE; v < 48; v++ {
		t[v] = 38
	}
	return t
}()
