// m68k_test_helpers_test.go - Shared table-driven harness for the 68000 tests

package main

import (
	"testing"
)

const (
	testProgramBase = 0x001000
	testStackTop    = 0x008000
)

// FlagExpectation checks condition codes; -1 means don't care.
type FlagExpectation struct {
	N, Z, V, C, X int8
}

func FlagsNone() FlagExpectation {
	return FlagExpectation{N: -1, Z: -1, V: -1, C: -1, X: -1}
}

func FlagsNZVC(n, z, v, c int8) FlagExpectation {
	return FlagExpectation{N: n, Z: z, V: v, C: c, X: -1}
}

func FlagsAll(n, z, v, c, x int8) FlagExpectation {
	return FlagExpectation{N: n, Z: z, V: v, C: c, X: x}
}

// MemoryExpectation checks one memory cell after execution.
type MemoryExpectation struct {
	Address uint32
	Size    int
	Value   uint32
}

// Reg builds an expected-register map inline.
func Reg(pairs ...interface{}) map[string]uint32 {
	m := make(map[string]uint32)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i].(string)] = toUint32(pairs[i+1])
	}
	return m
}

func toUint32(v interface{}) uint32 {
	switch x := v.(type) {
	case int:
		return uint32(x)
	case uint32:
		return x
	}
	panic("Reg: unsupported value type")
}

type M68KTestCase struct {
	Name string

	Setup    func(cpu *M68KCPU, mem *MachineBanks)
	DataRegs [8]uint32
	AddrRegs [8]uint32
	SR       uint16 // 0 = default (supervisor, interrupts masked)

	InitialMem map[uint32]uint16 // word writes before execution

	Opcodes []uint16 // opcode plus extension words

	Steps int // instructions to run; 0 = 1

	ExpectedRegs  map[string]uint32
	ExpectedMem   []MemoryExpectation
	ExpectedFlags FlagExpectation
	ExpectedPC    uint32 // 0 = don't check
}

// setupTestCPU builds a CPU over two RAM banks: bank 0 holds the vector
// table and the program, bank 1 is scratch.
func setupTestCPU() (*M68KCPU, *MachineBanks) {
	mem := NewMachineBanks()
	mem.MapBacking(0x0, make([]byte, 0x100000), 0xFFFFF)
	mem.MapBacking(0x1, make([]byte, 0x100000), 0xFFFFF)

	mem.Write32(0, testStackTop)
	mem.Write32(4, testProgramBase)

	cpu := NewM68KCPU(mem)
	cpu.PulseReset()
	return cpu, mem
}

// stepOne executes a single instruction: a one-cycle budget runs exactly
// one step before the loop re-checks the budget, and any fault the
// instruction parked is consumed straight away.
func stepOne(cpu *M68KCPU) {
	cpu.Execute(1)
	cpu.ConsumePendingException()
}

func RunM68KTests(t *testing.T, tests []M68KTestCase) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			cpu, mem := setupTestCPU()
			runSingleM68KTest(t, cpu, mem, tc)
		})
	}
}

func runSingleM68KTest(t *testing.T, cpu *M68KCPU, mem *MachineBanks, tc M68KTestCase) {
	t.Helper()

	if tc.Setup != nil {
		tc.Setup(cpu, mem)
	}

	cpu.DataRegs = tc.DataRegs
	for i, v := range tc.AddrRegs {
		if v != 0 {
			cpu.AddrRegs[i] = v
		}
	}
	if tc.SR != 0 {
		cpu.setSR(tc.SR)
	}

	for addr, val := range tc.InitialMem {
		mem.Write16(addr, val)
	}

	for i, op := range tc.Opcodes {
		mem.Write16(testProgramBase+uint32(i*2), op)
	}
	cpu.PC = testProgramBase
	cpu.prefetchValid = false

	steps := tc.Steps
	if steps == 0 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		stepOne(cpu)
	}

	for name, want := range tc.ExpectedRegs {
		var got uint32
		switch name[0] {
		case 'D':
			got = cpu.DataRegs[name[1]-'0']
		case 'A':
			got = cpu.AddrRegs[name[1]-'0']
		}
		if got != want {
			t.Errorf("%s = %08X, want %08X", name, got, want)
		}
	}

	for _, me := range tc.ExpectedMem {
		var got uint32
		switch me.Size {
		case 1:
			got = uint32(mem.Read8(me.Address))
		case 2:
			got = uint32(mem.Read16(me.Address))
		default:
			got = mem.Read32(me.Address)
		}
		if got != me.Value {
			t.Errorf("mem[%06X] = %X, want %X", me.Address, got, me.Value)
		}
	}

	checkFlag := func(name string, mask uint16, want int8) {
		if want < 0 {
			return
		}
		got := int8(0)
		if cpu.SR&mask != 0 {
			got = 1
		}
		if got != want {
			t.Errorf("flag %s = %d, want %d (SR=%04X)", name, got, want, cpu.SR)
		}
	}
	checkFlag("N", M68K_SR_N, tc.ExpectedFlags.N)
	checkFlag("Z", M68K_SR_Z, tc.ExpectedFlags.Z)
	checkFlag("V", M68K_SR_V, tc.ExpectedFlags.V)
	checkFlag("C", M68K_SR_C, tc.ExpectedFlags.C)
	checkFlag("X", M68K_SR_X, tc.ExpectedFlags.X)

	if tc.ExpectedPC != 0 && cpu.PC != tc.ExpectedPC {
		t.Errorf("PC = %06X, want %06X", cpu.PC, tc.ExpectedPC)
	}
}
