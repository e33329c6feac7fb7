// hle_dispatch_test.go - Perfect hash dispatch table tests

package main

import "testing"

func TestHLETableLookup(t *testing.T) {
	hit := func(cpu *M68KCPU) int32 { return 100 }

	entries := map[uint32]HLEFunc{
		0x001000: hit,
		0x002340: hit,
		0x00A2C8: hit,
		0x0F0000: hit,
	}
	table, err := BuildHLETable(entries)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for pc := range entries {
		if table.Lookup(pc) == nil {
			t.Errorf("entry point %06x missed", pc)
		}
	}
	for _, pc := range []uint32{0, 0x1002, 0x002342, 0xFFFFFE} {
		if table.Lookup(pc) != nil {
			t.Errorf("false hit at %06x", pc)
		}
	}
}

func TestHLETableEmpty(t *testing.T) {
	table, err := BuildHLETable(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if table.Lookup(0x1000) != nil {
		t.Errorf("empty table hit")
	}
}

func TestHLEDispatchRuns(t *testing.T) {
	cpu, mem := setupTestCPU()

	ran := false
	table, err := BuildHLETable(map[uint32]HLEFunc{
		0x002000: func(cpu *M68KCPU) int32 {
			ran = true
			// Behave like the translated function: return to the caller.
			cpu.PC = cpu.pop32()
			return 120
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cpu.SetHLETable(table)

	// JSR $2000.W; the translated body must run instead of guest code.
	mem.Write16(testProgramBase, 0x4EB8)
	mem.Write16(testProgramBase+2, 0x2000)
	cpu.PC = testProgramBase
	cpu.prefetchValid = false

	stepOne(cpu) // JSR
	stepOne(cpu) // HLE dispatch at the function entry

	if !ran {
		t.Fatalf("translated function did not run")
	}
	if cpu.PC != testProgramBase+4 {
		t.Errorf("PC = %06X after HLE return, want %06X", cpu.PC, testProgramBase+4)
	}
}
