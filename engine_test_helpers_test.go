// engine_test_helpers_test.go - Full-machine fixture over a synthetic cartridge

package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeTestCartridge lays out a minimal cartridge directory: vectors that
// land the CPU in a zero-filled program area (which decodes as a harmless
// ORI.B sled), patterned tile ROMs and a two-page banked ROM.
func writeTestCartridge(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, data []byte) {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	bios := make([]byte, BIOS_SIZE)
	// BIOS vectors differ from the cartridge's so aliasing is observable.
	binary.BigEndian.PutUint32(bios[0:], 0x0010FF00)
	binary.BigEndian.PutUint32(bios[4:], 0x00C00400)
	write("p.bios", bios)

	prom := make([]byte, 0x10000)
	binary.BigEndian.PutUint32(prom[0:], 0x0010F300) // SSP in work RAM
	binary.BigEndian.PutUint32(prom[4:], 0x00000100) // PC into the sled
	write("p.rom", prom)

	// Two 1MB pages of banked ROM with distinct marker bytes.
	brom := make([]byte, 2*PROM_MAX_SIZE)
	brom[0] = 0xAB
	brom[PROM_MAX_SIZE] = 0xCD
	write("b.rom", brom)

	// Fix tiles: tile n filled with colour n&0xF in both nibbles.
	srom := make([]byte, BIOS_SIZE)
	for tile := 0; tile < len(srom)/SROM_TILE_SIZE; tile++ {
		p := byte(tile&0xF)<<4 | byte(tile&0xF)
		for i := 0; i < SROM_TILE_SIZE; i++ {
			srom[tile*SROM_TILE_SIZE+i] = p
		}
	}
	write("s.bios", srom)
	write("s.rom", srom)

	// Sprite tiles, same scheme.
	crom := make([]byte, 64*CROM_TILE_SIZE)
	for tile := 0; tile < 64; tile++ {
		p := byte(tile&0xF)<<4 | byte(tile&0xF)
		for i := 0; i < CROM_TILE_SIZE; i++ {
			crom[tile*CROM_TILE_SIZE+i] = p
		}
	}
	write("c.rom", crom)

	write("game.ini", []byte("idle_skip=0x1234\n"))
	return dir
}

// newTestMachine boots a full engine over the synthetic cartridge on the
// headless platform.
func newTestMachine(t *testing.T) (*Engine, *HeadlessPlatform) {
	t.Helper()

	roms, err := LoadROMSet(writeTestCartridge(t))
	if err != nil {
		t.Fatalf("load rom set: %v", err)
	}
	t.Cleanup(roms.Close)

	plat := NewHeadlessPlatform()
	e := NewEngine(roms, plat)
	return e, plat
}

// guestPaletteWrite stores a colour through the palette handler bank.
func guestPaletteWrite(e *Engine, index uint32, value uint16) {
	e.mem.Write16(0x400000+index*2, value)
}
