// file_io.go - ROM file reading helpers for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// readROMFile reads a ROM image from the cartridge directory. A non-zero
// wantSize enforces the exact expected length (the BIOS files have fixed
// sizes; a truncated dump boots to garbage and is better caught here).
func readROMFile(dir, name string, wantSize int) ([]byte, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rom %s: %w", name, err)
	}
	if wantSize != 0 && len(data) != wantSize {
		return nil, fmt.Errorf("rom %s: got %d bytes, want %d", name, len(data), wantSize)
	}
	return data, nil
}

// byteswapWords swaps each 16-bit pair in place. The packaging tool
// normally emits big-endian word order, but raw vendor dumps come through
// here when testing against an unprocessed set.
func byteswapWords(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}
