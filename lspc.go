// lspc.go - Line Sprite Processor register file for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
lspc.go - LSPC Registers

The LSPC owns video RAM behind an address/data/modulo register protocol:
the guest writes a 16-bit address (bit 15 selects the upper window of
per-sprite control words), then reads or writes a data register that
auto-increments the address by a signed 16-bit modulo. Increment wraps
within the selected window, preserving the window bit.

The mode register packs the auto-animation period (high byte), the
auto-animation disable bit (3) and the timer interrupt enable bit (4).
Reading the same address returns the beam position: the current
scanline, offset by 0xF8 the way the hardware counts, with the
auto-animation counter in the low bits.
*/

package main

// Upper-window addresses mirror every 0x800 cells into the 2K control
// region that exists on the board.
func vramIndex(addr uint16) uint32 {
	if addr&0x8000 == 0 {
		return uint32(addr)
	}
	return uint32(0x8000 | addr&0x7FF)
}

type LSPC struct {
	vramAddr uint16
	vramMod  uint16
	mode     uint16

	aaCounter uint8
	aaTick    uint8

	timerHigh uint16
	timerLow  uint16
}

func (l *LSPC) vramAddrWrite(val uint16) {
	l.vramAddr = val
}

func (l *LSPC) vramModuloWrite(val uint16) {
	l.vramMod = val
}

func (l *LSPC) vramModulo() uint16 {
	return l.vramMod
}

// vramDataWrite stores through the address register and advances it by the
// modulo, wrapping inside the selected window.
func (l *LSPC) vramDataWrite(vram []uint16, val uint16) {
	vram[vramIndex(l.vramAddr)] = val
	l.vramAddr = l.vramAddr&0x8000 | (l.vramAddr+l.vramMod)&0x7FFF
}

// vramDataRead returns the cell under the address register and advances it
// the same way a write does.
func (l *LSPC) vramDataRead(vram []uint16) uint16 {
	v := vram[vramIndex(l.vramAddr)]
	l.vramAddr = l.vramAddr&0x8000 | (l.vramAddr+l.vramMod)&0x7FFF
	return v
}

func (l *LSPC) modeWrite(val uint16) {
	l.mode = val
	debugf("[LSPC] mode: %02x\n", val)
}

// modeRead is the beam position readback.
func (l *LSPC) modeRead(clockFrame int64) uint16 {
	line := clockFrame / LINE_CLOCK
	return uint16(line+0xF8)<<7 | uint16(l.aaCounter&7)
}

func (l *LSPC) timerHighWrite(val uint16) {
	l.timerHigh = val
}

func (l *LSPC) timerLowWrite(val uint16) {
	l.timerLow = val
}

// timerEnabled reports the raster interrupt enable bit.
func (l *LSPC) timerEnabled() bool {
	return l.mode&(1<<4) != 0
}

// rasterLine converts the timer reload value to a scanline. The counter
// decrements at pixel rate, 0x180 ticks per line.
func (l *LSPC) rasterLine() int {
	reload := uint32(l.timerHigh)<<16 | uint32(l.timerLow)
	return int(reload/0x180) % 264
}

// vblank advances the auto-animation divider once per frame.
func (l *LSPC) vblank() {
	if l.aaTick == 0 {
		l.aaTick = uint8(l.mode >> 8)
		l.aaCounter++
	} else {
		l.aaTick--
	}
}

// autoAnimFrame returns the 3-bit auto-animation frame and whether
// auto-animation is enabled (mode bit 3 disables it).
func (l *LSPC) autoAnimFrame() (uint8, bool) {
	return l.aaCounter & 7, l.mode&(1<<3) == 0
}
