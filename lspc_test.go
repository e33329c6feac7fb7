// lspc_test.go - LSPC register protocol tests

package main

import "testing"

func TestVRAMModuloRoundTrip(t *testing.T) {
	e, _ := newTestMachine(t)

	// Write 16 values at address 0x100 with modulo 2, rewind, read ten.
	e.mem.Write16(0x3C0000, 0x0100)
	e.mem.Write16(0x3C0004, 0x0002)
	for v := uint16(1); v <= 16; v++ {
		e.mem.Write16(0x3C0002, v)
	}

	e.mem.Write16(0x3C0000, 0x0100)
	for want := uint16(1); want <= 10; want++ {
		if got := e.mem.Read16(0x3C0002); got != want {
			t.Fatalf("read %d = %04X, want %04X", want, got, want)
		}
	}
}

func TestVRAMNegativeModulo(t *testing.T) {
	e, _ := newTestMachine(t)

	e.mem.Write16(0x3C0000, 0x0110)
	e.mem.Write16(0x3C0004, 0xFFFE) // -2
	e.mem.Write16(0x3C0002, 0xAAAA) // at 0x110
	e.mem.Write16(0x3C0002, 0xBBBB) // at 0x10E

	if got := e.hw.videoRAM[0x110]; got != 0xAAAA {
		t.Errorf("cell 0x110 = %04X", got)
	}
	if got := e.hw.videoRAM[0x10E]; got != 0xBBBB {
		t.Errorf("cell 0x10E = %04X", got)
	}
}

func TestVRAMUpperWindowPreservesSelect(t *testing.T) {
	e, _ := newTestMachine(t)

	// Upper-window address with a modulo that would overflow the low 15
	// bits: the window bit must survive the increment.
	e.mem.Write16(0x3C0000, 0x8200)
	e.mem.Write16(0x3C0004, 0x7F00) // 0x0200 + 0x7F00 carries into bit 15
	e.mem.Write16(0x3C0002, 0x1234)

	if got := e.hw.videoRAM[0x8200]; got != 0x1234 {
		t.Errorf("upper cell = %04X", got)
	}
	if e.hw.lspc.vramAddr&0x8000 == 0 {
		t.Errorf("window bit lost after increment: %04X", e.hw.lspc.vramAddr)
	}
}

func TestBeamPosition(t *testing.T) {
	var l LSPC

	if got := l.modeRead(0); got>>7 != 0xF8 {
		t.Errorf("line 0 beam = %04X", got)
	}
	if got := l.modeRead(LINE_CLOCK * 100); got>>7 != 100+0xF8 {
		t.Errorf("line 100 beam = %04X (line %d)", got, got>>7)
	}
}

func TestAutoAnimationCounter(t *testing.T) {
	var l LSPC

	l.modeWrite(0x0000) // period 0: advance every frame
	for i := 0; i < 5; i++ {
		l.vblank()
	}
	frame, enabled := l.autoAnimFrame()
	if !enabled {
		t.Fatalf("auto-animation disabled with bit 3 clear")
	}
	if frame != 5 {
		t.Errorf("aa frame = %d, want 5", frame)
	}

	l.modeWrite(1 << 3)
	if _, enabled := l.autoAnimFrame(); enabled {
		t.Errorf("auto-animation still enabled with bit 3 set")
	}
}

func TestAutoAnimationPeriod(t *testing.T) {
	var l LSPC

	l.modeWrite(0x0300) // reload 3: advance every 4th vblank
	for i := 0; i < 8; i++ {
		l.vblank()
	}
	frame, _ := l.autoAnimFrame()
	if frame != 2 {
		t.Errorf("aa frame = %d after 8 vblanks with period 4, want 2", frame)
	}
}

func TestRasterLineFromTimer(t *testing.T) {
	var l LSPC
	l.timerHighWrite(0)
	l.timerLowWrite(0x180 * 10)
	if got := l.rasterLine(); got != 10 {
		t.Errorf("raster line = %d, want 10", got)
	}
	l.modeWrite(1 << 4)
	if !l.timerEnabled() {
		t.Errorf("timer enable bit not seen")
	}
}
