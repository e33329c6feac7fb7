// engine_test.go - Whole-machine boot and scripting tests

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBootRunsFrames(t *testing.T) {
	e, plat := newTestMachine(t)

	for i := 0; i < 60; i++ {
		e.RunFrame()
		e.RenderFrame()
		e.NextFrame()
	}

	if e.Frame() != 60 {
		t.Errorf("frame = %d, want 60", e.Frame())
	}
	if e.clock != 60*FRAME_CLOCK {
		t.Errorf("clock = %d, want %d", e.clock, 60*FRAME_CLOCK)
	}

	// The synthetic cartridge draws nothing, so the probe pixel carries
	// the backdrop colour.
	pix := plat.Frame()
	if got := pix[100*SCREEN_WIDTH+160]; got != e.hw.backdropColor() {
		t.Errorf("probe pixel = %04X, want backdrop %04X", got, e.hw.backdropColor())
	}
}

func TestVBlankRaisesIRQ1(t *testing.T) {
	e, _ := newTestMachine(t)

	e.RunFrame()
	// With nothing acknowledging it, the VBlank line stays latched.
	if e.cpu.virqLines&1 == 0 {
		t.Errorf("IRQ1 line not latched after a frame")
	}
}

func TestScriptHooksDriveTheMachine(t *testing.T) {
	dir := writeTestCartridge(t)
	script := `
frames = 0
function on_frame(frame)
    frames = frames + 1
    key("coin_1", true)
    poke16(0x100100, 0xBEEF)
    if peek16(0x100100) ~= 0xBEEF then
        error("peek mismatch")
    end
    if frame >= 3 then
        stop()
    end
end
`
	if err := os.WriteFile(filepath.Join(dir, "test.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	roms, err := LoadROMSet(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer roms.Close()

	plat := NewHeadlessPlatform()
	e := NewEngine(roms, plat)

	hooks, err := LoadScriptHooks(e, dir)
	if err != nil {
		t.Fatalf("hooks: %v", err)
	}
	if hooks == nil {
		t.Fatalf("test.lua not picked up")
	}
	defer hooks.Close()

	frames := 0
	for {
		e.RunFrame()
		pix, pitch := e.RenderFrame()
		e.NextFrame()
		frames++
		if !hooks.OnFrame(pix, pitch) {
			break
		}
		if frames > 10 {
			t.Fatalf("script never stopped the run")
		}
	}

	if frames != 3 {
		t.Errorf("script ran %d frames, want 3", frames)
	}
	if !plat.KeyState(PLAT_KEY_COIN_1) {
		t.Errorf("script key injection lost")
	}
	if got := e.mem.Read16(0x100100); got != 0xBEEF {
		t.Errorf("script poke lost: %04X", got)
	}
}

func TestScriptHooksAbsent(t *testing.T) {
	e, _ := newTestMachine(t)
	hooks, err := LoadScriptHooks(e, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hooks != nil {
		t.Fatalf("hooks loaded from an empty directory")
	}
}
