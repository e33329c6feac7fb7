// engine.go - Engine aggregate wiring CPU, memory, video and peripherals

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
engine.go - Engine Aggregate

Engine owns every piece of emulated state: the decoder table, the CPU
context, the event table, the ROM set with its streaming caches, the LSPC
and peripheral registers, and the platform adapter. Everything that was a
file-scope global in a classic C emulator is a field here, and event
callbacks are method values bound to their owning component, so two engines
can coexist in one process (the test suite relies on this).
*/

package main

type Engine struct {
	mem   *MachineBanks
	cpu   *M68KCPU
	roms  *ROMSet
	hw    *Hardware
	video *VideoRenderer
	plat  Platform

	// Scheduler state
	events          [MAX_EVENTS]EmuEvent
	clock           int64
	clockFrameBegin int64
	cpuClock        int64 // in CPU cycles (crystal/2)
	frame           int
}

// NewEngine assembles an engine around a loaded ROM set and a platform
// adapter. The hardware map is wired, the CPU is reset from the cartridge
// vectors and the recurring VBlank event is primed; the engine is ready for
// the first RunFrame call.
func NewEngine(roms *ROMSet, plat Platform) *Engine {
	e := &Engine{
		mem:  NewMachineBanks(),
		roms: roms,
		plat: plat,
	}
	e.cpu = NewM68KCPU(e.mem)
	e.hw = NewHardware(e)
	e.video = NewVideoRenderer(e)

	e.hw.InstallBanks()
	e.cpu.PulseReset()

	// VBlank starts at scanline 248 of the first frame, then repeats at
	// frame rate.
	e.AddEvent(LINE_CLOCK*248, e.vblankStart, nil)

	if roms.IdleSkipPC != 0 {
		e.cpu.SetIdleSkip(roms.IdleSkipPC)
	}

	return e
}

// RenderFrame rasterises the current VRAM state into the platform's frame
// buffer and publishes it. Called between RunFrame and the next frame,
// while the CPU is parked at the frame boundary. The returned buffer is
// valid until the next BeginFrame; the script hooks inspect it.
func (e *Engine) RenderFrame() ([]uint16, int) {
	pix, pitch := e.plat.BeginFrame()
	e.video.Render(pix, pitch)
	e.plat.EndFrame()
	return pix, pitch
}

// NextFrame advances the per-frame bookkeeping of the streaming caches.
func (e *Engine) NextFrame() {
	e.roms.NextFrame()
}
