// emu_scheduler.go - Cycle-driven event scheduler and frame pacing for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
emu_scheduler.go - Event Scheduler

The scheduler owns the authoritative emulated clock, a 64-bit tick counter
at the 24MHz crystal rate. Each frame it interleaves CPU timeslices with the
peripheral events that fall before the next vsync deadline: the CPU executes
up to the earliest event deadline, the event callback runs, and the loop
re-picks. Because the CPU increments its cycle counter as it dispatches,
Clock() stays live even while the CPU is mid-timeslice, which is what lets
an I/O handler reschedule the watchdog relative to "now".

Rescheduling the currently running event aborts the CPU timeslice so the
scheduler can re-pick a deadline; without that, the CPU would overshoot a
deadline that just moved earlier.
*/

package main

import "fmt"

// EventCb is a peripheral event callback. A non-zero return value requeues
// the event that many ticks after its previous deadline; zero frees the slot.
type EventCb func(arg interface{}) uint32

// EmuEvent is one slot of the scheduler table.
type EmuEvent struct {
	clock   int64
	cb      EventCb
	cbarg   interface{}
	running bool
}

// AddEvent schedules a callback at an absolute clock value and returns its
// slot id. A full table is a sizing bug, not a recoverable state.
func (e *Engine) AddEvent(clock int64, cb EventCb, cbarg interface{}) int {
	for i := range e.events {
		if e.events[i].cb != nil {
			continue
		}
		e.events[i] = EmuEvent{clock: clock, cb: cb, cbarg: cbarg}
		return i
	}
	panic("emu: event table full")
}

// ChangeEvent moves an event's deadline. If the moved event is the one the
// CPU is currently executing towards, the timeslice is aborted so the frame
// loop re-picks the next deadline.
func (e *Engine) ChangeEvent(eventID int, newclock int64) {
	e.events[eventID].clock = newclock
	e.cpu.EndTimeslice()
}

// RemoveEvent frees an event slot.
func (e *Engine) RemoveEvent(eventID int) {
	e.events[eventID].cb = nil
}

// nextEvent returns the pending event with the earliest deadline, or nil.
// Ties resolve to the lowest slot index, which keeps event ordering
// deterministic for a fixed slot layout.
func (e *Engine) nextEvent() *EmuEvent {
	var ev *EmuEvent
	for i := range e.events {
		if e.events[i].cb == nil {
			continue
		}
		if ev == nil || e.events[i].clock < ev.clock {
			ev = &e.events[i]
		}
	}
	return ev
}

// m68kExec advances the CPU to the given crystal clock and returns the
// crystal clock actually reached (the CPU may stop short when a handler
// called RunStop). Guest faults parked in the CPU context are consumed
// here, at the timeslice boundary, and execution resumes in the guest's
// exception handler.
func (e *Engine) m68kExec(clock int64) int64 {
	target := clock / M68K_CLOCK_DIV
	for target > e.cpuClock {
		ran := e.cpu.Execute(int32(target - e.cpuClock))
		e.cpuClock += int64(ran)
		if exc := e.cpu.ConsumePendingException(); exc != 0 {
			e.cpuClock += int64(exc)
			continue
		}
		break
	}
	return e.cpuClock * M68K_CLOCK_DIV
}

// Clock returns the emulated clock including the cycles the CPU has spent
// inside the current timeslice. Monotonic within a frame.
func (e *Engine) Clock() int64 {
	return e.clock + e.cpu.CyclesRun()*M68K_CLOCK_DIV
}

// ClockFrame returns the emulated clock relative to the start of the
// current frame. The LSPC derives the beam position from this.
func (e *Engine) ClockFrame() int64 {
	return e.Clock() - e.clockFrameBegin
}

// PC returns the guest program counter, for diagnostics.
func (e *Engine) PC() uint32 {
	return e.cpu.PC
}

// CPUReset pulses the CPU reset line: PC and SSP reload from the active
// vector table and SR returns to supervisor with all interrupts masked.
// The watchdog calls this when it expires.
func (e *Engine) CPUReset() {
	e.cpu.PulseReset()
}

// RunFrame drives one 60Hz frame: every event scheduled before the next
// vsync deadline runs interleaved with CPU execution, then the CPU runs out
// the remainder of the frame.
func (e *Engine) RunFrame() {
	e.clockFrameBegin = e.clock
	vsync := e.clock + FRAME_CLOCK

	for {
		ev := e.nextEvent()
		if ev == nil || ev.clock >= vsync {
			break
		}

		ev.running = true
		e.clock = e.m68kExec(ev.clock)
		ev.running = false

		// A handler may have rescheduled (or freed) this event while the
		// CPU ran towards it - the watchdog kick does exactly that. The
		// deadline moved past the clock we reached, so re-pick instead of
		// firing. The CPU clock divider rounds deadlines down, so an
		// event within one CPU cycle of the reached clock counts as due.
		if ev.cb == nil || ev.clock > e.clock+(M68K_CLOCK_DIV-1) {
			continue
		}

		repeat := ev.cb(ev.cbarg)
		if repeat != 0 {
			ev.clock += int64(repeat)
		} else {
			ev.cb = nil
		}
	}

	e.clock = e.m68kExec(vsync)

	debugf("[EMU] frame %d complete (vsync:%d clock:%d)\n", e.frame, vsync, e.clock)
	e.clock = vsync
	e.frame++
}

// Frame returns the number of completed frames.
func (e *Engine) Frame() int {
	return e.frame
}

// vblankStart is the per-frame event: it raises the VBlank interrupt line,
// advances the LSPC auto-animation counter and reschedules itself for the
// same scanline of the next frame.
func (e *Engine) vblankStart(arg interface{}) uint32 {
	e.cpu.SetVIRQ(1, true)
	e.hw.VBlank()
	debugf("[EMU] VBlank - clock:%d clock_frame:%d\n", e.Clock(), e.ClockFrame())
	return FRAME_CLOCK
}

// StatusLine summarises the engine state in one line, used by the debug
// monitor and the clipboard copy shortcut.
func (e *Engine) StatusLine() string {
	return fmt.Sprintf("frame:%d clock:%d PC:%06x", e.frame, e.clock, e.cpu.PC)
}
