// emu_scheduler_test.go - Event scheduler and frame loop tests

package main

import "testing"

// newBareEngine wires an engine with plain RAM and no peripherals: enough
// for scheduler behaviour without a cartridge. Zero-filled RAM decodes as
// a harmless ORI.B sled, so the CPU can run indefinitely.
func newBareEngine() *Engine {
	e := &Engine{mem: NewMachineBanks()}
	e.cpu = NewM68KCPU(e.mem)
	e.mem.MapBacking(0x0, make([]byte, 0x100000), 0xFFFFF)
	e.mem.Write32(0, 0x8000)
	e.mem.Write32(4, 0x1000)
	e.cpu.PulseReset()
	return e
}

func TestEventsFireInDeadlineOrder(t *testing.T) {
	e := newBareEngine()

	var order []int
	add := func(id int, clock int64) {
		e.AddEvent(clock, func(arg interface{}) uint32 {
			order = append(order, arg.(int))
			return 0
		}, id)
	}
	add(3, 30000)
	add(1, 10000)
	add(2, 20000)

	e.RunFrame()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, want [1 2 3]", order)
	}
}

func TestIdenticalDeadlinesAllFire(t *testing.T) {
	e := newBareEngine()

	fired := 0
	for i := 0; i < MAX_EVENTS; i++ {
		e.AddEvent(1000, func(arg interface{}) uint32 {
			fired++
			return 0
		}, nil)
	}

	e.RunFrame()
	if fired != MAX_EVENTS {
		t.Errorf("fired = %d, want %d", fired, MAX_EVENTS)
	}
}

func TestEventTableOverflowPanics(t *testing.T) {
	e := newBareEngine()
	for i := 0; i < MAX_EVENTS; i++ {
		e.AddEvent(1000, func(arg interface{}) uint32 { return 0 }, nil)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("ninth event did not panic")
		}
	}()
	e.AddEvent(1000, func(arg interface{}) uint32 { return 0 }, nil)
}

func TestClockMonotonicWithinFrame(t *testing.T) {
	e := newBareEngine()

	var samples []int64
	for i := 1; i <= 4; i++ {
		e.AddEvent(int64(i)*50000, func(arg interface{}) uint32 {
			samples = append(samples, e.Clock())
			return 0
		}, nil)
	}

	e.RunFrame()

	last := int64(-1)
	for i, s := range samples {
		if s < last {
			t.Errorf("clock went backwards at sample %d: %d < %d", i, s, last)
		}
		last = s
	}
	if len(samples) != 4 {
		t.Errorf("samples = %d, want 4", len(samples))
	}
}

func TestEventDeadlineAccuracy(t *testing.T) {
	e := newBareEngine()

	var at int64 = -1
	e.AddEvent(100000, func(arg interface{}) uint32 {
		at = e.Clock()
		return 0
	}, nil)

	e.RunFrame()

	// The CPU may overshoot by at most one instruction's cycles.
	if at < 100000 || at > 100000+64 {
		t.Errorf("event saw clock %d, want ~100000", at)
	}
}

func TestRepeatingEvent(t *testing.T) {
	e := newBareEngine()

	count := 0
	e.AddEvent(10000, func(arg interface{}) uint32 {
		count++
		return 50000
	}, nil)

	e.RunFrame()

	// 10000, 60000, ..., 360000: eight firings inside one frame.
	if count != 8 {
		t.Errorf("repeat count = %d, want 8", count)
	}

	e.RunFrame()
	if count != 16 {
		t.Errorf("second frame count = %d, want 16", count)
	}
}

func TestChangeEventReschedules(t *testing.T) {
	e := newBareEngine()

	fired := 0
	id := e.AddEvent(100000, func(arg interface{}) uint32 {
		fired++
		return 0
	}, nil)

	// Push it out past the frame; it must not fire this frame.
	e.ChangeEvent(id, FRAME_CLOCK+100000)
	e.RunFrame()
	if fired != 0 {
		t.Errorf("deferred event fired")
	}

	e.RunFrame()
	if fired != 1 {
		t.Errorf("deferred event did not fire next frame (fired=%d)", fired)
	}
}

func TestChangeEventFromHandlerAbortsTimeslice(t *testing.T) {
	e := newBareEngine()

	// A watchdog-style event: the guest kicks it through an I/O write
	// before it can fire.
	expired := 0
	id := e.AddEvent(5000, func(arg interface{}) uint32 {
		expired++
		return 0
	}, nil)

	kicked := false
	e.mem.MapHandler(0x3, nil, func(addr uint32, val uint32, size int) {
		if !kicked {
			kicked = true
			e.ChangeEvent(id, e.Clock()+FRAME_CLOCK*2)
		}
	})

	// Program: write to the I/O bank immediately, then spin.
	e.mem.Write16(0x1000, 0x33C0) // MOVE.W D0,$300000.L
	e.mem.Write32(0x1002, 0x300000)

	e.RunFrame()

	if !kicked {
		t.Fatalf("kick write never reached the handler")
	}
	if expired != 0 {
		t.Errorf("kicked event still expired")
	}
}

func TestFrameAdvancesClock(t *testing.T) {
	e := newBareEngine()
	e.RunFrame()
	if e.clock != FRAME_CLOCK {
		t.Errorf("clock = %d after one frame, want %d", e.clock, FRAME_CLOCK)
	}
	if e.Frame() != 1 {
		t.Errorf("frame = %d, want 1", e.Frame())
	}
	e.RunFrame()
	if e.clock != 2*FRAME_CLOCK {
		t.Errorf("clock = %d after two frames", e.clock)
	}
}

func TestCPUResetFromEvent(t *testing.T) {
	e := newBareEngine()

	e.AddEvent(50000, func(arg interface{}) uint32 {
		e.CPUReset()
		return 0
	}, nil)

	e.RunFrame()

	if e.cpu.SR&(M68K_SR_S|M68K_SR_IPL) != M68K_SR_S|M68K_SR_IPL {
		t.Errorf("SR = %04X after reset, want supervisor + mask 7", e.cpu.SR)
	}
}
