// hw_rtc.go - uPD4990 real-time clock serial interface for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
hw_rtc.go - RTC

The BIOS talks to the clock chip over three lines of one I/O byte: data
(bit 0), clock (bit 1) and strobe (bit 2). Rising clock edges shift the
data bit into a 4-bit command register; a strobe executes the command. The
only commands the BIOS relies on are the time-pulse setups, which start a
square wave on the TP pin that the guest polls through the status port.
The wave is an engine event toggling the TP latch every half period.
*/

package main

type RTC struct {
	e *Engine

	dataIn uint8
	clock  uint8
	cmd    uint8
	tp     uint8

	eventID     int
	eventPeriod int64
}

func (r *RTC) init(e *Engine) {
	r.e = e
	r.eventPeriod = MVS_CLOCK // 1Hz default
	r.eventID = e.AddEvent(r.eventPeriod/2, r.tpToggle, nil)
}

// tpToggle is the time-pulse square wave generator.
func (r *RTC) tpToggle(arg interface{}) uint32 {
	r.tp ^= 1
	debugf("[RTC] TP trigger: %x\n", r.tp)
	return uint32(r.eventPeriod / 2)
}

func (r *RTC) dataWrite(bit uint8) {
	if bit != 0 {
		r.dataIn = 1
	} else {
		r.dataIn = 0
	}
}

// clockWrite shifts the data bit in on the rising edge.
func (r *RTC) clockWrite(line uint8) {
	if r.clock == 0 && line != 0 {
		debugf("[RTC] clock: data=%x\n", r.dataIn)
		r.cmd >>= 1
		r.cmd |= r.dataIn << 3
	}
	if line != 0 {
		r.clock = 1
	} else {
		r.clock = 0
	}
}

// strobeWrite executes the latched command.
func (r *RTC) strobeWrite(line uint8) {
	if line == 0 {
		return
	}
	switch r.cmd {
	case 8:
		debugf("[RTC] set TP mode: 1 sec\n")
		r.eventPeriod = MVS_CLOCK
		r.e.ChangeEvent(r.eventID, r.e.Clock()+r.eventPeriod/2)
	case 7:
		debugf("[RTC] set TP freq: 4096Hz\n")
		r.eventPeriod = MVS_CLOCK / 4096
		r.e.ChangeEvent(r.eventID, r.e.Clock()+r.eventPeriod/2)
	default:
		debugf("[RTC] unimplemented cmd=%x\n", r.cmd)
	}
}

// dataRead: the chip shifts time digits out here; the BIOS only checks
// that the line idles high.
func (r *RTC) dataRead() uint8 {
	return 1
}

// timePulse is the polled TP latch.
func (r *RTC) timePulse() uint8 {
	return r.tp
}
