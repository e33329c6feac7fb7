// hw_input.go - Input port synthesis for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

package main

// InputPorts builds the three active-low input bytes the guest reads. The
// platform adapter owns the real key state; these just sample it at read
// time, which is exactly how often the hardware latched it.
type InputPorts struct {
	e *Engine
}

func NewInputPorts(e *Engine) *InputPorts {
	return &InputPorts{e: e}
}

func (in *InputPorts) key(k PlatKey) uint8 {
	if in.e.plat != nil && in.e.plat.KeyState(k) {
		return 1
	}
	return 0
}

// P1Controls is the 0x300000 byte: stick and four buttons, active low.
func (in *InputPorts) P1Controls() uint8 {
	var state uint8
	state |= (^in.key(PLAT_KEY_P1_UP) & 1) << 0
	state |= (^in.key(PLAT_KEY_P1_DOWN) & 1) << 1
	state |= (^in.key(PLAT_KEY_P1_LEFT) & 1) << 2
	state |= (^in.key(PLAT_KEY_P1_RIGHT) & 1) << 3
	state |= (^in.key(PLAT_KEY_P1_A) & 1) << 4
	state |= (^in.key(PLAT_KEY_P1_B) & 1) << 5
	state |= (^in.key(PLAT_KEY_P1_C) & 1) << 6
	state |= (^in.key(PLAT_KEY_P1_D) & 1) << 7
	return state
}

// DIPSwitches is the 0x300001 byte. All switches off boots the normal
// attract flow.
func (in *InputPorts) DIPSwitches() uint8 {
	return 0xFF
}

// StatusA is the 0x320001 byte: coins and service, plus the RTC readback
// bits in 6 and 7.
func (in *InputPorts) StatusA(rtc *RTC) uint8 {
	var state uint8
	state |= (^in.key(PLAT_KEY_COIN_1) & 1) << 0
	state |= (^in.key(PLAT_KEY_COIN_2) & 1) << 1
	state |= (^in.key(PLAT_KEY_SERVICE) & 1) << 2
	state |= (^in.key(PLAT_KEY_COIN_3) & 1) << 3
	state |= (^in.key(PLAT_KEY_COIN_4) & 1) << 4
	state |= rtc.timePulse() << 6
	state |= rtc.dataRead() << 7
	return state
}

// StatusB is the 0x380000 byte: start/select plus the memory card and
// board-type marker bits.
func (in *InputPorts) StatusB() uint8 {
	var state uint8
	state |= (^in.key(PLAT_KEY_P1_START) & 1) << 0
	state |= (^in.key(PLAT_KEY_P1_SELECT) & 1) << 1

	state |= 0x20 // memory card not inserted
	state |= 0x40 // memory card write protected
	state |= 0x80 // MVS board, not AES
	return state
}
