// hw_io.go - Board hardware map and I/O dispatch for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
hw_io.go - Hardware Map

Hardware owns everything on the board that is not the CPU: work and backup
RAM, video RAM, the two palette banks, the LSPC registers, the RTC, the
watchdog, the input ports and the bank-switch latch. InstallBanks wires the
sixteen decoder slots:

  0x0  cartridge program ROM, first megabyte        backing, read-only
  0x1  work RAM, 64KB mirrored                      backing
  0x2  cartridge program ROM, banked window         backing or handler
  0x3  hardware I/O                                 handler
  0x4  palette RAM, two switchable 8KB banks        handler
  0xC  BIOS, 128KB mirrored                         backing, read-only
  0xD  backup RAM, write protection switchable      backing

The first 0x80 bytes of bank 0 are the live exception vectors; I/O writes
at 0x3A0003/0x3A0013 alias the BIOS or cartridge vectors in, which is how
the BIOS hands control to the game after its self test.
*/

package main

type Hardware struct {
	e *Engine

	workRAM   []byte
	backupRAM []byte
	videoRAM  []uint16

	// Palette: engine-native R5G5B5A1 entries plus the dark-bit shadow
	// needed to reconstruct guest reads exactly.
	palette    [2][PALETTE_ENTRIES]uint16
	darkShadow [2][PALETTE_ENTRIES / 8]byte
	palBank    int

	backupProtected bool
	lspc            LSPC
	rtc             RTC
	input           *InputPorts
	sound           *SoundStub

	watchdogEvent int
	rasterEvent   int // -1 when the raster interrupt is idle
}

func NewHardware(e *Engine) *Hardware {
	hw := &Hardware{
		e:           e,
		workRAM:     make([]byte, WORK_RAM_SIZE),
		backupRAM:   make([]byte, BACKUP_RAM_SIZE),
		videoRAM:    make([]uint16, VIDEO_RAM_CELLS),
		rasterEvent: -1,
		input:       NewInputPorts(e),
		sound:       NewSoundStub(),
	}
	hw.rtc.init(e)
	hw.watchdogEvent = e.AddEvent(WATCHDOG_PERIOD, hw.watchdogExpired, nil)
	return hw
}

// InstallBanks wires the decoder table and the CPU's interrupt acknowledge
// behaviour (the MVS never auto-acks; lines drop only through the LSPC
// acknowledge register).
func (hw *Hardware) InstallBanks() {
	e := hw.e
	mem := e.mem
	roms := e.roms

	mem.MapBackingRO(0x0, roms.PROM[:PROM_MAX_SIZE], 0xFFFFF, hw.writeROM)
	mem.MapBacking(0x1, hw.workRAM, 0xFFFF)
	hw.installBankWindow(1) // power-on window is the second megabyte
	mem.MapHandler(0x3, hw.readHWIO, hw.writeHWIO)
	mem.MapHandler(0x4, hw.readPalette, hw.writePalette)
	mem.MapBackingRO(0xC, roms.BIOS, 0x1FFFF, hw.writeROM)
	mem.MapBackingRO(0xD, hw.backupRAM, 0xFFFF, hw.writeBackupProtected)
	hw.backupProtected = true

	e.cpu.SetIntAckHook(func(level uint8) {})
}

// installBankWindow points bank 2 at a 1MB page of the banked program ROM.
// Page 1 is the megabyte right after the fixed one.
func (hw *Hardware) installBankWindow(page uint32) {
	roms := hw.e.roms
	if roms.Banked == nil {
		// No b.rom: the window mirrors the fixed megabyte.
		hw.e.mem.MapBackingRO(0x2, roms.PROM[:PROM_MAX_SIZE], 0xFFFFF, hw.writeBankswitch)
		return
	}
	if lin := roms.Banked.Linear(); lin != nil {
		off := int((page - 1) * PROM_MAX_SIZE)
		if off+PROM_MAX_SIZE > len(lin) || page == 0 {
			debugf("[CART] bankswitch to missing page %d\n", page)
			hw.e.mem.MapBackingRO(0x2, roms.PROM[:PROM_MAX_SIZE], 0xFFFFF, hw.writeBankswitch)
			return
		}
		hw.e.mem.MapBackingRO(0x2, lin[off:off+PROM_MAX_SIZE], 0xFFFFF, hw.writeBankswitch)
		return
	}

	// Paged mode: route the window through the banked cartridge cache.
	base := (page - 1) * PROM_MAX_SIZE
	hw.e.mem.MapHandler(0x2,
		func(addr uint32, size int) uint32 {
			off := base + (addr & 0xFFFFF)
			if size == 1 {
				return uint32(roms.Banked.Read8(off))
			}
			return uint32(roms.Banked.Read16(off))
		},
		hw.writeBankswitch)
}

// writeROM logs stray writes into ROM regions.
func (hw *Hardware) writeROM(addr uint32, val uint32, size int) {
	debugf("[MEM] rom write%d: %06x <- %0*x\n", size*8, addr, size*2, val)
}

// writeBankswitch handles the cartridge bank-select latch at the top of
// the banked window.
func (hw *Hardware) writeBankswitch(addr uint32, val uint32, size int) {
	if addr >= 0x2FFFF0 {
		debugf("[CART] bankswitch: %x\n", val)
		hw.installBankWindow((val & 7) + 1)
		return
	}
	debugf("[CART] unknown write%d: %06x <- %0*x\n", size*8, addr, size*2, val)
}

// writeBackupProtected soaks up writes while backup RAM protection is on.
func (hw *Hardware) writeBackupProtected(addr uint32, val uint32, size int) {
	debugf("[MEM] protected backup write%d: %06x <- %0*x\n", size*8, addr, size*2, val)
}

// setBackupProtect flips backup RAM between protected and writable by
// swapping the bank's write handler.
func (hw *Hardware) setBackupProtect(on bool) {
	if on == hw.backupProtected {
		return
	}
	hw.backupProtected = on
	if on {
		hw.e.mem.SetWriteHandler(0xD, hw.writeBackupProtected)
	} else {
		hw.e.mem.SetWriteHandler(0xD, nil)
	}
}

// mapBIOSVectors aliases the BIOS (or cartridge) exception vectors into
// the bottom of bank 0.
func (hw *Hardware) mapBIOSVectors(bios bool) {
	roms := hw.e.roms
	if bios {
		copy(roms.PROM[:PROM_VECTOR_LEN], roms.BIOS[:PROM_VECTOR_LEN])
	} else {
		copy(roms.PROM[:PROM_VECTOR_LEN], roms.PROMVector[:])
	}
}

// VBlank runs once per frame from the scheduler's VBlank event.
func (hw *Hardware) VBlank() {
	hw.lspc.vblank()
}

// watchdogExpired fires when the guest stopped kicking 0x300001: the CPU
// resets and the watchdog rearms.
func (hw *Hardware) watchdogExpired(arg interface{}) uint32 {
	debugf("[HW] watchdog expired, rebooting\n")
	hw.e.CPUReset()
	return WATCHDOG_PERIOD
}

// watchdogKick pushes the expiry out by a full period.
func (hw *Hardware) watchdogKick() {
	hw.e.ChangeEvent(hw.watchdogEvent, hw.e.Clock()+WATCHDOG_PERIOD)
}

// rasterUpdate schedules or cancels the programmed-scanline interrupt
// event to match the LSPC mode register.
func (hw *Hardware) rasterUpdate() {
	if !hw.lspc.timerEnabled() {
		if hw.rasterEvent >= 0 {
			hw.e.RemoveEvent(hw.rasterEvent)
			hw.rasterEvent = -1
		}
		return
	}

	line := hw.lspc.rasterLine()
	deadline := hw.e.clockFrameBegin + int64(line)*LINE_CLOCK
	if deadline <= hw.e.Clock() {
		deadline += FRAME_CLOCK
	}
	if hw.rasterEvent < 0 {
		hw.rasterEvent = hw.e.AddEvent(deadline, hw.rasterFired, nil)
	} else {
		hw.e.ChangeEvent(hw.rasterEvent, deadline)
	}
}

// rasterFired raises IRQ2 at the programmed scanline, once per frame.
func (hw *Hardware) rasterFired(arg interface{}) uint32 {
	hw.e.cpu.SetVIRQ(2, true)
	return FRAME_CLOCK
}

// ------------------------------------------------------------------------------
// Hardware I/O bank (0x3xxxxx)
// ------------------------------------------------------------------------------

func (hw *Hardware) readHWIO(addr uint32, size int) uint32 {
	switch addr >> 16 & 0xFF {
	case 0x30:
		switch addr & 0xFFFF {
		case 0x00:
			return uint32(hw.input.P1Controls())
		case 0x01:
			return uint32(hw.input.DIPSwitches())
		}
	case 0x32:
		switch addr & 0xFFFF {
		case 0x00:
			return uint32(hw.sound.ReadReply())
		case 0x01:
			return uint32(hw.input.StatusA(&hw.rtc))
		}
	case 0x38:
		switch addr & 0xFFFF {
		case 0x00:
			return uint32(hw.input.StatusB())
		}
	case 0x3C:
		switch addr & 0xF {
		case 0x02:
			return uint32(hw.lspc.vramDataRead(hw.videoRAM))
		case 0x04:
			return uint32(hw.lspc.vramModulo())
		case 0x06:
			return uint32(hw.lspc.modeRead(hw.e.ClockFrame()))
		}
	}

	debugf("[HWIO] unknown read%d: %06x\n", size*8, addr)
	return 0xFFFFFFFF
}

func (hw *Hardware) writeHWIO(addr uint32, val uint32, size int) {
	switch addr >> 16 & 0xFF {
	case 0x30:
		switch addr & 0xFFFF {
		case 0x01:
			hw.watchdogKick()
			return
		}
	case 0x32:
		switch addr & 0xFFFF {
		case 0x00:
			hw.sound.Command(uint8(val))
			return
		}
	case 0x38:
		switch addr & 0xFFFF {
		case 0x51:
			hw.rtc.dataWrite(uint8(val & 1))
			hw.rtc.clockWrite(uint8(val & 2))
			hw.rtc.strobeWrite(uint8(val & 4))
			return
		}
	case 0x3A:
		switch addr & 0xFFFF {
		case 0x03:
			hw.mapBIOSVectors(true)
			return
		case 0x13:
			hw.mapBIOSVectors(false)
			return
		case 0x0B:
			hw.e.roms.SROMSetBank(0)
			return
		case 0x1B:
			hw.e.roms.SROMSetBank(1)
			return
		case 0x0D:
			hw.setBackupProtect(true)
			return
		case 0x1D:
			hw.setBackupProtect(false)
			return
		case 0x0F:
			hw.palBank = 1
			return
		case 0x1F:
			hw.palBank = 0
			return
		}
	case 0x3C:
		switch addr & 0xF {
		case 0x00:
			hw.lspc.vramAddrWrite(uint16(val))
			return
		case 0x02:
			hw.lspc.vramDataWrite(hw.videoRAM, uint16(val))
			return
		case 0x04:
			hw.lspc.vramModuloWrite(uint16(val))
			return
		case 0x06:
			hw.lspc.modeWrite(uint16(val))
			hw.rasterUpdate()
			return
		case 0x08:
			hw.lspc.timerHighWrite(uint16(val))
			hw.rasterUpdate()
			return
		case 0x0A:
			hw.lspc.timerLowWrite(uint16(val))
			hw.rasterUpdate()
			return
		case 0x0C:
			// IRQ acknowledge: each bit drops one latched line.
			if val&1 != 0 {
				hw.e.cpu.SetVIRQ(3, false)
			}
			if val&2 != 0 {
				hw.e.cpu.SetVIRQ(2, false)
			}
			if val&4 != 0 {
				hw.e.cpu.SetVIRQ(1, false)
			}
			return
		}
	}

	debugf("[HWIO] unknown write%d: %06x <- %0*x\n", size*8, addr, size*2, val)
}

// ------------------------------------------------------------------------------
// Palette bank (0x4xxxxx)
//
// The guest sees packed 15-bit RGB with component low bits folded into
// bits 14..12 and the dark bit on top; the engine keeps render-ready
// R5G5B5A1 entries. The conversion preserves every colour bit, and the
// dark bit lives in a shadow bitmap, so reads reconstruct the written word
// exactly.
// ------------------------------------------------------------------------------

func (hw *Hardware) readPalette(addr uint32, size int) uint32 {
	idx := (addr & 0x1FFF) / 2
	entry := hw.palette[hw.palBank][idx]

	r5 := uint32(entry>>11) & 0x1F
	g5 := uint32(entry>>6) & 0x1F
	b5 := uint32(entry>>1) & 0x1F

	val := (r5>>1)<<8 | (g5>>1)<<4 | (b5 >> 1)
	val |= (r5 & 1) << 14
	val |= (g5 & 1) << 13
	val |= (b5 & 1) << 12
	if hw.darkShadow[hw.palBank][idx/8]&(1<<(idx&7)) != 0 {
		val |= 1 << 15
	}
	return val
}

func (hw *Hardware) writePalette(addr uint32, val uint32, size int) {
	if size == 1 {
		// Byte writes replicate across the word lane like the real RAM.
		val = val&0xFF | val<<8
	}
	idx := (addr & 0x1FFF) / 2

	r5 := (val>>7)&0x1E | (val>>14)&1
	g5 := (val>>3)&0x1E | (val>>13)&1
	b5 := (val<<1)&0x1E | (val>>12)&1

	hw.palette[hw.palBank][idx] = uint16(r5<<11 | g5<<6 | b5<<1 | 1)
	if val&0x8000 != 0 {
		hw.darkShadow[hw.palBank][idx/8] |= 1 << (idx & 7)
	} else {
		hw.darkShadow[hw.palBank][idx/8] &^= 1 << (idx & 7)
	}
}

// paletteRow returns 16 render-ready entries for a palette number in the
// active bank.
func (hw *Hardware) paletteRow(palnum uint32) []uint16 {
	base := (palnum * 16) & (PALETTE_ENTRIES - 1)
	return hw.palette[hw.palBank][base : base+16]
}

// backdropColor is the fixed backdrop entry of the active bank.
func (hw *Hardware) backdropColor() uint16 {
	return hw.palette[hw.palBank][0xFFF]
}
