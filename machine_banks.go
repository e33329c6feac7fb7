// machine_banks.go - Banked guest memory decoder for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
machine_banks.go - Banked Memory Decoder

The 68000 sees a 24-bit address space divided into sixteen 1MB banks. Each
bank is either backed by a byte slice (ROM and RAM regions, accessed with
big-endian byte order to match the guest bus), or routed through a pair of
read/write handlers (memory-mapped I/O, palette conversion), or unmapped.

Unmapped reads return all-ones and unmapped writes are logged; both are
non-fatal, matching the behaviour of the real board where a floating bus
reads back 0xFF. Handler banks never see 32-bit transactions: the decoder
splits them into two 16-bit accesses, upper half first, exactly as the
two-cycle bus transfer happens in hardware.

Alignment checking is the CPU's job (an odd word access raises an address
error exception before the bus cycle starts), so the decoder can assume
aligned accesses for the word and long paths.
*/

package main

import "encoding/binary"

// ReadHandler services a read from a handler bank. size is 1 or 2 bytes
// (long reads arrive as two word reads, upper half first).
type ReadHandler func(addr uint32, size int) uint32

// WriteHandler services a write to a handler bank, same size contract.
type WriteHandler func(addr uint32, value uint32, size int)

// Bank is one 1MB slot of the decoder table. Either mem is non-nil (backing
// bank, lower 20 address bits masked with mask), or read/write are non-nil
// (handler bank), or everything is nil (unmapped).
type Bank struct {
	mem   []byte
	mask  uint32
	read  ReadHandler
	write WriteHandler
}

// MachineBanks is the decoder table plus the unmapped-access diagnostics.
type MachineBanks struct {
	banks [16]Bank
}

func NewMachineBanks() *MachineBanks {
	return &MachineBanks{}
}

// MapBacking installs a backing bank. mask must be a power of two minus one
// so that mirrored regions (64KB work RAM across a 1MB bank) fall out of the
// address mask for free.
func (m *MachineBanks) MapBacking(bank int, mem []byte, mask uint32) {
	m.banks[bank] = Bank{mem: mem, mask: mask}
}

// MapBackingRO installs a backing bank whose writes are diverted to a
// handler (ROM regions log stray writes, the banked cartridge window routes
// them to the bankswitch latch).
func (m *MachineBanks) MapBackingRO(bank int, mem []byte, mask uint32, write WriteHandler) {
	m.banks[bank] = Bank{mem: mem, mask: mask, write: write}
}

// MapHandler installs a handler bank.
func (m *MachineBanks) MapHandler(bank int, read ReadHandler, write WriteHandler) {
	m.banks[bank] = Bank{read: read, write: write}
}

// Unmap clears a bank back to the unmapped state.
func (m *MachineBanks) Unmap(bank int) {
	m.banks[bank] = Bank{}
}

// SetBackingMem swaps the backing pointer of a bank in place, keeping the
// handlers. The cartridge bankswitch does not use it; it remaps bank 2
// whole.
func (m *MachineBanks) SetBackingMem(bank int, mem []byte) {
	m.banks[bank].mem = mem
}

// SetWriteHandler swaps the write handler of a bank in place. Used by the
// backup RAM write protection latch.
func (m *MachineBanks) SetWriteHandler(bank int, write WriteHandler) {
	m.banks[bank].write = write
}

func (m *MachineBanks) Read8(addr uint32) uint8 {
	b := &m.banks[(addr>>20)&0xF]
	if b.read != nil {
		return uint8(b.read(addr, 1))
	}
	if b.mem != nil {
		return b.mem[addr&b.mask]
	}
	debugf("[MEM] unknown read8: %06x\n", addr)
	return 0xFF
}

func (m *MachineBanks) Read16(addr uint32) uint16 {
	b := &m.banks[(addr>>20)&0xF]
	if b.read != nil {
		return uint16(b.read(addr, 2))
	}
	if b.mem != nil {
		off := addr & b.mask
		return binary.BigEndian.Uint16(b.mem[off : off+2])
	}
	debugf("[MEM] unknown read16: %06x\n", addr)
	return 0xFFFF
}

func (m *MachineBanks) Read32(addr uint32) uint32 {
	b := &m.banks[(addr>>20)&0xF]
	if b.read != nil {
		// The guest bus performs two word transfers, upper half first.
		hi := b.read(addr, 2) & 0xFFFF
		lo := b.read(addr+2, 2) & 0xFFFF
		return hi<<16 | lo
	}
	if b.mem != nil {
		off := addr & b.mask
		if off+4 > uint32(len(b.mem)) {
			// Long access straddling the mirror boundary wraps.
			return uint32(m.Read16(addr))<<16 | uint32(m.Read16(addr+2))
		}
		return binary.BigEndian.Uint32(b.mem[off : off+4])
	}
	debugf("[MEM] unknown read32: %06x\n", addr)
	return 0xFFFFFFFF
}

func (m *MachineBanks) Write8(addr uint32, value uint8) {
	b := &m.banks[(addr>>20)&0xF]
	if b.write != nil {
		b.write(addr, uint32(value), 1)
		return
	}
	if b.mem != nil {
		b.mem[addr&b.mask] = value
		return
	}
	debugf("[MEM] unknown write8: %06x = %02x\n", addr, value)
}

func (m *MachineBanks) Write16(addr uint32, value uint16) {
	b := &m.banks[(addr>>20)&0xF]
	if b.write != nil {
		b.write(addr, uint32(value), 2)
		return
	}
	if b.mem != nil {
		off := addr & b.mask
		binary.BigEndian.PutUint16(b.mem[off:off+2], value)
		return
	}
	debugf("[MEM] unknown write16: %06x = %04x\n", addr, value)
}

func (m *MachineBanks) Write32(addr uint32, value uint32) {
	b := &m.banks[(addr>>20)&0xF]
	if b.write != nil {
		b.write(addr, value>>16, 2)
		b.write(addr+2, value&0xFFFF, 2)
		return
	}
	if b.mem != nil {
		off := addr & b.mask
		if off+4 > uint32(len(b.mem)) {
			m.Write16(addr, uint16(value>>16))
			m.Write16(addr+2, uint16(value))
			return
		}
		binary.BigEndian.PutUint32(b.mem[off:off+4], value)
		return
	}
	debugf("[MEM] unknown write32: %06x = %08x\n", addr, value)
}

// PeekRead16 reads without side effects, for the disassembler and the debug
// monitor. Handler banks return all-ones rather than triggering I/O.
func (m *MachineBanks) PeekRead16(addr uint32) uint16 {
	b := &m.banks[(addr>>20)&0xF]
	if b.mem != nil {
		off := addr & b.mask
		return binary.BigEndian.Uint16(b.mem[off : off+2])
	}
	return 0xFFFF
}

// PeekRead32 is PeekRead16's long cousin.
func (m *MachineBanks) PeekRead32(addr uint32) uint32 {
	b := &m.banks[(addr>>20)&0xF]
	if b.mem != nil {
		off := addr & b.mask
		return binary.BigEndian.Uint32(b.mem[off : off+4])
	}
	return 0xFFFFFFFF
}
