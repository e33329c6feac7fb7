// sprite_cache.go - Demand-loaded sprite tile cache for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
sprite_cache.go - Sprite Tile Cache

Tile pixel data streams from the cartridge files on demand: the fix layer
uses 32-byte 8x8 tiles and the sprite layer 128-byte 16x16 tiles, far more
of them than fit in working memory on the embedded target. The cache holds
a fixed number of tiles in a contiguous pixel arena and finds them through
an open-addressed hash table with Robin Hood displacement: on insert,
whenever the resident record is closer to its home slot than the one being
inserted, the two swap and the displaced record continues probing. That
bounds probe length tightly even at high load, and the table is sized at
twice the next power of two at or above the tile count so the load factor
never exceeds one half.

Eviction is deliberately not strict LRU. Tick() advances an 8-bit frame
counter; when an insert finds no free pixel slot, the cache walks the table
from a pseudo-random start removing entries whose last-use tick is older
than a cutoff, then broadens the cutoff and walks again until occupancy is
down to two thirds of capacity. Amortised constant insertion matters more
than exact recency ordering here. A cache where nothing is old enough to
evict is undersized for the frame working set, which is a fatal sizing bug
rather than a recoverable state.
*/

package main

import "fmt"

const spriteCacheHashMul = 2654435761 // Knuth's golden ratio multiplier

// spriteCacheSlot is one hash table slot. pixel == -1 marks an empty slot;
// Reset relies on that sentinel rather than zeroing keys.
type spriteCacheSlot struct {
	key      uint32
	lastTick uint8
	pixel    int32
}

type SpriteCache struct {
	spriteSize int
	maxSprites int
	tableMask  uint32
	table      []spriteCacheSlot
	pixels     []byte
	freeSlots  []int32
	occupied   int
	curTick    uint8
	rng        uint32
}

// NewSpriteCache builds a cache for maxSprites tiles of spriteSize bytes.
func NewSpriteCache(spriteSize, maxSprites int) *SpriteCache {
	// Twice the next power of two at or above the sprite count.
	n := uint32(maxSprites - 1)
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	n *= 2

	c := &SpriteCache{
		spriteSize: spriteSize,
		maxSprites: maxSprites,
		tableMask:  n - 1,
		table:      make([]spriteCacheSlot, n),
		pixels:     make([]byte, spriteSize*maxSprites),
		freeSlots:  make([]int32, 0, maxSprites),
		rng:        0x2545F491,
	}
	c.Reset()
	return c
}

// Reset invalidates every entry and returns all pixel slots to the free
// stack.
func (c *SpriteCache) Reset() {
	for i := range c.table {
		c.table[i] = spriteCacheSlot{pixel: -1}
	}
	c.freeSlots = c.freeSlots[:0]
	for i := c.maxSprites - 1; i >= 0; i-- {
		c.freeSlots = append(c.freeSlots, int32(i))
	}
	c.occupied = 0
}

// Tick advances the frame counter used for the eviction cutoff. Call once
// per frame.
func (c *SpriteCache) Tick() {
	c.curTick++
}

func (c *SpriteCache) home(key uint32) uint32 {
	return (key * spriteCacheHashMul) & c.tableMask
}

// probeDistance is how far idx sits from the key's home slot.
func (c *SpriteCache) probeDistance(key uint32, idx uint32) uint32 {
	return (idx - c.home(key)) & c.tableMask
}

func (c *SpriteCache) slotPixels(pixel int32) []byte {
	off := int(pixel) * c.spriteSize
	return c.pixels[off : off+c.spriteSize]
}

// Lookup returns the pixel data for a tile key, or nil on a miss. A hit
// refreshes the entry's tick so the eviction pass skips it.
func (c *SpriteCache) Lookup(key uint32) []byte {
	idx := c.home(key)
	for dist := uint32(0); ; dist++ {
		s := &c.table[idx]
		if s.pixel < 0 {
			return nil
		}
		if s.key == key {
			s.lastTick = c.curTick
			return c.slotPixels(s.pixel)
		}
		// Robin Hood invariant: a resident closer to home than our probe
		// distance means the key cannot be further along.
		if c.probeDistance(s.key, idx) < dist {
			return nil
		}
		idx = (idx + 1) & c.tableMask
	}
}

// Insert claims a pixel slot for a new tile key and returns it for the
// caller to fill. Panics if eviction cannot make room: that means the
// cache is undersized for the frame working set.
func (c *SpriteCache) Insert(key uint32) []byte {
	if len(c.freeSlots) == 0 {
		c.evict()
		if len(c.freeSlots) == 0 {
			panic(fmt.Sprintf("sprite cache exhausted: %d tiles all used this frame", c.maxSprites))
		}
	}

	pixel := c.freeSlots[len(c.freeSlots)-1]
	c.freeSlots = c.freeSlots[:len(c.freeSlots)-1]
	c.occupied++

	ins := spriteCacheSlot{key: key, lastTick: c.curTick, pixel: pixel}
	idx := c.home(key)
	dist := uint32(0)
	for {
		s := &c.table[idx]
		if s.pixel < 0 {
			*s = ins
			return c.slotPixels(pixel)
		}
		if rd := c.probeDistance(s.key, idx); rd < dist {
			// The resident is richer; displace it and keep probing.
			ins, *s = *s, ins
			dist = rd
		}
		idx = (idx + 1) & c.tableMask
		dist++
	}
}

// removeAt deletes the entry at idx with backward-shift so the probe
// chains stay contiguous.
func (c *SpriteCache) removeAt(idx uint32) {
	c.freeSlots = append(c.freeSlots, c.table[idx].pixel)
	c.occupied--
	for {
		next := (idx + 1) & c.tableMask
		s := &c.table[next]
		if s.pixel < 0 || c.probeDistance(s.key, next) == 0 {
			c.table[idx] = spriteCacheSlot{pixel: -1}
			return
		}
		c.table[idx] = *s
		idx = next
	}
}

// evict removes stale entries until occupancy is down to two thirds of
// capacity, starting with entries at least two ticks old and broadening
// the cutoff if a pass does not free enough.
func (c *SpriteCache) evict() {
	target := c.maxSprites * 2 / 3

	for cutoff := uint8(1); ; cutoff-- {
		idx := c.nextRand() & c.tableMask
		visited := uint32(0)
		for visited <= c.tableMask && c.occupied > target {
			s := &c.table[idx]
			if s.pixel >= 0 && c.curTick-s.lastTick > cutoff {
				// The backward shift may pull another stale entry into
				// idx, so do not advance past it.
				c.removeAt(idx)
				continue
			}
			idx = (idx + 1) & c.tableMask
			visited++
		}
		if c.occupied <= target || cutoff == 0 {
			return
		}
	}
}

// nextRand is a xorshift32 step; eviction only needs a scattered start
// point, not quality randomness.
func (c *SpriteCache) nextRand() uint32 {
	x := c.rng
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	c.rng = x
	return x
}

// Occupied reports the live entry count, for tests and diagnostics.
func (c *SpriteCache) Occupied() int {
	return c.occupied
}
