// script_hooks.go - Lua frame-script hooks for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
script_hooks.go - Script Hooks

A cartridge directory may carry a test.lua next to the ROMs. When present
the engine calls its on_frame(frame) function after every rendered frame,
on the emulation thread, with these primitives registered:

  peek8(addr) / peek16(addr) / peek32(addr)   guest memory reads
  poke8(addr, v) / poke16(addr, v)            guest memory writes
  key(name, down)                             inject input ("p1_a", "coin_1", ...)
  pixel(x, y)                                 current frame pixel (R5G5B5A1)
  screenshot(path)                            save the current frame
  status()                                    engine status line
  stop()                                      end the run

This is the regression harness the packaging scripts use: boot, feed
coins, walk attract mode, assert pixels.
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

var scriptKeyNames = map[string]PlatKey{
	"p1_up":     PLAT_KEY_P1_UP,
	"p1_down":   PLAT_KEY_P1_DOWN,
	"p1_left":   PLAT_KEY_P1_LEFT,
	"p1_right":  PLAT_KEY_P1_RIGHT,
	"p1_a":      PLAT_KEY_P1_A,
	"p1_b":      PLAT_KEY_P1_B,
	"p1_c":      PLAT_KEY_P1_C,
	"p1_d":      PLAT_KEY_P1_D,
	"p1_start":  PLAT_KEY_P1_START,
	"p1_select": PLAT_KEY_P1_SELECT,
	"coin_1":    PLAT_KEY_COIN_1,
	"coin_2":    PLAT_KEY_COIN_2,
	"coin_3":    PLAT_KEY_COIN_3,
	"coin_4":    PLAT_KEY_COIN_4,
	"service":   PLAT_KEY_SERVICE,
}

type ScriptHooks struct {
	L       *lua.LState
	e       *Engine
	frame   []uint16
	pitch   int
	stopped bool
}

// LoadScriptHooks loads test.lua from the cartridge directory, returning
// nil (no error) when there is none.
func LoadScriptHooks(e *Engine, dir string) (*ScriptHooks, error) {
	path := filepath.Join(dir, "test.lua")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	h := &ScriptHooks{L: lua.NewState(), e: e}
	h.register()
	if err := h.L.DoFile(path); err != nil {
		h.L.Close()
		return nil, fmt.Errorf("test.lua: %w", err)
	}
	fmt.Printf("loaded frame script %s\n", path)
	return h, nil
}

func (h *ScriptHooks) register() {
	L := h.L

	L.SetGlobal("peek8", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.e.mem.Read8(uint32(L.CheckInt64(1)))))
		return 1
	}))
	L.SetGlobal("peek16", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.e.mem.Read16(uint32(L.CheckInt64(1)))))
		return 1
	}))
	L.SetGlobal("peek32", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(h.e.mem.Read32(uint32(L.CheckInt64(1)))))
		return 1
	}))
	L.SetGlobal("poke8", L.NewFunction(func(L *lua.LState) int {
		h.e.mem.Write8(uint32(L.CheckInt64(1)), uint8(L.CheckInt64(2)))
		return 0
	}))
	L.SetGlobal("poke16", L.NewFunction(func(L *lua.LState) int {
		h.e.mem.Write16(uint32(L.CheckInt64(1)), uint16(L.CheckInt64(2)))
		return 0
	}))
	L.SetGlobal("key", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		down := L.ToBool(2)
		k, ok := scriptKeyNames[name]
		if !ok {
			L.RaiseError("unknown key %q", name)
		}
		setter, ok := h.e.plat.(keySettable)
		if !ok {
			L.RaiseError("platform does not accept injected keys")
		}
		setter.SetKey(k, down)
		return 0
	}))
	L.SetGlobal("pixel", L.NewFunction(func(L *lua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		if h.frame == nil || x < 0 || x >= SCREEN_WIDTH || y < 0 || y >= SCREEN_HEIGHT {
			L.Push(lua.LNumber(-1))
			return 1
		}
		L.Push(lua.LNumber(h.frame[y*h.pitch+x]))
		return 1
	}))
	L.SetGlobal("screenshot", L.NewFunction(func(L *lua.LState) int {
		if err := h.e.plat.SaveScreenshot(L.CheckString(1)); err != nil {
			L.RaiseError("screenshot: %v", err)
		}
		return 0
	}))
	L.SetGlobal("status", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(h.e.StatusLine()))
		return 1
	}))
	L.SetGlobal("stop", L.NewFunction(func(L *lua.LState) int {
		h.stopped = true
		return 0
	}))
}

// OnFrame calls the script's on_frame hook. Returns false when the script
// asked to stop.
func (h *ScriptHooks) OnFrame(frame []uint16, pitch int) bool {
	h.frame = frame
	h.pitch = pitch

	fn := h.L.GetGlobal("on_frame")
	if fn == lua.LNil {
		return !h.stopped
	}
	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
		lua.LNumber(h.e.Frame())); err != nil {
		fmt.Fprintf(os.Stderr, "test.lua: on_frame: %v\n", err)
		return false
	}
	return !h.stopped
}

// Close tears down the lua state.
func (h *ScriptHooks) Close() {
	if h.L != nil {
		h.L.Close()
	}
}
