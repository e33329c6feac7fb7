// debug_monitor.go - Raw-mode terminal debug monitor for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
debug_monitor.go - Debug Monitor

Single-key control of a running engine from the launching terminal, for
poking at a misbehaving boot without a debugger build:

  p  pause / resume the frame loop
  s  step one frame while paused
  r  dump CPU registers and the engine status line
  d  disassemble a few instructions at the PC
  w  save a screenshot (monitor.bmp)
  q  quit

The terminal goes into raw mode so keys act immediately; the monitor
restores it on quit. Commands are a channel the frame loop drains at frame
boundaries, which keeps all engine access on the emulation thread.
*/

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

type DebugMonitor struct {
	fd       int
	oldState *term.State
	commands chan byte
	paused   bool
}

func NewDebugMonitor() (*DebugMonitor, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("monitor: stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	m := &DebugMonitor{
		fd:       fd,
		oldState: oldState,
		commands: make(chan byte, 8),
	}
	go m.readLoop()
	return m, nil
}

func (m *DebugMonitor) readLoop() {
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		m.commands <- buf[0]
	}
}

// Gate runs at each frame boundary: it applies pending commands and, while
// paused, blocks until a step or resume arrives. Returns false to quit.
func (m *DebugMonitor) Gate(e *Engine) bool {
	for {
		var cmd byte
		if m.paused {
			cmd = <-m.commands
		} else {
			select {
			case cmd = <-m.commands:
			default:
				return true
			}
		}

		switch cmd {
		case 'p':
			m.paused = !m.paused
			if m.paused {
				fmt.Printf("\r\n[MON] paused at %s\r\n", e.StatusLine())
			} else {
				fmt.Printf("\r\n[MON] resumed\r\n")
			}
		case 's':
			if m.paused {
				return true // run exactly one frame, Gate pauses again next time
			}
		case 'r':
			fmt.Printf("\r\n[MON] %s\r\n", e.StatusLine())
			e.cpu.DumpRegisters()
		case 'd':
			pc := e.cpu.PC
			fmt.Printf("\r\n")
			for i := 0; i < 8; i++ {
				text, n := DisassembleM68K(e.mem, pc)
				fmt.Printf("[MON] %06x  %s\r\n", pc, text)
				pc += n
			}
		case 'w':
			if err := e.plat.SaveScreenshot("monitor.bmp"); err != nil {
				fmt.Printf("\r\n[MON] screenshot failed: %v\r\n", err)
			} else {
				fmt.Printf("\r\n[MON] wrote monitor.bmp\r\n")
			}
		case 'q', 3: // q or Ctrl-C
			return false
		}

		if !m.paused {
			return true
		}
	}
}

// Close restores the terminal.
func (m *DebugMonitor) Close() {
	if m.oldState != nil {
		_ = term.Restore(m.fd, m.oldState)
	}
}
