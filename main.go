// main.go - Entry point for the MVSEngine arcade emulator

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
)

func boilerPlate() {
	fmt.Println("MVSEngine - Neo Geo MVS arcade emulator")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/MVSEngine")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
}

func main() {
	backend := flag.String("backend", "ebiten", "video backend: ebiten, sdl, headless")
	frames := flag.Int("frames", 0, "stop after N frames (0 = run until quit)")
	monitor := flag.Bool("monitor", false, "attach the terminal debug monitor")
	debug := flag.Bool("debug", false, "verbose hardware diagnostics")
	approx := flag.Bool("approx-timing", false, "coarse per-instruction timing model")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <cartridge-dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	cartDir := flag.Arg(0)
	debugEnabled = *debug

	boilerPlate()

	roms, err := LoadROMSet(cartDir)
	if err != nil {
		fmt.Printf("Failed to load cartridge: %v\n", err)
		os.Exit(1)
	}
	defer roms.Close()

	plat, err := NewPlatform(*backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		os.Exit(1)
	}
	if err := plat.Init(44100, FPS); err != nil {
		fmt.Printf("Failed to initialize platform: %v\n", err)
		os.Exit(1)
	}
	defer plat.Close()
	plat.EnableVideo(true)

	engine := NewEngine(roms, plat)
	engine.cpu.SetApproximateTiming(*approx)

	if ep, ok := plat.(*EbitenPlatform); ok {
		ep.SetStatusFunc(engine.StatusLine)
	}

	hooks, err := LoadScriptHooks(engine, cartDir)
	if err != nil {
		fmt.Printf("Failed to load frame script: %v\n", err)
		os.Exit(1)
	}
	if hooks != nil {
		defer hooks.Close()
	}

	var mon *DebugMonitor
	if *monitor {
		if mon, err = NewDebugMonitor(); err != nil {
			fmt.Printf("Monitor unavailable: %v\n", err)
		} else {
			defer mon.Close()
		}
	}

	fmt.Printf("Starting %s\n", cartDir)

	for {
		if !plat.Poll() {
			break
		}
		if mon != nil && !mon.Gate(engine) {
			break
		}

		engine.RunFrame()
		pix, pitch := engine.RenderFrame()
		engine.NextFrame()

		if hooks != nil && !hooks.OnFrame(pix, pitch) {
			break
		}
		if *frames > 0 && engine.Frame() >= *frames {
			break
		}
	}

	fmt.Printf("Stopped: %s\n", engine.StatusLine())
}
