// platform.go - Host platform adapter surface for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
platform.go - Platform Adapter

The engine's only view of the host: a frame buffer to draw into, a key
state array, an event pump and a screenshot sink. Three backends implement
it - ebiten (default workstation build), SDL (mirrors the original
platform layer), and headless (tests, scripted runs, CI).

The frame hand-off is a one-frame fence: BeginFrame returns the back
buffer, EndFrame publishes it to the presentation side and blocks until
the previous frame has been consumed, which is what paces the emulation to
the host display (the headless backend has no presentation side and its
EndFrame returns at once). The presentation side never touches guest memory; it
only ever sees published frames.
*/

package main

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"
)

type Platform interface {
	Init(audioHz, fps int) error
	Poll() bool
	EnableVideo(on bool)
	BeginFrame() (pix []uint16, pitch int)
	EndFrame()
	SaveScreenshot(path string) error
	KeyState(k PlatKey) bool
	Close()
}

// PlatformError carries the failing operation the way the video backends
// report errors.
type PlatformError struct {
	Operation string
	Details   string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform: %s: %s", e.Operation, e.Details)
}

// NewPlatform selects a backend by name.
func NewPlatform(backend string) (Platform, error) {
	switch backend {
	case "ebiten":
		return NewEbitenPlatform(), nil
	case "sdl":
		return NewSDLPlatform(), nil
	case "headless":
		return NewHeadlessPlatform(), nil
	}
	return nil, &PlatformError{Operation: "backend creation",
		Details: fmt.Sprintf("unknown backend %q", backend)}
}

// keySettable is implemented by backends that accept injected key state
// (the script hooks drive input through this).
type keySettable interface {
	SetKey(k PlatKey, down bool)
}

// frameToImage expands an R5G5B5A1 frame into an 8-bit RGBA image.
func frameToImage(frame []uint16, pitch int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SCREEN_WIDTH, SCREEN_HEIGHT))
	for y := 0; y < SCREEN_HEIGHT; y++ {
		for x := 0; x < SCREEN_WIDTH; x++ {
			p := frame[y*pitch+x]
			r := uint8(p >> 11 & 0x1F)
			g := uint8(p >> 6 & 0x1F)
			b := uint8(p >> 1 & 0x1F)
			o := img.PixOffset(x, y)
			img.Pix[o+0] = r<<3 | r>>2
			img.Pix[o+1] = g<<3 | g>>2
			img.Pix[o+2] = b<<3 | b>>2
			img.Pix[o+3] = 0xFF
		}
	}
	return img
}

// saveFrameBMP writes a frame as a BMP file, the format the original tool
// chain expects for screenshot comparison.
func saveFrameBMP(path string, frame []uint16, pitch int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bmp.Encode(f, frameToImage(frame, pitch))
}
