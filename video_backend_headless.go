// video_backend_headless.go - Headless platform backend for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
video_backend_headless.go - Headless Backend

No window, no audio, no pacing: frames render into a buffer that tests and
scripted runs inspect. Key state is injected (the lua hooks use SetKey),
and Poll always says keep going; the caller decides when to stop.
*/

package main

type HeadlessPlatform struct {
	backBuffer []uint16
	keys       [PLAT_KEY_MAX]bool
	frames     int
}

func NewHeadlessPlatform() *HeadlessPlatform {
	return &HeadlessPlatform{
		backBuffer: make([]uint16, SCREEN_WIDTH*SCREEN_HEIGHT),
	}
}

func (hp *HeadlessPlatform) Init(audioHz, fps int) error { return nil }

func (hp *HeadlessPlatform) Poll() bool { return true }

func (hp *HeadlessPlatform) EnableVideo(on bool) {}

func (hp *HeadlessPlatform) BeginFrame() ([]uint16, int) {
	return hp.backBuffer, SCREEN_WIDTH
}

func (hp *HeadlessPlatform) EndFrame() {
	hp.frames++
}

func (hp *HeadlessPlatform) KeyState(k PlatKey) bool {
	return hp.keys[k]
}

// SetKey injects key state; the script hooks drive input through this.
func (hp *HeadlessPlatform) SetKey(k PlatKey, down bool) {
	hp.keys[k] = down
}

func (hp *HeadlessPlatform) SaveScreenshot(path string) error {
	return saveFrameBMP(path, hp.backBuffer, SCREEN_WIDTH)
}

func (hp *HeadlessPlatform) Close() {}

// Frame returns the last rendered frame for inspection.
func (hp *HeadlessPlatform) Frame() []uint16 {
	return hp.backBuffer
}
