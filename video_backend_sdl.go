// video_backend_sdl.go - SDL2 platform backend for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
video_backend_sdl.go - SDL Backend

The SDL backend mirrors the reference platform layer this board was first
brought up on: one resizable window, a streaming ARGB texture scaled with
a fixed logical size, and the live keyboard state array. It runs entirely
on the emulation thread, so the frame fence is just the renderer's
present-vsync.
*/

package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

var sdlKeyMap = map[PlatKey]sdl.Scancode{
	PLAT_KEY_P1_UP:     sdl.SCANCODE_UP,
	PLAT_KEY_P1_DOWN:   sdl.SCANCODE_DOWN,
	PLAT_KEY_P1_LEFT:   sdl.SCANCODE_LEFT,
	PLAT_KEY_P1_RIGHT:  sdl.SCANCODE_RIGHT,
	PLAT_KEY_P1_A:      sdl.SCANCODE_Z,
	PLAT_KEY_P1_B:      sdl.SCANCODE_X,
	PLAT_KEY_P1_C:      sdl.SCANCODE_C,
	PLAT_KEY_P1_D:      sdl.SCANCODE_V,
	PLAT_KEY_P1_START:  sdl.SCANCODE_RETURN,
	PLAT_KEY_P1_SELECT: sdl.SCANCODE_RSHIFT,
	PLAT_KEY_COIN_1:    sdl.SCANCODE_1,
	PLAT_KEY_COIN_2:    sdl.SCANCODE_2,
	PLAT_KEY_COIN_3:    sdl.SCANCODE_3,
	PLAT_KEY_COIN_4:    sdl.SCANCODE_4,
	PLAT_KEY_SERVICE:   sdl.SCANCODE_0,
}

type SDLPlatform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	frame    *sdl.Texture

	backBuffer []uint16
	argb       []byte
	keystate   []uint8
	videoOn    bool
	quit       bool

	audio *SilencePlayer
}

func NewSDLPlatform() *SDLPlatform {
	return &SDLPlatform{
		backBuffer: make([]uint16, SCREEN_WIDTH*SCREEN_HEIGHT),
		argb:       make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4),
	}
}

func (sp *SDLPlatform) Init(audioHz, fps int) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return &PlatformError{Operation: "sdl init", Details: err.Error()}
	}
	sp.keystate = sdl.GetKeyboardState()

	audio, err := NewSilencePlayer(audioHz)
	if err != nil {
		fmt.Printf("audio unavailable: %v\n", err)
	}
	sp.audio = audio
	return nil
}

func (sp *SDLPlatform) EnableVideo(on bool) {
	if on && !sp.videoOn {
		var err error
		sp.window, err = sdl.CreateWindow("MVSEngine",
			sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			900, 900*3/4, sdl.WINDOW_RESIZABLE)
		if err != nil {
			fmt.Printf("sdl window: %v\n", err)
			return
		}
		sp.renderer, err = sdl.CreateRenderer(sp.window, -1, sdl.RENDERER_PRESENTVSYNC)
		if err != nil {
			fmt.Printf("sdl renderer: %v\n", err)
			return
		}
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "nearest")
		sp.renderer.SetLogicalSize(SCREEN_WIDTH, SCREEN_HEIGHT)

		sp.frame, err = sp.renderer.CreateTexture(
			sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
			SCREEN_WIDTH, SCREEN_HEIGHT)
		if err != nil {
			fmt.Printf("sdl texture: %v\n", err)
			return
		}
	} else if !on && sp.videoOn {
		if sp.frame != nil {
			sp.frame.Destroy()
			sp.frame = nil
		}
		if sp.renderer != nil {
			sp.renderer.Destroy()
			sp.renderer = nil
		}
		if sp.window != nil {
			sp.window.Destroy()
			sp.window = nil
		}
	}
	sp.videoOn = on
}

func (sp *SDLPlatform) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}
		}
	}
	return !sp.quit
}

func (sp *SDLPlatform) BeginFrame() ([]uint16, int) {
	return sp.backBuffer, SCREEN_WIDTH
}

func (sp *SDLPlatform) EndFrame() {
	if !sp.videoOn || sp.renderer == nil {
		return
	}
	for i, p := range sp.backBuffer {
		r := uint8(p >> 11 & 0x1F)
		g := uint8(p >> 6 & 0x1F)
		b := uint8(p >> 1 & 0x1F)
		sp.argb[i*4+0] = b<<3 | b>>2
		sp.argb[i*4+1] = g<<3 | g>>2
		sp.argb[i*4+2] = r<<3 | r>>2
		sp.argb[i*4+3] = 0xFF
	}
	sp.frame.Update(nil, sp.argb, SCREEN_WIDTH*4)
	sp.renderer.Clear()
	sp.renderer.Copy(sp.frame, nil, nil)
	sp.renderer.Present()
}

func (sp *SDLPlatform) KeyState(k PlatKey) bool {
	sc, ok := sdlKeyMap[k]
	if !ok || sp.keystate == nil {
		return false
	}
	return sp.keystate[sc] != 0
}

func (sp *SDLPlatform) SaveScreenshot(path string) error {
	return saveFrameBMP(path, sp.backBuffer, SCREEN_WIDTH)
}

func (sp *SDLPlatform) Close() {
	sp.EnableVideo(false)
	if sp.audio != nil {
		sp.audio.Close()
	}
	sdl.Quit()
}
