// video_backend_ebiten.go - Ebiten platform backend for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
video_backend_ebiten.go - Ebiten Backend

The default workstation backend: a pure-Go window with vsync pacing.
Ebiten owns its own goroutine and render loop; the emulation thread
publishes finished frames through a mutex-guarded front buffer and blocks
in EndFrame on the vsync channel that Draw signals, which is the one-frame
fence between the two.

Keyboard handling polls ebiten's key state each Update into the engine's
key array. F11 toggles fullscreen, F12 saves screen.bmp in the working
directory, and Ctrl+Shift+C copies the engine status line to the host
clipboard.
*/

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

var ebitenKeyMap = map[PlatKey]ebiten.Key{
	PLAT_KEY_P1_UP:     ebiten.KeyArrowUp,
	PLAT_KEY_P1_DOWN:   ebiten.KeyArrowDown,
	PLAT_KEY_P1_LEFT:   ebiten.KeyArrowLeft,
	PLAT_KEY_P1_RIGHT:  ebiten.KeyArrowRight,
	PLAT_KEY_P1_A:      ebiten.KeyZ,
	PLAT_KEY_P1_B:      ebiten.KeyX,
	PLAT_KEY_P1_C:      ebiten.KeyC,
	PLAT_KEY_P1_D:      ebiten.KeyV,
	PLAT_KEY_P1_START:  ebiten.KeyEnter,
	PLAT_KEY_P1_SELECT: ebiten.KeyShiftRight,
	PLAT_KEY_COIN_1:    ebiten.KeyDigit1,
	PLAT_KEY_COIN_2:    ebiten.KeyDigit2,
	PLAT_KEY_COIN_3:    ebiten.KeyDigit3,
	PLAT_KEY_COIN_4:    ebiten.KeyDigit4,
	PLAT_KEY_SERVICE:   ebiten.KeyDigit0,
}

type EbitenPlatform struct {
	mu         sync.Mutex
	backBuffer []uint16
	front      []uint16
	keys       [PLAT_KEY_MAX]bool
	rgba       []byte
	window     *ebiten.Image

	running    bool
	closed     bool
	videoOn    bool
	fullscreen bool
	vsyncChan  chan struct{}

	audio  *SilencePlayer
	status func() string

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{
		backBuffer: make([]uint16, SCREEN_WIDTH*SCREEN_HEIGHT),
		front:      make([]uint16, SCREEN_WIDTH*SCREEN_HEIGHT),
		rgba:       make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4),
		vsyncChan:  make(chan struct{}, 1),
	}
}

// SetStatusFunc installs the status line source for the clipboard copy
// shortcut.
func (ep *EbitenPlatform) SetStatusFunc(fn func() string) {
	ep.status = fn
}

func (ep *EbitenPlatform) Init(audioHz, fps int) error {
	audio, err := NewSilencePlayer(audioHz)
	if err != nil {
		// Audio is best-effort; vsync still paces us.
		fmt.Printf("audio unavailable: %v\n", err)
	}
	ep.audio = audio
	return nil
}

func (ep *EbitenPlatform) EnableVideo(on bool) {
	ep.videoOn = on
	if !on || ep.running {
		return
	}
	ep.running = true

	ebiten.SetWindowSize(SCREEN_WIDTH*3, SCREEN_HEIGHT*3)
	ebiten.SetWindowTitle("MVSEngine (c) 2024 - 2026 Zayn Otley")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(ep); err != nil {
			ep.mu.Lock()
			ep.closed = true
			ep.mu.Unlock()
		}
	}()
}

func (ep *EbitenPlatform) Poll() bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return !ep.closed
}

func (ep *EbitenPlatform) BeginFrame() ([]uint16, int) {
	return ep.backBuffer, SCREEN_WIDTH
}

func (ep *EbitenPlatform) EndFrame() {
	ep.mu.Lock()
	copy(ep.front, ep.backBuffer)
	closed := ep.closed
	ep.mu.Unlock()

	if ep.running && !closed {
		<-ep.vsyncChan
	}
}

func (ep *EbitenPlatform) KeyState(k PlatKey) bool {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return ep.keys[k]
}

func (ep *EbitenPlatform) SaveScreenshot(path string) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return saveFrameBMP(path, ep.front, SCREEN_WIDTH)
}

func (ep *EbitenPlatform) Close() {
	ep.mu.Lock()
	ep.closed = true
	ep.mu.Unlock()
	if ep.audio != nil {
		ep.audio.Close()
	}
}

// Update runs on the ebiten goroutine: sample the keyboard and handle the
// hotkeys.
func (ep *EbitenPlatform) Update() error {
	if ebiten.IsWindowBeingClosed() {
		ep.mu.Lock()
		ep.closed = true
		ep.mu.Unlock()
		return ebiten.Termination
	}

	ep.mu.Lock()
	for k, ek := range ebitenKeyMap {
		ep.keys[k] = ebiten.IsKeyPressed(ek)
	}
	ep.mu.Unlock()

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ep.fullscreen = !ep.fullscreen
		ebiten.SetFullscreen(ep.fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := ep.SaveScreenshot("screen.bmp"); err != nil {
			fmt.Printf("screenshot failed: %v\n", err)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		ep.copyStatusToClipboard()
	}
	return nil
}

func (ep *EbitenPlatform) copyStatusToClipboard() {
	if ep.status == nil {
		return
	}
	ep.clipboardOnce.Do(func() {
		ep.clipboardOK = clipboard.Init() == nil
	})
	if !ep.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(ep.status()))
}

// Draw publishes the front buffer to the screen and signals the vsync
// fence.
func (ep *EbitenPlatform) Draw(screen *ebiten.Image) {
	if ep.window == nil {
		ep.window = ebiten.NewImage(SCREEN_WIDTH, SCREEN_HEIGHT)
	}

	ep.mu.Lock()
	for i, p := range ep.front {
		r := uint8(p >> 11 & 0x1F)
		g := uint8(p >> 6 & 0x1F)
		b := uint8(p >> 1 & 0x1F)
		ep.rgba[i*4+0] = r<<3 | r>>2
		ep.rgba[i*4+1] = g<<3 | g>>2
		ep.rgba[i*4+2] = b<<3 | b>>2
		ep.rgba[i*4+3] = 0xFF
	}
	ep.mu.Unlock()

	ep.window.WritePixels(ep.rgba)
	screen.DrawImage(ep.window, nil)

	select {
	case ep.vsyncChan <- struct{}{}:
	default:
	}
}

func (ep *EbitenPlatform) Layout(_, _ int) (int, int) {
	return SCREEN_WIDTH, SCREEN_HEIGHT
}
