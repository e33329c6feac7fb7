// audio_silence.go - Silent host audio stream for the sound board stub

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

package main

import (
	"github.com/ebitengine/oto/v3"
)

// SilencePlayer keeps a real audio stream open on the host even though
// the sound board is stubbed: some hosts only deliver steady vsync when
// an audio clock is running, and a future Z80 core slots in here without
// touching the platform layer.
type SilencePlayer struct {
	ctx    *oto.Context
	player *oto.Player
}

// Read feeds the device zeros.
func (sp *SilencePlayer) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func NewSilencePlayer(sampleRate int) (*SilencePlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	sp := &SilencePlayer{ctx: ctx}
	sp.player = ctx.NewPlayer(sp)
	sp.player.Play()
	return sp, nil
}

func (sp *SilencePlayer) Close() {
	if sp.player != nil {
		sp.player.Close()
		sp.player = nil
	}
}
