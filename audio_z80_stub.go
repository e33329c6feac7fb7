// audio_z80_stub.go - Z80 sound board stub for MVSEngine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MVSEngine
License: GPLv3 or later
*/

/*
audio_z80_stub.go - Sound Board Stub

The real board has a Z80 with an FM/SSG chip behind a command latch at
0x320000. This engine does not synthesise audio: the stub accepts the
commands, always reports ready, and feeds silence to the host audio
device. Keeping a real audio stream open matters even for silence - the
host mixer's clock is what EndFrame paces against when vsync is not
available.
*/

package main

// SoundStub latches sound commands and answers status reads.
type SoundStub struct {
	lastCommand uint8
	commands    uint64
}

func NewSoundStub() *SoundStub {
	return &SoundStub{}
}

// Command receives a byte from the 68k side of the latch.
func (s *SoundStub) Command(cmd uint8) {
	debugf("[HWIO] send Z80 command: %02x\n", cmd)
	s.lastCommand = cmd
	s.commands++
}

// ReadReply reports the Z80 as ready.
func (s *SoundStub) ReadReply() uint8 {
	debugf("[HWIO] read Z80 command\n")
	return 1
}

// LastCommand exposes the latch for tests and the debug monitor.
func (s *SoundStub) LastCommand() uint8 {
	return s.lastCommand
}
