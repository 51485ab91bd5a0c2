package composer

import (
	"fmt"
	"slices"
)

// Mode is the composer's primary state.
type Mode string

const (
	Idle           Mode = "IDLE"
	RecordingAudio Mode = "RECORDING_AUDIO"
	RecordingVideo Mode = "RECORDING_VIDEO"
	CreatingPoll   Mode = "CREATING_POLL"
)

// validTransitions defines allowed mode changes. Every action ends in Idle.
var validTransitions = map[Mode][]Mode{
	Idle:           {RecordingAudio, RecordingVideo, CreatingPoll},
	RecordingAudio: {Idle},
	RecordingVideo: {Idle},
	CreatingPoll:   {Idle},
}

// ModeChange is the payload of bus.ComposerModeChanged.
type ModeChange struct {
	From Mode
	To   Mode
}

// Recording reports whether m is one of the recording modes.
func (m Mode) Recording() bool {
	return m == RecordingAudio || m == RecordingVideo
}

// transition moves to the next mode. Callers hold c.mu.
func (c *Composer) transition(to Mode) (ModeChange, error) {
	if !slices.Contains(validTransitions[c.mode], to) {
		return ModeChange{}, fmt.Errorf("invalid transition from %s to %s", c.mode, to)
	}
	change := ModeChange{From: c.mode, To: to}
	c.mode = to
	return change, nil
}
