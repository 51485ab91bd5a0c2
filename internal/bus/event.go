package bus

import "time"

// Event kinds published by mockchat components.
const (
	MessageAppended     = "message.appended"
	PollVoted           = "poll.voted"
	ComposerModeChanged = "composer.mode_changed"
	RecordingTick       = "recording.tick"
	RecordingStopped    = "recording.stopped"
)

// Event is a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
