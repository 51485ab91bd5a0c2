package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("message.", 10)
	defer unsub()

	b.Emit(MessageAppended, "payload")

	select {
	case evt := <-ch:
		if evt.Kind != MessageAppended {
			t.Errorf("got kind %q, want %s", evt.Kind, MessageAppended)
		}
		if evt.Timestamp.IsZero() {
			t.Error("timestamp not stamped on publish")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("recording.", 10)
	defer unsub()

	b.Emit(PollVoted, nil)
	b.Emit(RecordingTick, 1)

	select {
	case evt := <-ch:
		if evt.Kind != RecordingTick {
			t.Errorf("got kind %q, want %s", evt.Kind, RecordingTick)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("composer.", 10)
	unsub()
	unsub() // second call is harmless

	b.Emit(ComposerModeChanged, nil)

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("recording.", 1)
	defer unsub()

	b.Emit(RecordingTick, 1)
	// Dropped, buffer is full.
	b.Emit(RecordingTick, 2)

	evt := <-ch
	if evt.Payload != 1 {
		t.Errorf("got payload %v, want 1", evt.Payload)
	}
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var b *Bus
	b.Emit(MessageAppended, nil)
}
