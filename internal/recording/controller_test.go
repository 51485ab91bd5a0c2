package recording

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeDevice hands out in-memory streams and remembers what it was asked for.
type fakeDevice struct {
	mu      sync.Mutex
	err     error
	stopErr error
	opened  []Constraints
	streams []*fakeStream
	chunks  [][]byte
}

func (d *fakeDevice) Open(_ context.Context, c Constraints) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.opened = append(d.opened, c)
	s := &fakeStream{ch: make(chan []byte, len(d.chunks)+1), err: d.stopErr}
	for _, chunk := range d.chunks {
		s.ch <- chunk
	}
	d.streams = append(d.streams, s)
	return s, nil
}

type fakeStream struct {
	ch      chan []byte
	err     error
	stopped int
}

func (s *fakeStream) Chunks() <-chan []byte { return s.ch }

func (s *fakeStream) Stop() error {
	s.stopped++
	if s.stopped > 1 {
		return nil
	}
	if s.err != nil {
		close(s.ch)
		return s.err
	}
	s.ch <- []byte("tail")
	close(s.ch)
	return nil
}

func newController(t *testing.T, dev Device, b *bus.Bus, interval time.Duration) *Controller {
	t.Helper()
	blobs, err := media.NewBlobs(t.TempDir())
	require.NoError(t, err)
	return NewController(dev, blobs, b, nil, interval)
}

func TestStartStopProducesArtifact(t *testing.T) {
	dev := &fakeDevice{chunks: [][]byte{[]byte("head-"), {}, []byte("body-")}}
	c := newController(t, dev, nil, time.Hour)

	require.NoError(t, c.Start(context.Background(), Audio))
	kind, active := c.Active()
	assert.True(t, active)
	assert.Equal(t, Audio, kind)

	art, stopped, err := c.Stop()
	require.NoError(t, err)
	require.True(t, stopped)
	assert.Equal(t, Audio, art.Kind)
	assert.Equal(t, "audio/webm", art.MIMEType)
	assert.Equal(t, int64(len("head-body-tail")), art.Size)
	assert.Equal(t, 0, art.Duration)
	assert.Equal(t, 1, dev.streams[0].stopped)

	_, active = c.Active()
	assert.False(t, active)
}

func TestVideoRequestsCamera(t *testing.T) {
	dev := &fakeDevice{}
	c := newController(t, dev, nil, time.Hour)

	require.NoError(t, c.Start(context.Background(), Video))
	art, _, err := c.Stop()
	require.NoError(t, err)
	assert.Equal(t, []Constraints{{Audio: true, Video: true}}, dev.opened)
	assert.Equal(t, "video/webm", art.MIMEType)
}

func TestClockTicksAndResets(t *testing.T) {
	b := bus.New()
	ticks, unsub := b.Subscribe(bus.RecordingTick, 16)
	defer unsub()

	c := newController(t, &fakeDevice{}, b, 10*time.Millisecond)
	require.NoError(t, c.Start(context.Background(), Audio))

	for want := 1; want <= 2; want++ {
		select {
		case evt := <-ticks:
			tick := evt.Payload.(Tick)
			assert.Equal(t, want, tick.Elapsed)
		case <-time.After(time.Second):
			t.Fatalf("no tick %d", want)
		}
	}

	art, _, err := c.Stop()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, art.Duration, 2)
	assert.Equal(t, 0, c.Elapsed())
}

func TestSecondStartIsBusy(t *testing.T) {
	dev := &fakeDevice{}
	c := newController(t, dev, nil, time.Hour)

	require.NoError(t, c.Start(context.Background(), Audio))
	assert.ErrorIs(t, c.Start(context.Background(), Video), ErrBusy)
	assert.Len(t, dev.opened, 1)

	_, _, err := c.Stop()
	require.NoError(t, err)
}

func TestDeviceFailureEntersNoSession(t *testing.T) {
	dev := &fakeDevice{err: errors.New("permission denied")}
	c := newController(t, dev, nil, time.Hour)

	err := c.Start(context.Background(), Audio)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	_, active := c.Active()
	assert.False(t, active)
}

func TestFailedCaptureWithoutDataHasNoArtifact(t *testing.T) {
	b := bus.New()
	stops, unsub := b.Subscribe(bus.RecordingStopped, 1)
	defer unsub()
	dev := &fakeDevice{stopErr: ErrCaptureFailed}
	c := newController(t, dev, b, time.Hour)

	require.NoError(t, c.Start(context.Background(), Video))
	art, stopped, err := c.Stop()
	assert.True(t, stopped)
	assert.Nil(t, art)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.ErrorIs(t, err, ErrCaptureFailed)
	assert.Empty(t, stops)

	_, active := c.Active()
	assert.False(t, active)
}

func TestFailedCaptureKeepsRecordedData(t *testing.T) {
	dev := &fakeDevice{chunks: [][]byte{[]byte("partial")}, stopErr: ErrCaptureFailed}
	c := newController(t, dev, nil, time.Hour)

	require.NoError(t, c.Start(context.Background(), Audio))
	art, _, err := c.Stop()
	require.NoError(t, err)
	assert.Equal(t, int64(len("partial")), art.Size)
}

func TestStopWithoutSessionIsNoop(t *testing.T) {
	c := newController(t, &fakeDevice{}, nil, time.Hour)

	art, stopped, err := c.Stop()
	assert.NoError(t, err)
	assert.False(t, stopped)
	assert.Nil(t, art)

	// Twice in a row as well.
	_, stopped, _ = c.Stop()
	assert.False(t, stopped)
}

func TestExecDeviceMissingBinary(t *testing.T) {
	dev := &ExecDevice{AudioCommand: []string{"mockchat-no-such-recorder"}}
	_, err := dev.Open(context.Background(), Constraints{Audio: true})
	assert.Error(t, err)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh unavailable")
	}
}

func TestExecDeviceEarlyExitIsUnavailable(t *testing.T) {
	requireShell(t)
	dev := &ExecDevice{
		AudioCommand:  []string{"sh", "-c", "echo 'no such device' >&2; exit 1"},
		StartupWindow: 5 * time.Second,
	}
	c := newController(t, dev, nil, time.Hour)

	err := c.Start(context.Background(), Audio)
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.ErrorIs(t, err, ErrCaptureFailed)
	assert.Contains(t, err.Error(), "no such device")
	_, active := c.Active()
	assert.False(t, active)
}

func TestExecDeviceSilentExitIsUnavailable(t *testing.T) {
	requireShell(t)
	dev := &ExecDevice{AudioCommand: []string{"sh", "-c", "exit 0"}, StartupWindow: 5 * time.Second}
	_, err := dev.Open(context.Background(), Constraints{Audio: true})
	assert.ErrorIs(t, err, ErrCaptureFailed)
}

func TestExecDeviceDyingAfterStartFailsStop(t *testing.T) {
	requireShell(t)
	dev := &ExecDevice{
		AudioCommand:  []string{"sh", "-c", "sleep 0.2; echo 'device lost' >&2; exit 3"},
		StartupWindow: 10 * time.Millisecond,
	}
	stream, err := dev.Open(context.Background(), Constraints{Audio: true})
	require.NoError(t, err)

	for range stream.Chunks() {
		t.Fatal("unexpected output")
	}
	err = stream.Stop()
	assert.ErrorIs(t, err, ErrCaptureFailed)
	assert.Contains(t, err.Error(), "device lost")
}

func TestExecDeviceStreamsOutput(t *testing.T) {
	dev := &ExecDevice{AudioCommand: []string{"sh", "-c", "printf captured"}, ChunkSize: 4}
	stream, err := dev.Open(context.Background(), Constraints{Audio: true})
	if err != nil {
		t.Skipf("sh unavailable: %v", err)
	}

	var got []byte
	for chunk := range stream.Chunks() {
		got = append(got, chunk...)
	}
	require.NoError(t, stream.Stop())
	assert.Equal(t, "captured", string(got))
}
