// Package recording captures voice and video notes.
package recording

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/media"
	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a capture session is already running.
	ErrBusy = errors.New("recording already in progress")
	// ErrDeviceUnavailable wraps failures to acquire the capture device.
	ErrDeviceUnavailable = errors.New("capture device unavailable")
)

// Kind is the type of note being recorded.
type Kind string

const (
	Audio Kind = "audio"
	Video Kind = "video"
)

func (k Kind) constraints() Constraints {
	return Constraints{Audio: true, Video: k == Video}
}

func (k Kind) fallbackMIME() string {
	if k == Video {
		return "video/webm"
	}
	return "audio/webm"
}

// Artifact is the result of a finished recording.
type Artifact struct {
	Kind     Kind
	URL      string
	MIMEType string
	Size     int64
	Duration int
}

// Tick is the payload of bus.RecordingTick.
type Tick struct {
	Kind    Kind
	Elapsed int
}

// BlobStore keeps finished recordings.
type BlobStore interface {
	Put(data []byte, fallbackMIME string) (media.Blob, error)
}

// Controller runs at most one capture session at a time.
type Controller struct {
	device   Device
	blobs    BlobStore
	bus      *bus.Bus
	logger   *zap.Logger
	interval time.Duration

	mu      sync.Mutex
	session *session
	elapsed int
}

type session struct {
	kind    Kind
	stream  Stream
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	chunks  [][]byte
	chunkMu sync.Mutex
}

// NewController creates a controller. interval is the clock tick; zero
// means one second.
func NewController(device Device, blobs BlobStore, b *bus.Bus, logger *zap.Logger, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		device:   device,
		blobs:    blobs,
		bus:      b,
		logger:   logger,
		interval: interval,
	}
}

// Start acquires the device and begins capturing. On failure no session is
// entered.
func (c *Controller) Start(ctx context.Context, kind Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return ErrBusy
	}

	stream, err := c.device.Open(ctx, kind.constraints())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s := &session{kind: kind, stream: stream, cancel: cancel}
	c.session = s
	c.elapsed = 0

	s.wg.Add(2)
	go c.collect(s)
	go c.clock(runCtx, s)

	c.logger.Info("recording started", zap.String("kind", string(kind)))
	return nil
}

func (c *Controller) collect(s *session) {
	defer s.wg.Done()
	for chunk := range s.stream.Chunks() {
		if len(chunk) == 0 {
			continue
		}
		s.chunkMu.Lock()
		s.chunks = append(s.chunks, chunk)
		s.chunkMu.Unlock()
	}
}

func (c *Controller) clock(ctx context.Context, s *session) {
	defer s.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.session != s {
				c.mu.Unlock()
				return
			}
			c.elapsed++
			elapsed := c.elapsed
			c.mu.Unlock()
			c.bus.Emit(bus.RecordingTick, Tick{Kind: s.kind, Elapsed: elapsed})
		case <-ctx.Done():
			return
		}
	}
}

// Stop finishes the running session and returns its artifact. It returns
// false when nothing is recording. A capture that failed without producing
// any data yields ErrDeviceUnavailable and no artifact.
func (c *Controller) Stop() (*Artifact, bool, error) {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return nil, false, nil
	}
	c.session = nil
	duration := c.elapsed
	c.elapsed = 0
	c.mu.Unlock()

	s.cancel()
	stopErr := s.stream.Stop()
	s.wg.Wait()
	data := bytes.Join(s.chunks, nil)
	if stopErr != nil {
		if len(data) == 0 {
			c.logger.Error("capture produced nothing", zap.String("kind", string(s.kind)), zap.Error(stopErr))
			return nil, true, fmt.Errorf("%w: %w", ErrDeviceUnavailable, stopErr)
		}
		c.logger.Warn("capture stream did not stop cleanly", zap.Error(stopErr))
	}

	blob, err := c.blobs.Put(data, s.kind.fallbackMIME())
	if err != nil {
		return nil, true, fmt.Errorf("store recording: %w", err)
	}

	art := &Artifact{
		Kind:     s.kind,
		URL:      blob.URL,
		MIMEType: blob.MIMEType,
		Size:     blob.Size,
		Duration: duration,
	}
	c.logger.Info("recording stopped",
		zap.String("kind", string(s.kind)),
		zap.Int("duration", duration),
		zap.Int64("bytes", blob.Size))
	c.bus.Emit(bus.RecordingStopped, *art)
	return art, true, nil
}

// Active reports whether a session is running and of which kind.
func (c *Controller) Active() (Kind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", false
	}
	return c.session.kind, true
}

// Elapsed returns the seconds recorded so far in the current session.
func (c *Controller) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
