package recording

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Constraints selects the tracks a capture needs.
type Constraints struct {
	Audio bool
	Video bool
}

// Device opens capture streams.
type Device interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is an open capture. Chunks delivers captured data; Stop flushes
// the last chunk, closes the Chunks channel and releases the hardware.
type Stream interface {
	Chunks() <-chan []byte
	Stop() error
}

// ErrCaptureFailed marks a capture command that exited on its own with an
// error instead of being stopped.
var ErrCaptureFailed = errors.New("capture command failed")

// defaultStartupWindow is how long Open waits for the first chunk or an
// early exit before treating the device as acquired.
const defaultStartupWindow = 500 * time.Millisecond

// ExecDevice captures by running an external command (ffmpeg by default)
// and streaming its stdout.
type ExecDevice struct {
	AudioCommand  []string
	VideoCommand  []string
	ChunkSize     int
	StartupWindow time.Duration
}

// DefaultAudioCommand records the default PulseAudio source as webm.
var DefaultAudioCommand = []string{"ffmpeg", "-loglevel", "error", "-f", "pulse", "-i", "default", "-f", "webm", "-"}

// DefaultVideoCommand records the first V4L2 camera plus default audio as webm.
var DefaultVideoCommand = []string{"ffmpeg", "-loglevel", "error", "-f", "v4l2", "-i", "/dev/video0", "-f", "pulse", "-i", "default", "-f", "webm", "-"}

// Open starts the capture command matching c. The device counts as acquired
// once the command produces output or keeps running for StartupWindow. A
// command that exits before either is reported as an error.
func (d *ExecDevice) Open(ctx context.Context, c Constraints) (Stream, error) {
	argv := d.AudioCommand
	if c.Video {
		argv = d.VideoCommand
	}
	if len(argv) == 0 {
		return nil, errors.New("no capture command configured")
	}
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("capture command: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, argv[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capture stdout: %w", err)
	}
	stderr := &tailBuffer{max: 512}
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}

	size := d.ChunkSize
	if size <= 0 {
		size = 32 * 1024
	}
	window := d.StartupWindow
	if window <= 0 {
		window = defaultStartupWindow
	}
	s := &execStream{
		cmd:    cmd,
		stderr: stderr,
		chunks: make(chan []byte, 16),
		first:  make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.pump(stdout, size)

	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-s.first:
		return s, nil
	case <-s.done:
		select {
		case <-s.first:
			return s, nil
		default:
		}
		return nil, s.exitError()
	case <-timer.C:
		return s, nil
	case <-ctx.Done():
		_ = s.Stop()
		return nil, ctx.Err()
	}
}

type execStream struct {
	cmd     *exec.Cmd
	stderr  *tailBuffer
	chunks  chan []byte
	first   chan struct{}
	done    chan struct{}
	waitErr error
	once    sync.Once
}

func (s *execStream) Chunks() <-chan []byte { return s.chunks }

// pump forwards stdout until EOF, then reaps the process.
func (s *execStream) pump(r io.Reader, size int) {
	defer close(s.done)
	seen := false
	for {
		buf := make([]byte, size)
		n, err := r.Read(buf)
		if n > 0 {
			if !seen {
				seen = true
				close(s.first)
			}
			s.chunks <- buf[:n]
		}
		if err != nil {
			break
		}
	}
	close(s.chunks)
	s.waitErr = s.cmd.Wait()
}

// exitError describes a command that exited before being stopped. It must
// only be called after done is closed.
func (s *execStream) exitError() error {
	msg := strings.TrimSpace(s.stderr.String())
	switch {
	case s.waitErr != nil && msg != "":
		return fmt.Errorf("%w: %w: %s", ErrCaptureFailed, s.waitErr, msg)
	case s.waitErr != nil:
		return fmt.Errorf("%w: %w", ErrCaptureFailed, s.waitErr)
	default:
		return fmt.Errorf("%w: exited without output", ErrCaptureFailed)
	}
}

// Stop asks the command to finish and waits for the remaining output. A
// non-zero exit caused by the interrupt is expected; one that happened
// before Stop is returned as ErrCaptureFailed.
func (s *execStream) Stop() error {
	var err error
	s.once.Do(func() {
		exited := false
		select {
		case <-s.done:
			exited = true
		default:
			if s.cmd.Process != nil {
				_ = s.cmd.Process.Signal(os.Interrupt)
			}
			<-s.done
		}
		if s.waitErr == nil {
			return
		}
		var exitErr *exec.ExitError
		if exited || !errors.As(s.waitErr, &exitErr) {
			err = s.exitError()
		}
	})
	return err
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
