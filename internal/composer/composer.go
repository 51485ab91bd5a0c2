// Package composer implements the message composer: text input, emoji and
// attach overlays, poll creation and voice/video recording.
package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/media"
	"github.com/matheus3301/mockchat/internal/recording"
	"github.com/matheus3301/mockchat/internal/store"
	"go.uber.org/zap"
)

// ErrNoChat is returned when an action needs an active chat and none is set.
var ErrNoChat = errors.New("no active chat")

// Recorder captures audio and video notes.
type Recorder interface {
	Start(ctx context.Context, kind recording.Kind) error
	Stop() (*recording.Artifact, bool, error)
	Elapsed() int
}

// Sink receives composed messages.
type Sink interface {
	AppendMessage(chatID int64, msg store.Message) (store.Message, bool)
}

// Composer holds the composer state for the active chat.
type Composer struct {
	mu         sync.Mutex
	mode       Mode
	chatID     int64
	text       string
	emojiOpen  bool
	attachOpen bool
	poll       PollDraft

	sink     Sink
	recorder Recorder
	bus      *bus.Bus
	logger   *zap.Logger
}

// New creates an idle composer.
func New(sink Sink, recorder Recorder, b *bus.Bus, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		mode:     Idle,
		sink:     sink,
		recorder: recorder,
		bus:      b,
		logger:   logger,
	}
}

// Mode returns the current mode.
func (c *Composer) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetChat selects the chat that receives composed messages.
func (c *Composer) SetChat(id int64) {
	c.mu.Lock()
	c.chatID = id
	c.mu.Unlock()
}

// ChatID returns the active chat, 0 if none.
func (c *Composer) ChatID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID
}

// Text returns the current input.
func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText replaces the input.
func (c *Composer) SetText(text string) {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}

// InsertEmoji appends glyph verbatim to the input.
func (c *Composer) InsertEmoji(glyph string) {
	c.mu.Lock()
	c.text += glyph
	c.mu.Unlock()
}

// EmojiOpen reports whether the emoji picker is shown.
func (c *Composer) EmojiOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emojiOpen
}

// ToggleEmoji shows or hides the emoji picker. Opening it closes the attach
// menu.
func (c *Composer) ToggleEmoji() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emojiOpen = !c.emojiOpen
	if c.emojiOpen {
		c.attachOpen = false
	}
	return c.emojiOpen
}

// CloseEmoji hides the emoji picker.
func (c *Composer) CloseEmoji() {
	c.mu.Lock()
	c.emojiOpen = false
	c.mu.Unlock()
}

// AttachOpen reports whether the attach menu is shown.
func (c *Composer) AttachOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attachOpen
}

// ToggleAttach shows or hides the attach menu. Opening it closes the emoji
// picker.
func (c *Composer) ToggleAttach() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachOpen = !c.attachOpen
	if c.attachOpen {
		c.emojiOpen = false
	}
	return c.attachOpen
}

// CloseAttach hides the attach menu.
func (c *Composer) CloseAttach() {
	c.mu.Lock()
	c.attachOpen = false
	c.mu.Unlock()
}

// DismissOverlays closes both the emoji picker and the attach menu, as when
// focus moves away from them.
func (c *Composer) DismissOverlays() {
	c.mu.Lock()
	c.emojiOpen = false
	c.attachOpen = false
	c.mu.Unlock()
}

// Send appends the trimmed input as a text message. It does nothing unless
// the composer is idle, a chat is active and the input is not blank.
func (c *Composer) Send() (store.Message, bool) {
	c.mu.Lock()
	text := strings.TrimSpace(c.text)
	if c.mode != Idle || c.chatID == 0 || text == "" {
		c.mu.Unlock()
		return store.Message{}, false
	}
	chatID := c.chatID
	c.mu.Unlock()

	msg, ok := c.sink.AppendMessage(chatID, store.Message{
		Type: store.TypeText,
		Text: text,
		Sent: true,
	})
	if !ok {
		return store.Message{}, false
	}

	c.mu.Lock()
	c.text = ""
	c.emojiOpen = false
	c.mu.Unlock()
	return msg, true
}

// AttachFile sends the file at path to the active chat.
func (c *Composer) AttachFile(path string) (store.Message, error) {
	c.mu.Lock()
	if c.mode != Idle {
		mode := c.mode
		c.mu.Unlock()
		return store.Message{}, fmt.Errorf("cannot attach while %s", mode)
	}
	chatID := c.chatID
	c.mu.Unlock()
	if chatID == 0 {
		return store.Message{}, ErrNoChat
	}

	att, err := media.Pick(path)
	if err != nil {
		return store.Message{}, err
	}
	msg, ok := c.sink.AppendMessage(chatID, store.Message{
		Type:     store.TypeFile,
		Sent:     true,
		FileName: att.Name,
		FileSize: att.SizeText,
		FileURL:  att.URL,
		MIMEType: att.MIMEType,
	})
	if !ok {
		return store.Message{}, fmt.Errorf("chat %d: %w", chatID, ErrNoChat)
	}
	c.CloseAttach()
	c.logger.Info("file attached", zap.Int64("chat", chatID), zap.String("name", att.Name), zap.String("mime", att.MIMEType))
	return msg, nil
}

// StartAudio starts a voice note. Device failures are logged and leave the
// composer idle.
func (c *Composer) StartAudio(ctx context.Context) bool {
	return c.startRecording(ctx, RecordingAudio, recording.Audio)
}

// StartVideo starts a video note.
func (c *Composer) StartVideo(ctx context.Context) bool {
	return c.startRecording(ctx, RecordingVideo, recording.Video)
}

func (c *Composer) startRecording(ctx context.Context, to Mode, kind recording.Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != Idle {
		c.logger.Debug("recording refused", zap.String("mode", string(c.mode)))
		return false
	}
	if err := c.recorder.Start(ctx, kind); err != nil {
		c.logger.Error("could not start recording", zap.String("kind", string(kind)), zap.Error(err))
		return false
	}
	change, _ := c.transition(to)
	c.publish(change)
	return true
}

// Elapsed returns the recording clock in seconds.
func (c *Composer) Elapsed() int {
	return c.recorder.Elapsed()
}

// StopRecording finishes the recording and sends it to the active chat. It
// is a no-op when nothing is recording.
func (c *Composer) StopRecording() (store.Message, bool) {
	c.mu.Lock()
	if !c.mode.Recording() {
		c.mu.Unlock()
		return store.Message{}, false
	}
	art, stopped, err := c.recorder.Stop()
	change, _ := c.transition(Idle)
	chatID := c.chatID
	c.mu.Unlock()
	c.publish(change)

	if err != nil {
		c.logger.Error("could not finish recording", zap.Error(err))
		return store.Message{}, false
	}
	if !stopped || chatID == 0 {
		return store.Message{}, false
	}

	msg := store.Message{
		Type:     store.MessageType(art.Kind),
		Sent:     true,
		Duration: art.Duration,
		MediaURL: art.URL,
		MIMEType: art.MIMEType,
	}
	return c.sink.AppendMessage(chatID, msg)
}

// OpenPoll enters poll creation with an empty question and two empty
// options.
func (c *Composer) OpenPoll() bool {
	c.mu.Lock()
	change, err := c.transition(CreatingPoll)
	if err != nil {
		c.mu.Unlock()
		return false
	}
	c.poll = newPollDraft()
	c.attachOpen = false
	c.mu.Unlock()
	c.publish(change)
	return true
}

// Poll returns a copy of the poll draft.
func (c *Composer) Poll() PollDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poll.clone()
}

// SetPollQuestion edits the draft question.
func (c *Composer) SetPollQuestion(q string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != CreatingPoll {
		return false
	}
	c.poll.Question = q
	return true
}

// SetPollOption edits option i.
func (c *Composer) SetPollOption(i int, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != CreatingPoll || i < 0 || i >= len(c.poll.Options) {
		return false
	}
	c.poll.Options[i] = text
	return true
}

// AddPollOption appends an empty option, up to ten.
func (c *Composer) AddPollOption() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != CreatingPoll || !c.poll.CanAddOption() {
		return false
	}
	c.poll.Options = append(c.poll.Options, "")
	return true
}

// RemovePollOption deletes option i while more than two remain.
func (c *Composer) RemovePollOption(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != CreatingPoll || !c.poll.CanRemoveOption() || i < 0 || i >= len(c.poll.Options) {
		return false
	}
	c.poll.Options = append(c.poll.Options[:i], c.poll.Options[i+1:]...)
	return true
}

// CanSubmitPoll reports whether the draft has a question and two options.
func (c *Composer) CanSubmitPoll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != CreatingPoll || c.chatID == 0 {
		return false
	}
	_, ok := c.poll.submission()
	return ok
}

// SubmitPoll sends the draft as a poll message and returns to idle.
func (c *Composer) SubmitPoll() (store.Message, bool) {
	c.mu.Lock()
	if c.mode != CreatingPoll || c.chatID == 0 {
		c.mu.Unlock()
		return store.Message{}, false
	}
	sub, ok := c.poll.submission()
	if !ok {
		c.mu.Unlock()
		return store.Message{}, false
	}
	chatID := c.chatID
	change, _ := c.transition(Idle)
	c.poll = PollDraft{}
	c.mu.Unlock()
	c.publish(change)

	return c.sink.AppendMessage(chatID, store.Message{
		Type:         store.TypePoll,
		Sent:         true,
		PollQuestion: sub.Question,
		PollOptions:  store.NewPollOptions(sub.Options),
	})
}

// CancelPoll discards the draft.
func (c *Composer) CancelPoll() bool {
	c.mu.Lock()
	if c.mode != CreatingPoll {
		c.mu.Unlock()
		return false
	}
	change, _ := c.transition(Idle)
	c.poll = PollDraft{}
	c.mu.Unlock()
	c.publish(change)
	return true
}

func (c *Composer) publish(change ModeChange) {
	if change.From == change.To {
		return
	}
	c.bus.Emit(bus.ComposerModeChanged, change)
}
