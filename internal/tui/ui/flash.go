package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FlashLevel represents the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// flashTTL is how long each level stays on the bar.
var flashTTL = [...]time.Duration{
	FlashInfo: 4 * time.Second,
	FlashWarn: 6 * time.Second,
	FlashErr:  10 * time.Second,
}

var flashGlyph = [...]string{
	FlashInfo: "ℹ",
	FlashWarn: "⚠",
	FlashErr:  "✖",
}

// FlashMessage is a flash notification with a level and expiry.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

func (m FlashMessage) expired(now time.Time) bool {
	return m.Text == "" || now.After(m.Expires)
}

// FlashModel holds the one notification currently shown and fans every new
// one out to a watcher. It is safe for concurrent use.
type FlashModel struct {
	mu      sync.RWMutex
	current FlashMessage
	watchCh chan FlashMessage
}

// NewFlashModel creates a new flash model.
func NewFlashModel() *FlashModel {
	return &FlashModel{
		watchCh: make(chan FlashMessage, 8),
	}
}

// Info flashes a confirmation, e.g. "Кэш очищен".
func (f *FlashModel) Info(msg string) { f.set(msg, FlashInfo) }

// Warn flashes a rejected user action.
func (f *FlashModel) Warn(msg string) { f.set(msg, FlashWarn) }

// Err flashes an infrastructure error.
func (f *FlashModel) Err(err error) { f.set(err.Error(), FlashErr) }

func (f *FlashModel) set(msg string, level FlashLevel) {
	fm := FlashMessage{
		Text:    msg,
		Level:   level,
		Expires: time.Now().Add(flashTTL[level]),
	}
	f.mu.Lock()
	f.current = fm
	f.mu.Unlock()
	// Watchers only need the latest message; drop when they lag.
	select {
	case f.watchCh <- fm:
	default:
	}
}

// Clear drops the current message.
func (f *FlashModel) Clear() {
	f.mu.Lock()
	f.current = FlashMessage{}
	f.mu.Unlock()
}

// Get returns the current flash message text, or empty if expired.
func (f *FlashModel) Get() string {
	if m := f.GetMessage(); m != nil {
		return m.Text
	}
	return ""
}

// GetMessage returns the current flash message, or nil if expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	m := f.current
	f.mu.RUnlock()
	if m.expired(time.Now()) {
		return nil
	}
	return &m
}

// Watch returns a channel that receives flash messages.
func (f *FlashModel) Watch() <-chan FlashMessage {
	return f.watchCh
}

// FlashBar is the one-line notification area under the page stack.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

// NewFlashBar creates a new flash notification bar.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &FlashBar{TextView: tv, theme: theme}
}

func (fb *FlashBar) levelColor(l FlashLevel) tcell.Color {
	switch l {
	case FlashWarn:
		return fb.theme.FlashWarnColor
	case FlashErr:
		return fb.theme.FlashErrColor
	default:
		return fb.theme.FlashInfoColor
	}
}

// Update renders msg, or clears the bar when msg is nil or expired.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil || msg.expired(time.Now()) {
		return
	}
	_, _ = fmt.Fprintf(fb, " %s%s %s[-]", Tag(fb.levelColor(msg.Level)), flashGlyph[msg.Level], tview.Escape(msg.Text))
}
