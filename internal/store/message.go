package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/mockchat/internal/bus"
)

// Placeholder texts for recorded media.
const (
	AudioLabel = "🎤 Голосовое сообщение"
	VideoLabel = "🎥 Видео-кружок"
)

// Preview glyphs prepended to the chat summary.
const (
	FileGlyph = "📎"
	PollGlyph = "📊"
)

// DisplayText derives the text a message shows for its variant.
func DisplayText(m *Message) string {
	switch m.Kind() {
	case TypeAudio:
		return AudioLabel
	case TypeVideo:
		return VideoLabel
	case TypeFile:
		return m.FileName
	case TypePoll:
		return m.PollQuestion
	default:
		return m.Text
	}
}

// Preview is the chat-list summary for a message.
func Preview(m *Message) string {
	switch m.Kind() {
	case TypeFile:
		return FileGlyph + " " + m.Text
	case TypePoll:
		return PollGlyph + " " + m.Text
	default:
		return m.Text
	}
}

// TimeLabel formats t as H:MM.
func TimeLabel(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// FormatDuration formats seconds as M:SS.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// AppendMessage appends msg to the chat with chatID. The store assigns the
// id, time label and display text. Returns the stored message and false if
// no such chat exists, in which case nothing changes.
func (s *Store) AppendMessage(chatID int64, msg Message) (Message, bool) {
	s.mu.Lock()
	i, ok := s.byID[chatID]
	if !ok {
		s.mu.Unlock()
		return Message{}, false
	}
	chat := s.chats[i]

	now := s.now()
	msg = copyMessage(&msg)
	msg.ID = s.nextID(now)
	msg.Time = TimeLabel(now)
	msg.Text = DisplayText(&msg)

	chat.Messages = append(chat.Messages, msg)
	chat.LastMessage = Preview(&msg)
	chat.Time = msg.Time
	s.version++
	out := copyMessage(&msg)
	s.mu.Unlock()

	s.bus.Emit(bus.MessageAppended, MessageEvent{ChatID: chatID, Message: out})
	return out, true
}

// nextID derives an id from the clock, bumped past the previous one so two
// appends in the same millisecond stay distinct.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
