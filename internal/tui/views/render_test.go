package views

import (
	"strings"
	"testing"

	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/ui"
	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "АС", initials("Анна Соколова"))
	assert.Equal(t, "", initials("  "))
}

func TestPresence(t *testing.T) {
	assert.Equal(t, "В сети", presence(&store.Contact{Status: store.Online}))
	assert.Equal(t, "вчера", presence(&store.Contact{Status: store.Offline, LastSeen: "вчера"}))
	assert.Equal(t, "", presence(nil))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░", bar(0, 4))
	assert.Equal(t, "██░░", bar(50, 4))
	assert.Equal(t, "████", bar(100, 4))
	assert.Equal(t, "████", bar(150, 4))
	assert.Equal(t, "", bar(50, 0))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "👍", sanitizeForTerminal("👍\U0001F3FB"))
	assert.Equal(t, "a\nb", sanitizeForTerminal("a\x07\nb"))
	assert.Equal(t, "[red[]", display("[red]"))
}

func TestRenderMedia(t *testing.T) {
	theme := ui.DefaultTheme()

	audio := renderMessage(theme, &store.Message{Type: store.TypeAudio, Duration: 65, Sent: true, Time: "9:05"}, "Анна")
	assert.Contains(t, audio, "1:05")
	assert.Contains(t, audio, store.AudioLabel)
	assert.Contains(t, audio, "Вы")

	video := renderMessage(theme, &store.Message{Type: store.TypeVideo, Duration: 7}, "Анна")
	assert.Contains(t, video, "0:07")
	assert.Contains(t, video, "Анна")

	file := renderMessage(theme, &store.Message{Type: store.TypeFile, FileName: "report.pdf", FileSize: "1.0 МБ"}, "Анна")
	assert.Contains(t, file, "📎 report.pdf")
	assert.Contains(t, file, "1.0 МБ")
}

func TestRenderReceipts(t *testing.T) {
	theme := ui.DefaultTheme()
	assert.Contains(t, renderMessage(theme, &store.Message{Text: "x", Sent: true, Read: true}, "a"), "✓✓")
	assert.NotContains(t, renderMessage(theme, &store.Message{Text: "x"}, "a"), "✓")
}

func TestRenderPoll(t *testing.T) {
	theme := ui.DefaultTheme()
	m := &store.Message{
		Type:         store.TypePoll,
		PollQuestion: "Lunch?",
		PollOptions:  store.NewPollOptions([]string{"Pizza", "Tacos"}),
	}

	open := renderPoll(theme, m)
	assert.Contains(t, open, "[1[]")
	assert.Contains(t, open, "Tacos")
	assert.NotContains(t, open, "Всего голосов")

	vote := m.PollOptions[1].ID
	m.UserVote = &vote
	m.PollOptions[1].Votes = 1

	closed := renderPoll(theme, m)
	lines := strings.Split(strings.TrimSpace(closed), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], "0%")
	assert.Contains(t, lines[2], "100%")
	assert.Contains(t, lines[2], "✓")
	assert.Contains(t, closed, "Всего голосов: 1")
}
