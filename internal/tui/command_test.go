package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matheus3301/mockchat/internal/composer"
	"github.com/matheus3301/mockchat/internal/recording"
	"github.com/matheus3301/mockchat/internal/store"
	"github.com/matheus3301/mockchat/internal/tui/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleRecorder struct{}

func (idleRecorder) Start(context.Context, recording.Kind) error {
	return recording.ErrDeviceUnavailable
}
func (idleRecorder) Stop() (*recording.Artifact, bool, error) { return nil, false, nil }
func (idleRecorder) Elapsed() int                             { return 0 }

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	s := store.NewSeeded()
	c := composer.New(s, idleRecorder{}, nil, nil)
	vm := model.NewViewModel(s, c, nil, "main")
	a := NewApp(Options{ViewModel: vm})
	t.Cleanup(a.Stop)
	return a, s
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"quit", Command{Name: "quit"}},
		{"  Chat   Анна ", Command{Name: "chat", Args: "Анна"}},
		{"attach /tmp/a b.pdf", Command{Name: "attach", Args: "/tmp/a b.pdf"}},
		{"", Command{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCommand(tt.input), "input %q", tt.input)
	}
}

func TestCommandChatOpensConversation(t *testing.T) {
	a, _ := newTestApp(t)

	a.runCommand(ParseCommand("chat дмитрий"))
	assert.Equal(t, pageConversation, a.pages.Current())
	assert.Equal(t, int64(2), a.thread.ChatID())
	assert.Equal(t, int64(2), a.vm.Composer().ChatID())

	a.runCommand(ParseCommand("chat никто"))
	assert.Contains(t, a.flash.Get(), "Чат не найден")
}

func TestCommandUnknown(t *testing.T) {
	a, _ := newTestApp(t)
	a.runCommand(ParseCommand("frobnicate"))
	assert.Contains(t, a.flash.Get(), "frobnicate")
}

func TestCommandsNeedActiveChat(t *testing.T) {
	a, _ := newTestApp(t)
	for _, name := range []string{"poll", "audio", "vote 1", "attach"} {
		a.flash.Clear()
		a.runCommand(ParseCommand(name))
		assert.Equal(t, "Сначала откройте чат", a.flash.Get(), name)
		assert.Equal(t, pageChats, a.pages.Current(), name)
	}
}

func TestCommandPoll(t *testing.T) {
	a, _ := newTestApp(t)
	a.runCommand(ParseCommand("chat анна"))
	a.runCommand(ParseCommand("poll"))
	assert.Equal(t, composer.CreatingPoll, a.vm.Composer().Mode())
}

func TestCommandAttach(t *testing.T) {
	a, s := newTestApp(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	a.runCommand(ParseCommand("chat елена"))
	a.runCommand(ParseCommand("attach " + path))

	chat, ok := s.Chat(3)
	require.True(t, ok)
	last := chat.Messages[len(chat.Messages)-1]
	assert.Equal(t, store.TypeFile, last.Type)
	assert.Equal(t, "notes.txt", last.FileName)
	assert.True(t, strings.HasPrefix(chat.LastMessage, "📎"), chat.LastMessage)
}

func TestCommandRecordingFailureFlashes(t *testing.T) {
	a, _ := newTestApp(t)
	a.runCommand(ParseCommand("chat анна"))
	a.runCommand(ParseCommand("video"))
	assert.Equal(t, composer.Idle, a.vm.Composer().Mode())
	assert.Equal(t, "Не удалось начать запись", a.flash.Get())
}

func TestCommandNavigation(t *testing.T) {
	a, _ := newTestApp(t)

	a.runCommand(ParseCommand("storage"))
	assert.Equal(t, pageStorage, a.pages.Current())
	a.runCommand(ParseCommand("help"))
	assert.Equal(t, []string{pageChats, pageStorage, pageHelp}, a.pages.Stack())

	a.runCommand(ParseCommand("chats"))
	assert.Equal(t, []string{pageChats}, a.pages.Stack())

	a.back()
	assert.Equal(t, pageChats, a.pages.Current(), "root is never popped")
}

func TestCommandVoteUsage(t *testing.T) {
	a, _ := newTestApp(t)
	a.runCommand(ParseCommand("vote abc"))
	assert.Contains(t, a.flash.Get(), "vote <номер>")
}
